package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yildizm/lrview/internal/result"
	"github.com/yildizm/lrview/internal/viewer"
)

var (
	exportInput   string
	exportDiagram string
	exportDir     string
	exportExample bool
)

func newExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [grammar-file]",
		Short: "Save the automaton diagrams of a grammar",
		Long: `Run one analysis and save the NFA and/or DFA images exactly as the
service returned them.

Examples:
  lrview export expr.grammar --input "id + id" --diagram dfa
  lrview export --example --dir ./diagrams`,
		Args: cobra.MaximumNArgs(1),
		RunE: runExport,
	}

	cmd.Flags().StringVarP(&exportInput, "input", "i", "", "input string to parse")
	cmd.Flags().StringVar(&exportDiagram, "diagram", "all", "which diagram to save (nfa, dfa, all)")
	cmd.Flags().StringVar(&exportDir, "dir", "", "target directory (default from config)")
	cmd.Flags().BoolVar(&exportExample, "example", false, "use the expression grammar example")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	which, err := parseDiagramChoice(exportDiagram)
	if err != nil {
		return err
	}

	grammar, input, err := resolveInputs(args, "", exportInput, exportExample)
	if err != nil {
		return err
	}

	dir := exportDir
	if dir == "" {
		dir = GetGlobalConfig().DownloadDir()
	}

	sess, err := newSession(0)
	if err != nil {
		return err
	}
	res, err := analyzeOnce(cmd.Context(), sess, grammar, input)
	if err != nil {
		return err
	}

	paths, err := exportDiagrams(res, which, dir)
	for _, p := range paths {
		printf(cmd.OutOrStdout(), "%s Saved %s\n", symbol("save"), p)
	}
	return err
}

func parseDiagramChoice(s string) ([]string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "nfa":
		return []string{"nfa"}, nil
	case "dfa":
		return []string{"dfa"}, nil
	case "all", "":
		return []string{"nfa", "dfa"}, nil
	default:
		return nil, fmt.Errorf("unknown diagram %q (use nfa, dfa or all)", s)
	}
}

// exportDiagrams downloads the selected diagrams through a viewer each and
// returns the written paths. A missing diagram is an error after the others
// are saved.
func exportDiagrams(res *result.AnalysisResult, which []string, dir string) ([]string, error) {
	var nfa, dfa *result.ImageRef
	if res.Diagrams != nil {
		nfa, dfa = res.Diagrams.NFA, res.Diagrams.DFA
	}

	var paths, missing []string
	for _, name := range which {
		img := nfa
		if name == "dfa" {
			img = dfa
		}
		if img == nil {
			missing = append(missing, strings.ToUpper(name))
			continue
		}
		path, err := viewer.New(img.Title, img, nil).Download(dir)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	if len(missing) > 0 {
		return paths, fmt.Errorf("the service returned no %s diagram", strings.Join(missing, "/"))
	}
	return paths, nil
}
