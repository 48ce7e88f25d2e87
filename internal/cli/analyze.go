package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/yildizm/lrview/internal/client"
	"github.com/yildizm/lrview/internal/logger"
	"github.com/yildizm/lrview/internal/result"
	"github.com/yildizm/lrview/internal/session"
	"github.com/yildizm/lrview/internal/ui"
)

// exampleGrammar and exampleInput are loaded by --example
const (
	exampleGrammar = `S -> E
E -> E + T
E -> T
T -> T * F
T -> F
F -> ( E )
F -> id`
	exampleInput = "id + id * id"
)

var (
	analyzeGrammar    string
	analyzeInput      string
	analyzeExample    bool
	analyzeNoTUI      bool
	analyzeOutputFile string
	analyzeTimeout    time.Duration
)

func newAnalyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [grammar-file]",
		Short: "Analyze a grammar and parse an input string",
		Long: `Send a grammar and an input string to the LR(1) service and show the
parse table, the transition trace and the automaton diagrams.

The grammar comes from the file argument, --grammar, or --example. Without
a grammar or input on an interactive terminal, an input form is shown.

Examples:
  lrview analyze --example
  lrview analyze expr.grammar --input "id + id * id"
  lrview analyze expr.grammar -i "id * id" --no-tui -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runAnalyze,
	}

	cmd.Flags().StringVar(&analyzeGrammar, "grammar", "", "grammar text, one production per line")
	cmd.Flags().StringVarP(&analyzeInput, "input", "i", "", "input string to parse")
	cmd.Flags().BoolVar(&analyzeExample, "example", false, "load the expression grammar example")
	cmd.Flags().BoolVar(&analyzeNoTUI, "no-tui", false, "disable terminal UI, output to stdout")
	cmd.Flags().StringVar(&analyzeOutputFile, "output-file", "", "save output to file instead of stdout")
	cmd.Flags().DurationVar(&analyzeTimeout, "timeout", 0, "request timeout (default from config)")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	grammar, input, err := resolveInputs(args, analyzeGrammar, analyzeInput, analyzeExample)
	if err != nil {
		return err
	}

	if analyzeOutputFile != "" {
		if err := validateOutputFilePath(analyzeOutputFile); err != nil {
			return fmt.Errorf("invalid output file path: %w", err)
		}
	}

	sess, err := newSession(analyzeTimeout)
	if err != nil {
		return err
	}

	if shouldUseTUI() {
		return runTUI(cmd.Context(), sess, grammar, input)
	}

	if (grammar == "" || input == "") && isTerminal(os.Stdin) {
		if err := ui.RunInputForm(&grammar, &input); err != nil {
			return fmt.Errorf("input form: %w", err)
		}
	}

	res, err := analyzeOnce(cmd.Context(), sess, grammar, input)
	if err != nil {
		return err
	}
	return formatAndOutput(cmd, res)
}

// resolveInputs picks the grammar and input from the example, the file
// argument and the flags, in that order of precedence for each value.
func resolveInputs(args []string, grammarFlag, inputFlag string, example bool) (grammar, input string, err error) {
	grammar, input = grammarFlag, inputFlag
	if len(args) == 1 {
		grammar, err = readGrammarFile(args[0])
		if err != nil {
			return "", "", err
		}
	}
	if example {
		if grammar == "" {
			grammar = exampleGrammar
		}
		if input == "" {
			input = exampleInput
		}
	}
	return grammar, input, nil
}

func readGrammarFile(path string) (string, error) {
	if err := validateFilePath(path); err != nil {
		return "", fmt.Errorf("invalid grammar file path: %w", err)
	}
	// #nosec G304 - path is validated above
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("failed to read grammar file: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

func shouldUseTUI() bool {
	return !analyzeNoTUI && getOutputFormat() == "text" && !isVerbose() && isTerminal(os.Stdout)
}

// analyzeOnce runs one analysis and reports failures the way the TUI does
func analyzeOnce(ctx context.Context, sess *session.Session, grammar, input string) (*result.AnalysisResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	res, err := sess.Analyze(ctx, grammar, input)
	if err != nil {
		if session.IsValidationError(err) {
			return nil, err
		}
		return nil, errors.New(client.UserMessage(err))
	}
	return res, nil
}

// runTUI runs the interactive app with logs sent to a file
func runTUI(ctx context.Context, sess *session.Session, grammar, input string) error {
	cfg := GetGlobalConfig()

	if dir := cfg.LogDir(); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err == nil {
			if restore, err := logger.RedirectToFile(filepath.Join(dir, "lrview.log")); err == nil {
				defer func() { _ = restore() }()
			}
		}
	}

	return ui.Run(ui.Options{
		Session:     sess,
		Logger:      newLogger("tui"),
		Context:     ctx,
		Grammar:     grammar,
		Input:       input,
		DownloadDir: cfg.DownloadDir(),
		Mouse:       cfg.Viewer.Mouse,
	})
}
