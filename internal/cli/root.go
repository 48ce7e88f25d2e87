package cli

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/yildizm/lrview/internal/client"
	"github.com/yildizm/lrview/internal/config"
	"github.com/yildizm/lrview/internal/emoji"
	"github.com/yildizm/lrview/internal/logger"
	"github.com/yildizm/lrview/internal/session"
	"github.com/yildizm/lrview/internal/ui/theme"
)

var (
	cfgFile   string
	verbose   bool
	noColor   bool
	noEmoji   bool
	outputFmt string
	endpoint  string

	globalConfig *config.Config
)

// NewRootCommand creates the root command
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lrview",
		Short: "Explore LR(1) parsers in the terminal",
		Long: `lrview sends a context-free grammar and an input string to an LR(1)
analysis service and shows what comes back: the parse table with its
conflicts, the step-by-step transition trace, and the NFA/DFA diagrams
of the item automaton.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Auto-disable emojis on Windows if not explicitly set
			if runtime.GOOS == "windows" && !cmd.Flag("no-emoji").Changed {
				noEmoji = true
			}
			return setupGlobals(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&noEmoji, "no-emoji", false, "disable emoji output (useful for Windows terminals)")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "", "output format (text, json, markdown, csv)")
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", "", "analysis service base URL")

	rootCmd.AddCommand(newAnalyzeCommand())
	rootCmd.AddCommand(newWatchCommand())
	rootCmd.AddCommand(newExportCommand())
	rootCmd.AddCommand(newHealthCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

// setupGlobals loads the configuration and applies flag overrides, emoji,
// theme and color settings. The config subcommands tolerate a broken
// config so they can report on it.
func setupGlobals(cmd *cobra.Command) error {
	cfg, err := config.NewLoader().LoadConfig(cfgFile)
	if err != nil {
		if !isConfigCommand(cmd) {
			return err
		}
		cfg = config.DefaultConfig()
	}

	if endpoint != "" {
		cfg.Service.Endpoint = endpoint
	}
	if outputFmt == "" {
		outputFmt = cfg.Output.DefaultFormat
	}
	if cfg.Output.Verbose {
		verbose = true
	}
	if cfg.Output.NoEmoji {
		noEmoji = true
	}
	globalConfig = cfg

	emoji.SetEmojiDisabled(noEmoji)
	if !theme.SetThemeByName(cfg.Output.Theme) {
		return fmt.Errorf("unknown theme: %s", cfg.Output.Theme)
	}
	theme.SetColorDisabled(!useColor(cfg.Output.ColorMode, noColor, os.Stdout))
	return nil
}

func isConfigCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "config" {
			return true
		}
	}
	return false
}

// useColor resolves the color mode against the --no-color flag and whether
// out is a terminal
func useColor(mode string, disabled bool, out *os.File) bool {
	if disabled {
		return false
	}
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return isTerminal(out)
	}
}

func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display version number, build commit, date, and runtime information",
		Run: func(cmd *cobra.Command, args []string) {
			displayVersion := version
			displayCommit := commit
			displayDate := date

			if version == "dev" || version == "" {
				displayVersion = "development"
			}
			if commit == "none" || commit == "" {
				displayCommit = "local-build"
			}
			if date == "unknown" || date == "" {
				displayDate = "local-build"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "lrview %s (%s) built on %s\n", displayVersion, displayCommit, displayDate)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

// GetGlobalConfig returns the loaded configuration, or defaults before the
// root command has run
func GetGlobalConfig() *config.Config {
	if globalConfig == nil {
		return config.DefaultConfig()
	}
	return globalConfig
}

// Global helpers
func isVerbose() bool {
	return verbose
}

func getOutputFormat() string {
	if outputFmt == "" {
		return "text"
	}
	return strings.ToLower(outputFmt)
}

func newLogger(component string) *logger.Logger {
	return logger.NewWithCallback(component, isVerbose)
}

// newClient builds the service client from the configuration. A positive
// timeout overrides the configured one.
func newClient(timeout time.Duration) (*client.Client, error) {
	cfg := GetGlobalConfig()
	cc := &client.Config{
		BaseURL:   cfg.Service.Endpoint,
		Timeout:   cfg.Service.Timeout,
		UserAgent: cfg.Service.UserAgent,
	}
	if timeout > 0 {
		cc.Timeout = timeout
	}
	return client.New(cc, newLogger("client"))
}

func newSession(timeout time.Duration) (*session.Session, error) {
	c, err := newClient(timeout)
	if err != nil {
		return nil, err
	}
	return session.New(c, newLogger("session")), nil
}

func symbol(key string) string {
	return emoji.GetEmoji(key)
}

func printf(w io.Writer, format string, args ...interface{}) {
	_, _ = fmt.Fprintf(w, format, args...)
}
