package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/yildizm/lrview/internal/client"
	"github.com/yildizm/lrview/internal/logger"
	"github.com/yildizm/lrview/internal/result"
	"github.com/yildizm/lrview/internal/session"
)

var (
	watchInput    string
	watchDebounce time.Duration
)

func newWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <grammar-file>",
		Short: "Re-analyze a grammar file whenever it changes",
		Long: `Watch a grammar file and re-run the analysis each time it is written.

One summary line is printed per analysis. A change that arrives while an
analysis is still running is skipped. Press Ctrl+C to stop watching.

Examples:
  lrview watch expr.grammar --input "id + id * id"`,
		Args: cobra.ExactArgs(1),
		RunE: runWatch,
	}

	cmd.Flags().StringVarP(&watchInput, "input", "i", "", "input string to parse")
	cmd.Flags().DurationVar(&watchDebounce, "debounce", 0, "wait this long after the last write (default from config)")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	filename := args[0]
	if err := validateFilePath(filename); err != nil {
		return fmt.Errorf("invalid file path: %w", err)
	}

	debounce := watchDebounce
	if !cmd.Flag("debounce").Changed {
		debounce = GetGlobalConfig().Watch.Debounce
	}

	sess, err := newSession(0)
	if err != nil {
		return err
	}

	watcher, err := createWatcher(filename)
	if err != nil {
		return err
	}
	defer cleanupWatcher(watcher)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w := &grammarWatcher{
		file:     filename,
		input:    watchInput,
		debounce: debounce,
		session:  sess,
		out:      cmd.OutOrStdout(),
		log:      newLogger("watch"),
		done:     make(chan watchOutcome, 1),
	}

	printf(w.out, "%s Watching %s (Ctrl+C to stop)\n", symbol("watch"), filename)
	w.trigger()
	return w.loop(ctx, watcher.Events, watcher.Errors)
}

type watchOutcome struct {
	result *result.AnalysisResult
	err    error
}

// grammarWatcher re-submits the grammar file to the session after writes
type grammarWatcher struct {
	file     string
	input    string
	debounce time.Duration
	session  *session.Session
	out      io.Writer
	log      *logger.Logger
	done     chan watchOutcome
}

func (w *grammarWatcher) loop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error) error {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.log.Debug("change on %s: %s", event.Name, event.Op)
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			fire = timer.C

		case <-fire:
			fire = nil
			w.trigger()

		case outcome := <-w.done:
			printf(w.out, "%s\n", summaryLine(time.Now(), outcome.result, outcome.err))

		case err, ok := <-errs:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.log.WarnWithFields("watcher error", []logger.Field{logger.Error(err)})
		}
	}
}

// trigger reads the grammar and submits it. A busy session skips the change.
func (w *grammarWatcher) trigger() {
	grammar, err := readGrammarFile(w.file)
	if err != nil {
		printf(w.out, "%s\n", summaryLine(time.Now(), nil, err))
		return
	}

	pending, err := w.session.Submit(grammar, w.input)
	switch {
	case errors.Is(err, session.ErrBusy):
		printf(w.out, "%s skipped: an analysis is already running\n", time.Now().Format("15:04:05"))
		return
	case err != nil:
		printf(w.out, "%s\n", summaryLine(time.Now(), nil, err))
		return
	}

	go func() {
		res, err := pending.Run(context.Background())
		w.done <- watchOutcome{result: res, err: err}
	}()
}

// summaryLine is the one-line report of one analysis
func summaryLine(at time.Time, res *result.AnalysisResult, err error) string {
	ts := at.Format("15:04:05")
	if err != nil {
		msg := err.Error()
		if !session.IsValidationError(err) {
			msg = client.UserMessage(err)
		}
		return fmt.Sprintf("%s %s %s", ts, symbol("error"), msg)
	}
	if !res.Succeeded {
		msg := res.Message
		if msg == "" {
			msg = "analysis did not succeed"
		}
		return fmt.Sprintf("%s %s %s", ts, symbol("error"), msg)
	}

	parts := []string{
		lr1Label(res.Statistics.IsLR1),
		fmt.Sprintf("%d DFA states", res.Statistics.DFAStateCount),
		fmt.Sprintf("%d conflicts", res.ConflictCount()),
	}
	if res.Trace != nil {
		verdict := "input rejected"
		if res.Trace.Accepted {
			verdict = "input accepted"
		}
		parts = append(parts, verdict)
	}
	status := symbol("success")
	if res.HasConflicts() {
		status = symbol("conflict")
	}
	return fmt.Sprintf("%s %s %s", ts, status, strings.Join(parts, " · "))
}

func lr1Label(isLR1 bool) string {
	if isLR1 {
		return "LR(1)"
	}
	return "not LR(1)"
}

// cleanupWatcher safely closes watcher with error logging
func cleanupWatcher(watcher *fsnotify.Watcher) {
	if err := watcher.Close(); err != nil && isVerbose() {
		fmt.Fprintf(os.Stderr, "Warning: failed to close watcher: %v\n", err)
	}
}

// createWatcher creates and configures a new file system watcher
func createWatcher(filename string) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := watcher.Add(filename); err != nil {
		cleanupWatcher(watcher)
		return nil, fmt.Errorf("failed to watch file: %w", err)
	}

	return watcher, nil
}
