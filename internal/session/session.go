// Package session owns the single analysis slot shared by every view: at
// most one request in flight, and exactly one of result or error once it
// completes.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/semaphore"

	"github.com/yildizm/lrview/internal/classifier"
	"github.com/yildizm/lrview/internal/logger"
	"github.com/yildizm/lrview/internal/result"
)

// ErrBusy is returned by Submit while an analysis is in flight
var ErrBusy = errors.New("an analysis is already running")

// ErrPanic wraps a panic raised by the analyzer
var ErrPanic = errors.New("analysis aborted unexpectedly")

// Analyzer performs one analysis request
type Analyzer interface {
	Analyze(ctx context.Context, grammar, input string) (*result.AnalysisResult, error)
}

// AnalyzerFunc adapts a function to Analyzer
type AnalyzerFunc func(ctx context.Context, grammar, input string) (*result.AnalysisResult, error)

// Analyze calls f
func (f AnalyzerFunc) Analyze(ctx context.Context, grammar, input string) (*result.AnalysisResult, error) {
	return f(ctx, grammar, input)
}

// Snapshot is a consistent copy of the session slot
type Snapshot struct {
	Loading  bool
	Result   *result.AnalysisResult
	Err      error
	Grammar  string
	Input    string
	Started  time.Time
	Finished time.Time
}

// Session coordinates analyses for one user
type Session struct {
	analyzer Analyzer
	inflight *semaphore.Weighted
	validate *validator.Validate
	log      *logger.Logger

	mu   sync.Mutex
	snap Snapshot
}

// New creates a session backed by analyzer
func New(analyzer Analyzer, log *logger.Logger) *Session {
	if log == nil {
		log = logger.Nop()
	}
	return &Session{
		analyzer: analyzer,
		inflight: semaphore.NewWeighted(1),
		validate: validator.New(),
		log:      log.WithComponent("session"),
	}
}

// Snapshot returns the current slot
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

// Loading reports whether an analysis is in flight
func (s *Session) Loading() bool {
	return s.Snapshot().Loading
}

type submission struct {
	Grammar string `validate:"required"`
	Input   string `validate:"required"`
}

// Validate checks the inputs without touching the slot
func (s *Session) Validate(grammar, input string) error {
	sub := submission{Grammar: strings.TrimSpace(grammar), Input: strings.TrimSpace(input)}
	err := s.validate.Struct(sub)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate submission: %w", err)
	}
	ve := &ValidationError{}
	for _, fe := range verrs {
		ve.Fields = append(ve.Fields, FieldError{
			Field:   strings.ToLower(fe.Field()),
			Message: fieldMessage(fe),
		})
	}
	return ve
}

// Pending is an accepted submission waiting to run
type Pending struct {
	session *Session
	grammar string
	input   string
	once    sync.Once
}

// Submit validates the inputs and claims the slot. Validation failures and
// ErrBusy leave the slot untouched. On success the slot is loading with no
// result or error until Run finishes.
func (s *Session) Submit(grammar, input string) (*Pending, error) {
	if err := s.Validate(grammar, input); err != nil {
		return nil, err
	}
	if !s.inflight.TryAcquire(1) {
		s.log.Debug("submit rejected: analysis in flight")
		return nil, ErrBusy
	}

	s.mu.Lock()
	s.snap = Snapshot{Loading: true, Grammar: grammar, Input: input, Started: time.Now()}
	s.mu.Unlock()

	return &Pending{session: s, grammar: grammar, input: input}, nil
}

// Run performs the analysis and settles the slot. It blocks; only the first
// call does any work.
func (p *Pending) Run(ctx context.Context) (res *result.AnalysisResult, err error) {
	ran := false
	p.once.Do(func() {
		ran = true
		res, err = p.session.run(ctx, p.grammar, p.input)
	})
	if !ran {
		snap := p.session.Snapshot()
		return snap.Result, snap.Err
	}
	return res, err
}

// Analyze is Submit followed by Run
func (s *Session) Analyze(ctx context.Context, grammar, input string) (*result.AnalysisResult, error) {
	p, err := s.Submit(grammar, input)
	if err != nil {
		return nil, err
	}
	return p.Run(ctx)
}

func (s *Session) run(ctx context.Context, grammar, input string) (res *result.AnalysisResult, err error) {
	defer s.inflight.Release(1)
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = fmt.Errorf("%w: %v", ErrPanic, r)
			s.log.ErrorWithFields("analyzer panicked", []logger.Field{logger.F("panic", r)})
		}
		if err == nil && res == nil {
			err = errors.New("analyzer returned no result")
		}
		if err != nil {
			res = nil
		}
		s.finish(res, err)
	}()

	return s.analyzer.Analyze(ctx, grammar, input)
}

func (s *Session) finish(res *result.AnalysisResult, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Loading = false
	s.snap.Result = res
	s.snap.Err = err
	s.snap.Finished = time.Now()

	fields := []logger.Field{logger.Duration(s.snap.Finished.Sub(s.snap.Started))}
	if err != nil {
		s.log.InfoWithFields("analysis failed", append(fields, logger.Error(err)))
		return
	}
	s.log.InfoWithFields("analysis settled", append(fields, logger.F("succeeded", res.Succeeded)))

	if res.Table != nil {
		if dups := classifier.NewIndex(res.Table.Conflicts).Duplicates(); len(dups) > 0 {
			s.log.WarnWithFields("service reported the same conflict cell more than once",
				[]logger.Field{logger.Count(len(dups))})
		}
	}
}
