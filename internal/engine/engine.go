package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/yepeleya/projet-parrainage-aeistc/internal/ir"
	"github.com/yepeleya/projet-parrainage-aeistc/internal/pairing"
)

// Recorder persists a completed session. Implemented by *store.Store.
type Recorder interface {
	WriteSession(ctx context.Context, sess ir.Session) (bool, error)
}

// Emitter produces derived files for a completed session. Implemented by
// *report.Writer.
type Emitter interface {
	Name() string
	Emit(ctx context.Context, sess ir.Session) ([]ir.ReportFile, error)
}

// DefaultParallelism bounds the number of recorder and emitter calls run
// at the same time.
const DefaultParallelism = 4

// Request is the input of one generation.
type Request struct {
	Program string
	Mentors []ir.Participant
	Mentees []ir.Participant
}

// Warning is a non-fatal failure of a post-processing stage.
type Warning struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// StageRecord is the warning stage of the session recorder.
const StageRecord = "record"

func stageWarning(stage string, code RuntimeErrorCode, sessionID string, err error) Warning {
	return Warning{
		Stage:   stage,
		Message: err.Error(),
		Err:     &RuntimeError{Code: code, Message: stage + " failed", SessionID: sessionID, Err: err},
	}
}

// RecordWarning is the warning reported when a session could not be
// recorded.
func RecordWarning(sessionID string, err error) Warning {
	return stageWarning(StageRecord, ErrCodeRecordFailed, sessionID, err)
}

// Result is the outcome of one generation.
type Result struct {
	Session  ir.Session      `json:"session"`
	Summary  pairing.Summary `json:"summary"`
	Recorded bool            `json:"recorded"` // A new session row was written
	Files    []ir.ReportFile `json:"files"`
	Warnings []Warning       `json:"warnings"`
}

// Engine runs pairing sessions: it shuffles both pools, assigns them, and
// hands the session to the recorder and the emitters.
//
// Thread-safety: Generate may be called concurrently if the configured
// Source is safe for concurrent use (the default source is).
type Engine struct {
	ids         SessionIDGenerator
	clock       Clock
	source      pairing.Source
	recorder    Recorder
	emitters    []Emitter
	parallelism int
	logger      *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithSessionIDs sets the session id generator. Default: UUIDv7Generator.
func WithSessionIDs(g SessionIDGenerator) Option {
	return func(e *Engine) { e.ids = g }
}

// WithClock sets the clock stamping session creation. Default: SystemClock.
func WithClock(c Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithSource sets the random source used to shuffle pools.
// Default: pairing.DefaultSource().
func WithSource(src pairing.Source) Option {
	return func(e *Engine) { e.source = src }
}

// WithRecorder sets the session recorder. Without one, sessions are not
// persisted.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) { e.recorder = r }
}

// WithEmitters appends report emitters.
func WithEmitters(em ...Emitter) Option {
	return func(e *Engine) { e.emitters = append(e.emitters, em...) }
}

// WithParallelism bounds concurrent post-processing calls.
// Values below 1 mean unbounded.
func WithParallelism(n int) Option {
	return func(e *Engine) { e.parallelism = n }
}

// WithLogger sets the logger. Default: discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		ids:         UUIDv7Generator{},
		clock:       SystemClock{},
		source:      pairing.DefaultSource(),
		parallelism: DefaultParallelism,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Generate computes a pairing session.
//
// The request pools are validated first: both must be non-empty, IDs must
// be unique within a pool and every participant must have an email.
// Validation failures return a RuntimeError with ErrCodeValidation before
// any id is allocated.
//
// Once pairings are computed the recorder and every emitter run
// concurrently. Their failures are returned as Warnings; the session is
// always returned.
func (e *Engine) Generate(ctx context.Context, req Request) (*Result, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	run := ir.RunContext{
		SessionID: e.ids.Generate(),
		Program:   req.Program,
		CreatedAt: e.clock.Now(),
	}
	log := e.logger.With("session", run.SessionID, "program", run.Program)

	mentors := pairing.Shuffle(req.Mentors, e.source)
	mentees := pairing.Shuffle(req.Mentees, e.source)

	pairings, err := pairing.Assign(mentors, mentees)
	if err != nil {
		return nil, fmt.Errorf("assign: %w", err)
	}
	for i := range pairings {
		pairings[i].Program = run.Program
	}

	sess := ir.Session{
		RunContext: run,
		Regime:     pairing.RegimeFor(len(mentors), len(mentees)),
		Mentors:    copyPool(req.Mentors),
		Mentees:    copyPool(req.Mentees),
		Pairings:   pairings,
	}
	if sess.Digest, err = ir.SessionDigest(sess); err != nil {
		return nil, fmt.Errorf("digest: %w", err)
	}

	result := &Result{
		Session:  sess,
		Summary:  pairing.Summarize(sess.Mentors, sess.Mentees, sess.Pairings),
		Files:    []ir.ReportFile{},
		Warnings: []Warning{},
	}
	log.Info("pairings computed",
		"regime", sess.Regime,
		"mentors", len(sess.Mentors),
		"mentees", len(sess.Mentees),
		"pairings", len(sess.Pairings),
		"double_mentored", result.Summary.DoubleMentored,
	)

	e.finish(ctx, log, result)
	return result, nil
}

// finish runs the recorder and the emitters. It never fails: errors become
// warnings on the result.
func (e *Engine) finish(ctx context.Context, log *slog.Logger, result *Result) {
	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	if e.parallelism > 0 {
		g.SetLimit(e.parallelism)
	}
	sess := result.Session

	warn := func(w Warning) {
		log.Warn("post-processing failed", "stage", w.Stage, "error", w.Message)
		mu.Lock()
		result.Warnings = append(result.Warnings, w)
		mu.Unlock()
	}

	if e.recorder != nil {
		g.Go(func() error {
			inserted, err := e.recorder.WriteSession(ctx, sess)
			if err != nil {
				warn(RecordWarning(sess.SessionID, err))
				return nil
			}
			if !inserted {
				warn(RecordWarning(sess.SessionID, ErrAlreadyRecorded))
				return nil
			}
			mu.Lock()
			result.Recorded = true
			mu.Unlock()
			log.Debug("session recorded")
			return nil
		})
	}

	files := make([][]ir.ReportFile, len(e.emitters))
	for i, em := range e.emitters {
		g.Go(func() error {
			out, err := em.Emit(ctx, sess)
			if err != nil {
				warn(stageWarning(em.Name(), ErrCodeReportFailed, sess.SessionID, err))
				return nil
			}
			files[i] = out
			log.Debug("reports emitted", "emitter", em.Name(), "files", len(out))
			return nil
		})
	}

	_ = g.Wait() // Stages report through warnings.

	for _, f := range files {
		result.Files = append(result.Files, f...)
	}
}

func validate(req Request) error {
	if len(req.Mentors) == 0 {
		return NewValidationError("mentor pool is empty")
	}
	if len(req.Mentees) == 0 {
		return NewValidationError("mentee pool is empty")
	}
	if err := validatePool("mentor", req.Mentors); err != nil {
		return err
	}
	return validatePool("mentee", req.Mentees)
}

func validatePool(role string, pool []ir.Participant) error {
	seen := make(map[int]bool, len(pool))
	for _, p := range pool {
		if seen[p.ID] {
			return NewValidationError("duplicate %s id %d", role, p.ID)
		}
		seen[p.ID] = true
		if p.Email == "" {
			return NewValidationError("%s %d (%q) has no email", role, p.ID, p.FullName)
		}
	}
	return nil
}

func copyPool(pool []ir.Participant) []ir.Participant {
	out := make([]ir.Participant, len(pool))
	copy(out, pool)
	return out
}
