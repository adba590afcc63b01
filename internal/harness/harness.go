package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/yepeleya/projet-parrainage-aeistc/internal/engine"
	"github.com/yepeleya/projet-parrainage-aeistc/internal/identity"
	"github.com/yepeleya/projet-parrainage-aeistc/internal/ir"
	"github.com/yepeleya/projet-parrainage-aeistc/internal/pairing"
	"github.com/yepeleya/projet-parrainage-aeistc/internal/roster"
	"github.com/yepeleya/projet-parrainage-aeistc/internal/store"
	"github.com/yepeleya/projet-parrainage-aeistc/internal/testutil"
)

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall success: every assertion held.
	Pass bool `json:"pass"`

	// Errors contains assertion failure messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// RunError is the generation failure, if any.
	RunError string `json:"run_error,omitempty"`

	// Rejected counts list rows that did not become participants.
	Rejected int `json:"rejected"`

	// Session is the session as read back from the store. Nil when
	// generation failed.
	Session *ir.Session `json:"session,omitempty"`

	// Summary describes the pairing set of Session.
	Summary pairing.Summary `json:"summary"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// DefaultDeriver returns the deriver used by Run: the institute's programs
// and identity.DefaultDomain.
func DefaultDeriver() *identity.Deriver {
	return identity.NewDeriver(ir.NewProgramTable(ir.DefaultPrograms), identity.DefaultDomain)
}

// Run executes a scenario with DefaultDeriver.
func Run(scenario *Scenario) (*Result, error) {
	return RunWith(scenario, DefaultDeriver())
}

// RunWith executes a scenario, deriving participants with d.
//
// Each scenario runs in a fresh in-memory database for isolation.
//
// Execution flow:
//  1. Build both rosters from the raw rows
//  2. Generate the session with deterministic helpers
//  3. Read the session back and check it matches what was generated
//  4. Evaluate the assertions
//
// The returned error is reserved for harness failures. A failed
// generation is reported in Result.RunError and fails the scenario
// unless it asserts an error.
func RunWith(scenario *Scenario, d *identity.Deriver) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	ctx := context.Background()
	result := NewResult()

	var src pairing.Source = testutil.IdentitySource{}
	if scenario.Seed != nil {
		src = pairing.NewSeededSource(*scenario.Seed)
	}

	eng := engine.New(
		engine.WithSessionIDs(testutil.NewFixedSessionGenerator(scenario.SessionID)),
		engine.WithClock(testutil.NewDeterministicClock()),
		engine.WithSource(src),
		engine.WithRecorder(st),
		engine.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)

	if err := generate(ctx, eng, st, scenario, d, result); err != nil {
		result.RunError = err.Error()
	}

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}
	if result.RunError != "" && !scenario.expectsError() {
		result.AddError("generation failed: " + result.RunError)
	}

	return result, nil
}

// generate fills result with the session of a scenario.
func generate(ctx context.Context, eng *engine.Engine, st *store.Store, scenario *Scenario, d *identity.Deriver, result *Result) error {
	mentors, mentorErr := roster.Build(scenario.Mentors, d, scenario.Program)
	mentees, menteeErr := roster.Build(scenario.Mentees, d, scenario.Program)

	// Empty rosters are left to the engine, which reports them with
	// the same errors as a real run.
	if mentorErr != nil && !errors.Is(mentorErr, roster.ErrNoParticipants) {
		return fmt.Errorf("mentors: %w", mentorErr)
	}
	if menteeErr != nil && !errors.Is(menteeErr, roster.ErrNoParticipants) {
		return fmt.Errorf("mentees: %w", menteeErr)
	}
	result.Rejected = len(mentors.Rejected) + len(mentees.Rejected)

	res, err := eng.Generate(ctx, engine.Request{
		Program: scenario.Program,
		Mentors: mentors.Participants,
		Mentees: mentees.Participants,
	})
	if err != nil {
		return err
	}
	if len(res.Warnings) > 0 {
		w := res.Warnings[0]
		return fmt.Errorf("%s: %s", w.Stage, w.Message)
	}

	stored, err := st.ReadSession(ctx, res.Session.SessionID)
	if err != nil {
		return fmt.Errorf("read back: %w", err)
	}
	if stored.Digest != res.Session.Digest {
		return fmt.Errorf("read back: digest %s, generated %s", stored.Digest, res.Session.Digest)
	}

	result.Session = &stored
	result.Summary = pairing.Summarize(stored.Mentors, stored.Mentees, stored.Pairings)
	return nil
}
