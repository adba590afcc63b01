package harness

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yepeleya/projet-parrainage-aeistc/internal/ir"
)

// Scenario defines a pairing scenario.
type Scenario struct {
	// Name uniquely identifies this scenario. Also names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Program is the display name of the program, e.g. "EAIN".
	Program string `yaml:"program"`

	// Mentors and Mentees are raw list rows, headers and noise included.
	Mentors []string `yaml:"mentors"`
	Mentees []string `yaml:"mentees"`

	// Seed selects a reproducible shuffle. Without a seed both pools keep
	// their list order.
	Seed *uint64 `yaml:"seed,omitempty"`

	// SessionID is an optional fixed session id.
	// If empty, defaults to testutil.DefaultSessionID.
	SessionID string `yaml:"session_id,omitempty"`

	// Assertions validate the outcome.
	Assertions []Assertion `yaml:"assertions"`
}

// Assertion validates one property of a run.
type Assertion struct {
	// Type selects the assertion, see the Assert* constants.
	Type string `yaml:"type"`

	// Regime is the expected regime (used by regime).
	Regime string `yaml:"regime,omitempty"`

	// Count is the expected number (used by pairing_count,
	// double_mentored, unassigned_mentors, rejected).
	Count int `yaml:"count,omitempty"`

	// Min and Max bound mentor loads (used by load_range).
	Min int `yaml:"min,omitempty"`
	Max int `yaml:"max,omitempty"`

	// Mentee and Mentors are cleaned full names (used by paired).
	Mentee  string   `yaml:"mentee,omitempty"`
	Mentors []string `yaml:"mentors,omitempty"`

	// Name and Email identify a participant (used by email).
	Name  string `yaml:"name,omitempty"`
	Email string `yaml:"email,omitempty"`

	// Contains is a substring of the expected failure (used by error).
	Contains string `yaml:"contains,omitempty"`
}

// Assertion type constants.
const (
	AssertRegime            = "regime"
	AssertPairingCount      = "pairing_count"
	AssertDoubleMentored    = "double_mentored"
	AssertLoadRange         = "load_range"
	AssertUnassignedMentors = "unassigned_mentors"
	AssertRejected          = "rejected"
	AssertPaired            = "paired"
	AssertEmail             = "email"
	AssertWellFormed        = "well_formed"
	AssertError             = "error"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "assertion:" vs "assertions:".
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse YAML: empty document")
		}
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
//
// Empty lists are allowed: they exercise the empty pool failures.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Program == "" {
		return fmt.Errorf("program is required")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i := range s.Assertions {
		if err := validateAssertion(i, &s.Assertions[i]); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertRegime:
		if a.Regime != string(ir.RegimeByMentee) && a.Regime != string(ir.RegimeByMentor) {
			return fmt.Errorf("assertions[%d]: regime must be %q or %q", index, ir.RegimeByMentee, ir.RegimeByMentor)
		}
	case AssertPairingCount, AssertDoubleMentored, AssertUnassignedMentors, AssertRejected:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for %s", index, a.Type)
		}
	case AssertLoadRange:
		if a.Min < 0 || a.Max < a.Min {
			return fmt.Errorf("assertions[%d]: load_range requires 0 <= min <= max", index)
		}
	case AssertPaired:
		if a.Mentee == "" {
			return fmt.Errorf("assertions[%d]: mentee is required for paired", index)
		}
		if len(a.Mentors) == 0 || len(a.Mentors) > 2 {
			return fmt.Errorf("assertions[%d]: paired requires one or two mentors", index)
		}
	case AssertEmail:
		if a.Name == "" || a.Email == "" {
			return fmt.Errorf("assertions[%d]: name and email are required for email", index)
		}
	case AssertWellFormed:
	case AssertError:
		if a.Contains == "" {
			return fmt.Errorf("assertions[%d]: contains is required for error", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}

// expectsError reports whether the scenario asserts a failed run.
func (s *Scenario) expectsError() bool {
	for _, a := range s.Assertions {
		if a.Type == AssertError {
			return true
		}
	}
	return false
}
