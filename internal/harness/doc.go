// Package harness runs pairing scenarios as executable contract tests.
//
// A scenario lists raw mentor and mentee names exactly as they would
// appear in an uploaded list. The harness derives both rosters, runs the
// engine against an in-memory store, reads the session back and evaluates
// the scenario's assertions against the outcome.
//
// # Scenario Format
//
//	name: regime_a_surplus
//	description: "Three mentors for two mentees"
//	program: EAIN
//	mentors: ["KOUASSI Jean", "Traoré Awa", "Bamba Yann"]
//	mentees: ["Koné Marie", "Yao Chloé"]
//	seed: 42              # optional; without it pools keep list order
//	assertions:
//	  - type: regime
//	    regime: A
//	  - type: paired
//	    mentee: "Kone Marie"
//	    mentors: ["KOUASSI Jean", "Traore Awa"]
//
// # Assertion Types
//
//   - regime: the session uses the given regime
//   - pairing_count: exactly count pairings were produced
//   - double_mentored: exactly count mentees have two mentors
//   - load_range: every assigned mentor has between min and max mentees
//   - unassigned_mentors: exactly count mentors are in no pairing
//   - rejected: exactly count list rows were rejected
//   - paired: a mentee has exactly the given mentors, primary first
//   - email: the participant with the given name has the given address
//   - well_formed: the pairing set satisfies the structural rules of its regime
//   - error: generation fails with a message containing the given text
//
// # Deterministic Testing
//
// Every run uses a fixed session id, testutil.DeterministicClock and
// either testutil.IdentitySource (no seed) or a seeded PCG source, so a
// scenario always produces the same session. Unseeded scenarios are used
// for golden snapshots of the pairing table.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/regime_b.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, msg := range result.Errors {
//	        log.Println(msg)
//	    }
//	}
package harness
