// Package engine orchestrates a pairing run.
//
// A run takes two imported pools and a program name and goes through:
//  1. Validation of both pools (non-empty, unique IDs, addresses present)
//  2. Allocation of the run context (session id, program, creation time)
//  3. Independent uniform shuffles of both pools
//  4. Deterministic assignment (see package pairing)
//  5. Digest of the pairing set
//  6. Concurrent recording and report emission
//
// Steps 1 to 5 either succeed or return an error. Step 6 never fails the
// run: recorder and emitter failures are returned as warnings next to the
// computed session, which stays the primary output.
//
// Randomness, time and ids are injected (WithSource, WithClock,
// WithSessionIDs), so tests can replay a run exactly.
package engine
