// Package pairing implements the randomized mentor/mentee assignment.
//
// Randomness and assignment are deliberately split:
//
//   - Shuffle produces a uniformly random permutation (Fisher-Yates)
//   - Assign is deterministic for a given input order
//
// Callers shuffle both pools immediately before calling Assign, so every
// run is random while Assign stays testable with fixed inputs.
//
// ASSIGNMENT REGIMES:
//
// Regime A (mentors >= mentees): one pairing per mentee, in mentee order.
// Each mentee takes the next mentor; it also takes a second one while more
// mentors than mentees remain. Exactly mentors-mentees mentees receive two
// mentors, up to the cap of one extra per mentee. Mentors beyond twice the
// number of mentees stay unassigned.
//
// Regime B (mentees > mentors): one pairing per mentee, grouped by mentor.
// Each mentor takes ceil(remaining mentees / remaining mentors) mentees, so
// mentor loads differ by at most one.
//
// All functions are pure and safe for concurrent use on independent inputs.
package pairing
