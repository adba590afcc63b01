// Package store provides SQLite-backed persistence for pairing sessions.
//
// A session is written in a single transaction across four tables:
//   - sessions: one row per run with its program, regime, counts and digest
//   - parrains / filleuls: the imported pools, keyed by (session_id, seq)
//   - attributions: one row per (mentor, mentee) edge
//
// Writes are idempotent on the session id. Reads rebuild the pairing set
// and re-verify the stored digest, so a tampered or truncated session is
// reported instead of silently returned.
//
// All list queries use an explicit ORDER BY so results are stable across
// runs.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity and cascading deletes
package store
