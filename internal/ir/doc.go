// Package ir provides the data model shared by every parrainage package.
//
// This package contains plain types and the canonical encoding used to
// fingerprint a session. All other internal packages import ir; ir imports
// nothing internal.
//
// Key design constraints:
//   - Participants are immutable once derived; pairings reference them by value
//   - A Participant always carries a derived email (rejected rows never become one)
//   - Edge is the flattened (mentor, mentee) row consumed by storage and reports
//   - All JSON tags use snake_case
package ir
