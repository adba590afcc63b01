package engine

import "time"

// Clock supplies the creation time of sessions.
//
// Session time is informational only: it is stored and printed in
// reports but never takes part in pairing or in the session digest.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

// Now returns the current UTC time truncated to the second.
func (SystemClock) Now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
