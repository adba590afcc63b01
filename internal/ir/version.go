package ir

// Version constants.
const (
	// DigestVersion identifies the session digest encoding.
	DigestVersion = "1"

	// Version is the parrainage tool version.
	Version = "0.1.0"
)
