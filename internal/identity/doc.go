// Package identity turns free-text names from uploaded lists into
// participants with a normalized display name and an institutional email.
//
// Derivation is a pure function of the raw text, the program name and the
// Deriver's configuration (program table and institution domain). Rows that
// cannot produce a usable given name and family name, and rows that are
// spreadsheet column headers, are rejected and never become participants.
package identity
