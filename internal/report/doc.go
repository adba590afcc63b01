// Package report writes the files handed out after a pairing run: three
// spreadsheets (mentors, mentees, attributions) and a printable PDF of the
// attributions. It also lists and removes previously generated files.
//
// Files are grouped in one subdirectory per ir.ReportKind under the output
// directory. File names carry the program and the session timestamp.
package report
