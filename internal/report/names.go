package report

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/yepeleya/projet-parrainage-aeistc/internal/identity"
	"github.com/yepeleya/projet-parrainage-aeistc/internal/ir"
)

const (
	minuteLayout = "2006-01-02_15_04"
	secondLayout = "2006-01-02_15_04_05"
	dateLayout   = "02/01/2006"
)

var unsafeFileChars = regexp.MustCompile(`[<>:"/\\|?*\s]+`)

// sanitize makes a program name safe for use inside a file name.
func sanitize(s string) string {
	s = unsafeFileChars.ReplaceAllString(identity.Clean(s), "_")
	if s == "" {
		return "GEN"
	}
	return s
}

// extension returns the file extension of a report kind.
func extension(kind ir.ReportKind) string {
	if kind == ir.ReportPDF {
		return ".pdf"
	}
	return ".xlsx"
}

// FileName returns the name of the file of the given kind for a session.
//
//	FileName(ir.ReportMentors, "EAIN", t) // "PARRAINS_FINAUX_EAIN_2025-09-15_10_30.xlsx"
func FileName(kind ir.ReportKind, program string, t time.Time) string {
	prog := sanitize(program)
	t = t.UTC()
	switch kind {
	case ir.ReportMentors:
		return fmt.Sprintf("PARRAINS_FINAUX_%s_%s.xlsx", prog, t.Format(minuteLayout))
	case ir.ReportMentees:
		return fmt.Sprintf("FILLEULS_FINAUX_%s_%s.xlsx", prog, t.Format(minuteLayout))
	case ir.ReportAttributions:
		return fmt.Sprintf("ATTRIBUTIONS_FINALES_%s_%s.xlsx", prog, t.Format(minuteLayout))
	default:
		return fmt.Sprintf("ATTRIBUTIONS_%s_%s.pdf", prog, t.Format(secondLayout))
	}
}

// ParseKind validates a report kind name.
func ParseKind(s string) (ir.ReportKind, error) {
	for _, k := range ir.ReportKinds {
		if string(k) == strings.ToLower(s) {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidKind, s)
}

// frenchDate formats t as dd/mm/yyyy.
func frenchDate(t time.Time) string {
	return t.UTC().Format(dateLayout)
}
