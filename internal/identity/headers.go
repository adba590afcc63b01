package identity

import "strings"

// headerRows are column titles found at the top of uploaded lists.
var headerRows = map[string]struct{}{
	"NOM & PRENOM":    {},
	"NOM ET PRENOM":   {},
	"NOM PRENOM":      {},
	"NOMS ET PRENOMS": {},
	"NOMS & PRENOMS":  {},
	"NOM":             {},
	"PRENOM":          {},
	"PRENOMS":         {},
	"PARRAIN":         {},
	"FILLEUL":         {},
	"LISTE":           {},
	"NAME":            {},
	"NAMES":           {},
}

// IsHeader reports whether a cell is a column header rather than a name.
// The comparison is made on the cleaned, upper-cased text.
func IsHeader(text string) bool {
	_, ok := headerRows[strings.ToUpper(Clean(text))]
	return ok
}
