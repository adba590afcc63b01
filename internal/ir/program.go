package ir

import "strings"

// FallbackSlug is used in addresses when a program has no mapped code.
const FallbackSlug = "gen"

// Program is one academic program ("filière").
type Program struct {
	Code     string `json:"code" yaml:"code"`                               // Short slug used in addresses, e.g. "eain"
	Name     string `json:"name" yaml:"name"`                               // Display name, e.g. "EAIN"
	FullName string `json:"full_name,omitempty" yaml:"full_name,omitempty"` // Human readable title
}

// DefaultPrograms is the program list of the institute.
var DefaultPrograms = []Program{
	{Code: "eain", Name: "EAIN", FullName: "École des Arts et Images Numérique"},
	{Code: "ej", Name: "EJ", FullName: "École de Journalisme"},
	{Code: "epa", Name: "EPA", FullName: "École Production Audiovisuelle"},
	{Code: "epm", Name: "EPM", FullName: "École Publicité Marketing"},
	{Code: "etta", Name: "ETTA", FullName: "École de Télécommunication"},
}

// ProgramTable is an immutable lookup of programs by display name.
// Names are matched case-insensitively.
type ProgramTable struct {
	programs []Program
	byName   map[string]Program
}

// NewProgramTable builds a table from the given programs. Later entries
// with a duplicate name are ignored.
func NewProgramTable(programs []Program) ProgramTable {
	t := ProgramTable{
		programs: make([]Program, 0, len(programs)),
		byName:   make(map[string]Program, len(programs)),
	}
	for _, p := range programs {
		key := programKey(p.Name)
		if _, dup := t.byName[key]; dup {
			continue
		}
		t.byName[key] = p
		t.programs = append(t.programs, p)
	}
	return t
}

// Lookup returns the program with the given display name.
func (t ProgramTable) Lookup(name string) (Program, bool) {
	p, ok := t.byName[programKey(name)]
	return p, ok
}

// Canonical returns the display name under which a program is recorded:
// the table's own spelling when the program is known, the upper-cased
// name otherwise.
func (t ProgramTable) Canonical(name string) string {
	if p, ok := t.Lookup(name); ok {
		return p.Name
	}
	return programKey(name)
}

// Slug returns the address code of a program, or FallbackSlug when the
// name is unknown.
func (t ProgramTable) Slug(name string) string {
	if p, ok := t.Lookup(name); ok && p.Code != "" {
		return p.Code
	}
	return FallbackSlug
}

// Programs returns a copy of the programs in declaration order.
func (t ProgramTable) Programs() []Program {
	out := make([]Program, len(t.programs))
	copy(out, t.programs)
	return out
}

func programKey(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}
