package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/yepeleya/projet-parrainage-aeistc/internal/ir"
)

// RenderTable writes pairings as an aligned text table, one line per
// mentor. Secondary mentors repeat the pairing number with a "+" marker.
func RenderTable(w io.Writer, pairings []ir.Pairing) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "N°\tPARRAIN\tEMAIL PARRAIN\tFILLEUL\tEMAIL FILLEUL")
	for _, p := range pairings {
		for i, m := range p.Mentors {
			index := fmt.Sprintf("%d", p.Index)
			if i > 0 {
				index += "+"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", index, m.FullName, m.Email, p.Mentee.FullName, p.Mentee.Email)
		}
	}
	return tw.Flush()
}
