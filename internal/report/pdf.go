package report

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/go-pdf/fpdf"

	"github.com/yepeleya/projet-parrainage-aeistc/internal/ir"
)

// Organization is printed in the PDF header and footer.
const Organization = "AEISTC"

// sortedEdges returns the edges of a session ordered by mentor name, then
// mentee name.
func sortedEdges(sess ir.Session) []ir.Edge {
	edges := sess.Edges()
	sort.SliceStable(edges, func(i, j int) bool {
		if edges[i].Mentor.FullName != edges[j].Mentor.FullName {
			return edges[i].Mentor.FullName < edges[j].Mentor.FullName
		}
		return edges[i].Mentee.FullName < edges[j].Mentee.FullName
	})
	return edges
}

// edgeCounts returns the number of edges and of distinct mentors and
// mentees appearing in them.
func edgeCounts(edges []ir.Edge) (attributions, mentors, mentees int) {
	m := map[int]struct{}{}
	f := map[int]struct{}{}
	for _, e := range edges {
		m[e.Mentor.ID] = struct{}{}
		f[e.Mentee.ID] = struct{}{}
	}
	return len(edges), len(m), len(f)
}

// writePDF renders the attribution list of a session as an A4 document.
func writePDF(path string, sess ir.Session) (int, error) {
	edges := sortedEdges(sess)
	total, mentors, mentees := edgeCounts(edges)

	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Attributions "+sess.Program, true)
	pdf.SetCreator(Organization, true)
	pdf.SetCreationDate(sess.CreatedAt)
	pdf.SetModificationDate(sess.CreatedAt)
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(102, 102, 102)
		pdf.CellFormat(0, 5, tr(fmt.Sprintf("Document généré automatiquement par le système de parrainage %s - page %d/{nb}", Organization, pdf.PageNo())), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFillColor(102, 126, 234)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 12, tr("Attributions de Parrainage - "+sess.Program), "", 1, "C", true, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 7, tr(fmt.Sprintf("Généré le %s | %s | Session %s", frenchDate(sess.CreatedAt), Organization, sess.SessionID)), "", 1, "C", true, 0, "")
	pdf.Ln(6)

	pdf.SetTextColor(51, 51, 51)
	stats := []struct {
		label string
		value int
	}{
		{"ATTRIBUTIONS", total},
		{"PARRAINS", mentors},
		{"FILLEULS", mentees},
	}
	pdf.SetFont("Helvetica", "B", 14)
	for _, st := range stats {
		pdf.CellFormat(63, 8, strconv.Itoa(st.value), "", 0, "C", false, 0, "")
	}
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 8)
	for _, st := range stats {
		pdf.CellFormat(63, 5, st.label, "", 0, "C", false, 0, "")
	}
	pdf.Ln(10)

	widths := []float64{10, 45, 45, 45, 45}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 240)
	for i, h := range []string{"N°", "Parrain", "Email parrain", "Filleul", "Email filleul"} {
		pdf.CellFormat(widths[i], 7, tr(h), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetFillColor(249, 249, 249)
	for i, e := range edges {
		fill := i%2 == 1
		cells := []string{
			strconv.Itoa(i + 1),
			e.Mentor.FullName,
			orMissing(e.Mentor.Email),
			e.Mentee.FullName,
			orMissing(e.Mentee.Email),
		}
		for j, c := range cells {
			pdf.CellFormat(widths[j], 6, tr(c), "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return 0, fmt.Errorf("write pdf: %w", err)
	}
	return total, nil
}

func orMissing(s string) string {
	if s == "" {
		return "Email non disponible"
	}
	return s
}
