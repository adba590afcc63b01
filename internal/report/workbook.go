package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/yepeleya/projet-parrainage-aeistc/internal/ir"
)

// column is a spreadsheet header and its display width.
type column struct {
	title string
	width float64
}

var participantColumns = []column{
	{"N°", 5},
	{"Nom Complet", 25},
	{"Email", 30},
	{"Filière", 10},
	{"Date Attribution", 15},
	{"Session ID", 40},
}

var attributionColumns = []column{
	{"N°", 5},
	{"Nom Parrain", 25},
	{"Email Parrain", 30},
	{"Nom Filleul", 25},
	{"Email Filleul", 30},
	{"Filière", 10},
	{"Date Attribution", 15},
	{"Session ID", 40},
}

// writeWorkbook saves a single-sheet workbook with a bold header row.
func writeWorkbook(path, sheet string, cols []column, rows [][]any) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, len(cols))
	for i, c := range cols {
		header[i] = c.title
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, name, name, c.width); err != nil {
			return fmt.Errorf("set width of %s: %w", name, err)
		}
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(cols), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func participantRows(sess ir.Session, pool []ir.Participant) [][]any {
	date := frenchDate(sess.CreatedAt)
	rows := make([][]any, len(pool))
	for i, p := range pool {
		rows[i] = []any{i + 1, p.FullName, p.Email, sess.Program, date, sess.SessionID}
	}
	return rows
}

func attributionRows(sess ir.Session) [][]any {
	date := frenchDate(sess.CreatedAt)
	edges := sess.Edges()
	rows := make([][]any, len(edges))
	for i, e := range edges {
		rows[i] = []any{
			i + 1,
			e.Mentor.FullName, orNA(e.Mentor.Email),
			e.Mentee.FullName, orNA(e.Mentee.Email),
			programOf(e, sess), date, sess.SessionID,
		}
	}
	return rows
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func programOf(e ir.Edge, sess ir.Session) string {
	if e.Program != "" {
		return e.Program
	}
	return sess.Program
}
