package roster

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/yepeleya/projet-parrainage-aeistc/internal/identity"
	"github.com/yepeleya/projet-parrainage-aeistc/internal/ir"
)

func newTestDeriver() *identity.Deriver {
	return identity.NewDeriver(ir.NewProgramTable(ir.DefaultPrograms), "")
}

// writeWorkbook saves rows into column A of a fresh workbook.
func writeWorkbook(t *testing.T, rows []string) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	for i, v := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue("Sheet1", cell, v))
	}
	require.NoError(t, f.SetCellValue("Sheet1", "B1", "ignored column"))

	path := filepath.Join(t.TempDir(), "liste.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestBuild_NumbersRowsAndRejects(t *testing.T) {
	rows := []string{
		"NOM & PRENOM",
		"Jean Martin",
		"",
		"Kouassi",
		"   ",
		"Adjoua Bédié",
	}

	r, err := Build(rows, newTestDeriver(), "EAIN")
	require.NoError(t, err)

	require.Len(t, r.Participants, 2)
	assert.Equal(t, ir.Participant{ID: 1, FullName: "Jean Martin", Email: "jean.martin@edu.eain.istc.ci"}, r.Participants[0])
	assert.Equal(t, 3, r.Participants[1].ID, "rejected rows still consume a position")
	assert.Equal(t, "adjoua.bedie@edu.eain.istc.ci", r.Participants[1].Email)

	assert.Equal(t, 4, r.Total)
	assert.Equal(t, 2, r.Filtered())
	assert.Equal(t, []Rejection{
		{Row: 1, Text: "NOM & PRENOM", Reason: identity.ReasonHeader},
		{Row: 4, Text: "Kouassi", Reason: identity.ReasonIncompleteName},
	}, r.Rejected)
}

func TestBuild_NothingValid(t *testing.T) {
	r, err := Build([]string{"PARRAIN", "Solo"}, newTestDeriver(), "EJ")
	require.ErrorIs(t, err, ErrNoParticipants)
	require.NotNil(t, r)
	assert.Len(t, r.Rejected, 2)
	assert.Empty(t, r.Participants)
}

func TestBuild_Empty(t *testing.T) {
	r, err := Build(nil, newTestDeriver(), "EJ")
	require.ErrorIs(t, err, ErrNoParticipants)
	assert.Equal(t, 0, r.Total)
}

func TestReadRows_XLSX(t *testing.T) {
	path := writeWorkbook(t, []string{"NOMS ET PRENOMS", "Awa Traoré", "Yao Koffi"})

	rows, err := ReadRows(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"NOMS ET PRENOMS", "Awa Traoré", "Yao Koffi"}, rows)

	r, err := Load(path, newTestDeriver(), "EPM")
	require.NoError(t, err)
	require.Len(t, r.Participants, 2)
	assert.Equal(t, "awa.traore@edu.epm.istc.ci", r.Participants[0].Email)
	assert.Equal(t, "yao.koffi@edu.epm.istc.ci", r.Participants[1].Email)
}

func TestReadRows_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "liste.csv")
	content := "Nom,Classe\nJean Martin,L1\n\"Kone, Ali\",L2\nMarie Claire\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	rows, err := ReadRows(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Nom", "Jean Martin", "Kone, Ali", "Marie Claire"}, rows)
}

func TestReadRows_Text(t *testing.T) {
	path := filepath.Join(t.TempDir(), "liste.TXT")
	require.NoError(t, os.WriteFile(path, []byte("Jean Martin\r\n\r\nAwa Traore\n"), 0o644))

	rows, err := ReadRows(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Jean Martin", "", "Awa Traore"}, rows)
}

func TestReadRows_Unsupported(t *testing.T) {
	_, err := ReadRows(filepath.Join(t.TempDir(), "liste.pdf"))
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestReadRows_Missing(t *testing.T) {
	_, err := ReadRows(filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadXLSX_Invalid(t *testing.T) {
	_, err := ReadXLSX(strings.NewReader("not a workbook"))
	assert.Error(t, err)
}
