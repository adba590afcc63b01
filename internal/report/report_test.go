package report

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/yepeleya/projet-parrainage-aeistc/internal/ir"
)

func person(id int, name, local string) ir.Participant {
	return ir.Participant{ID: id, FullName: name, Email: local + "@edu.eain.istc.ci"}
}

// testSession has three mentors and two mentees; the first pairing has a
// secondary mentor.
func testSession() ir.Session {
	alice := person(1, "Alice Dupont", "alice.dupont")
	bruno := person(2, "Bruno Kone", "bruno.kone")
	chloe := person(3, "Chloe Yao", "chloe.yao")
	xavier := person(1, "Xavier Traore", "xavier.traore")
	yann := person(2, "Yann Bamba", "yann.bamba")

	sess := ir.Session{
		RunContext: ir.RunContext{
			SessionID: "session-42",
			Program:   "EAIN",
			CreatedAt: time.Date(2025, 9, 15, 10, 30, 45, 0, time.UTC),
		},
		Regime:  ir.RegimeByMentee,
		Mentors: []ir.Participant{alice, bruno, chloe},
		Mentees: []ir.Participant{xavier, yann},
		Pairings: []ir.Pairing{
			{Index: 1, Mentee: yann, Mentors: []ir.Participant{chloe, alice}, Program: "EAIN"},
			{Index: 2, Mentee: xavier, Mentors: []ir.Participant{bruno}, Program: "EAIN"},
		},
	}
	sess.Digest = ir.MustSessionDigest(sess)
	return sess
}

func readSheet(t *testing.T, path string) (string, [][]string) {
	t.Helper()
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	require.Len(t, sheets, 1)
	rows, err := f.GetRows(sheets[0])
	require.NoError(t, err)
	return sheets[0], rows
}

func TestFileName(t *testing.T) {
	at := time.Date(2025, 9, 15, 10, 30, 45, 0, time.UTC)

	assert.Equal(t, "PARRAINS_FINAUX_EAIN_2025-09-15_10_30.xlsx", FileName(ir.ReportMentors, "EAIN", at))
	assert.Equal(t, "FILLEULS_FINAUX_EJ_2025-09-15_10_30.xlsx", FileName(ir.ReportMentees, "EJ", at))
	assert.Equal(t, "ATTRIBUTIONS_FINALES_EPA_2025-09-15_10_30.xlsx", FileName(ir.ReportAttributions, "EPA", at))
	assert.Equal(t, "ATTRIBUTIONS_EPM_2025-09-15_10_30_45.pdf", FileName(ir.ReportPDF, "EPM", at))

	assert.Equal(t, "PARRAINS_FINAUX_Genie_Civil_2025-09-15_10_30.xlsx", FileName(ir.ReportMentors, "Génie Civil", at))
	assert.Equal(t, "PARRAINS_FINAUX_a_b_2025-09-15_10_30.xlsx", FileName(ir.ReportMentors, "a/b", at))
	assert.Equal(t, "PARRAINS_FINAUX_GEN_2025-09-15_10_30.xlsx", FileName(ir.ReportMentors, "", at))
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("PDFS")
	require.NoError(t, err)
	assert.Equal(t, ir.ReportPDF, k)

	_, err = ParseKind("uploads")
	assert.ErrorIs(t, err, ErrInvalidKind)
}

func TestEmit_WritesAllFiles(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, nil)

	files, err := w.Emit(context.Background(), testSession())
	require.NoError(t, err)
	require.Len(t, files, 4)

	for i, f := range files {
		assert.Equal(t, ir.ReportKinds[i], f.Kind)
		assert.Equal(t, filepath.Join(dir, string(f.Kind), f.Name), f.Path)
		assert.FileExists(t, f.Path)
	}
	assert.Equal(t, 3, files[0].Count)
	assert.Equal(t, 2, files[1].Count)
	assert.Equal(t, 3, files[2].Count)
	assert.Equal(t, 3, files[3].Count)
}

func TestEmit_MentorWorkbook(t *testing.T) {
	files, err := NewWriter(t.TempDir(), nil).Emit(context.Background(), testSession())
	require.NoError(t, err)

	sheet, rows := readSheet(t, files[0].Path)
	assert.Equal(t, "Parrains", sheet)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"N°", "Nom Complet", "Email", "Filière", "Date Attribution", "Session ID"}, rows[0])
	assert.Equal(t, []string{"1", "Alice Dupont", "alice.dupont@edu.eain.istc.ci", "EAIN", "15/09/2025", "session-42"}, rows[1])
	assert.Equal(t, "Chloe Yao", rows[3][1])
}

func TestEmit_AttributionWorkbook(t *testing.T) {
	files, err := NewWriter(t.TempDir(), nil).Emit(context.Background(), testSession())
	require.NoError(t, err)

	sheet, rows := readSheet(t, files[2].Path)
	assert.Equal(t, "Attributions", sheet)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"N°", "Nom Parrain", "Email Parrain", "Nom Filleul", "Email Filleul", "Filière", "Date Attribution", "Session ID"}, rows[0])
	assert.Equal(t, []string{"1", "Chloe Yao", "chloe.yao@edu.eain.istc.ci", "Yann Bamba", "yann.bamba@edu.eain.istc.ci", "EAIN", "15/09/2025", "session-42"}, rows[1])
	assert.Equal(t, "Alice Dupont", rows[2][1])
	assert.Equal(t, "Yann Bamba", rows[2][3])
	assert.Equal(t, "Bruno Kone", rows[3][1])
}

func TestEmit_PDF(t *testing.T) {
	files, err := NewWriter(t.TempDir(), nil).Emit(context.Background(), testSession())
	require.NoError(t, err)

	data, err := os.ReadFile(files[3].Path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestEmit_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	files, err := NewWriter(t.TempDir(), nil).Emit(ctx, testSession())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, files)
}

func TestEmit_UnwritableDir(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "out")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	_, err := NewWriter(blocker, nil).Emit(context.Background(), testSession())
	assert.Error(t, err)
}

func TestSortedEdges(t *testing.T) {
	edges := sortedEdges(testSession())
	got := make([]string, len(edges))
	for i, e := range edges {
		got[i] = e.Mentor.FullName + "/" + e.Mentee.FullName
	}
	assert.Equal(t, []string{
		"Alice Dupont/Yann Bamba",
		"Bruno Kone/Xavier Traore",
		"Chloe Yao/Yann Bamba",
	}, got)

	total, mentors, mentees := edgeCounts(edges)
	assert.Equal(t, 3, total)
	assert.Equal(t, 3, mentors)
	assert.Equal(t, 2, mentees)
}

func TestListAndRemove(t *testing.T) {
	dir := t.TempDir()
	files, err := NewWriter(dir, nil).Emit(context.Background(), testSession())
	require.NoError(t, err)

	// Foreign files are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pdfs", "notes.txt"), []byte("x"), 0o644))

	all, err := List(dir, "")
	require.NoError(t, err)
	require.Len(t, all, 4)
	for i, f := range all {
		assert.Equal(t, files[i].Name, f.Name)
		assert.Positive(t, f.Size)
	}

	pdfs, err := List(dir, ir.ReportPDF)
	require.NoError(t, err)
	require.Len(t, pdfs, 1)

	require.NoError(t, Remove(dir, ir.ReportPDF, pdfs[0].Name))
	pdfs, err = List(dir, ir.ReportPDF)
	require.NoError(t, err)
	assert.Empty(t, pdfs)

	err = Remove(dir, ir.ReportPDF, files[3].Name)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList_MissingDir(t *testing.T) {
	files, err := List(filepath.Join(t.TempDir(), "absent"), "")
	require.NoError(t, err)
	assert.NotNil(t, files)
	assert.Empty(t, files)

	_, err = List(t.TempDir(), "uploads")
	assert.ErrorIs(t, err, ErrInvalidKind)
}

func TestRemove_RejectsUnsafeNames(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"",
		"../secret.xlsx",
		"sub/file.xlsx",
		`sub\file.xlsx`,
		".hidden.xlsx",
		"file.pdf",
	} {
		err := Remove(dir, ir.ReportMentors, name)
		assert.ErrorIs(t, err, ErrInvalidName, "name %q", name)
	}

	assert.ErrorIs(t, Remove(dir, "secrets", "a.xlsx"), ErrInvalidKind)
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderTable(&buf, testSession().Pairings))

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "pairings_table", buf.Bytes())
}
