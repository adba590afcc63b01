package report

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/yepeleya/projet-parrainage-aeistc/internal/ir"
)

// Writer emits the report files of a session under an output directory.
//
// Thread-safety: a Writer holds no mutable state; concurrent Emit calls
// for different sessions are safe.
type Writer struct {
	dir    string
	logger *slog.Logger
}

// NewWriter creates a Writer rooted at dir. A nil logger discards logs.
func NewWriter(dir string, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Writer{dir: dir, logger: logger}
}

// Dir returns the output directory.
func (w *Writer) Dir() string {
	return w.dir
}

// Name identifies the writer in run warnings.
func (w *Writer) Name() string {
	return "reports"
}

// Emit writes the four report files of a session concurrently and returns
// them in ir.ReportKinds order. On failure no partial list is returned;
// files already written are left in place.
func (w *Writer) Emit(ctx context.Context, sess ir.Session) ([]ir.ReportFile, error) {
	files := make([]ir.ReportFile, len(ir.ReportKinds))
	g, ctx := errgroup.WithContext(ctx)

	for i, kind := range ir.ReportKinds {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f, err := w.emitKind(kind, sess)
			if err != nil {
				return fmt.Errorf("emit %s: %w", kind, err)
			}
			w.logger.Debug("report written", "kind", kind, "file", f.Name, "rows", f.Count)
			files[i] = f
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}

func (w *Writer) emitKind(kind ir.ReportKind, sess ir.Session) (ir.ReportFile, error) {
	dir := filepath.Join(w.dir, string(kind))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return ir.ReportFile{}, fmt.Errorf("create %s: %w", dir, err)
	}

	name := FileName(kind, sess.Program, sess.CreatedAt)
	path := filepath.Join(dir, name)

	var (
		count int
		err   error
	)
	switch kind {
	case ir.ReportMentors:
		count = len(sess.Mentors)
		err = writeWorkbook(path, "Parrains", participantColumns, participantRows(sess, sess.Mentors))
	case ir.ReportMentees:
		count = len(sess.Mentees)
		err = writeWorkbook(path, "Filleuls", participantColumns, participantRows(sess, sess.Mentees))
	case ir.ReportAttributions:
		rows := attributionRows(sess)
		count = len(rows)
		err = writeWorkbook(path, "Attributions", attributionColumns, rows)
	case ir.ReportPDF:
		count, err = writePDF(path, sess)
	default:
		err = fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}
	if err != nil {
		return ir.ReportFile{}, err
	}

	return ir.ReportFile{Kind: kind, Name: name, Path: path, Count: count}, nil
}
