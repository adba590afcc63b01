package report

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/yepeleya/projet-parrainage-aeistc/internal/ir"
)

var (
	// ErrInvalidKind is returned for an unknown report kind.
	ErrInvalidKind = errors.New("invalid report kind")

	// ErrInvalidName is returned for a file name that is not a plain
	// report file name.
	ErrInvalidName = errors.New("invalid report file name")

	// ErrNotFound is returned when a report file does not exist.
	ErrNotFound = errors.New("report file not found")
)

// FileInfo describes a generated file on disk.
type FileInfo struct {
	Kind    ir.ReportKind `json:"kind"`
	Name    string        `json:"name"`
	Size    int64         `json:"size"`
	ModTime time.Time     `json:"mod_time"`
}

// List returns the generated files of a kind, sorted by name. An empty
// kind lists every kind in ir.ReportKinds order. Missing directories
// contribute no files.
func List(dir string, kind ir.ReportKind) ([]FileInfo, error) {
	kinds := ir.ReportKinds
	if kind != "" {
		k, err := ParseKind(string(kind))
		if err != nil {
			return nil, err
		}
		kinds = []ir.ReportKind{k}
	}

	out := []FileInfo{}
	for _, k := range kinds {
		entries, err := os.ReadDir(filepath.Join(dir, string(k)))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", k, err)
		}

		var infos []FileInfo
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), extension(k)) {
				continue
			}
			fi, err := e.Info()
			if err != nil {
				return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
			}
			infos = append(infos, FileInfo{Kind: k, Name: e.Name(), Size: fi.Size(), ModTime: fi.ModTime()})
		}
		sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
		out = append(out, infos...)
	}
	return out, nil
}

// Path resolves a report file inside dir, rejecting names that would
// escape the kind directory.
func Path(dir string, kind ir.ReportKind, name string) (string, error) {
	k, err := ParseKind(string(kind))
	if err != nil {
		return "", err
	}
	if name == "" || name != filepath.Base(name) || strings.ContainsAny(name, `/\`) ||
		strings.HasPrefix(name, ".") || !strings.HasSuffix(name, extension(k)) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return filepath.Join(dir, string(k), name), nil
}

// Remove deletes one generated file.
func Remove(dir string, kind ir.ReportKind, name string) error {
	path, err := Path(dir, kind, name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s/%s", ErrNotFound, kind, name)
		}
		return fmt.Errorf("remove %s: %w", name, err)
	}
	return nil
}
