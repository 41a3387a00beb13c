// Package ingest imports study documents from disk into the database.
// Text and Markdown files are stored whole as a single chunk; anything
// else is skipped with a warning so a mixed notes directory imports
// cleanly.
package ingest

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/abhisek/studypal/internal/store"
)

// Result summarizes one import run.
type Result struct {
	Documents int
	Chunks    int
	Skipped   []string
}

// Scan imports every supported file under path (a file or a directory)
// tagged with the given subject. Re-importing the same path is a no-op
// for the document row, so Scan can run repeatedly over a growing notes
// directory. Unreadable or unsupported files are skipped, not fatal.
func Scan(ctx context.Context, st *store.Store, path, subject string) (Result, error) {
	var res Result

	info, err := os.Stat(path)
	if err != nil {
		return res, fmt.Errorf("stat %s: %w", path, err)
	}

	if !info.IsDir() {
		if err := importFile(ctx, st, path, subject, &res); err != nil {
			return res, err
		}
		return res, nil
	}

	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: skipping %s: %v\n", p, err)
			return nil
		}
		if d.IsDir() {
			return nil
		}
		return importFile(ctx, st, p, subject, &res)
	})
	if err != nil {
		return res, fmt.Errorf("walk %s: %w", path, err)
	}
	return res, nil
}

func importFile(ctx context.Context, st *store.Store, path, subject string, res *Result) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md":
	case ".pdf":
		fmt.Fprintf(os.Stderr, "warning: skipping %s: PDF import is not supported, convert to text first\n", path)
		res.Skipped = append(res.Skipped, path)
		return nil
	default:
		res.Skipped = append(res.Skipped, path)
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: skipping %s: %v\n", path, err)
		res.Skipped = append(res.Skipped, path)
		return nil
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		res.Skipped = append(res.Skipped, path)
		return nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	docID, err := st.InsertDocument(ctx, abs, filepath.Base(path), subject)
	if err != nil {
		return fmt.Errorf("import %s: %w", path, err)
	}

	// InsertDocument is idempotent on path. Only chunk documents we have
	// not chunked before, so re-scans do not duplicate content.
	n, err := st.CountChunks(ctx, docID)
	if err != nil {
		return fmt.Errorf("import %s: %w", path, err)
	}
	res.Documents++
	if n > 0 {
		return nil
	}

	if _, err := st.InsertChunk(ctx, docID, 1, 1, text); err != nil {
		return fmt.Errorf("import %s: %w", path, err)
	}
	res.Chunks++
	return nil
}
