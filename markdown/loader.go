package markdown

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/fwojciec/eldin"
	"golang.org/x/sync/errgroup"
)

// parseConcurrency bounds how many corpus files are read and parsed at
// once during an index rebuild.
const parseConcurrency = 8

// LoadDir parses every .md file in dir and stores the results through
// docs, in filename order. Files are parsed concurrently; inserts are
// serial so the index rebuild stays deterministic. Returns the number of
// documents stored.
func LoadDir(ctx context.Context, dir string, docs eldin.DocumentService) (int, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.md"))
	if err != nil {
		return 0, fmt.Errorf("failed to list corpus files: %w", err)
	}
	sort.Strings(paths)

	parsed := make([]*eldin.Document, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parseConcurrency)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			raw, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			doc, err := Parse(filepath.Base(path), string(raw))
			if err != nil {
				return err
			}
			parsed[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	for _, doc := range parsed {
		if err := docs.CreateDocument(ctx, doc); err != nil {
			return 0, err
		}
	}
	return len(parsed), nil
}
