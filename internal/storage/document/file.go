// Package document reads and rewrites the catalog page on disk.
package document

import (
	"context"
	"fmt"
	"os"

	"catalog_sync/internal/storage/jsonfile"
)

type File struct {
	path string
}

func New(path string) *File { return &File{path: path} }

func (f *File) Path() string { return f.path }

func (f *File) Read(_ context.Context) (string, error) {
	b, err := os.ReadFile(f.path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", f.path, err)
	}
	return string(b), nil
}

// Write replaces the page atomically.
func (f *File) Write(_ context.Context, text string) error {
	return jsonfile.WriteFile(f.path, []byte(text))
}
