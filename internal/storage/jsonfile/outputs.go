package jsonfile

import (
	"context"
	"fmt"

	"catalog_sync/internal/domain"
)

// Outputs writes named side outputs to their configured files. A name mapped
// to an empty path is not written.
type Outputs struct {
	paths map[string]string
}

func NewOutputs(paths map[string]string) *Outputs {
	cp := make(map[string]string, len(paths))
	for k, v := range paths {
		cp[k] = v
	}
	return &Outputs{paths: cp}
}

func (o *Outputs) Write(_ context.Context, name string, v any) error {
	path, ok := o.paths[name]
	if !ok {
		return fmt.Errorf("no path configured for output %q", name)
	}
	if path == "" {
		return nil
	}
	return WriteJSON(path, v)
}

// CuratedFile is the CuratedSource backed by the specified products file.
type CuratedFile struct {
	path string
}

func NewCuratedFile(path string) *CuratedFile { return &CuratedFile{path: path} }

func (c *CuratedFile) Sections(_ context.Context) (map[string][]domain.CuratedEntry, error) {
	return LoadCurated(c.path), nil
}
