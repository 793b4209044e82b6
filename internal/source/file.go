package source

import (
	"context"
	"fmt"
	"os"

	"github.com/wonny/scorecard/internal/contracts"
)

// FileSource reads a JSON or YAML dataset from disk
type FileSource struct {
	path string
}

// NewFileSource creates a file source; the format follows the extension
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Name returns the source description
func (s *FileSource) Name() string {
	return "file:" + s.path
}

// Load reads and decodes the file
func (s *FileSource) Load(ctx context.Context) (*contracts.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	format, err := FormatFromPath(s.path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	return Decode(f, format)
}
