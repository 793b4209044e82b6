package source

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wonny/scorecard/internal/contracts"
)

// Format is a dataset encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat is returned for unsupported extensions or content types
var ErrUnknownFormat = errors.New("unknown dataset format")

// FormatFromPath detects the format from a file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// FormatFromContentType detects the format from a Content-Type header
func FormatFromContentType(contentType string) (Format, error) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, contentType)
	}

	switch {
	case mediaType == "application/json" || strings.HasSuffix(mediaType, "+json"):
		return FormatJSON, nil
	case strings.Contains(mediaType, "yaml"):
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, contentType)
	}
}

// Decode reads one dataset. Numeric fields keep their raw values;
// coercion happens in the pipeline.
func Decode(r io.Reader, format Format) (*contracts.Dataset, error) {
	var data contracts.Dataset

	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&data); err != nil {
			return nil, fmt.Errorf("decode json dataset: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&data); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("decode yaml dataset: empty document")
			}
			return nil, fmt.Errorf("decode yaml dataset: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}

	return &data, nil
}
