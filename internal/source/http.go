package source

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/wonny/scorecard/internal/contracts"
	"github.com/wonny/scorecard/pkg/httputil"
)

// maxBodyBytes caps a remote dataset download
const maxBodyBytes = 32 << 20

// HTTPSource fetches a dataset from a URL.
// The format comes from Content-Type, falling back to the URL extension.
type HTTPSource struct {
	client *httputil.Client
	url    string
}

// NewHTTPSource creates an HTTP source
func NewHTTPSource(client *httputil.Client, url string) *HTTPSource {
	return &HTTPSource{client: client, url: url}
}

// Name returns the source description
func (s *HTTPSource) Name() string {
	return "http:" + s.url
}

// Load downloads and decodes the dataset
func (s *HTTPSource) Load(ctx context.Context) (*contracts.Dataset, error) {
	resp, err := s.client.Get(ctx, s.url)
	if err != nil {
		return nil, fmt.Errorf("fetch dataset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch dataset: unexpected status %d", resp.StatusCode)
	}

	format, err := FormatFromContentType(resp.Header.Get("Content-Type"))
	if err != nil {
		format, err = FormatFromPath(resp.Request.URL.Path)
		if err != nil {
			return nil, err
		}
	}

	return Decode(io.LimitReader(resp.Body, maxBodyBytes), format)
}
