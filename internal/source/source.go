package source

import (
	"context"
	"errors"
	"strings"

	"github.com/wonny/scorecard/internal/contracts"
	"github.com/wonny/scorecard/pkg/config"
	"github.com/wonny/scorecard/pkg/database"
	"github.com/wonny/scorecard/pkg/httputil"
)

// ErrNoSource is returned when neither REPORT_INPUT nor a database is configured
var ErrNoSource = errors.New("no dataset source configured")

// Source loads one dataset snapshot
type Source interface {
	Load(ctx context.Context) (*contracts.Dataset, error)
	Name() string
}

// New picks the dataset source from config.
// REPORT_INPUT wins over the database; an http(s) input is fetched with client.
func New(cfg *config.Config, db *database.DB, client *httputil.Client) (Source, error) {
	input := cfg.Report.InputPath

	switch {
	case strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://"):
		if client == nil {
			return nil, errors.New("http dataset source requires an http client")
		}
		return NewHTTPSource(client, input), nil
	case input != "":
		return NewFileSource(input), nil
	case db != nil:
		return NewPostgresSource(db.Pool), nil
	default:
		return nil, ErrNoSource
	}
}
