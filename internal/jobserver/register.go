package jobserver

import (
	"context"
	"errors"
	"fmt"

	"github.com/anatolykoptev/go_jobinsight/internal/engine"
	"github.com/anatolykoptev/go_jobinsight/internal/engine/jobs"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Paging defaults for posting_filter.
const (
	defaultLimit = 50
	maxLimit     = 500
)

// defaultPreviewChars is used when PREVIEW_CHARS is unset.
const defaultPreviewChars = 300

var errNoData = errors.New("postings not loaded")

// RegisterTools registers the postings tools on the given MCP server:
// posting_options, posting_filter, posting_insights.
func RegisterTools(server *mcp.Server) {
	registerPostingOptions(server)
	registerPostingFilter(server)
	registerPostingInsights(server)
}

// loadedStore returns the store set at startup.
func loadedStore() (*jobs.Store, error) {
	s := jobs.GetStore()
	if s == nil {
		return nil, errNoData
	}
	return s, nil
}

// invalid marks a caller input error so clients can tell it from a server fault.
func invalid(err error) error {
	if errors.Is(err, jobs.ErrInvalidQuery) {
		return err
	}
	return fmt.Errorf("%w: %w", jobs.ErrInvalidQuery, err)
}

// run wraps a handler with slow-operation tracking.
func run[T any](ctx context.Context, name string, fn func(context.Context) (T, error)) (T, error) {
	var out T
	err := engine.TrackOperation(ctx, name, func(ctx context.Context) error {
		var err error
		out, err = fn(ctx)
		return err
	})
	return out, err
}
