// Package toolutil provides shared helper functions for go_jobinsight MCP tools.
package toolutil

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anatolykoptev/go_jobinsight/internal/engine"
)

// ErrInvalidPaging is returned for negative limit or offset values.
var ErrInvalidPaging = errors.New("invalid paging")

// ClampLimit normalises a page size: 0 → def, above maxLimit → maxLimit.
func ClampLimit(limit, def, maxLimit int) (int, error) {
	switch {
	case limit < 0:
		return 0, fmt.Errorf("%w: limit %d is negative", ErrInvalidPaging, limit)
	case limit == 0:
		return def, nil
	case limit > maxLimit:
		return maxLimit, nil
	}
	return limit, nil
}

// Page returns items[offset:offset+limit], clipped to the slice bounds.
// An offset past the end yields an empty page.
func Page[T any](items []T, offset, limit int) ([]T, error) {
	if offset < 0 {
		return nil, fmt.Errorf("%w: offset %d is negative", ErrInvalidPaging, offset)
	}
	if offset >= len(items) {
		return []T{}, nil
	}
	end := offset + limit
	if end > len(items) || end < offset {
		end = len(items)
	}
	return items[offset:end], nil
}

// Cached returns the cached value for key, or runs compute and caches its
// result. Errors are never cached.
func Cached[T any](ctx context.Context, key string, compute func() (T, error)) (T, error) {
	if out, ok := engine.CacheLoadJSON[T](ctx, key); ok {
		return out, nil
	}
	out, err := compute()
	if err != nil {
		return out, err
	}
	engine.CacheStoreJSON(ctx, key, out)
	return out, nil
}

// JoinList renders a decoded list cell for display.
func JoinList(items []string) string {
	return strings.Join(items, ", ")
}
