package requestid

import (
	"context"

	"github.com/oklog/ulid/v2"
)

type contextKey struct{}

// Header is the wire header carrying the correlation ID.
const Header = "X-Request-Id"

// New generates a new ULID-based correlation ID.
func New() string {
	return ulid.Make().String()
}

// NewContext returns a context carrying the given correlation ID.
func NewContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext extracts the correlation ID from the context, or "" when absent.
func FromContext(ctx context.Context) string {
	if id, ok := ctx.Value(contextKey{}).(string); ok {
		return id
	}
	return ""
}
