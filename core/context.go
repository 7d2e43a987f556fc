package core

import "context"

// Context keys for execution options
type contextKey string

const quietKey contextKey = "quiet"

// WithQuiet sets whether progress headers should be suppressed in the context
func WithQuiet(ctx context.Context) context.Context {
	return context.WithValue(ctx, quietKey, true)
}

// shouldBeQuiet returns whether progress headers should be suppressed from context
func shouldBeQuiet(ctx context.Context) bool {
	val := ctx.Value(quietKey)
	if val == nil {
		return false // default: show headers
	}
	quiet, ok := val.(bool)
	return ok && quiet
}
