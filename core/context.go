package core

import "context"

// Context keys for compile options
type contextKey string

const (
	suppressHeaderKey contextKey = "suppressHeader"
	runIDKey          contextKey = "runID"
)

// WithSuppressHeader marks the context so no progress lines are printed.
// Callers that capture results, such as the MCP server, use it.
func WithSuppressHeader(ctx context.Context) context.Context {
	return context.WithValue(ctx, suppressHeaderKey, true)
}

// shouldSuppressHeader returns whether headers should be suppressed from context
func shouldSuppressHeader(ctx context.Context) bool {
	val := ctx.Value(suppressHeaderKey)
	if val == nil {
		return false // default: show headers
	}
	suppress, ok := val.(bool)
	return ok && suppress
}

// withRunID stores the registry run ID in the context
func withRunID(ctx context.Context, runID int64) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// getRunID returns the registry run ID from context
func getRunID(ctx context.Context) (int64, bool) {
	val := ctx.Value(runIDKey)
	if val == nil {
		return 0, false
	}
	runID, ok := val.(int64)
	return runID, ok
}
