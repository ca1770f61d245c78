package logging

import "context"

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	blockIDKey   contextKey = "block_id"
)

// WithRequestID adds a request ID to the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// WithBlockID adds the code block being operated on to the context.
func WithBlockID(ctx context.Context, id int) context.Context {
	return context.WithValue(ctx, blockIDKey, id)
}

// GetRequestID retrieves the request ID from the context.
// Returns empty string if not present.
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// GetBlockID retrieves the code block ID from the context.
func GetBlockID(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(blockIDKey).(int)
	return id, ok
}
