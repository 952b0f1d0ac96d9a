package agent

import "context"

// User identity is injected into the call context by the entry point (HTTP
// handler or CLI), never supplied by the model. Every tool reads it from
// here, matching the "implicit per-call user identity" contract.

type userIDKey struct{}

// WithUserID returns a context carrying the user identity for this turn.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// UserIDFromContext extracts the user identity set by WithUserID.
// The second return is false when no identity was attached.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey{}).(string)
	return userID, ok && userID != ""
}
