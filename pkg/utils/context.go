package utils

import (
	"context"
)

type contextKey string

const (
	SessionIDKey contextKey = "session_id"
)

// GetSessionIDFromContext returns the client session set by the session middleware.
func GetSessionIDFromContext(ctx context.Context) (string, bool) {
	sessionVal := ctx.Value(SessionIDKey)
	if sessionVal == nil {
		return "", false
	}

	sessionID, ok := sessionVal.(string)
	if !ok || sessionID == "" {
		return "", false
	}

	return sessionID, true
}

func SetSessionContext(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, SessionIDKey, sessionID)
}
