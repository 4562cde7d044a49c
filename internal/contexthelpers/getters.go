package contexthelpers

import (
	"context"
)

func CurrentPath(ctx context.Context) string {
	currentPath, ok := ctx.Value(currentPathContextKey).(string)
	if !ok {
		return ""
	}

	return currentPath
}

func CSRFToken(ctx context.Context) string {
	csrfToken, ok := ctx.Value(csrfTokenContextKey).(string)
	if !ok {
		return ""
	}

	return csrfToken
}

func CSPNonce(ctx context.Context) string {
	cspNonce, ok := ctx.Value(cspNonceContextKey).(string)
	if !ok {
		return ""
	}

	return cspNonce
}

// SandboxID returns the sandbox session id attached by the session middleware,
// or the empty string for requests outside the sandbox surface.
func SandboxID(ctx context.Context) string {
	id, ok := ctx.Value(sandboxIDContextKey).(string)
	if !ok {
		return ""
	}

	return id
}
