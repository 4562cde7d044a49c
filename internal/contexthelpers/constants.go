// Package contexthelpers reads and writes the request-scoped values shared
// between middleware, handlers, and templates.
package contexthelpers

type contextKey string

const currentPathContextKey = contextKey("currentPath")
const csrfTokenContextKey = contextKey("csrfToken")
const cspNonceContextKey = contextKey("cspNonce")
const sandboxIDContextKey = contextKey("sandboxID")
