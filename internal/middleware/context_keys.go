package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// callerIDKey is the key used to store the authenticated caller's ID (the JWT subject).
const callerIDKey = contextKey("callerID")

// GetCallerIDFromContext retrieves the authenticated caller ID from the request context.
// It returns the caller ID and a boolean indicating if it was found.
func GetCallerIDFromContext(c *gin.Context) (string, bool) {
	return CallerIDFromCtx(c.Request.Context())
}

// CallerIDFromCtx retrieves the authenticated caller ID from a standard context.
func CallerIDFromCtx(ctx context.Context) (string, bool) {
	callerID, ok := ctx.Value(callerIDKey).(string)
	if !ok || callerID == "" {
		return "", false
	}
	return callerID, true
}
