package handlers

import (
	"log/slog"
	"strconv"

	"github.com/SscSPs/ledger_dedup/internal/apperrors"
	"github.com/SscSPs/ledger_dedup/internal/dto"
	"github.com/SscSPs/ledger_dedup/internal/middleware"
	"github.com/gin-gonic/gin"
)

// renderError writes the error kind and message with the status matching its kind.
func renderError(c *gin.Context, err error, logMsg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := apperrors.HTTPStatus(err)
	attrs := []any{
		slog.String("error", err.Error()),
		slog.String("kind", apperrors.Kind(err)),
		slog.Int("status", status),
	}
	if status >= 500 {
		logger.Error(logMsg, attrs...)
	} else {
		logger.Warn(logMsg, attrs...)
	}
	c.JSON(status, dto.NewErrorResponse(err))
}

// renderBindError reports a malformed request as a ValidationError.
func renderBindError(c *gin.Context, err error) {
	renderError(c, apperrors.NewValidationError(err.Error()), "Invalid request")
}

// parseCheckID reads the :checkID path parameter.
func parseCheckID(c *gin.Context) (int64, bool) {
	raw := c.Param("checkID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		renderError(c, apperrors.NewValidationError("check ID must be a positive integer, got "+strconv.Quote(raw)), "Invalid check ID")
		return 0, false
	}
	return id, true
}
