package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/ledger_dedup/internal/core/ports/services"
	"github.com/SscSPs/ledger_dedup/internal/dto"
	"github.com/SscSPs/ledger_dedup/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests related to aggregate reports
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// RegisterReportingRoutes registers routes related to reports
func RegisterReportingRoutes(rg *gin.RouterGroup, rs portssvc.ReportingService) {
	h := newReportingHandler(rs)

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/category-totals", h.getCategoryTotals)
	}
}

// getCategoryTotals godoc
// @Summary Income and expense per major category
// @Description Sums transactions that count toward totals. Confirmed duplicates are excluded unless include_duplicates=true.
// @Tags reports
// @Produce json
// @Param include_duplicates query bool false "Audit view including confirmed duplicates"
// @Param from query string false "Start date (YYYY-MM-DD), inclusive"
// @Param to query string false "End date (YYYY-MM-DD), inclusive"
// @Param account query string false "Account name"
// @Success 200 {object} domain.CategoryReport
// @Failure 400 {object} dto.ErrorResponse "ValidationError"
// @Failure 503 {object} dto.ErrorResponse "PersistenceError"
// @Security BearerAuth
// @Router /reports/category-totals [get]
func (h *reportingHandler) getCategoryTotals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var query dto.TransactionFilterQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		renderBindError(c, err)
		return
	}
	filter, err := query.ToFilter()
	if err != nil {
		renderBindError(c, err)
		return
	}

	report, err := h.reportingService.CategoryTotals(c.Request.Context(), filter)
	if err != nil {
		renderError(c, err, "Failed to generate category totals")
		return
	}

	logger.Info("Category totals generated",
		slog.Int("categories", len(report.Categories)),
		slog.Bool("include_duplicates", report.IncludeDuplicates))
	c.JSON(http.StatusOK, report)
}
