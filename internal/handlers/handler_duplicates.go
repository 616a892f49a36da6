package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/SscSPs/ledger_dedup/internal/apperrors"
	"github.com/SscSPs/ledger_dedup/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_dedup/internal/core/ports/services"
	"github.com/SscSPs/ledger_dedup/internal/dto"
	"github.com/SscSPs/ledger_dedup/internal/middleware"
	"github.com/gin-gonic/gin"
)

// duplicateHandler handles HTTP requests for duplicate detection and resolution.
type duplicateHandler struct {
	duplicateService portssvc.DuplicateSvcFacade
	defaults         domain.DetectionParams
}

// newDuplicateHandler creates a new duplicateHandler.
func newDuplicateHandler(ds portssvc.DuplicateSvcFacade, defaults domain.DetectionParams) *duplicateHandler {
	return &duplicateHandler{
		duplicateService: ds,
		defaults:         defaults,
	}
}

// RegisterDuplicateRoutes registers the duplicate tool surface.
// defaults fill in detection tolerances a request omits.
func RegisterDuplicateRoutes(rg *gin.RouterGroup, ds portssvc.DuplicateSvcFacade, defaults domain.DetectionParams) {
	h := newDuplicateHandler(ds, defaults)

	duplicates := rg.Group("/duplicates")
	{
		duplicates.POST("/detect", h.detect)
		duplicates.GET("/candidates", h.listCandidates)
		duplicates.GET("/candidates/:checkID", h.getCandidate)
		duplicates.POST("/candidates/:checkID/confirm", h.confirm)
		duplicates.GET("/stats", h.stats)
	}
	rg.POST("/transactions/:transactionID/restore", h.restore)
}

// detect godoc
// @Summary Detect duplicate candidates
// @Description Scores unresolved transactions pairwise and records every pair at or above the minimum score. Recorded pairs are never duplicated.
// @Tags duplicates
// @Accept json
// @Produce json
// @Param options body dto.DetectRequest false "Detection tolerances (omitted fields use configured defaults)"
// @Success 200 {object} dto.DetectResponse
// @Failure 400 {object} dto.ErrorResponse "ValidationError"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 503 {object} dto.ErrorResponse "PersistenceError"
// @Security BearerAuth
// @Router /duplicates/detect [post]
func (h *duplicateHandler) detect(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.DetectRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		renderBindError(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		renderError(c, apperrors.NewValidationError(err.Error()), "Invalid detection options")
		return
	}

	opts := req.ToOptions(h.defaults)
	logger.Info("Received request to detect duplicates",
		slog.Int("date_tolerance_days", opts.DateToleranceDays),
		slog.Float64("min_similarity_score", opts.MinSimilarityScore),
		slog.Int("subset_size", len(opts.TransactionIDs)))

	result, err := h.duplicateService.Detect(c.Request.Context(), opts)
	if err != nil {
		renderError(c, err, "Failed to detect duplicates")
		return
	}

	c.JSON(http.StatusOK, dto.ToDetectResponse(result))
}

// listCandidates godoc
// @Summary List duplicate candidates
// @Description Lists recorded candidates by descending score. Only undecided (pending or skip) ones unless skip_checked=false.
// @Tags duplicates
// @Produce json
// @Param limit query int false "Maximum number of candidates"
// @Param skip_checked query bool false "Only pending or skipped candidates" default(true)
// @Success 200 {array} domain.CandidateSummary
// @Failure 400 {object} dto.ErrorResponse "ValidationError"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 503 {object} dto.ErrorResponse "PersistenceError"
// @Security BearerAuth
// @Router /duplicates/candidates [get]
func (h *duplicateHandler) listCandidates(c *gin.Context) {
	var query dto.ListCandidatesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		renderBindError(c, err)
		return
	}

	candidates, err := h.duplicateService.ListCandidates(c.Request.Context(), query.Limit, query.SkipCheckedOrDefault())
	if err != nil {
		renderError(c, err, "Failed to list candidates")
		return
	}

	c.JSON(http.StatusOK, candidates)
}

// getCandidate godoc
// @Summary Get a duplicate candidate
// @Description Returns one candidate with both transactions in full and whether it can be decided.
// @Tags duplicates
// @Produce json
// @Param checkID path int true "Check ID"
// @Success 200 {object} domain.CandidateDetail
// @Failure 400 {object} dto.ErrorResponse "ValidationError"
// @Failure 404 {object} dto.ErrorResponse "NotFoundError"
// @Failure 503 {object} dto.ErrorResponse "PersistenceError"
// @Security BearerAuth
// @Router /duplicates/candidates/{checkID} [get]
func (h *duplicateHandler) getCandidate(c *gin.Context) {
	checkID, ok := parseCheckID(c)
	if !ok {
		return
	}

	detail, err := h.duplicateService.GetCandidate(c.Request.Context(), checkID)
	if err != nil {
		renderError(c, err, "Failed to get candidate")
		return
	}

	c.JSON(http.StatusOK, detail)
}

// confirm godoc
// @Summary Record a decision on a candidate
// @Description Records duplicate, not_duplicate or skip. A duplicate decision also marks the higher-ID transaction as a duplicate of the lower-ID one, atomically.
// @Tags duplicates
// @Accept json
// @Produce json
// @Param checkID path int true "Check ID"
// @Param decision body dto.ConfirmRequest true "Decision"
// @Success 200 {object} domain.ResolutionOutcome
// @Failure 400 {object} dto.ErrorResponse "ValidationError"
// @Failure 404 {object} dto.ErrorResponse "NotFoundError"
// @Failure 409 {object} dto.ErrorResponse "AlreadyMarkedError or ResolutionError"
// @Failure 503 {object} dto.ErrorResponse "PersistenceError"
// @Security BearerAuth
// @Router /duplicates/candidates/{checkID}/confirm [post]
func (h *duplicateHandler) confirm(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	checkID, ok := parseCheckID(c)
	if !ok {
		return
	}

	var req dto.ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		renderBindError(c, err)
		return
	}

	logger = logger.With(slog.Int64("check_id", checkID), slog.String("decision", req.Decision))
	logger.Info("Received request to confirm candidate")

	outcome, err := h.duplicateService.Confirm(c.Request.Context(), checkID, req.Decision)
	if err != nil {
		renderError(c, err, "Failed to confirm candidate")
		return
	}

	c.JSON(http.StatusOK, outcome)
}

// restore godoc
// @Summary Restore a transaction marked as duplicate
// @Description Clears the duplicate state of a transaction. The check keeps its recorded decision. Restoring an unmarked transaction succeeds with restored=false.
// @Tags duplicates
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Success 200 {object} domain.RestoreOutcome
// @Failure 404 {object} dto.ErrorResponse "NotFoundError"
// @Failure 409 {object} dto.ErrorResponse "ResolutionError"
// @Failure 503 {object} dto.ErrorResponse "PersistenceError"
// @Security BearerAuth
// @Router /transactions/{transactionID}/restore [post]
func (h *duplicateHandler) restore(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")
	logger.Info("Received request to restore transaction", slog.String("transaction_id", transactionID))

	outcome, err := h.duplicateService.Restore(c.Request.Context(), transactionID)
	if err != nil {
		renderError(c, err, "Failed to restore transaction")
		return
	}

	c.JSON(http.StatusOK, outcome)
}

// stats godoc
// @Summary Duplicate ledger statistics
// @Tags duplicates
// @Produce json
// @Success 200 {object} domain.DuplicateStats
// @Failure 503 {object} dto.ErrorResponse "PersistenceError"
// @Security BearerAuth
// @Router /duplicates/stats [get]
func (h *duplicateHandler) stats(c *gin.Context) {
	stats, err := h.duplicateService.Stats(c.Request.Context())
	if err != nil {
		renderError(c, err, "Failed to get duplicate stats")
		return
	}

	c.JSON(http.StatusOK, stats)
}
