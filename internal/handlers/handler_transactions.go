package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/ledger_dedup/internal/apperrors"
	portssvc "github.com/SscSPs/ledger_dedup/internal/core/ports/services"
	"github.com/SscSPs/ledger_dedup/internal/dto"
	"github.com/SscSPs/ledger_dedup/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles HTTP requests related to ledger transactions.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

// newTransactionHandler creates a new transactionHandler.
func newTransactionHandler(ts portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{
		transactionService: ts,
	}
}

// RegisterTransactionRoutes registers transaction intake and listing routes.
func RegisterTransactionRoutes(rg *gin.RouterGroup, ts portssvc.TransactionSvcFacade) {
	h := newTransactionHandler(ts)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.importTransactions)
		transactions.GET("", h.listTransactions)
		transactions.GET("/:transactionID", h.getTransaction)
	}
}

// importTransactions godoc
// @Summary Import transactions
// @Description Stores a batch of imported transactions. IDs already present are ignored.
// @Tags transactions
// @Accept json
// @Produce json
// @Param transactions body dto.ImportTransactionsRequest true "Transactions"
// @Success 200 {object} domain.ImportResult
// @Failure 400 {object} dto.ErrorResponse "ValidationError"
// @Failure 503 {object} dto.ErrorResponse "PersistenceError"
// @Security BearerAuth
// @Router /transactions [post]
func (h *transactionHandler) importTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ImportTransactionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		renderBindError(c, err)
		return
	}
	txns, err := req.ToDomain()
	if err != nil {
		renderError(c, apperrors.NewValidationError(err.Error()), "Invalid transactions")
		return
	}

	logger.Info("Received request to import transactions", slog.Int("count", len(txns)))

	result, err := h.transactionService.ImportTransactions(c.Request.Context(), txns)
	if err != nil {
		renderError(c, err, "Failed to import transactions")
		return
	}

	c.JSON(http.StatusOK, result)
}

// listTransactions godoc
// @Summary List transactions
// @Description Lists transactions ordered by date then ID. Confirmed duplicates are hidden unless include_duplicates=true.
// @Tags transactions
// @Produce json
// @Param include_duplicates query bool false "Audit view including confirmed duplicates"
// @Param from query string false "Start date (YYYY-MM-DD), inclusive"
// @Param to query string false "End date (YYYY-MM-DD), inclusive"
// @Param account query string false "Account name"
// @Param limit query int false "Page size" default(100)
// @Param next_token query string false "Token from the previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} dto.ErrorResponse "ValidationError"
// @Failure 503 {object} dto.ErrorResponse "PersistenceError"
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	var query dto.ListTransactionsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		renderBindError(c, err)
		return
	}
	filter, err := query.ToFilter()
	if err != nil {
		renderBindError(c, err)
		return
	}

	txns, err := h.transactionService.ListTransactions(c.Request.Context(), filter)
	if err != nil {
		renderError(c, err, "Failed to list transactions")
		return
	}

	c.JSON(http.StatusOK, dto.ToListTransactionsResponse(txns, filter.Limit))
}

// getTransaction godoc
// @Summary Get a transaction
// @Description Returns a transaction whatever its duplicate state.
// @Tags transactions
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Success 200 {object} domain.Transaction
// @Failure 404 {object} dto.ErrorResponse "NotFoundError"
// @Failure 503 {object} dto.ErrorResponse "PersistenceError"
// @Security BearerAuth
// @Router /transactions/{transactionID} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	txn, err := h.transactionService.GetTransaction(c.Request.Context(), c.Param("transactionID"))
	if err != nil {
		renderError(c, err, "Failed to get transaction")
		return
	}

	c.JSON(http.StatusOK, txn)
}
