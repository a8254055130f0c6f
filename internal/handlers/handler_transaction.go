package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/wallet_ledger/internal/core/ports/services"
	"github.com/SscSPs/wallet_ledger/internal/dto"
	"github.com/SscSPs/wallet_ledger/internal/middleware"
	"github.com/SscSPs/wallet_ledger/internal/utils"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles HTTP requests related to transfers, exchanges and history.
type transactionHandler struct {
	writer portssvc.TransactionWriterSvc
	reader portssvc.TransactionReaderSvc
}

func newTransactionHandler(writer portssvc.TransactionWriterSvc, reader portssvc.TransactionReaderSvc) *transactionHandler {
	return &transactionHandler{writer: writer, reader: reader}
}

// registerTransactionRoutes registers routes related to transactions.
func registerTransactionRoutes(rg *gin.RouterGroup, writer portssvc.TransactionWriterSvc, reader portssvc.TransactionReaderSvc) {
	h := newTransactionHandler(writer, reader)

	txns := rg.Group("/transactions")
	{
		txns.POST("/transfer", h.createTransfer)
		txns.POST("/exchange", h.createExchange)
		txns.GET("", h.listTransactions)
		txns.GET("/:transactionID", h.getTransaction)
	}
}

// createTransfer moves money between two accounts of the same currency.
func (h *transactionHandler) createTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondUnauthorized(c, logger)
		return
	}

	var req dto.CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, logger, err)
		return
	}
	req.RequestedBy = userID
	req.Metadata = requestMetadata(c, req.Metadata)

	txn, err := h.writer.CreateTransfer(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create transfer")
		return
	}

	logger.Info("Transfer created", slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// createExchange converts money between two accounts of the caller.
func (h *transactionHandler) createExchange(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondUnauthorized(c, logger)
		return
	}

	var req dto.CreateExchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, logger, err)
		return
	}
	req.RequestedBy = userID
	req.Metadata = requestMetadata(c, req.Metadata)

	txn, err := h.writer.CreateExchange(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create exchange")
		return
	}

	logger.Info("Exchange created", slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// listTransactions returns one page of the caller's transactions, newest first.
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondUnauthorized(c, logger)
		return
	}

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondWithBindError(c, logger, err)
		return
	}

	page, err := h.reader.ListTransactions(c.Request.Context(), userID, params)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list transactions")
		return
	}

	c.JSON(http.StatusOK, dto.ToListTransactionsResponse(page))
}

// getTransaction returns one transaction with its ledger entries.
func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondUnauthorized(c, logger)
		return
	}

	txn, err := h.reader.GetTransaction(c.Request.Context(), userID, c.Param("transactionID"))
	if err != nil {
		respondWithError(c, logger, err, "Failed to get transaction")
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// requestMetadata adds the caller's network origin to the client-supplied metadata.
func requestMetadata(c *gin.Context, metadata map[string]any) map[string]any {
	out := make(map[string]any, len(metadata)+2)
	for k, v := range metadata {
		out[k] = v
	}
	out["ip"] = utils.ClientIP(c.Request)
	out["user_agent"] = utils.UserAgent(c.Request)
	return out
}
