package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wocademy/utility-backend/internal/apperrors"
	portssvc "github.com/wocademy/utility-backend/internal/core/ports/services"
	"github.com/wocademy/utility-backend/internal/dto"
	"github.com/wocademy/utility-backend/internal/middleware"
)

// creditTransactionHandler handles HTTP requests for the credit ledger and
// the two transfer endpoints.
type creditTransactionHandler struct {
	creditService portssvc.CreditTransactionSvcFacade
}

func newCreditTransactionHandler(cs portssvc.CreditTransactionSvcFacade) *creditTransactionHandler {
	return &creditTransactionHandler{creditService: cs}
}

// registerCreditTransactionRoutes registers routes related to credit transactions.
func registerCreditTransactionRoutes(rg *gin.RouterGroup, creditService portssvc.CreditTransactionSvcFacade) {
	h := newCreditTransactionHandler(creditService)

	txns := rg.Group("/credit-transactions")
	{
		txns.POST("/assign-credit-to-corporate", h.assignCreditToCorporate)
		txns.POST("/deduct-credit-from-corporate", h.deductCreditFromCorporate)
		txns.GET("", h.listTransactions)
		txns.GET("/stats", h.getTransactionStats)
		txns.GET("/user/:userID", h.listTransactionsByUserID)
		txns.GET("/module/:module", h.listTransactionsByModule)
		txns.GET("/corporate/:userID/total", h.getCorporateTotal)
		txns.POST("/totals-by-transferred-by", h.getTotalsByTransferredBy)
		txns.GET("/transfers", h.listTransfers)
		txns.GET("/:id", h.getTransactionByID)
		txns.PATCH("/:id", h.updateTransaction)
		txns.DELETE("/:id", h.deleteTransaction)
	}
}

// assignCreditToCorporate godoc
// @Summary Assign credit to a corporate user
// @Description Credits the recipient on the user service and records the transfer in the ledger
// @Tags credit-transactions
// @Accept  json
// @Produce  json
// @Param   transfer body dto.AssignCreditRequest true "Transfer details"
// @Success 201 {object} dto.TransferResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /credit-transactions/assign-credit-to-corporate [post]
func (h *creditTransactionHandler) assignCreditToCorporate(c *gin.Context) {
	var req dto.AssignCreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	if req.ActionBy == nil {
		if userID, ok := middleware.GetUserIDFromContext(c); ok {
			req.ActionBy = &userID
		}
	}

	resp, err := h.creditService.AssignCreditToCorporate(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// deductCreditFromCorporate godoc
// @Summary Deduct credit from a corporate user
// @Description Deducts the payer on the user service after a balance check and records the transfer
// @Tags credit-transactions
// @Accept  json
// @Produce  json
// @Param   transfer body dto.DeductCreditRequest true "Transfer details"
// @Success 201 {object} dto.TransferResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /credit-transactions/deduct-credit-from-corporate [post]
func (h *creditTransactionHandler) deductCreditFromCorporate(c *gin.Context) {
	var req dto.DeductCreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	if req.ActionBy == nil {
		if userID, ok := middleware.GetUserIDFromContext(c); ok {
			req.ActionBy = &userID
		}
	}

	resp, err := h.creditService.DeductCreditFromCorporate(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// listTransactions godoc
// @Summary List ledger transactions
// @Description Returns one token-paginated page of the credit ledger, optionally filtered by module or user
// @Tags credit-transactions
// @Produce  json
// @Param   limit query int false "Page size (default 10, max 100)"
// @Param   nextToken query string false "Opaque pagination token"
// @Param   module query string false "Module filter" Enums(WOCADEMY, MENTORSHIP)
// @Param   userId query string false "Matches payer or recipient"
// @Success 200 {object} dto.ListCreditTransactionsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /credit-transactions [get]
func (h *creditTransactionHandler) listTransactions(c *gin.Context) {
	var params dto.ListCreditTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindingError(c, err)
		return
	}

	resp, err := h.creditService.ListTransactions(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getTransactionStats godoc
// @Summary Ledger aggregates
// @Description Returns the count, total and average amount across the whole ledger
// @Tags credit-transactions
// @Produce  json
// @Success 200 {object} dto.TransactionStatsResponse
// @Security BearerAuth
// @Router /credit-transactions/stats [get]
func (h *creditTransactionHandler) getTransactionStats(c *gin.Context) {
	stats, err := h.creditService.GetTransactionStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionStatsResponse(stats))
}

// listTransactionsByUserID godoc
// @Summary List a user's transactions
// @Description Returns ledger rows where the user was payer or recipient
// @Tags credit-transactions
// @Produce  json
// @Param   userID path string true "User ID"
// @Success 200 {array} dto.CreditTransactionResponse
// @Security BearerAuth
// @Router /credit-transactions/user/{userID} [get]
func (h *creditTransactionHandler) listTransactionsByUserID(c *gin.Context) {
	txns, err := h.creditService.ListTransactionsByUserID(c.Request.Context(), c.Param("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCreditTransactionResponses(txns))
}

// listTransactionsByModule godoc
// @Summary List a module's transactions
// @Tags credit-transactions
// @Produce  json
// @Param   module path string true "Module" Enums(WOCADEMY, MENTORSHIP)
// @Success 200 {array} dto.CreditTransactionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /credit-transactions/module/{module} [get]
func (h *creditTransactionHandler) listTransactionsByModule(c *gin.Context) {
	txns, err := h.creditService.ListTransactionsByModule(c.Request.Context(), c.Param("module"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCreditTransactionResponses(txns))
}

// getCorporateTotal godoc
// @Summary Total credits assigned to a corporate
// @Description Sums all credits assigned to the corporate, optionally restricted to a module
// @Tags credit-transactions
// @Produce  json
// @Param   userID path string true "Corporate user ID"
// @Param   module query string false "Module filter" Enums(WOCADEMY, MENTORSHIP)
// @Success 200 {object} dto.CorporateTotalResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /credit-transactions/corporate/{userID}/total [get]
func (h *creditTransactionHandler) getCorporateTotal(c *gin.Context) {
	userID := c.Param("userID")
	var module *string
	if m := c.Query("module"); m != "" {
		module = &m
	}

	total, err := h.creditService.GetTotalModuleCreditsOfCorporate(c.Request.Context(), userID, module)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.CorporateTotalResponse{
		UserID:      userID,
		TotalAmount: total.TotalAmount,
	}
	if module != nil {
		resp.Module = *module
	}
	c.JSON(http.StatusOK, resp)
}

// getTotalsByTransferredBy godoc
// @Summary Total credits per payer
// @Description Returns one summed total per requested payer, zero for payers with no transfers
// @Tags credit-transactions
// @Accept  json
// @Produce  json
// @Param   request body dto.TotalsByTransferredByRequest true "Payer IDs"
// @Success 200 {array} dto.CorporateCreditTotalResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /credit-transactions/totals-by-transferred-by [post]
func (h *creditTransactionHandler) getTotalsByTransferredBy(c *gin.Context) {
	var req dto.TotalsByTransferredByRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	totals, err := h.creditService.GetTotalCreditsByTransferredByIDs(c.Request.Context(), req.TransferredByIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCorporateCreditTotalResponses(totals))
}

// listTransfers godoc
// @Summary List transfer intents by status
// @Description Operational surface for the transfer intent table, mainly NEEDS_RECONCILIATION review
// @Tags credit-transactions
// @Produce  json
// @Param   status query string true "Intent status" Enums(PENDING, COMPLETED, FAILED, COMPENSATED, NEEDS_RECONCILIATION)
// @Success 200 {array} dto.CreditTransferResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /credit-transactions/transfers [get]
func (h *creditTransactionHandler) listTransfers(c *gin.Context) {
	transfers, err := h.creditService.ListTransfers(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCreditTransferResponses(transfers))
}

// getTransactionByID godoc
// @Summary Get a ledger transaction
// @Tags credit-transactions
// @Produce  json
// @Param   id path int true "Transaction ID"
// @Success 200 {object} dto.CreditTransactionResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /credit-transactions/{id} [get]
func (h *creditTransactionHandler) getTransactionByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	txn, err := h.creditService.GetTransactionByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCreditTransactionResponse(txn))
}

// updateTransaction godoc
// @Summary Patch a ledger transaction
// @Description Updates actionBy, module or remarks. Amounts and balance snapshots are immutable.
// @Tags credit-transactions
// @Accept  json
// @Produce  json
// @Param   id path int true "Transaction ID"
// @Param   patch body dto.UpdateCreditTransactionRequest true "Fields to update"
// @Success 200 {object} dto.CreditTransactionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /credit-transactions/{id} [patch]
func (h *creditTransactionHandler) updateTransaction(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateCreditTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	txn, err := h.creditService.UpdateTransaction(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCreditTransactionResponse(txn))
}

// deleteTransaction godoc
// @Summary Delete a ledger transaction
// @Tags credit-transactions
// @Produce  json
// @Param   id path int true "Transaction ID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /credit-transactions/{id} [delete]
func (h *creditTransactionHandler) deleteTransaction(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.creditService.DeleteTransaction(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// parseIDParam parses the :id path parameter, writing the error response itself.
func parseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("invalid id path parameter", "value", c.Param("id"))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Code:       apperrors.CodeValidation,
			Message:    "id must be a positive integer",
		})
		return 0, false
	}
	return id, true
}
