package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/branchbooks/branch_bookkeeping_app/internal/core/ports/services"
	"github.com/branchbooks/branch_bookkeeping_app/internal/dto"
)

// debtHandler handles HTTP requests related to debts.
type debtHandler struct {
	debtService portssvc.DebtSvcFacade
	userService portssvc.UserSvcFacade
}

// newDebtHandler creates a new debtHandler.
func newDebtHandler(debtService portssvc.DebtSvcFacade, userService portssvc.UserSvcFacade) *debtHandler {
	return &debtHandler{
		debtService: debtService,
		userService: userService,
	}
}

// listDebts godoc
// @Summary List debts
// @Description Lists debts for a branch with cursor pagination
// @Tags debts
// @Produce  json
// @Param   branchId query string false "Branch ID (admin callers)"
// @Param   limit query int false "Page size"
// @Param   nextToken query string false "Cursor from previous page"
// @Success 200 {object} dto.ListDebtsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /debts [get]
func (h *debtHandler) listDebts(c *gin.Context) {
	var params dto.ListDebtsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	caller, ok := currentUser(c, h.userService)
	if !ok {
		return
	}

	resp, err := h.debtService.ListDebts(c.Request.Context(), params, *caller)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getDebt godoc
// @Summary Get a debt
// @Description Retrieves a debt by ID
// @Tags debts
// @Produce  json
// @Param   debtID path string true "Debt ID"
// @Success 200 {object} dto.DebtResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /debts/{debtID} [get]
func (h *debtHandler) getDebt(c *gin.Context) {
	caller, ok := currentUser(c, h.userService)
	if !ok {
		return
	}

	debt, err := h.debtService.GetDebtByID(c.Request.Context(), c.Param("debtID"), *caller)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToDebtResponse(debt))
}

// recordPayment godoc
// @Summary Record a debt payment
// @Description Applies a payment against the debt and recomputes its status
// @Tags debts
// @Accept  json
// @Produce  json
// @Param   debtID path string true "Debt ID"
// @Param   payment body dto.RecordDebtPaymentRequest true "Payment to record"
// @Success 200 {object} dto.DebtResponse "The debt after the payment"
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Payment exceeds remaining amount"
// @Router /debts/{debtID}/payments [post]
func (h *debtHandler) recordPayment(c *gin.Context) {
	var req dto.RecordDebtPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	caller, ok := currentUser(c, h.userService)
	if !ok {
		return
	}

	debt, err := h.debtService.RecordPayment(c.Request.Context(), c.Param("debtID"), req, *caller)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToDebtResponse(debt))
}

// registerDebtRoutes registers debt specific routes
func registerDebtRoutes(group *gin.RouterGroup, debtSvc portssvc.DebtSvcFacade, userSvc portssvc.UserSvcFacade) {
	h := newDebtHandler(debtSvc, userSvc)

	debts := group.Group("/debts")
	{
		debts.GET("", h.listDebts)
		debts.GET("/:debtID", h.getDebt)
		debts.POST("/:debtID/payments", h.recordPayment)
	}
}
