package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/branchbooks/branch_bookkeeping_app/internal/core/ports/services"
	"github.com/branchbooks/branch_bookkeeping_app/internal/dto"
)

// inventoryHandler handles HTTP requests related to inventory.
type inventoryHandler struct {
	inventoryService portssvc.InventorySvcFacade
	userService      portssvc.UserSvcFacade
}

// newInventoryHandler creates a new inventoryHandler.
func newInventoryHandler(inventoryService portssvc.InventorySvcFacade, userService portssvc.UserSvcFacade) *inventoryHandler {
	return &inventoryHandler{
		inventoryService: inventoryService,
		userService:      userService,
	}
}

// listItems godoc
// @Summary List inventory items
// @Description Lists inventory items for a branch with cursor pagination
// @Tags inventory
// @Produce  json
// @Param   branchId query string false "Branch ID (admin callers)"
// @Param   limit query int false "Page size"
// @Param   nextToken query string false "Cursor from previous page"
// @Success 200 {object} dto.ListInventoryItemsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /inventory/items [get]
func (h *inventoryHandler) listItems(c *gin.Context) {
	var params dto.ListInventoryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	caller, ok := currentUser(c, h.userService)
	if !ok {
		return
	}

	resp, err := h.inventoryService.ListItems(c.Request.Context(), params, *caller)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getItem godoc
// @Summary Get an inventory item
// @Description Retrieves an inventory item by ID
// @Tags inventory
// @Produce  json
// @Param   itemID path string true "Item ID"
// @Success 200 {object} dto.InventoryItemResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /inventory/items/{itemID} [get]
func (h *inventoryHandler) getItem(c *gin.Context) {
	caller, ok := currentUser(c, h.userService)
	if !ok {
		return
	}

	item, err := h.inventoryService.GetItemByID(c.Request.Context(), c.Param("itemID"), *caller)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToInventoryItemResponse(item))
}

// listConsumptions godoc
// @Summary List consumption records
// @Description Lists the append-only consumption log of one item
// @Tags inventory
// @Produce  json
// @Param   itemID path string true "Item ID"
// @Param   limit query int false "Page size"
// @Param   nextToken query string false "Cursor from previous page"
// @Success 200 {object} dto.ListConsumptionsResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /inventory/items/{itemID}/consumptions [get]
func (h *inventoryHandler) listConsumptions(c *gin.Context) {
	var params dto.ListInventoryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	caller, ok := currentUser(c, h.userService)
	if !ok {
		return
	}

	resp, err := h.inventoryService.ListConsumptions(c.Request.Context(), c.Param("itemID"), params, *caller)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// recordConsumption godoc
// @Summary Record a standalone consumption
// @Description Records stock usage outside of a financial posting (spoilage, internal use)
// @Tags inventory
// @Accept  json
// @Produce  json
// @Param   consumption body dto.ConsumeInventoryRequest true "Consumption to record"
// @Success 200 {object} dto.InventoryItemResponse "The item after the decrement"
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Insufficient quantity"
// @Router /inventory/consumptions [post]
func (h *inventoryHandler) recordConsumption(c *gin.Context) {
	var req dto.ConsumeInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	caller, ok := currentUser(c, h.userService)
	if !ok {
		return
	}

	item, err := h.inventoryService.RecordConsumption(c.Request.Context(), req, *caller)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToInventoryItemResponse(item))
}

// registerInventoryRoutes registers inventory specific routes
func registerInventoryRoutes(group *gin.RouterGroup, inventorySvc portssvc.InventorySvcFacade, userSvc portssvc.UserSvcFacade) {
	h := newInventoryHandler(inventorySvc, userSvc)

	inventory := group.Group("/inventory")
	{
		inventory.GET("/items", h.listItems)
		inventory.GET("/items/:itemID", h.getItem)
		inventory.GET("/items/:itemID/consumptions", h.listConsumptions)
		inventory.POST("/consumptions", h.recordConsumption)
	}
}
