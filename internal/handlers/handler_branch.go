package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/branchbooks/branch_bookkeeping_app/internal/core/ports/services"
	"github.com/branchbooks/branch_bookkeeping_app/internal/dto"
)

// branchHandler handles HTTP requests related to branches.
type branchHandler struct {
	branchService portssvc.BranchSvcFacade
	userService   portssvc.UserSvcFacade
}

// newBranchHandler creates a new branchHandler.
func newBranchHandler(branchService portssvc.BranchSvcFacade, userService portssvc.UserSvcFacade) *branchHandler {
	return &branchHandler{
		branchService: branchService,
		userService:   userService,
	}
}

// createBranch godoc
// @Summary Create a branch
// @Description Creates a new branch. Admin only.
// @Tags branches
// @Accept  json
// @Produce  json
// @Param   branch body dto.CreateBranchRequest true "Branch to create"
// @Success 201 {object} dto.BranchResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /branches [post]
func (h *branchHandler) createBranch(c *gin.Context) {
	var req dto.CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	caller, ok := currentUser(c, h.userService)
	if !ok {
		return
	}

	branch, err := h.branchService.CreateBranch(c.Request.Context(), req, *caller)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToBranchResponse(branch))
}

// getBranch godoc
// @Summary Get a branch
// @Description Retrieves a branch by ID
// @Tags branches
// @Produce  json
// @Param   branchID path string true "Branch ID"
// @Success 200 {object} dto.BranchResponse
// @Failure 404 {object} ErrorResponse
// @Router /branches/{branchID} [get]
func (h *branchHandler) getBranch(c *gin.Context) {
	if _, ok := currentUser(c, h.userService); !ok {
		return
	}

	branch, err := h.branchService.GetBranchByID(c.Request.Context(), c.Param("branchID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBranchResponse(branch))
}

// listBranches godoc
// @Summary List branches
// @Description Lists all branches
// @Tags branches
// @Produce  json
// @Success 200 {array} dto.BranchResponse
// @Router /branches [get]
func (h *branchHandler) listBranches(c *gin.Context) {
	if _, ok := currentUser(c, h.userService); !ok {
		return
	}

	branches, err := h.branchService.ListBranches(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBranchResponses(branches))
}

// registerBranchRoutes registers branch specific routes
func registerBranchRoutes(group *gin.RouterGroup, branchSvc portssvc.BranchSvcFacade, userSvc portssvc.UserSvcFacade) {
	h := newBranchHandler(branchSvc, userSvc)

	branches := group.Group("/branches")
	{
		branches.POST("", h.createBranch)
		branches.GET("", h.listBranches)
		branches.GET("/:branchID", h.getBranch)
	}
}
