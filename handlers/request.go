package handlers

import (
	"net/http"

	"roadcare/middleware"
	"roadcare/models"
	"roadcare/services/request"
	"roadcare/utils"

	"github.com/gin-gonic/gin"
)

// RequestHandler exposes the service request lifecycle over HTTP.
type RequestHandler struct {
	Lifecycle request.LifecycleService
}

func NewRequestHandler(lifecycle request.LifecycleService) *RequestHandler {
	return &RequestHandler{Lifecycle: lifecycle}
}

// CreateRequest handles POST /api/requests.
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	var input request.CreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	req, err := h.Lifecycle.Create(c.Request.Context(), actor, input)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, req)
}

// GetRequest handles GET /api/requests/:id.
func (h *RequestHandler) GetRequest(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	req, err := h.Lifecycle.Get(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

// ListRequests handles GET /api/requests.
func (h *RequestHandler) ListRequests(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	requests, err := h.Lifecycle.ListForActor(c.Request.Context(), actor)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

// TransitionStatus handles PATCH /api/requests/:id/status.
func (h *RequestHandler) TransitionStatus(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	var input struct {
		Status models.RequestStatus `json:"status" binding:"required"`
		Note   string               `json:"note"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	req, err := h.Lifecycle.Transition(c.Request.Context(), c.Param("id"), input.Status, actor, input.Note)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

// SetCost handles PATCH /api/requests/:id/cost.
func (h *RequestHandler) SetCost(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	var input struct {
		EstimatedCost float64 `json:"estimatedCost"`
		FinalCost     float64 `json:"finalCost"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	req, err := h.Lifecycle.SetCost(c.Request.Context(), c.Param("id"), actor, input.EstimatedCost, input.FinalCost)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}
