package handlers

import (
	"net/http"

	"roadcare/middleware"
	"roadcare/services/updatelog"
	"roadcare/utils"

	"github.com/gin-gonic/gin"
)

// UpdateHandler exposes the per-request service update log over HTTP.
type UpdateHandler struct {
	Updates updatelog.Service
}

func NewUpdateHandler(updates updatelog.Service) *UpdateHandler {
	return &UpdateHandler{Updates: updates}
}

// AppendUpdate handles POST /api/requests/:id/updates.
func (h *UpdateHandler) AppendUpdate(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	var input struct {
		Message string   `json:"message" binding:"required"`
		Images  []string `json:"images"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	update, err := h.Updates.Append(c.Request.Context(), c.Param("id"), actor, input.Message, input.Images)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, update)
}

// ListUpdates handles GET /api/requests/:id/updates.
func (h *UpdateHandler) ListUpdates(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	updates, err := h.Updates.List(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updates": updates})
}
