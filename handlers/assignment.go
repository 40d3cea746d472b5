package handlers

import (
	"net/http"

	"roadcare/middleware"
	"roadcare/services/assignment"
	"roadcare/utils"

	"github.com/gin-gonic/gin"
)

// AssignmentHandler exposes mechanic assignment over HTTP.
type AssignmentHandler struct {
	Coordinator assignment.Coordinator
}

func NewAssignmentHandler(coordinator assignment.Coordinator) *AssignmentHandler {
	return &AssignmentHandler{Coordinator: coordinator}
}

// AssignMechanic handles POST /api/requests/:id/assign.
func (h *AssignmentHandler) AssignMechanic(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	var input struct {
		MechanicID string `json:"mechanicId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	req, err := h.Coordinator.Assign(c.Request.Context(), c.Param("id"), input.MechanicID, actor.UserID)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}
