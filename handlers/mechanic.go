package handlers

import (
	"net/http"
	"strconv"
	"time"

	mechanicRepo "roadcare/database/repository/mechanic"
	scheduleRepo "roadcare/database/repository/schedule"
	workshopRepo "roadcare/database/repository/workshop"
	"roadcare/middleware"
	"roadcare/models"
	"roadcare/utils"

	"github.com/gin-gonic/gin"
)

// MechanicHandler exposes workshop staff listings and mechanic calendars.
type MechanicHandler struct {
	Mechanics mechanicRepo.MechanicRepository
	Workshops workshopRepo.WorkshopRepository
	Schedules scheduleRepo.ScheduleRepository
}

func NewMechanicHandler(
	mechanics mechanicRepo.MechanicRepository,
	workshops workshopRepo.WorkshopRepository,
	schedules scheduleRepo.ScheduleRepository,
) *MechanicHandler {
	return &MechanicHandler{Mechanics: mechanics, Workshops: workshops, Schedules: schedules}
}

// ListWorkshopMechanics handles GET /api/workshops/mechanics. It returns the
// staff of the calling admin's workshop, the pool Assign picks from.
func (h *MechanicHandler) ListWorkshopMechanics(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	ws, err := h.Workshops.GetByAdminID(c.Request.Context(), actor.UserID)
	if err == workshopRepo.ErrNotFound {
		utils.AbortWithError(c, utils.NewNotFoundError("WORKSHOP_NOT_FOUND", "no workshop for this admin"))
		return
	}
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}

	mechanics, err := h.Mechanics.ListByWorkshop(c.Request.Context(), ws.ID)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mechanics": mechanics})
}

// MechanicSchedule handles GET /api/mechanics/:id/schedule. Visible to the
// mechanic themself and to their workshop admin.
func (h *MechanicHandler) MechanicSchedule(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	mechanicID := c.Param("id")

	days := 7
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 31 {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", "days must be between 1 and 31")
			return
		}
		days = parsed
	}

	mech, err := h.Mechanics.GetByID(c.Request.Context(), mechanicID)
	if err == mechanicRepo.ErrNotFound {
		utils.AbortWithError(c, utils.NewNotFoundError("MECHANIC_NOT_FOUND", "mechanic not found"))
		return
	}
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}

	if !canViewSchedule(c, h.Workshops, actor, mech) {
		utils.AbortWithError(c, utils.NewPermissionError("SCHEDULE_FORBIDDEN", "not allowed to view this schedule"))
		return
	}

	from := time.Now()
	blocks, err := h.Schedules.ListByMechanic(c.Request.Context(), mechanicID, from, from.Add(time.Duration(days)*24*time.Hour))
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedule": blocks})
}

func canViewSchedule(c *gin.Context, workshops workshopRepo.WorkshopRepository, actor models.Actor, mech *models.Mechanic) bool {
	if actor.Role == models.RoleMechanic {
		return actor.MechanicID == mech.ID
	}
	if actor.Role != models.RoleAdmin {
		return false
	}
	ws, err := workshops.GetByAdminID(c.Request.Context(), actor.UserID)
	return err == nil && ws.ID == mech.WorkshopID
}
