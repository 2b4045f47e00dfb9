package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"wellnest/tracker-api/internal/domain"
	"wellnest/tracker-api/internal/service"
)

// TrackerHandler serves the dashboard and goals.
type TrackerHandler struct {
	trackerService service.TrackerService
	goalService    service.GoalService
}

func NewTrackerHandler(trackerService service.TrackerService, goalService service.GoalService) *TrackerHandler {
	return &TrackerHandler{trackerService: trackerService, goalService: goalService}
}

type CreateGoalRequest struct {
	Type   domain.GoalType `json:"type" binding:"required"`
	Target float64         `json:"target" binding:"required,gt=0"`
	Icon   string          `json:"icon"`
}

// GetDashboard godoc
// @Summary Weekly series, today's totals and goal progress
// @Tags Tracker
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.Dashboard
// @Failure 503 {object} gin.H "A log store could not be read"
// @Router /dashboard [get]
func (h *TrackerHandler) GetDashboard(c *gin.Context) {
	email, ok := requireUser(c)
	if !ok {
		return
	}
	dashboard, err := h.trackerService.Dashboard(c.Request.Context(), email)
	if err != nil {
		abortAggregation(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

func (h *TrackerHandler) ListGoals(c *gin.Context) {
	email, ok := requireUser(c)
	if !ok {
		return
	}
	goals, err := h.goalService.List(c.Request.Context(), email)
	if err != nil {
		abortAggregation(c, err)
		return
	}
	if goals == nil {
		goals = []service.GoalProgress{}
	}
	c.JSON(http.StatusOK, goals)
}

func (h *TrackerHandler) CreateGoal(c *gin.Context) {
	email, ok := requireUser(c)
	if !ok {
		return
	}
	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	goal, err := h.goalService.Create(c.Request.Context(), email, req.Type, req.Target, req.Icon)
	if err != nil {
		if errors.Is(err, service.ErrInvalidGoal) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithInternal(c, err, "Failed to create goal.")
		}
		return
	}
	c.JSON(http.StatusCreated, goal)
}

func (h *TrackerHandler) DeleteGoal(c *gin.Context) {
	email, ok := requireUser(c)
	if !ok {
		return
	}
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid goal ID format.")
		return
	}
	if err := h.goalService.Delete(c.Request.Context(), email, id); err != nil {
		if errors.Is(err, service.ErrGoalNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithInternal(c, err, "Failed to delete goal.")
		}
		return
	}
	c.Status(http.StatusNoContent)
}

func abortAggregation(c *gin.Context, err error) {
	if errors.Is(err, service.ErrAggregationUnavailable) {
		_ = c.Error(err)
		abortWithError(c, http.StatusServiceUnavailable, "Tracker data is temporarily unavailable.")
		return
	}
	abortWithInternal(c, err, "Failed to build dashboard.")
}
