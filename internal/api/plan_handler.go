package api

import (
	"courtsense/training-app/internal/engine"
	"courtsense/training-app/internal/service"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// PlanHandler holds the plan service dependency.
type PlanHandler struct {
	planService service.PlanService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// GetTodayPlan returns the child's adaptive plan for today. A 409 means the
// child has not checked in yet; the app should route them to the check-in
// screen first.
func (h *PlanHandler) GetTodayPlan(c *gin.Context) {
	childID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	plan, err := h.planService.GetTodayPlan(c.Request.Context(), childID, time.Now().UTC())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoCheckInToday):
			abortWithError(c, http.StatusConflict, err.Error())
		case engine.IsInvariantViolation(err):
			abortWithError(c, http.StatusInternalServerError, "Plan data is inconsistent")
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to build today's plan")
		}
		return
	}

	c.JSON(http.StatusOK, plan)
}
