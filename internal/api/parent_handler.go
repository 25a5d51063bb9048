package api

import (
	"courtsense/training-app/internal/domain"
	"courtsense/training-app/internal/service"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParentHandler holds the services backing the parent-only endpoints.
type ParentHandler struct {
	authService   service.AuthService
	parentService service.ParentService
	planService   service.PlanService
}

// NewParentHandler creates a new ParentHandler.
func NewParentHandler(authService service.AuthService, parentService service.ParentService, planService service.PlanService) *ParentHandler {
	return &ParentHandler{authService: authService, parentService: parentService, planService: planService}
}

// --- Request/Response Structs ---

type CreateChildRequest struct {
	Name     string `json:"name" binding:"required"`
	Passcode string `json:"passcode" binding:"required,min=4"`
}

type UpdateChildSettingsRequest struct {
	MaxDailyMinutes        int  `json:"maxDailyMinutes" binding:"min=0"`
	IntenseDrillsPermitted bool `json:"intenseDrillsPermitted"`
}

// --- Handler Methods ---

// CreateChild adds a child profile under the calling parent.
func (h *ParentHandler) CreateChild(c *gin.Context) {
	parentID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	var req CreateChildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	child, err := h.authService.CreateChild(c.Request.Context(), parentID, req.Name, req.Passcode)
	if err != nil {
		if errors.Is(err, service.ErrHashingFailed) {
			abortWithError(c, http.StatusInternalServerError, "Could not process passcode")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create child profile")
		}
		return
	}

	c.JSON(http.StatusCreated, MapUserToResponse(child))
}

// GetChildren lists the calling parent's child profiles.
func (h *ParentHandler) GetChildren(c *gin.Context) {
	parentID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	children, err := h.parentService.GetChildren(c.Request.Context(), parentID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch children")
		return
	}

	resp := make([]UserResponse, len(children))
	for i := range children {
		resp[i] = MapUserToResponse(&children[i])
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateChildSettings replaces the parent-managed settings for one child.
func (h *ParentHandler) UpdateChildSettings(c *gin.Context) {
	parentID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	childID, err := primitive.ObjectIDFromHex(c.Param("childId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid child ID format")
		return
	}

	var req UpdateChildSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	child, err := h.parentService.UpdateChildSettings(c.Request.Context(), parentID, childID, domain.ChildSettings{
		MaxDailyMinutes:        req.MaxDailyMinutes,
		IntenseDrillsPermitted: req.IntenseDrillsPermitted,
	})
	if err != nil {
		h.abortChildError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapUserToResponse(child))
}

// GetChildOverview returns one child's arc progress and consistency stats.
func (h *ParentHandler) GetChildOverview(c *gin.Context) {
	parentID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	childID, err := primitive.ObjectIDFromHex(c.Param("childId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid child ID format")
		return
	}

	overview, err := h.parentService.GetChildOverview(c.Request.Context(), parentID, childID, time.Now().UTC())
	if err != nil {
		h.abortChildError(c, err)
		return
	}

	c.JSON(http.StatusOK, overview)
}

// GetChildPlan fetches today's plan on a child's behalf, for the parent view.
func (h *ParentHandler) GetChildPlan(c *gin.Context) {
	parentID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	childID, err := primitive.ObjectIDFromHex(c.Param("childId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid child ID format")
		return
	}

	if err := h.parentService.VerifyChildOwnership(c.Request.Context(), parentID, childID); err != nil {
		h.abortChildError(c, err)
		return
	}

	plan, err := h.planService.GetTodayPlan(c.Request.Context(), childID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, service.ErrNoCheckInToday) {
			abortWithError(c, http.StatusConflict, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to build the child's plan")
		}
		return
	}

	c.JSON(http.StatusOK, plan)
}

func (h *ParentHandler) abortChildError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrChildNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNotYourChild):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrInvalidSettings):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
