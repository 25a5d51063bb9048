package api

import (
	"courtsense/training-app/internal/domain"
	"courtsense/training-app/internal/engine"
	"courtsense/training-app/internal/service"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CheckInHandler holds the check-in service dependency.
type CheckInHandler struct {
	checkInService service.CheckInService
}

// NewCheckInHandler creates a new CheckInHandler.
func NewCheckInHandler(checkInService service.CheckInService) *CheckInHandler {
	return &CheckInHandler{checkInService: checkInService}
}

// --- Request/Response Structs ---

type SubmitCheckInRequest struct {
	Energy               int             `json:"energy" binding:"required,min=1,max=5"`
	Soreness             domain.Soreness `json:"soreness" binding:"required,oneof=none light medium high"`
	Focus                int             `json:"focus" binding:"required,min=1,max=5"`
	Mood                 domain.Mood     `json:"mood" binding:"required,oneof=excited focused okay tired stressed"`
	TimeAvailableMinutes int             `json:"timeAvailableMinutes" binding:"required,min=1"`
	PainFlag             bool            `json:"painFlag"`
}

type RateQualityRequest struct {
	Rating int `json:"rating" binding:"required,min=1,max=5"`
}

// --- Handler Methods ---

// SubmitCheckIn records the child's daily self-report and returns it with the
// classified session mode attached.
func (h *CheckInHandler) SubmitCheckIn(c *gin.Context) {
	childID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	var req SubmitCheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	checkIn, err := h.checkInService.SubmitCheckIn(c.Request.Context(), childID, engine.CheckInData{
		Energy:               req.Energy,
		Soreness:             req.Soreness,
		Focus:                req.Focus,
		Mood:                 req.Mood,
		TimeAvailableMinutes: req.TimeAvailableMinutes,
		PainFlag:             req.PainFlag,
	})
	if err != nil {
		if engine.IsInvalidInput(err) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to save check-in")
		}
		return
	}

	c.JSON(http.StatusCreated, checkIn)
}

// GetTodayCheckIn returns the latest check-in for the current calendar day.
func (h *CheckInHandler) GetTodayCheckIn(c *gin.Context) {
	childID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	checkIn, err := h.checkInService.GetTodayCheckIn(c.Request.Context(), childID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, service.ErrNoCheckInToday) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to fetch check-in")
		}
		return
	}

	c.JSON(http.StatusOK, checkIn)
}

// RateQuality amends a check-in with the child's post-session quality rating.
func (h *CheckInHandler) RateQuality(c *gin.Context) {
	childID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	checkInID, err := primitive.ObjectIDFromHex(c.Param("checkInId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid check-in ID format")
		return
	}

	var req RateQualityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	if err := h.checkInService.RateQuality(c.Request.Context(), childID, checkInID, req.Rating); err != nil {
		switch {
		case errors.Is(err, service.ErrCheckInNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrCheckInNotOwned):
			abortWithError(c, http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrInvalidRating):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to save rating")
		}
		return
	}

	c.Status(http.StatusNoContent)
}
