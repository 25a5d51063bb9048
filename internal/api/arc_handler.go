package api

import (
	"context"
	"courtsense/training-app/internal/catalog"
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

// ArcHandler holds the arc service dependency.
type ArcHandler struct {
	arcService service.ArcService
}

// NewArcHandler creates a new ArcHandler.
func NewArcHandler(arcService service.ArcService) *ArcHandler {
	return &ArcHandler{arcService: arcService}
}

// --- Request/Response Structs ---

type StartArcRequest struct {
	ArcID string `json:"arcId" binding:"required"`
}

// --- Handler Methods ---

// ListArcs returns the full arc catalog in its default display order.
func (h *ArcHandler) ListArcs(c *gin.Context) {
	c.JSON(http.StatusOK, h.arcService.ListArcs(c.Request.Context()))
}

// StartArc enrolls the child in an arc. Only one arc may be active or paused
// at a time.
func (h *ArcHandler) StartArc(c *gin.Context) {
	childID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	var req StartArcRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	enrollment, err := h.arcService.StartArc(c.Request.Context(), childID, catalog.ArcID(req.ArcID))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrArcNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrArcAlreadyOpen):
			abortWithError(c, http.StatusConflict, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to start arc")
		}
		return
	}

	c.JSON(http.StatusCreated, enrollment)
}

// PauseArc pauses the child's open arc. Paused days do not advance the arc
// schedule.
func (h *ArcHandler) PauseArc(c *gin.Context) {
	h.transition(c, h.arcService.PauseArc)
}

// ResumeArc resumes a paused arc.
func (h *ArcHandler) ResumeArc(c *gin.Context) {
	h.transition(c, h.arcService.ResumeArc)
}

// GetProgress returns day index and percent complete for the open arc.
func (h *ArcHandler) GetProgress(c *gin.Context) {
	childID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	progress, err := h.arcService.GetProgress(c.Request.Context(), childID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, service.ErrNoOpenEnrollment) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to fetch arc progress")
		}
		return
	}

	c.JSON(http.StatusOK, progress)
}

// SuggestNext returns the first uncompleted arc in catalog order.
func (h *ArcHandler) SuggestNext(c *gin.Context) {
	childID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	next, err := h.arcService.SuggestNextArc(c.Request.Context(), childID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to suggest next arc")
		return
	}

	c.JSON(http.StatusOK, next)
}

type arcTransition func(ctx context.Context, childID primitive.ObjectID) (*domain.ArcEnrollment, error)

func (h *ArcHandler) transition(c *gin.Context, fn arcTransition) {
	childID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	enrollment, err := fn(c.Request.Context(), childID)
	if err != nil {
		if errors.Is(err, service.ErrNoOpenEnrollment) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else if engine.IsInvariantViolation(err) {
			abortWithError(c, http.StatusInternalServerError, "Enrollment state is inconsistent")
		} else {
			// Wrong-status transitions (pause a paused arc, resume an active one).
			abortWithError(c, http.StatusConflict, err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, enrollment)
}
