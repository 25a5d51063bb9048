package api

import (
	"courtsense/training-app/internal/domain"
	"courtsense/training-app/internal/service"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SessionHandler holds the session service dependency.
type SessionHandler struct {
	sessionService service.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessionService service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// --- Request/Response Structs ---

type LogSessionRequest struct {
	DrillID         string      `json:"drillId"`
	ActivityType    string      `json:"activityType"`
	EffortLevel     int         `json:"effortLevel" binding:"required,min=1,max=10"`
	Mood            domain.Mood `json:"mood" binding:"required,oneof=excited focused okay tired stressed"`
	DurationMinutes int         `json:"durationMinutes" binding:"required,min=1"`
	Wins            []string    `json:"wins" binding:"omitempty,max=3,dive,min=1,max=60"`
	FocusAreas      []string    `json:"focusAreas" binding:"omitempty,max=3,dive,min=1,max=60"`
}

type RequestUploadURLRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

type ConfirmUploadRequest struct {
	ObjectKey   string `json:"objectKey" binding:"required"`
	FileName    string `json:"fileName" binding:"required"`
	Size        int64  `json:"size" binding:"required,min=1"`
	ContentType string `json:"contentType" binding:"required"`
}

type DownloadURLResponse struct {
	DownloadURL string `json:"downloadUrl"`
}

// --- Handler Methods ---

// LogSession records a completed training session. The response includes the
// arc the session completed, if it did.
func (h *SessionHandler) LogSession(c *gin.Context) {
	childID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	var req LogSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	result, err := h.sessionService.LogSession(c.Request.Context(), childID, service.SessionInput{
		DrillID:         req.DrillID,
		ActivityType:    req.ActivityType,
		EffortLevel:     req.EffortLevel,
		Mood:            req.Mood,
		DurationMinutes: req.DurationMinutes,
		Wins:            req.Wins,
		FocusAreas:      req.FocusAreas,
	})
	if err != nil {
		if errors.Is(err, service.ErrSessionValidation) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to log session")
		}
		return
	}

	c.JSON(http.StatusCreated, result)
}

// GetRecentSessions returns the child's latest sessions, newest first.
func (h *SessionHandler) GetRecentSessions(c *gin.Context) {
	childID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
	sessions, err := h.sessionService.GetRecentSessions(c.Request.Context(), childID, limit)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch sessions")
		return
	}

	c.JSON(http.StatusOK, sessions)
}

// GetConsistency returns the current streak and per-week session counts.
func (h *SessionHandler) GetConsistency(c *gin.Context) {
	childID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	weeks, _ := strconv.Atoi(c.DefaultQuery("weeks", "4"))
	consistency, err := h.sessionService.GetConsistency(c.Request.Context(), childID, weeks, time.Now().UTC())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch consistency stats")
		return
	}

	c.JSON(http.StatusOK, consistency)
}

// RequestHighlightUploadURL returns a presigned S3 PUT URL for a clip.
func (h *SessionHandler) RequestHighlightUploadURL(c *gin.Context) {
	childID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	sessionID, err := primitive.ObjectIDFromHex(c.Param("sessionId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid session ID format")
		return
	}

	var req RequestUploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	resp, err := h.sessionService.RequestHighlightUploadURL(c.Request.Context(), childID, sessionID, req.ContentType)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrSessionNotOwned):
			abortWithError(c, http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrUploadURLError):
			abortWithError(c, http.StatusInternalServerError, err.Error())
		default:
			abortWithError(c, http.StatusBadRequest, err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ConfirmHighlightUpload records the clip metadata after the client finishes
// the S3 upload.
func (h *SessionHandler) ConfirmHighlightUpload(c *gin.Context) {
	childID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	sessionID, err := primitive.ObjectIDFromHex(c.Param("sessionId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid session ID format")
		return
	}

	var req ConfirmUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	highlight, err := h.sessionService.ConfirmHighlightUpload(
		c.Request.Context(), childID, sessionID, req.ObjectKey, req.FileName, req.Size, req.ContentType,
	)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrSessionNotOwned):
			abortWithError(c, http.StatusForbidden, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to confirm upload")
		}
		return
	}

	c.JSON(http.StatusCreated, highlight)
}

// GetHighlightDownloadURL returns a presigned S3 GET URL for a session's clip.
// Reachable by the owning child and that child's parent.
func (h *SessionHandler) GetHighlightDownloadURL(c *gin.Context) {
	requesterID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}
	role, err := getUserRoleFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user role from token")
		return
	}

	sessionID, err := primitive.ObjectIDFromHex(c.Param("sessionId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid session ID format")
		return
	}

	url, err := h.sessionService.GetHighlightDownloadURL(c.Request.Context(), requesterID, role, sessionID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrHighlightNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrHighlightAccess):
			abortWithError(c, http.StatusForbidden, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to generate download URL")
		}
		return
	}

	c.JSON(http.StatusOK, DownloadURLResponse{DownloadURL: url})
}
