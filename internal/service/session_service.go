package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"courtsense/training-app/internal/catalog"
	"courtsense/training-app/internal/domain"
	"courtsense/training-app/internal/engine"
	"courtsense/training-app/internal/repository"
	"courtsense/training-app/internal/storage"
)

// --- Error Definitions ---
var (
	ErrSessionValidation   = errors.New("training session validation failed")
	ErrSessionNotFound     = errors.New("training session not found")
	ErrSessionNotOwned     = errors.New("training session does not belong to this child")
	ErrHighlightNotFound   = errors.New("no highlight clip attached to this session")
	ErrHighlightAccess     = errors.New("access denied to this highlight clip")
	ErrUploadURLError      = errors.New("failed to generate upload URL")
	ErrDownloadURLError    = errors.New("failed to generate download URL")
	ErrUploadConfirmFailed = errors.New("failed to confirm highlight upload")
)

// How far back the engine looks when building consistency stats.
const consistencyHistoryDays = 365

// How many recent sessions the completion check examines.
const completionLookback = 60

// SessionInput carries a child's post-activity log entry.
type SessionInput struct {
	DrillID         string
	ActivityType    string
	EffortLevel     int
	Mood            domain.Mood
	DurationMinutes int
	Wins            []string
	FocusAreas      []string
}

// LogResult reports the created session plus any arc completion it triggered.
type LogResult struct {
	Session      *domain.TrainingSession `json:"session"`
	CompletedArc *catalog.Arc            `json:"completedArc,omitempty"`
}

// Consistency bundles the streak and weekly counts for display and for the
// plan builder's motivational gating.
type Consistency struct {
	Streak       int   `json:"streak"`
	WeeklyCounts []int `json:"weeklyCounts"`
}

// UploadURLResponse returns a presigned URL and the object key the client
// reports back on confirm.
type UploadURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
}

// --- Service Interface ---
type SessionService interface {
	// LogSession validates and persists a session, then attempts arc
	// completion: a qualifying session on the final scheduled day closes the
	// child's open enrollment.
	LogSession(ctx context.Context, childID primitive.ObjectID, input SessionInput) (*LogResult, error)

	GetRecentSessions(ctx context.Context, childID primitive.ObjectID, limit int) ([]domain.TrainingSession, error)
	GetConsistency(ctx context.Context, childID primitive.ObjectID, weeks int, now time.Time) (*Consistency, error)

	// Highlight clip upload flow (two-phase presigned S3 upload).
	RequestHighlightUploadURL(ctx context.Context, childID, sessionID primitive.ObjectID, contentType string) (*UploadURLResponse, error)
	ConfirmHighlightUpload(ctx context.Context, childID, sessionID primitive.ObjectID, objectKey, fileName string, size int64, contentType string) (*domain.Highlight, error)
	GetHighlightDownloadURL(ctx context.Context, requesterID primitive.ObjectID, role domain.Role, sessionID primitive.ObjectID) (string, error)
}

// --- Service Implementation ---

type sessionService struct {
	sessionRepo    repository.SessionRepository
	enrollmentRepo repository.EnrollmentRepository
	highlightRepo  repository.HighlightRepository
	userRepo       repository.UserRepository
	fileStorage    storage.FileStorage
}

// NewSessionService creates a new instance of sessionService.
func NewSessionService(
	sessionRepo repository.SessionRepository,
	enrollmentRepo repository.EnrollmentRepository,
	highlightRepo repository.HighlightRepository,
	userRepo repository.UserRepository,
	fileStorage storage.FileStorage,
) SessionService {
	return &sessionService{
		sessionRepo:    sessionRepo,
		enrollmentRepo: enrollmentRepo,
		highlightRepo:  highlightRepo,
		userRepo:       userRepo,
		fileStorage:    fileStorage,
	}
}

func (s *sessionService) LogSession(ctx context.Context, childID primitive.ObjectID, input SessionInput) (*LogResult, error) {
	if childID == primitive.NilObjectID {
		return nil, errors.New("child ID is required")
	}
	if err := validateSessionInput(input); err != nil {
		return nil, err
	}

	session := &domain.TrainingSession{
		ChildID:         childID,
		DrillID:         input.DrillID,
		ActivityType:    input.ActivityType,
		EffortLevel:     input.EffortLevel,
		Mood:            input.Mood,
		DurationMinutes: input.DurationMinutes,
		Wins:            input.Wins,
		FocusAreas:      input.FocusAreas,
	}

	sessionID, err := s.sessionRepo.Create(ctx, session)
	if err != nil {
		return nil, err
	}
	session.ID = sessionID

	result := &LogResult{Session: session}

	completedArc, err := s.tryCompleteArc(ctx, childID)
	if err != nil {
		return nil, err
	}
	result.CompletedArc = completedArc
	return result, nil
}

// tryCompleteArc runs the engagement-aware completion check against the
// child's open enrollment, if there is one.
func (s *sessionService) tryCompleteArc(ctx context.Context, childID primitive.ObjectID) (*catalog.Arc, error) {
	open, err := s.enrollmentRepo.GetOpenByChildID(ctx, childID)
	if err != nil {
		return nil, err
	}
	if len(open) == 0 {
		return nil, nil
	}
	if len(open) > 1 {
		return nil, &engine.InvariantViolationError{
			Msg: fmt.Sprintf("child %s has %d open enrollments", childID.Hex(), len(open)),
		}
	}

	enrollment := open[0]
	arc, ok := catalog.ArcByID(catalog.ArcID(enrollment.ArcID))
	if !ok {
		return nil, &engine.InvariantViolationError{
			Msg: fmt.Sprintf("enrollment %s references unknown arc %q", enrollment.ID.Hex(), enrollment.ArcID),
		}
	}

	sessions, err := s.sessionRepo.ListRecentByChildID(ctx, childID, completionLookback)
	if err != nil {
		return nil, err
	}

	updated, done := engine.CompleteIfEligible(enrollment, arc, sessions, time.Now().UTC())
	if !done {
		return nil, nil
	}
	if err := s.enrollmentRepo.Update(ctx, &updated); err != nil {
		return nil, err
	}
	return &arc, nil
}

func (s *sessionService) GetRecentSessions(ctx context.Context, childID primitive.ObjectID, limit int) ([]domain.TrainingSession, error) {
	if limit <= 0 {
		limit = 5
	}
	return s.sessionRepo.ListRecentByChildID(ctx, childID, limit)
}

func (s *sessionService) GetConsistency(ctx context.Context, childID primitive.ObjectID, weeks int, now time.Time) (*Consistency, error) {
	if weeks <= 0 {
		weeks = 4
	}
	since := now.AddDate(0, 0, -consistencyHistoryDays)
	dates, err := s.sessionRepo.ListDatesByChildID(ctx, childID, since)
	if err != nil {
		return nil, err
	}
	return &Consistency{
		Streak:       engine.CalculateStreak(dates, now),
		WeeklyCounts: engine.WeeklyCounts(dates, weeks, now),
	}, nil
}

// === Highlight clip flow ===

func (s *sessionService) RequestHighlightUploadURL(ctx context.Context, childID, sessionID primitive.ObjectID, contentType string) (*UploadURLResponse, error) {
	if contentType == "" || !strings.HasPrefix(strings.ToLower(contentType), "video/") {
		return nil, errors.New("invalid or missing video content type")
	}

	if _, err := s.ownedSession(ctx, childID, sessionID); err != nil {
		return nil, err
	}

	uniqueID := uuid.NewString()
	fileExtension := ""
	if parts := strings.Split(contentType, "/"); len(parts) == 2 {
		fileExtension = parts[1]
	}
	objectKey := path.Join("highlights", childID.Hex(), sessionID.Hex(), fmt.Sprintf("%s.%s", uniqueID, fileExtension))

	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, ErrUploadURLError
	}

	return &UploadURLResponse{UploadURL: uploadURL, ObjectKey: objectKey}, nil
}

func (s *sessionService) ConfirmHighlightUpload(ctx context.Context, childID, sessionID primitive.ObjectID, objectKey, fileName string, size int64, contentType string) (*domain.Highlight, error) {
	if objectKey == "" {
		return nil, errors.New("object key is required")
	}

	if _, err := s.ownedSession(ctx, childID, sessionID); err != nil {
		return nil, err
	}

	child, err := s.userRepo.GetByID(ctx, childID)
	if err != nil {
		return nil, err
	}
	parentID := primitive.NilObjectID
	if child.ParentID != nil {
		parentID = *child.ParentID
	}

	highlight := &domain.Highlight{
		SessionID:   sessionID,
		ChildID:     childID,
		ParentID:    parentID,
		S3ObjectKey: objectKey,
		FileName:    fileName,
		ContentType: contentType,
		Size:        size,
	}

	highlightID, err := s.highlightRepo.Create(ctx, highlight)
	if err != nil {
		return nil, ErrUploadConfirmFailed
	}
	highlight.ID = highlightID

	if err := s.sessionRepo.SetHighlightID(ctx, sessionID, highlightID); err != nil {
		return nil, ErrUploadConfirmFailed
	}
	return highlight, nil
}

// GetHighlightDownloadURL serves the child who owns the clip and that
// child's parent, nobody else.
func (s *sessionService) GetHighlightDownloadURL(ctx context.Context, requesterID primitive.ObjectID, role domain.Role, sessionID primitive.ObjectID) (string, error) {
	highlight, err := s.highlightRepo.GetBySessionID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrHighlightNotFound
		}
		return "", err
	}

	switch role {
	case domain.RoleChild:
		if highlight.ChildID != requesterID {
			return "", ErrHighlightAccess
		}
	case domain.RoleParent:
		if highlight.ParentID != requesterID {
			return "", ErrHighlightAccess
		}
	default:
		return "", ErrHighlightAccess
	}

	downloadURL, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, highlight.S3ObjectKey, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", ErrDownloadURLError
	}
	return downloadURL, nil
}

// ownedSession fetches a session and verifies it belongs to the child.
func (s *sessionService) ownedSession(ctx context.Context, childID, sessionID primitive.ObjectID) (*domain.TrainingSession, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if session.ChildID != childID {
		return nil, ErrSessionNotOwned
	}
	return session, nil
}

// validateSessionInput rejects out-of-range fields at the boundary.
func validateSessionInput(input SessionInput) error {
	if input.EffortLevel < 1 || input.EffortLevel > 10 {
		return fmt.Errorf("%w: effort level must be between 1 and 10", ErrSessionValidation)
	}
	if input.DurationMinutes <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrSessionValidation)
	}
	if input.DrillID != "" {
		if _, ok := catalog.DrillByID(catalog.DrillID(input.DrillID)); !ok {
			return fmt.Errorf("%w: unknown drill %q", ErrSessionValidation, input.DrillID)
		}
	}
	for _, list := range [][]string{input.Wins, input.FocusAreas} {
		if len(list) > domain.MaxSessionListEntries {
			return fmt.Errorf("%w: at most %d entries allowed", ErrSessionValidation, domain.MaxSessionListEntries)
		}
		for _, entry := range list {
			if entry == "" || len(entry) > domain.MaxSessionListEntryChars {
				return fmt.Errorf("%w: entries must be 1-%d characters", ErrSessionValidation, domain.MaxSessionListEntryChars)
			}
		}
	}
	return nil
}
