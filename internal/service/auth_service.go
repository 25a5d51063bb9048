package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"courtsense/training-app/internal/domain"
	"courtsense/training-app/internal/repository"
)

// --- Error Definitions ---
var (
	ErrUserAlreadyExists    = errors.New("user with this email already exists")
	ErrAuthenticationFailed = errors.New("authentication failed: invalid credentials")
	ErrHashingFailed        = errors.New("failed to hash password")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")
	ErrChildNotFound        = errors.New("child profile not found")
	ErrNotYourChild         = errors.New("child profile does not belong to this parent")
)

// --- Service Interface ---
type AuthService interface {
	RegisterParent(ctx context.Context, name, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (token string, user *domain.User, err error)
	CreateChild(ctx context.Context, parentID primitive.ObjectID, name, passcode string) (*domain.User, error)
	ChildLogin(ctx context.Context, childID primitive.ObjectID, passcode string) (token string, user *domain.User, err error)
	GetJWTSecret() string
}

// --- Service Implementation ---

// authService implements the AuthService interface.
type authService struct {
	userRepo      repository.UserRepository
	jwtSecret     string
	jwtExpiration time.Duration
}

// NewAuthService creates a new instance of authService.
func NewAuthService(userRepo repository.UserRepository, jwtSecret string, jwtExpiration time.Duration) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	if jwtExpiration <= 0 {
		jwtExpiration = 12 * time.Hour
	}
	return &authService{
		userRepo:      userRepo,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// RegisterParent handles new parent-account registration.
func (s *authService) RegisterParent(ctx context.Context, name, email, password string) (*domain.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, errors.New("name, email, and password cannot be empty")
	}

	_, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, ErrUserAlreadyExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrHashingFailed
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         domain.RoleParent,
	}

	userID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		// The unique email index closes the check-then-create race.
		return nil, err
	}
	user.ID = userID

	user.PasswordHash = ""
	return user, nil
}

// Login authenticates a parent by email and password and returns a JWT.
func (s *authService) Login(ctx context.Context, email, password string) (token string, user *domain.User, err error) {
	if email == "" || password == "" {
		err = errors.New("email and password cannot be empty")
		return
	}

	user, err = s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			err = ErrAuthenticationFailed
			return
		}
		return
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		err = ErrAuthenticationFailed
		user = nil
		return
	}

	token, err = s.generateJWT(user)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	user.PasswordHash = ""
	return token, user, nil
}

// CreateChild creates a child profile under a parent account. Children have
// no email; they authenticate with their profile id and a numeric passcode.
func (s *authService) CreateChild(ctx context.Context, parentID primitive.ObjectID, name, passcode string) (*domain.User, error) {
	if name == "" || len(passcode) < 4 {
		return nil, errors.New("child name and a passcode of at least 4 characters are required")
	}
	if parentID == primitive.NilObjectID {
		return nil, errors.New("parent ID is required")
	}

	parent, err := s.userRepo.GetByID(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if !parent.IsParent() {
		return nil, errors.New("only parent accounts can create child profiles")
	}

	hashedPasscode, err := bcrypt.GenerateFromPassword([]byte(passcode), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrHashingFailed
	}

	child := &domain.User{
		Name:         name,
		PasswordHash: string(hashedPasscode),
		Role:         domain.RoleChild,
		ParentID:     &parentID,
		Settings: &domain.ChildSettings{
			MaxDailyMinutes:        0, // no cap until the parent sets one
			IntenseDrillsPermitted: true,
		},
	}

	childID, err := s.userRepo.Create(ctx, child)
	if err != nil {
		return nil, err
	}
	child.ID = childID

	if err := s.userRepo.AddChildIDToParent(ctx, parentID, childID); err != nil {
		return nil, err
	}

	child.PasswordHash = ""
	return child, nil
}

// ChildLogin authenticates a child by profile id and passcode.
func (s *authService) ChildLogin(ctx context.Context, childID primitive.ObjectID, passcode string) (token string, user *domain.User, err error) {
	if childID == primitive.NilObjectID || passcode == "" {
		err = errors.New("child ID and passcode cannot be empty")
		return
	}

	user, err = s.userRepo.GetByID(ctx, childID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			err = ErrAuthenticationFailed
			return
		}
		return
	}
	if !user.IsChild() {
		err = ErrAuthenticationFailed
		user = nil
		return
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(passcode))
	if err != nil {
		err = ErrAuthenticationFailed
		user = nil
		return
	}

	token, err = s.generateJWT(user)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	user.PasswordHash = ""
	return token, user, nil
}

// --- JWT Helper ---

// jwtClaims defines the structure of the JWT payload.
type jwtClaims struct {
	UserID string      `json:"uid"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// generateJWT creates a new JWT token for the given user.
func (s *authService) generateJWT(user *domain.User) (string, error) {
	expirationTime := time.Now().Add(s.jwtExpiration)
	claims := &jwtClaims{
		UserID: user.ID.Hex(),
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.Hex(),
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "courtsense",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", err
	}
	return signedToken, nil
}

// GetJWTSecret returns the JWT secret for middleware authentication
func (s *authService) GetJWTSecret() string {
	return s.jwtSecret
}
