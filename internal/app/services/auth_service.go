package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/deniz/learnhub/internal/app/models"
	"github.com/deniz/learnhub/internal/app/repositories"
	"github.com/deniz/learnhub/internal/pkg/apperrors"
	"github.com/deniz/learnhub/internal/pkg/auth"
	"github.com/deniz/learnhub/internal/pkg/sessionstore"
)

// AuthService handles credential checks, registration and the session record
type AuthService interface {
	Login(ctx context.Context, email, password string) (*models.User, error)
	Register(ctx context.Context, name, email, password string, role models.Role) (*models.User, error)
	Logout(ctx context.Context) error
	CurrentUser() *models.User
}

// authServiceImpl implements AuthService
type authServiceImpl struct {
	userRepo repositories.UserRepository
	sessions *sessionstore.Store
	logger   zerolog.Logger

	mu      sync.RWMutex
	current *models.User

	now   func() time.Time
	newID func() string
}

// NewAuthService creates a new AuthService. A previously persisted session
// record, when present, is loaded as the current session without
// re-validating credentials.
func NewAuthService(
	userRepo repositories.UserRepository,
	sessions *sessionstore.Store,
	logger zerolog.Logger,
) AuthService {
	s := &authServiceImpl{
		userRepo: userRepo,
		sessions: sessions,
		logger:   logger,
		now:      time.Now,
		newID:    uuid.NewString,
	}

	if user, err := sessions.Load(); err != nil {
		logger.Warn().Err(err).Msg("Failed to load persisted session record")
	} else if user != nil {
		s.current = user
		logger.Info().Str("userID", user.ID).Msg("Session restored from durable storage")
	}

	return s
}

// Login checks the credentials against the directory. Both email and
// password are matched exactly; any miss is ErrInvalidCredentials. On
// success the password-stripped user becomes the current session and is
// persisted. Failures leave directory and session unchanged.
func (s *authServiceImpl) Login(ctx context.Context, emailAddr, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	sanitized := user.Sanitized()
	if err := s.setSession(sanitized); err != nil {
		return nil, err
	}

	s.logger.Info().Str("userID", sanitized.ID).Msg("User logged in")
	return &sanitized, nil
}

// Register appends a new directory entry and signs it in. An email
// collision fails with ErrEmailAlreadyExists before any state changes.
func (s *authServiceImpl) Register(ctx context.Context, name, emailAddr, password string, role models.Role) (*models.User, error) {
	if !role.Valid() {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "invalid role")
	}

	exists, err := s.userRepo.EmailExists(ctx, emailAddr)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           s.newID(),
		Email:        emailAddr,
		PasswordHash: hash,
		Name:         name,
		Role:         role,
		CreatedAt:    s.now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	sanitized := user.Sanitized()
	if err := s.setSession(sanitized); err != nil {
		return nil, err
	}

	s.logger.Info().Str("userID", sanitized.ID).Str("role", string(role)).Msg("User registered")
	return &sanitized, nil
}

// Logout clears the current session and its durable record. It always
// succeeds from the caller's perspective.
func (s *authServiceImpl) Logout(_ context.Context) error {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	if err := s.sessions.Clear(); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to clear session record")
	}

	s.logger.Info().Msg("User logged out")
	return nil
}

// CurrentUser returns the signed-in user, or nil when signed out.
func (s *authServiceImpl) CurrentUser() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil
	}
	user := *s.current
	return &user
}

func (s *authServiceImpl) setSession(user models.User) error {
	if err := s.sessions.Save(user); err != nil {
		return err
	}

	s.mu.Lock()
	s.current = &user
	s.mu.Unlock()
	return nil
}
