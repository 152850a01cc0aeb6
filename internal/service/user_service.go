package service

import (
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"socialhub/internal/domain"
	"socialhub/pkg/logger"
)

type UserService struct {
	repo        domain.UserRepository
	auditLogSvc domain.AuditLogService
	logger      logger.Logger
}

func NewUserService(repo domain.UserRepository, auditLogSvc domain.AuditLogService, logger logger.Logger) domain.UserService {
	return &UserService{
		repo:        repo,
		auditLogSvc: auditLogSvc,
		logger:      logger,
	}
}

func (s *UserService) Register(username, email, password string) (*domain.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, domain.ErrMissingFields
	}

	// Uniqueness is checked with a single lookup matching either field.
	// Username collisions win when both fields collide.
	existing, err := s.repo.FindByUsernameOrEmail(username, email)
	if err != nil {
		s.logger.Error("failed to check for existing user", map[string]interface{}{"username": username, "error": err.Error()})
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	if existing != nil {
		if existing.Username == username {
			return nil, domain.ErrUsernameTaken
		}
		return nil, domain.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("failed to hash password", map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		PostIDs:      []string{},
	}

	if err := s.repo.Create(user); err != nil {
		s.logger.Error("failed to create user", map[string]interface{}{"username": username, "error": err.Error()})
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	if err := s.auditLogSvc.LogAction(domain.EntityTypeUser, user.ID, domain.ActionTypeCreate, fmt.Sprintf("user registered: %s", username)); err != nil {
		s.logger.Warn("failed to write audit log", map[string]interface{}{"user_id": user.ID, "error": err.Error()})
	}

	s.logger.Info("user registered", map[string]interface{}{"user_id": user.ID, "username": username})

	return user, nil
}

func (s *UserService) GetUserByUsername(username string) (*domain.User, error) {
	user, err := s.repo.FindByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	return user, nil
}

// VerifyCredential fails closed: an unknown username and a wrong password both
// come back as the same ErrInvalidCredential, so callers cannot enumerate
// usernames through the response.
func (s *UserService) VerifyCredential(username, password string) (*domain.User, error) {
	user, err := s.repo.FindByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("failed to verify credential: %w", err)
	}

	if user == nil {
		return nil, domain.ErrInvalidCredential
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredential
	}

	return user, nil
}
