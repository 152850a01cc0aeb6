package service

import (
	"fmt"
	"time"

	"socialhub/internal/auth"
	"socialhub/internal/domain"
	"socialhub/pkg/logger"
)

type AuthService struct {
	users         domain.UserService
	jwtSecret     []byte
	tokenValidity time.Duration
	logger        logger.Logger
}

func NewAuthService(users domain.UserService, jwtSecret []byte, tokenValidity time.Duration, logger logger.Logger) domain.AuthService {
	return &AuthService{
		users:         users,
		jwtSecret:     jwtSecret,
		tokenValidity: tokenValidity,
		logger:        logger,
	}
}

// Login verifies the credential and issues a session token embedding the user
// id as its sole claim, valid for the configured window from issuance.
func (s *AuthService) Login(username, password string) (string, error) {
	user, err := s.users.VerifyCredential(username, password)
	if err != nil {
		return "", err
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidity)
	if err != nil {
		s.logger.Error("failed to sign session token", map[string]interface{}{"user_id": user.ID, "error": err.Error()})
		return "", fmt.Errorf("failed to issue session token: %w", err)
	}

	s.logger.Info("user logged in", map[string]interface{}{"user_id": user.ID})

	return token, nil
}
