package service

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"socialhub/internal/domain"
	"socialhub/internal/mailer"
	"socialhub/pkg/logger"
	"socialhub/pkg/metrics"
)

// resetTokenBytes is the raw entropy of a reset token; hex-encoding doubles
// the length of the resulting string.
const resetTokenBytes = 32

type PasswordResetService struct {
	repo        domain.UserRepository
	mailer      mailer.Mailer
	auditLogSvc domain.AuditLogService
	logger      logger.Logger
	baseURL     string
	validity    time.Duration
	now         func() time.Time
}

func NewPasswordResetService(
	repo domain.UserRepository,
	m mailer.Mailer,
	auditLogSvc domain.AuditLogService,
	logger logger.Logger,
	baseURL string,
	validity time.Duration,
) *PasswordResetService {
	return &PasswordResetService{
		repo:        repo,
		mailer:      m,
		auditLogSvc: auditLogSvc,
		logger:      logger,
		baseURL:     baseURL,
		validity:    validity,
		now:         time.Now,
	}
}

// RequestReset issues a fresh single-use reset token for the account owning
// the given email and mails a link embedding it. A previously pending token is
// overwritten. The token is persisted before the mail goes out, so a transport
// failure leaves a valid token behind even though the caller sees an error.
func (s *PasswordResetService) RequestReset(email string) error {
	user, err := s.repo.FindByEmail(email)
	if err != nil {
		return fmt.Errorf("failed to request password reset: %w", err)
	}

	if user == nil {
		return domain.ErrEmailNotFound
	}

	token, err := makeResetToken()
	if err != nil {
		s.logger.Error("failed to generate reset token", map[string]interface{}{"error": err.Error()})
		return fmt.Errorf("failed to request password reset: %w", err)
	}

	expires := s.now().Add(s.validity)
	user.ResetToken = token
	user.ResetExpires = &expires

	if err := s.repo.Update(user); err != nil {
		s.logger.Error("failed to store reset token", map[string]interface{}{"user_id": user.ID, "error": err.Error()})
		return fmt.Errorf("failed to request password reset: %w", err)
	}

	resetURL := fmt.Sprintf("%s/reset-password/%s", s.baseURL, token)

	if err := s.mailer.SendPasswordReset(user.Email, resetURL); err != nil {
		metrics.RecordResetMail("failed")
		return fmt.Errorf("failed to request password reset: %w", err)
	}
	metrics.RecordResetMail("sent")

	s.logger.Info("password reset requested", map[string]interface{}{"user_id": user.ID})

	return nil
}

// ConsumeReset exchanges a valid reset token for a new credential. The expiry
// check runs strictly before any mutation; on success the token slot is
// cleared in the same row write as the new hash, making the token single-use.
func (s *PasswordResetService) ConsumeReset(token, newPassword string) error {
	if newPassword == "" {
		return domain.ErrMissingFields
	}

	user, err := s.repo.FindByResetToken(token)
	if err != nil {
		return fmt.Errorf("failed to reset password: %w", err)
	}

	// An unknown token and an already-consumed one are the same case:
	// consumption clears the stored value, so neither matches.
	if user == nil {
		return domain.ErrResetTokenInvalid
	}

	if user.ResetExpires == nil || s.now().After(*user.ResetExpires) {
		return domain.ErrResetTokenExpired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("failed to hash new password", map[string]interface{}{"error": err.Error()})
		return fmt.Errorf("failed to reset password: %w", err)
	}

	user.PasswordHash = string(hash)
	user.ResetToken = ""
	user.ResetExpires = nil

	if err := s.repo.Update(user); err != nil {
		s.logger.Error("failed to store new password", map[string]interface{}{"user_id": user.ID, "error": err.Error()})
		return fmt.Errorf("failed to reset password: %w", err)
	}

	if err := s.auditLogSvc.LogAction(domain.EntityTypeUser, user.ID, domain.ActionTypePasswordReset, "password reset completed"); err != nil {
		s.logger.Warn("failed to write audit log", map[string]interface{}{"user_id": user.ID, "error": err.Error()})
	}

	s.logger.Info("password reset completed", map[string]interface{}{"user_id": user.ID})

	return nil
}

func makeResetToken() (string, error) {
	b := make([]byte, resetTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}
