package service

import (
	"fmt"
	"time"

	"socialhub/internal/domain"
	"socialhub/pkg/logger"
)

type AuditLogService struct {
	repo   domain.AuditLogRepository
	logger logger.Logger
}

func NewAuditLogService(repo domain.AuditLogRepository, logger logger.Logger) domain.AuditLogService {
	return &AuditLogService{
		repo:   repo,
		logger: logger,
	}
}

func (s *AuditLogService) LogAction(entityType domain.EntityType, entityID string, action domain.ActionType, details string) error {
	auditLog := &domain.AuditLog{
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Details:    details,
		CreatedAt:  time.Now(),
	}

	if err := s.repo.Create(auditLog); err != nil {
		s.logger.Error("failed to create audit log", map[string]interface{}{
			"entity_type": entityType,
			"entity_id":   entityID,
			"action":      action,
			"error":       err.Error(),
		})
		return fmt.Errorf("failed to create audit log: %w", err)
	}

	return nil
}

func (s *AuditLogService) GetEntityLogs(entityType domain.EntityType, entityID string) ([]*domain.AuditLog, error) {
	logs, err := s.repo.FindByEntityID(entityType, entityID)
	if err != nil {
		s.logger.Error("failed to fetch audit logs", map[string]interface{}{
			"entity_type": entityType,
			"entity_id":   entityID,
			"error":       err.Error(),
		})
		return nil, fmt.Errorf("failed to fetch audit logs: %w", err)
	}

	return logs, nil
}
