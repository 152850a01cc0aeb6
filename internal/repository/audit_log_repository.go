package repository

import (
	"database/sql"
	"fmt"
	"time"

	"socialhub/internal/domain"
	"socialhub/pkg/logger"
)

type AuditLogRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewAuditLogRepository(db *sql.DB, logger logger.Logger) domain.AuditLogRepository {
	return &AuditLogRepository{
		db:     db,
		logger: logger,
	}
}

func (r *AuditLogRepository) Create(log *domain.AuditLog) error {
	query := `
		INSERT INTO audit_logs (entity_type, entity_id, action, details, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	log.CreatedAt = time.Now()

	res, err := r.db.Exec(
		query,
		string(log.EntityType),
		log.EntityID,
		string(log.Action),
		log.Details,
		log.CreatedAt,
	)

	if err != nil {
		r.logger.Error("failed to create audit log", map[string]interface{}{"error": err.Error()})
		return fmt.Errorf("failed to create audit log: %w", err)
	}

	log.ID, _ = res.LastInsertId()

	return nil
}

func (r *AuditLogRepository) FindByEntityID(entityType domain.EntityType, entityID string) ([]*domain.AuditLog, error) {
	query := `
		SELECT id, entity_type, entity_id, action, details, created_at
		FROM audit_logs
		WHERE entity_type = ? AND entity_id = ?
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(query, string(entityType), entityID)
	if err != nil {
		r.logger.Error("failed to query audit logs", map[string]interface{}{
			"entity_type": entityType,
			"entity_id":   entityID,
			"error":       err.Error(),
		})
		return nil, fmt.Errorf("failed to query audit logs: %w", err)
	}
	defer rows.Close()

	logs := make([]*domain.AuditLog, 0)
	for rows.Next() {
		var log domain.AuditLog
		var entityTypeStr, actionStr string
		var details sql.NullString

		err := rows.Scan(
			&log.ID,
			&entityTypeStr,
			&log.EntityID,
			&actionStr,
			&details,
			&log.CreatedAt,
		)
		if err != nil {
			r.logger.Error("failed to read audit log row", map[string]interface{}{"error": err.Error()})
			return nil, fmt.Errorf("failed to read audit log row: %w", err)
		}

		log.EntityType = domain.EntityType(entityTypeStr)
		log.Action = domain.ActionType(actionStr)
		log.Details = details.String

		logs = append(logs, &log)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to query audit logs: %w", err)
	}

	return logs, nil
}
