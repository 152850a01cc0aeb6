package database

import (
	"database/sql"
	"fmt"
	"time"

	"socialhub/pkg/logger"
)

type Migration struct {
	ID        int64
	Name      string
	AppliedAt time.Time
}

type MigrationService struct {
	db     *sql.DB
	logger logger.Logger
}

func NewMigrationService(db *sql.DB, logger logger.Logger) *MigrationService {
	return &MigrationService{
		db:     db,
		logger: logger,
	}
}

func (m *MigrationService) InitMigrationTable() error {
	query := `
    CREATE TABLE IF NOT EXISTS migrations (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        name TEXT NOT NULL UNIQUE,
        applied_at TIMESTAMP NOT NULL
    )
    `

	_, err := m.db.Exec(query)
	if err != nil {
		m.logger.Error("failed to create migrations table", map[string]interface{}{"error": err.Error()})
		return err
	}

	return nil
}

func (m *MigrationService) IsMigrationApplied(name string) (bool, error) {
	var count int
	query := "SELECT COUNT(*) FROM migrations WHERE name = ?"
	err := m.db.QueryRow(query, name).Scan(&count)
	if err != nil {
		m.logger.Error("failed to check migration status", map[string]interface{}{"name": name, "error": err.Error()})
		return false, err
	}

	return count > 0, nil
}

func (m *MigrationService) RecordMigration(name string) error {
	query := "INSERT INTO migrations (name, applied_at) VALUES (?, ?)"
	_, err := m.db.Exec(query, name, time.Now())
	if err != nil {
		m.logger.Error("failed to record migration", map[string]interface{}{"name": name, "error": err.Error()})
		return err
	}

	return nil
}

func (m *MigrationService) ApplyMigration(name string, migrationFunc func(*sql.DB) error) error {
	applied, err := m.IsMigrationApplied(name)
	if err != nil {
		return err
	}

	if applied {
		m.logger.Debug("migration already applied", map[string]interface{}{"name": name})
		return nil
	}

	m.logger.Info("applying migration", map[string]interface{}{"name": name})

	if err := migrationFunc(m.db); err != nil {
		m.logger.Error("failed to apply migration", map[string]interface{}{"name": name, "error": err.Error()})
		return err
	}

	if err := m.RecordMigration(name); err != nil {
		return err
	}

	m.logger.Info("migration applied", map[string]interface{}{"name": name})
	return nil
}

func (m *MigrationService) RunMigrations() error {
	m.logger.Info("running migrations", map[string]interface{}{})

	if err := m.InitMigrationTable(); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	migrations := []struct {
		Name string
		Func func(*sql.DB) error
	}{
		{"create_users_table", CreateUsersTable},
		{"create_posts_table", CreatePostsTable},
		{"create_audit_logs_table", CreateAuditLogsTable},
	}

	for _, migration := range migrations {
		if err := m.ApplyMigration(migration.Name, migration.Func); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", migration.Name, err)
		}
	}

	return nil
}

func CreateUsersTable(db *sql.DB) error {
	query := `
    CREATE TABLE IF NOT EXISTS users (
        id TEXT PRIMARY KEY,
        username TEXT NOT NULL UNIQUE,
        email TEXT NOT NULL UNIQUE,
        password_hash TEXT NOT NULL,
        reset_token TEXT,
        reset_expires TIMESTAMP,
        post_ids TEXT NOT NULL DEFAULT '[]',
        created_at TIMESTAMP NOT NULL,
        updated_at TIMESTAMP NOT NULL
    )
    `

	_, err := db.Exec(query)
	return err
}

func CreatePostsTable(db *sql.DB) error {
	query := `
    CREATE TABLE IF NOT EXISTS posts (
        id TEXT PRIMARY KEY,
        owner_id TEXT NOT NULL,
        kind TEXT NOT NULL DEFAULT 'text',
        content TEXT,
        image_url TEXT,
        video_url TEXT,
        link_url TEXT,
        liked_by TEXT NOT NULL DEFAULT '[]',
        comments TEXT NOT NULL DEFAULT '[]',
        created_at TIMESTAMP NOT NULL,
        updated_at TIMESTAMP NOT NULL,
        FOREIGN KEY (owner_id) REFERENCES users (id)
    );

    CREATE INDEX IF NOT EXISTS posts_owner_id_idx ON posts (owner_id);
    `

	_, err := db.Exec(query)
	return err
}

func CreateAuditLogsTable(db *sql.DB) error {
	query := `
    CREATE TABLE IF NOT EXISTS audit_logs (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        entity_type TEXT NOT NULL,
        entity_id TEXT NOT NULL,
        action TEXT NOT NULL,
        details TEXT,
        created_at TIMESTAMP NOT NULL
    )
    `

	_, err := db.Exec(query)
	return err
}
