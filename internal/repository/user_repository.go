package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"socialhub/internal/domain"
	"socialhub/pkg/logger"
	"socialhub/pkg/metrics"
)

const userColumns = "id, username, email, password_hash, reset_token, reset_expires, post_ids, created_at, updated_at"

type UserRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewUserRepository(db *sql.DB, logger logger.Logger) domain.UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

func (r *UserRepository) scanUser(row *sql.Row) (*domain.User, error) {
	var user domain.User
	var resetToken sql.NullString
	var resetExpires sql.NullTime
	var postIDs string

	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&resetToken,
		&resetExpires,
		&postIDs,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	user.ResetToken = resetToken.String
	if resetExpires.Valid {
		t := resetExpires.Time
		user.ResetExpires = &t
	}

	if err := json.Unmarshal([]byte(postIDs), &user.PostIDs); err != nil {
		return nil, fmt.Errorf("failed to decode post_ids: %w", err)
	}

	return &user, nil
}

func (r *UserRepository) FindByID(id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`

	user, err := r.scanUser(r.db.QueryRow(query, id))
	if err != nil {
		r.logger.Error("failed to look up user by id", map[string]interface{}{"id": id, "error": err.Error()})
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	return user, nil
}

func (r *UserRepository) FindByUsername(username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = ?`

	user, err := r.scanUser(r.db.QueryRow(query, username))
	if err != nil {
		r.logger.Error("failed to look up user by username", map[string]interface{}{"username": username, "error": err.Error()})
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	return user, nil
}

func (r *UserRepository) FindByEmail(email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`

	user, err := r.scanUser(r.db.QueryRow(query, email))
	if err != nil {
		r.logger.Error("failed to look up user by email", map[string]interface{}{"email": email, "error": err.Error()})
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	return user, nil
}

// FindByUsernameOrEmail returns the first user matching either field. It backs
// the registration conflict check, which must be a single lookup.
func (r *UserRepository) FindByUsernameOrEmail(username, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = ? OR email = ? LIMIT 1`

	user, err := r.scanUser(r.db.QueryRow(query, username, email))
	if err != nil {
		r.logger.Error("failed to look up user by username or email", map[string]interface{}{"username": username, "error": err.Error()})
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	return user, nil
}

func (r *UserRepository) FindByResetToken(token string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE reset_token = ?`

	user, err := r.scanUser(r.db.QueryRow(query, token))
	if err != nil {
		r.logger.Error("failed to look up user by reset token", map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	return user, nil
}

func (r *UserRepository) Create(user *domain.User) error {
	query := `
		INSERT INTO users (id, username, email, password_hash, reset_token, reset_expires, post_ids, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	if user.PostIDs == nil {
		user.PostIDs = []string{}
	}

	postIDs, err := json.Marshal(user.PostIDs)
	if err != nil {
		return fmt.Errorf("failed to encode post_ids: %w", err)
	}

	start := time.Now()
	_, err = r.db.Exec(
		query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		nullableString(user.ResetToken),
		nullableTime(user.ResetExpires),
		string(postIDs),
		user.CreatedAt,
		user.UpdatedAt,
	)
	metrics.RecordDatabaseOperation("create", "user", time.Since(start))

	if err != nil {
		r.logger.Error("failed to create user", map[string]interface{}{"username": user.Username, "error": err.Error()})
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// Update persists the mutable fields of a user row in a single write, so the
// reset token and its expiry always change together.
func (r *UserRepository) Update(user *domain.User) error {
	query := `
		UPDATE users
		SET password_hash = ?, reset_token = ?, reset_expires = ?, post_ids = ?, updated_at = ?
		WHERE id = ?
	`

	user.UpdatedAt = time.Now()

	postIDs, err := json.Marshal(user.PostIDs)
	if err != nil {
		return fmt.Errorf("failed to encode post_ids: %w", err)
	}

	start := time.Now()
	_, err = r.db.Exec(
		query,
		user.PasswordHash,
		nullableString(user.ResetToken),
		nullableTime(user.ResetExpires),
		string(postIDs),
		user.UpdatedAt,
		user.ID,
	)
	metrics.RecordDatabaseOperation("update", "user", time.Since(start))

	if err != nil {
		r.logger.Error("failed to update user", map[string]interface{}{"id": user.ID, "error": err.Error()})
		return fmt.Errorf("failed to update user: %w", err)
	}

	return nil
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func nullableTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return *t
}
