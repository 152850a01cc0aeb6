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

const postColumns = "id, owner_id, kind, content, image_url, video_url, link_url, liked_by, comments, created_at, updated_at"

type PostRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewPostRepository(db *sql.DB, logger logger.Logger) domain.PostRepository {
	return &PostRepository{
		db:     db,
		logger: logger,
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPost(row rowScanner) (*domain.Post, error) {
	var post domain.Post
	var content, imageURL, videoURL, linkURL sql.NullString
	var likedBy, comments string

	err := row.Scan(
		&post.ID,
		&post.OwnerID,
		&post.Kind,
		&content,
		&imageURL,
		&videoURL,
		&linkURL,
		&likedBy,
		&comments,
		&post.CreatedAt,
		&post.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	post.Content = content.String
	post.ImageURL = imageURL.String
	post.VideoURL = videoURL.String
	post.LinkURL = linkURL.String

	if err := json.Unmarshal([]byte(likedBy), &post.LikedBy); err != nil {
		return nil, fmt.Errorf("failed to decode liked_by: %w", err)
	}
	if err := json.Unmarshal([]byte(comments), &post.Comments); err != nil {
		return nil, fmt.Errorf("failed to decode comments: %w", err)
	}

	return &post, nil
}

func (r *PostRepository) FindByID(id string) (*domain.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = ?`

	post, err := scanPost(r.db.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.Error("failed to look up post by id", map[string]interface{}{"id": id, "error": err.Error()})
		return nil, fmt.Errorf("failed to look up post: %w", err)
	}

	return post, nil
}

// FindByIDAndOwner scopes the lookup to the owner, so a non-owner's id simply
// yields no row. Authorization rides on this query.
func (r *PostRepository) FindByIDAndOwner(id, ownerID string) (*domain.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = ? AND owner_id = ?`

	post, err := scanPost(r.db.QueryRow(query, id, ownerID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.Error("failed to look up post by id and owner", map[string]interface{}{"id": id, "owner_id": ownerID, "error": err.Error()})
		return nil, fmt.Errorf("failed to look up post: %w", err)
	}

	return post, nil
}

func (r *PostRepository) FindByOwner(ownerID string) ([]*domain.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE owner_id = ? ORDER BY created_at, id`

	rows, err := r.db.Query(query, ownerID)
	if err != nil {
		r.logger.Error("failed to list posts", map[string]interface{}{"owner_id": ownerID, "error": err.Error()})
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	posts := make([]*domain.Post, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			r.logger.Error("failed to read post row", map[string]interface{}{"error": err.Error()})
			return nil, fmt.Errorf("failed to read post row: %w", err)
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	return posts, nil
}

// CreateForOwner inserts the post and appends its id to the owner's post_ids
// back-reference in one transaction, so either both writes land or neither.
func (r *PostRepository) CreateForOwner(post *domain.Post) error {
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now

	if post.LikedBy == nil {
		post.LikedBy = []string{}
	}
	if post.Comments == nil {
		post.Comments = []domain.Comment{}
	}

	likedBy, err := json.Marshal(post.LikedBy)
	if err != nil {
		return fmt.Errorf("failed to encode liked_by: %w", err)
	}
	comments, err := json.Marshal(post.Comments)
	if err != nil {
		return fmt.Errorf("failed to encode comments: %w", err)
	}

	start := time.Now()
	err = r.withTx(func(tx *sql.Tx) error {
		query := `
			INSERT INTO posts (id, owner_id, kind, content, image_url, video_url, link_url, liked_by, comments, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`

		if _, err := tx.Exec(
			query,
			post.ID,
			post.OwnerID,
			string(post.Kind),
			nullableString(post.Content),
			nullableString(post.ImageURL),
			nullableString(post.VideoURL),
			nullableString(post.LinkURL),
			string(likedBy),
			string(comments),
			post.CreatedAt,
			post.UpdatedAt,
		); err != nil {
			return err
		}

		return r.appendOwnerPostID(tx, post.OwnerID, post.ID)
	})
	metrics.RecordDatabaseOperation("create", "post", time.Since(start))

	if err != nil {
		r.logger.Error("failed to create post", map[string]interface{}{"owner_id": post.OwnerID, "error": err.Error()})
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

// DeleteForOwner removes the post row and pulls its id from the owner's
// post_ids back-reference in one transaction.
func (r *PostRepository) DeleteForOwner(post *domain.Post) error {
	start := time.Now()
	err := r.withTx(func(tx *sql.Tx) error {
		res, err := tx.Exec(`DELETE FROM posts WHERE id = ? AND owner_id = ?`, post.ID, post.OwnerID)
		if err != nil {
			return err
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return sql.ErrNoRows
		}

		return r.removeOwnerPostID(tx, post.OwnerID, post.ID)
	})
	metrics.RecordDatabaseOperation("delete", "post", time.Since(start))

	if err != nil {
		r.logger.Error("failed to delete post", map[string]interface{}{"id": post.ID, "error": err.Error()})
		return fmt.Errorf("failed to delete post: %w", err)
	}

	return nil
}

func (r *PostRepository) Update(post *domain.Post) error {
	query := `
		UPDATE posts
		SET content = ?, image_url = ?, video_url = ?, link_url = ?, liked_by = ?, comments = ?, updated_at = ?
		WHERE id = ?
	`

	post.UpdatedAt = time.Now()

	likedBy, err := json.Marshal(post.LikedBy)
	if err != nil {
		return fmt.Errorf("failed to encode liked_by: %w", err)
	}
	comments, err := json.Marshal(post.Comments)
	if err != nil {
		return fmt.Errorf("failed to encode comments: %w", err)
	}

	start := time.Now()
	_, err = r.db.Exec(
		query,
		nullableString(post.Content),
		nullableString(post.ImageURL),
		nullableString(post.VideoURL),
		nullableString(post.LinkURL),
		string(likedBy),
		string(comments),
		post.UpdatedAt,
		post.ID,
	)
	metrics.RecordDatabaseOperation("update", "post", time.Since(start))

	if err != nil {
		r.logger.Error("failed to update post", map[string]interface{}{"id": post.ID, "error": err.Error()})
		return fmt.Errorf("failed to update post: %w", err)
	}

	return nil
}

func (r *PostRepository) withTx(fn func(tx *sql.Tx) error) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

func (r *PostRepository) appendOwnerPostID(tx *sql.Tx, ownerID, postID string) error {
	postIDs, err := r.ownerPostIDs(tx, ownerID)
	if err != nil {
		return err
	}

	return r.writeOwnerPostIDs(tx, ownerID, append(postIDs, postID))
}

func (r *PostRepository) removeOwnerPostID(tx *sql.Tx, ownerID, postID string) error {
	postIDs, err := r.ownerPostIDs(tx, ownerID)
	if err != nil {
		return err
	}

	kept := postIDs[:0]
	for _, id := range postIDs {
		if id != postID {
			kept = append(kept, id)
		}
	}

	return r.writeOwnerPostIDs(tx, ownerID, kept)
}

func (r *PostRepository) ownerPostIDs(tx *sql.Tx, ownerID string) ([]string, error) {
	var raw string
	if err := tx.QueryRow(`SELECT post_ids FROM users WHERE id = ?`, ownerID).Scan(&raw); err != nil {
		return nil, err
	}

	var postIDs []string
	if err := json.Unmarshal([]byte(raw), &postIDs); err != nil {
		return nil, fmt.Errorf("failed to decode post_ids: %w", err)
	}

	return postIDs, nil
}

func (r *PostRepository) writeOwnerPostIDs(tx *sql.Tx, ownerID string, postIDs []string) error {
	raw, err := json.Marshal(postIDs)
	if err != nil {
		return fmt.Errorf("failed to encode post_ids: %w", err)
	}

	_, err = tx.Exec(`UPDATE users SET post_ids = ?, updated_at = ? WHERE id = ?`, string(raw), time.Now(), ownerID)
	return err
}
