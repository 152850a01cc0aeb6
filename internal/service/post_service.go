package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"socialhub/internal/domain"
	"socialhub/pkg/logger"
)

// timeNow is swapped out in tests that pin comment timestamps.
var timeNow = time.Now

type PostService struct {
	repo        domain.PostRepository
	userRepo    domain.UserRepository
	auditLogSvc domain.AuditLogService
	logger      logger.Logger
}

func NewPostService(repo domain.PostRepository, userRepo domain.UserRepository, auditLogSvc domain.AuditLogService, logger logger.Logger) domain.PostService {
	return &PostService{
		repo:        repo,
		userRepo:    userRepo,
		auditLogSvc: auditLogSvc,
		logger:      logger,
	}
}

func (s *PostService) resolveUser(username string) (*domain.User, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}

	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	return user, nil
}

func (s *PostService) CreatePost(username string, kind domain.PostKind, content domain.PostContent) (*domain.Post, error) {
	owner, err := s.resolveUser(username)
	if err != nil {
		return nil, err
	}

	if kind == "" {
		kind = domain.PostKindText
	}
	if !kind.Valid() {
		return nil, domain.ErrInvalidPostKind
	}

	post := &domain.Post{
		ID:       uuid.NewString(),
		OwnerID:  owner.ID,
		Kind:     kind,
		Content:  content.Content,
		ImageURL: content.ImageURL,
		VideoURL: content.VideoURL,
		LinkURL:  content.LinkURL,
		LikedBy:  []string{},
		Comments: []domain.Comment{},
	}

	// The post row and the owner's post_ids back-reference are written in one
	// transaction; the caller never sees a partial success.
	if err := s.repo.CreateForOwner(post); err != nil {
		s.logger.Error("failed to create post", map[string]interface{}{"owner_id": owner.ID, "error": err.Error()})
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	if err := s.auditLogSvc.LogAction(domain.EntityTypePost, post.ID, domain.ActionTypeCreate, fmt.Sprintf("post created by %s", username)); err != nil {
		s.logger.Warn("failed to write audit log", map[string]interface{}{"post_id": post.ID, "error": err.Error()})
	}

	return post, nil
}

func (s *PostService) ListPosts(username string) ([]*domain.Post, error) {
	owner, err := s.resolveUser(username)
	if err != nil {
		return nil, err
	}

	posts, err := s.repo.FindByOwner(owner.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	return posts, nil
}

// UpdatePost enforces ownership at the query level: a non-owner's request on
// someone else's post yields the same not-found as a missing post.
func (s *PostService) UpdatePost(username, postID string, content domain.PostContent) (*domain.Post, error) {
	owner, err := s.resolveUser(username)
	if err != nil {
		return nil, err
	}

	post, err := s.repo.FindByIDAndOwner(postID, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	if post == nil {
		return nil, domain.ErrPostNotFound
	}

	post.Content = content.Content
	post.ImageURL = content.ImageURL
	post.VideoURL = content.VideoURL
	post.LinkURL = content.LinkURL

	if err := s.repo.Update(post); err != nil {
		s.logger.Error("failed to update post", map[string]interface{}{"post_id": postID, "error": err.Error()})
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	return post, nil
}

func (s *PostService) DeletePost(username, postID string) (*domain.Post, error) {
	owner, err := s.resolveUser(username)
	if err != nil {
		return nil, err
	}

	post, err := s.repo.FindByIDAndOwner(postID, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete post: %w", err)
	}

	if post == nil {
		return nil, domain.ErrPostNotFound
	}

	if err := s.repo.DeleteForOwner(post); err != nil {
		s.logger.Error("failed to delete post", map[string]interface{}{"post_id": postID, "error": err.Error()})
		return nil, fmt.Errorf("failed to delete post: %w", err)
	}

	if err := s.auditLogSvc.LogAction(domain.EntityTypePost, post.ID, domain.ActionTypeDelete, fmt.Sprintf("post deleted by %s", username)); err != nil {
		s.logger.Warn("failed to write audit log", map[string]interface{}{"post_id": post.ID, "error": err.Error()})
	}

	return post, nil
}

func (s *PostService) LikePost(likerUsername, postID string) error {
	liker, err := s.resolveUser(likerUsername)
	if err != nil {
		return err
	}

	post, err := s.repo.FindByID(postID)
	if err != nil {
		return fmt.Errorf("failed to like post: %w", err)
	}

	if post == nil {
		return domain.ErrPostNotFound
	}

	if post.HasLike(liker.ID) {
		return domain.ErrAlreadyLiked
	}

	post.LikedBy = append(post.LikedBy, liker.ID)

	if err := s.repo.Update(post); err != nil {
		s.logger.Error("failed to like post", map[string]interface{}{"post_id": postID, "error": err.Error()})
		return fmt.Errorf("failed to like post: %w", err)
	}

	return nil
}

func (s *PostService) AddComment(commenterUsername, postID, text string) error {
	commenter, err := s.resolveUser(commenterUsername)
	if err != nil {
		return err
	}

	post, err := s.repo.FindByID(postID)
	if err != nil {
		return fmt.Errorf("failed to add comment: %w", err)
	}

	if post == nil {
		return domain.ErrPostNotFound
	}

	post.Comments = append(post.Comments, domain.Comment{
		AuthorID:  commenter.ID,
		Text:      text,
		CreatedAt: timeNow(),
	})

	if err := s.repo.Update(post); err != nil {
		s.logger.Error("failed to add comment", map[string]interface{}{"post_id": postID, "error": err.Error()})
		return fmt.Errorf("failed to add comment: %w", err)
	}

	return nil
}
