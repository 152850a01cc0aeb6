package service

import (
	"errors"
	"io"

	"socialhub/internal/domain"
	"socialhub/pkg/logger"
)

var testLogger = logger.New(logger.ErrorLevel, io.Discard)

type fakeUserRepo struct {
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (f *fakeUserRepo) FindByID(id string) (*domain.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) FindByUsername(username string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByUsernameOrEmail(username, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Username == username || u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByResetToken(token string) (*domain.User, error) {
	if token == "" {
		return nil, nil
	}
	for _, u := range f.users {
		if u.ResetToken == token {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Create(user *domain.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) Update(user *domain.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return errors.New("no such user")
	}
	f.users[user.ID] = user
	return nil
}

type fakePostRepo struct {
	userRepo *fakeUserRepo
	posts    []*domain.Post
}

func newFakePostRepo(userRepo *fakeUserRepo) *fakePostRepo {
	return &fakePostRepo{userRepo: userRepo}
}

func (f *fakePostRepo) FindByID(id string) (*domain.Post, error) {
	for _, p := range f.posts {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakePostRepo) FindByIDAndOwner(id, ownerID string) (*domain.Post, error) {
	for _, p := range f.posts {
		if p.ID == id && p.OwnerID == ownerID {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakePostRepo) FindByOwner(ownerID string) ([]*domain.Post, error) {
	owned := make([]*domain.Post, 0)
	for _, p := range f.posts {
		if p.OwnerID == ownerID {
			owned = append(owned, p)
		}
	}
	return owned, nil
}

func (f *fakePostRepo) CreateForOwner(post *domain.Post) error {
	owner, ok := f.userRepo.users[post.OwnerID]
	if !ok {
		return errors.New("no such owner")
	}
	f.posts = append(f.posts, post)
	owner.PostIDs = append(owner.PostIDs, post.ID)
	return nil
}

func (f *fakePostRepo) DeleteForOwner(post *domain.Post) error {
	owner, ok := f.userRepo.users[post.OwnerID]
	if !ok {
		return errors.New("no such owner")
	}
	kept := f.posts[:0]
	for _, p := range f.posts {
		if p.ID != post.ID {
			kept = append(kept, p)
		}
	}
	f.posts = kept

	ids := owner.PostIDs[:0]
	for _, id := range owner.PostIDs {
		if id != post.ID {
			ids = append(ids, id)
		}
	}
	owner.PostIDs = ids
	return nil
}

func (f *fakePostRepo) Update(post *domain.Post) error {
	for i, p := range f.posts {
		if p.ID == post.ID {
			f.posts[i] = post
			return nil
		}
	}
	return errors.New("no such post")
}

type auditEntry struct {
	entityType domain.EntityType
	entityID   string
	action     domain.ActionType
}

type fakeAuditLog struct {
	entries []auditEntry
}

func (f *fakeAuditLog) LogAction(entityType domain.EntityType, entityID string, action domain.ActionType, details string) error {
	f.entries = append(f.entries, auditEntry{entityType: entityType, entityID: entityID, action: action})
	return nil
}

func (f *fakeAuditLog) GetEntityLogs(entityType domain.EntityType, entityID string) ([]*domain.AuditLog, error) {
	return nil, nil
}

type sentMail struct {
	to  string
	url string
}

type fakeMailer struct {
	sent []sentMail
	fail bool
}

func (f *fakeMailer) SendPasswordReset(to, resetURL string) error {
	if f.fail {
		return errors.New("smtp unreachable")
	}
	f.sent = append(f.sent, sentMail{to: to, url: resetURL})
	return nil
}
