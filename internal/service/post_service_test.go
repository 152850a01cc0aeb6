package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialhub/internal/domain"
)

type postFixture struct {
	userRepo *fakeUserRepo
	postRepo *fakePostRepo
	users    domain.UserService
	svc      domain.PostService
}

func newPostFixture(t *testing.T) *postFixture {
	t.Helper()

	userRepo := newFakeUserRepo()
	postRepo := newFakePostRepo(userRepo)

	f := &postFixture{
		userRepo: userRepo,
		postRepo: postRepo,
		users:    newUserService(userRepo),
		svc:      NewPostService(postRepo, userRepo, &fakeAuditLog{}, testLogger),
	}

	_, err := f.users.Register("alice", "a@x.com", "pw1")
	require.NoError(t, err)
	_, err = f.users.Register("bob", "b@x.com", "pw2")
	require.NoError(t, err)

	return f
}

func (f *postFixture) user(t *testing.T, username string) *domain.User {
	t.Helper()
	user, err := f.userRepo.FindByUsername(username)
	require.NoError(t, err)
	require.NotNil(t, user)
	return user
}

func TestCreatePost_AppendsBackReference(t *testing.T) {
	f := newPostFixture(t)

	post, err := f.svc.CreatePost("alice", domain.PostKindText, domain.PostContent{Content: "hi"})
	require.NoError(t, err)

	assert.Equal(t, f.user(t, "alice").ID, post.OwnerID)
	assert.Equal(t, []string{post.ID}, f.user(t, "alice").PostIDs)

	posts, err := f.svc.ListPosts("alice")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, post.ID, posts[0].ID)
}

func TestCreatePost_UnknownUser(t *testing.T) {
	f := newPostFixture(t)

	_, err := f.svc.CreatePost("mallory", domain.PostKindText, domain.PostContent{Content: "hi"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestCreatePost_KindDefaultsToText(t *testing.T) {
	f := newPostFixture(t)

	post, err := f.svc.CreatePost("alice", "", domain.PostContent{Content: "hi"})
	require.NoError(t, err)
	assert.Equal(t, domain.PostKindText, post.Kind)
}

func TestCreatePost_InvalidKind(t *testing.T) {
	f := newPostFixture(t)

	_, err := f.svc.CreatePost("alice", "poll", domain.PostContent{})
	assert.ErrorIs(t, err, domain.ErrInvalidPostKind)
}

func TestListPosts_UnknownUser(t *testing.T) {
	f := newPostFixture(t)

	_, err := f.svc.ListPosts("mallory")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUpdatePost(t *testing.T) {
	f := newPostFixture(t)

	post, err := f.svc.CreatePost("alice", domain.PostKindText, domain.PostContent{Content: "hi"})
	require.NoError(t, err)

	updated, err := f.svc.UpdatePost("alice", post.ID, domain.PostContent{Content: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)
}

func TestUpdatePost_NonOwnerSeesNotFound(t *testing.T) {
	f := newPostFixture(t)

	post, err := f.svc.CreatePost("alice", domain.PostKindText, domain.PostContent{Content: "hi"})
	require.NoError(t, err)

	// Ownership is enforced by the scoped lookup; bob gets the same
	// not-found a missing post would produce, never a forbidden.
	_, err = f.svc.UpdatePost("bob", post.ID, domain.PostContent{Content: "hijack"})
	assert.ErrorIs(t, err, domain.ErrPostNotFound)

	unchanged, err := f.svc.UpdatePost("alice", post.ID, domain.PostContent{Content: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "hi", unchanged.Content)
}

func TestDeletePost_RemovesBackReference(t *testing.T) {
	f := newPostFixture(t)

	post, err := f.svc.CreatePost("alice", domain.PostKindText, domain.PostContent{Content: "hi"})
	require.NoError(t, err)

	deleted, err := f.svc.DeletePost("alice", post.ID)
	require.NoError(t, err)
	assert.Equal(t, post.ID, deleted.ID)

	assert.Empty(t, f.user(t, "alice").PostIDs)

	posts, err := f.svc.ListPosts("alice")
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestDeletePost_NonOwnerSeesNotFound(t *testing.T) {
	f := newPostFixture(t)

	post, err := f.svc.CreatePost("alice", domain.PostKindText, domain.PostContent{Content: "hi"})
	require.NoError(t, err)

	_, err = f.svc.DeletePost("bob", post.ID)
	assert.ErrorIs(t, err, domain.ErrPostNotFound)
}

func TestLikePost(t *testing.T) {
	f := newPostFixture(t)

	post, err := f.svc.CreatePost("alice", domain.PostKindText, domain.PostContent{Content: "hi"})
	require.NoError(t, err)

	require.NoError(t, f.svc.LikePost("bob", post.ID))

	err = f.svc.LikePost("bob", post.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyLiked)

	liked, err := f.postRepo.FindByID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{f.user(t, "bob").ID}, liked.LikedBy)
}

func TestLikePost_NotFound(t *testing.T) {
	f := newPostFixture(t)

	assert.ErrorIs(t, f.svc.LikePost("mallory", "p1"), domain.ErrUserNotFound)
	assert.ErrorIs(t, f.svc.LikePost("bob", "no-such-post"), domain.ErrPostNotFound)
}

func TestAddComment(t *testing.T) {
	f := newPostFixture(t)

	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	timeNow = func() time.Time { return fixed }
	defer func() { timeNow = time.Now }()

	post, err := f.svc.CreatePost("alice", domain.PostKindText, domain.PostContent{Content: "hi"})
	require.NoError(t, err)

	require.NoError(t, f.svc.AddComment("bob", post.ID, "nice"))

	commented, err := f.postRepo.FindByID(post.ID)
	require.NoError(t, err)
	require.Len(t, commented.Comments, 1)
	assert.Equal(t, f.user(t, "bob").ID, commented.Comments[0].AuthorID)
	assert.Equal(t, "nice", commented.Comments[0].Text)
	assert.Equal(t, fixed, commented.Comments[0].CreatedAt)
}

func TestAddComment_NotFound(t *testing.T) {
	f := newPostFixture(t)

	assert.ErrorIs(t, f.svc.AddComment("mallory", "p1", "hi"), domain.ErrUserNotFound)
	assert.ErrorIs(t, f.svc.AddComment("bob", "no-such-post", "hi"), domain.ErrPostNotFound)
}
