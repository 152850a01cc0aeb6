package repository

import (
	"database/sql"
	"io"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialhub/internal/database"
	"socialhub/internal/domain"
	"socialhub/pkg/logger"
)

var testLogger = logger.New(logger.ErrorLevel, io.Discard)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)

	// A second connection would see a fresh empty in-memory database.
	db.SetMaxOpenConns(1)

	require.NoError(t, database.NewMigrationService(db, testLogger).RunMigrations())

	t.Cleanup(func() { db.Close() })

	return db
}

func newStoredUser(t *testing.T, repo domain.UserRepository, username, email string) *domain.User {
	t.Helper()

	user := &domain.User{
		ID:           "user-" + username,
		Username:     username,
		Email:        email,
		PasswordHash: "hashed",
		PostIDs:      []string{},
	}
	require.NoError(t, repo.Create(user))

	return user
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	repo := NewUserRepository(newTestDB(t), testLogger)

	created := newStoredUser(t, repo, "alice", "a@x.com")

	byID, err := repo.FindByID(created.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "alice", byID.Username)
	assert.Equal(t, "a@x.com", byID.Email)
	assert.Equal(t, "hashed", byID.PasswordHash)
	assert.Empty(t, byID.ResetToken)
	assert.Nil(t, byID.ResetExpires)
	assert.Equal(t, []string{}, byID.PostIDs)

	byUsername, err := repo.FindByUsername("alice")
	require.NoError(t, err)
	require.NotNil(t, byUsername)
	assert.Equal(t, created.ID, byUsername.ID)

	byEmail, err := repo.FindByEmail("a@x.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, created.ID, byEmail.ID)
}

func TestUserRepository_FindAbsentReturnsNil(t *testing.T) {
	repo := NewUserRepository(newTestDB(t), testLogger)

	for name, find := range map[string]func() (*domain.User, error){
		"by id":          func() (*domain.User, error) { return repo.FindByID("nope") },
		"by username":    func() (*domain.User, error) { return repo.FindByUsername("nope") },
		"by email":       func() (*domain.User, error) { return repo.FindByEmail("nope@x.com") },
		"by reset token": func() (*domain.User, error) { return repo.FindByResetToken("nope") },
	} {
		user, err := find()
		assert.NoError(t, err, name)
		assert.Nil(t, user, name)
	}
}

func TestUserRepository_FindByUsernameOrEmail(t *testing.T) {
	repo := NewUserRepository(newTestDB(t), testLogger)

	created := newStoredUser(t, repo, "alice", "a@x.com")

	matchUsername, err := repo.FindByUsernameOrEmail("alice", "other@x.com")
	require.NoError(t, err)
	require.NotNil(t, matchUsername)
	assert.Equal(t, created.ID, matchUsername.ID)

	matchEmail, err := repo.FindByUsernameOrEmail("other", "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, matchEmail)
	assert.Equal(t, created.ID, matchEmail.ID)

	none, err := repo.FindByUsernameOrEmail("other", "other@x.com")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestUserRepository_UniqueConstraints(t *testing.T) {
	repo := NewUserRepository(newTestDB(t), testLogger)

	newStoredUser(t, repo, "alice", "a@x.com")

	dupUsername := &domain.User{ID: "u2", Username: "alice", Email: "b@x.com", PasswordHash: "h"}
	assert.Error(t, repo.Create(dupUsername))

	dupEmail := &domain.User{ID: "u3", Username: "bob", Email: "a@x.com", PasswordHash: "h"}
	assert.Error(t, repo.Create(dupEmail))
}

func TestUserRepository_ResetTokenRoundTrip(t *testing.T) {
	repo := NewUserRepository(newTestDB(t), testLogger)

	user := newStoredUser(t, repo, "alice", "a@x.com")

	expires := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	user.ResetToken = "tok123"
	user.ResetExpires = &expires
	require.NoError(t, repo.Update(user))

	found, err := repo.FindByResetToken("tok123")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, user.ID, found.ID)
	require.NotNil(t, found.ResetExpires)
	assert.True(t, found.ResetExpires.Equal(expires))

	// Clearing writes both fields back to NULL in one update.
	found.ResetToken = ""
	found.ResetExpires = nil
	found.PasswordHash = "rehashed"
	require.NoError(t, repo.Update(found))

	cleared, err := repo.FindByID(user.ID)
	require.NoError(t, err)
	require.NotNil(t, cleared)
	assert.Equal(t, "rehashed", cleared.PasswordHash)
	assert.Empty(t, cleared.ResetToken)
	assert.Nil(t, cleared.ResetExpires)

	gone, err := repo.FindByResetToken("tok123")
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestUserRepository_PostIDsRoundTrip(t *testing.T) {
	repo := NewUserRepository(newTestDB(t), testLogger)

	user := newStoredUser(t, repo, "alice", "a@x.com")

	user.PostIDs = []string{"p1", "p2"}
	require.NoError(t, repo.Update(user))

	found, err := repo.FindByID(user.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, []string{"p1", "p2"}, found.PostIDs)
}
