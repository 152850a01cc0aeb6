package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialhub/internal/auth"
	"socialhub/internal/domain"
)

var testSecret = []byte("test-secret")

func newAuthService(users domain.UserService, validity time.Duration) domain.AuthService {
	return NewAuthService(users, testSecret, validity, testLogger)
}

func TestLogin_IssuesTokenWithUserID(t *testing.T) {
	users := newUserService(newFakeUserRepo())
	svc := newAuthService(users, time.Hour)

	registered, err := users.Register("alice", "a@x.com", "pw1")
	require.NoError(t, err)

	token, err := svc.Login("alice", "pw1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := auth.GetUserIDFromToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, userID)
}

func TestLogin_ExpiredTokenRejected(t *testing.T) {
	users := newUserService(newFakeUserRepo())
	svc := newAuthService(users, -time.Second)

	_, err := users.Register("alice", "a@x.com", "pw1")
	require.NoError(t, err)

	token, err := svc.Login("alice", "pw1")
	require.NoError(t, err)

	_, err = auth.GetUserIDFromToken(token, testSecret)
	assert.Error(t, err)
}

func TestLogin_BadCredential(t *testing.T) {
	users := newUserService(newFakeUserRepo())
	svc := newAuthService(users, time.Hour)

	_, err := users.Register("alice", "a@x.com", "pw1")
	require.NoError(t, err)

	_, wrongPassword := svc.Login("alice", "nope")
	_, unknownUser := svc.Login("mallory", "pw1")

	assert.ErrorIs(t, wrongPassword, domain.ErrInvalidCredential)
	assert.ErrorIs(t, unknownUser, domain.ErrInvalidCredential)
}
