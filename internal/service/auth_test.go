package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plateful/backend/internal/repository"
)

func TestRegisterAndLogin(t *testing.T) {
	repo := repository.NewMemoryRepository()
	svc := NewAuthService(repo, "test-secret")

	token, err := svc.Register("alice", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	// The stored hash is never the plaintext password.
	user, err := repo.GetUser("alice")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.NotEqual(t, "password123", user.PasswordHash)

	token, err = svc.Login("alice", "password123")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := NewAuthService(repository.NewMemoryRepository(), "test-secret")

	_, err := svc.Register("alice", "password123")
	require.NoError(t, err)

	_, err = svc.Register("alice", "different")
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc := NewAuthService(repository.NewMemoryRepository(), "test-secret")

	_, err := svc.Register("alice", "password123")
	require.NoError(t, err)

	_, err = svc.Login("alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login("nobody", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateTokenRejectsForgeries(t *testing.T) {
	svc := NewAuthService(repository.NewMemoryRepository(), "test-secret")
	other := NewAuthService(repository.NewMemoryRepository(), "other-secret")

	token, err := other.Register("alice", "password123")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)

	_, err = svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}
