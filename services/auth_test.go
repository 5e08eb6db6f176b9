package services

import (
	"testing"
	"time"

	"family_law_portal_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	password := "SecretPass123!"

	hash, err := HashPassword(password)
	assert.NoError(t, err)
	assert.NotEqual(t, password, hash)

	assert.True(t, VerifyPassword(hash, password))
	assert.False(t, VerifyPassword(hash, "WrongPass"))
}

func TestRegister(t *testing.T) {
	db := setupTestDB(t)

	user, err := Register(db, "Jane Doe", " Jane@Example.com ", "longenough", models.RoleClient)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", user.Email)
	assert.Equal(t, models.RoleClient, user.Role)
	assert.NotEqual(t, "longenough", user.Password)

	_, err = Register(db, "Jane Again", "jane@example.com", "longenough", models.RoleLawyer)
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = Register(db, "Short", "short@example.com", "short", models.RoleClient)
	assert.ErrorIs(t, err, ErrWeakPassword)

	_, err = Register(db, "Admin", "admin@example.com", "longenough", "admin")
	assert.Error(t, err)
}

func TestAuthenticate(t *testing.T) {
	db := setupTestDB(t)
	_, err := Register(db, "Lawyer", "lawyer@example.com", "password123", models.RoleLawyer)
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		user, err := Authenticate(db, "LAWYER@example.com", "password123", models.RoleLawyer)
		require.NoError(t, err)
		assert.NotNil(t, user.LastLoginAt)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := Authenticate(db, "lawyer@example.com", "nope", models.RoleLawyer)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := Authenticate(db, "ghost@example.com", "password123", models.RoleLawyer)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("role mismatch", func(t *testing.T) {
		_, err := Authenticate(db, "lawyer@example.com", "password123", models.RoleClient)
		assert.ErrorIs(t, err, ErrRoleMismatch)
	})
}

func TestAuthenticateLockout(t *testing.T) {
	db := setupTestDB(t)
	_, err := Register(db, "Client", "client@example.com", "password123", models.RoleClient)
	require.NoError(t, err)

	for i := 0; i < MaxFailedLogins; i++ {
		_, err := Authenticate(db, "client@example.com", "bad", models.RoleClient)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}

	_, err = Authenticate(db, "client@example.com", "password123", models.RoleClient)
	assert.ErrorIs(t, err, ErrAccountLocked)

	var user models.User
	require.NoError(t, db.First(&user, "email = ?", "client@example.com").Error)
	assert.True(t, user.IsLocked())
}

func TestSessionLifecycle(t *testing.T) {
	db := setupTestDB(t)
	user, err := Register(db, "Client", "client@example.com", "password123", models.RoleClient)
	require.NoError(t, err)

	session, err := CreateSession(db, user, "127.0.0.1", "TestAgent")
	require.NoError(t, err)
	assert.Len(t, session.Token, SessionTokenLength*2)
	assert.Equal(t, models.RoleClient, session.Role)
	assert.WithinDuration(t, time.Now().Add(DefaultSessionDuration), session.ExpiresAt, 10*time.Second)

	valid, err := ValidateSession(db, session.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, valid.User.ID)

	_, err = ValidateSession(db, "invalid-token")
	assert.Error(t, err)

	require.NoError(t, DeleteSession(db, session.Token))
	_, err = ValidateSession(db, session.Token)
	assert.Error(t, err)
}

func TestExpiredSessions(t *testing.T) {
	db := setupTestDB(t)
	user, err := Register(db, "Client", "client@example.com", "password123", models.RoleClient)
	require.NoError(t, err)

	expired, err := CreateSession(db, user, "", "")
	require.NoError(t, err)
	require.NoError(t, db.Model(expired).Update("expires_at", time.Now().Add(-time.Hour)).Error)
	_, err = CreateSession(db, user, "", "")
	require.NoError(t, err)

	_, err = ValidateSession(db, expired.Token)
	assert.Error(t, err)

	_, err = CreateSession(db, user, "", "")
	require.NoError(t, err)
	other, err := CreateSession(db, user, "", "")
	require.NoError(t, err)
	require.NoError(t, db.Model(other).Update("expires_at", time.Now().Add(-time.Minute)).Error)

	removed, err := CleanupExpiredSessions(db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	var count int64
	db.Model(&models.Session{}).Count(&count)
	assert.Equal(t, int64(2), count)
}
