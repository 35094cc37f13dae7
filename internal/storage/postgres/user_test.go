package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VitaminP8/blogspace/internal/auth"
	"github.com/VitaminP8/blogspace/models"
)

func TestUserPostgresStorage_RegisterUser(t *testing.T) {
	storage := NewUserPostgresStorage()

	t.Run("Success registration", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		user, err := storage.RegisterUser(context.Background(), "alice", "alice@example.com", "secret123", "hello there")
		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, "hello there", user.Bio)
		// The stored password is a digest, never the raw input.
		assert.NotEqual(t, "secret123", user.Password)
		assert.Equal(t, auth.HashPassword("secret123"), user.Password)
	})

	t.Run("Error: duplicate username", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		createTestUser(t, "alice")

		user, err := storage.RegisterUser(context.Background(), "alice", "other@example.com", "secret123", "")
		assert.Error(t, err)
		assert.Nil(t, user)
		assert.Contains(t, err.Error(), "already exists")
	})
}

func TestUserPostgresStorage_AuthenticateUser(t *testing.T) {
	storage := NewUserPostgresStorage()

	t.Run("Success login", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		userID := createTestUser(t, "alice")

		user, err := storage.AuthenticateUser(context.Background(), "alice", "password123")
		assert.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, userID, user.ID)
	})

	t.Run("Error: wrong password", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		createTestUser(t, "alice")

		user, err := storage.AuthenticateUser(context.Background(), "alice", "wrongpass")
		assert.Error(t, err)
		assert.Nil(t, user)
		assert.Contains(t, err.Error(), "invalid username or password")
	})

	t.Run("Error: unknown user", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		user, err := storage.AuthenticateUser(context.Background(), "nobody", "password123")
		assert.Error(t, err)
		assert.Nil(t, user)
	})
}

func TestUserPostgresStorage_UpdateProfile(t *testing.T) {
	storage := NewUserPostgresStorage()

	t.Run("Success profile update", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		userID := createTestUser(t, "alice")

		err := storage.UpdateProfile(context.Background(), userID, "new@example.com", "new bio")
		assert.NoError(t, err)

		var dbUser models.User
		err = DB.First(&dbUser, userID).Error
		assert.NoError(t, err)
		assert.Equal(t, "new@example.com", dbUser.Email)
		assert.Equal(t, "new bio", dbUser.Bio)
		// Username is immutable through the profile.
		assert.Equal(t, "alice", dbUser.Username)
	})
}

func TestUserPostgresStorage_ChangePassword(t *testing.T) {
	storage := NewUserPostgresStorage()

	t.Run("Success password change", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		userID := createTestUser(t, "alice")

		err := storage.ChangePassword(context.Background(), userID, "password123", "newpassword")
		assert.NoError(t, err)

		// Old password no longer authenticates, the new one does.
		_, err = storage.AuthenticateUser(context.Background(), "alice", "password123")
		assert.Error(t, err)

		user, err := storage.AuthenticateUser(context.Background(), "alice", "newpassword")
		assert.NoError(t, err)
		assert.NotNil(t, user)
	})

	t.Run("Error: wrong current password", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		userID := createTestUser(t, "alice")

		err := storage.ChangePassword(context.Background(), userID, "wrongpass", "newpassword")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "current password is incorrect")

		// The stored password did not change.
		user, err := storage.AuthenticateUser(context.Background(), "alice", "password123")
		assert.NoError(t, err)
		assert.NotNil(t, user)
	})
}

func TestUserPostgresStorage_CountUsers(t *testing.T) {
	storage := NewUserPostgresStorage()

	t.Run("Counts registered users", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		count, err := storage.CountUsers(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, 0, count)

		createTestUser(t, "alice")
		createTestUser(t, "bob")

		count, err = storage.CountUsers(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, 2, count)
	})
}
