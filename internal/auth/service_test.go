package auth

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/libraryhub/libraryhub/internal/config"
	"github.com/libraryhub/libraryhub/internal/database/users"
	"github.com/libraryhub/libraryhub/internal/entities"
)

func testAuthConfig() config.Auth {
	return config.Auth{
		JWTSecret:     "test-secret",
		AccessExpiry:  30 * time.Minute,
		RefreshExpiry: 7 * 24 * time.Hour,
		BcryptCost:    4,
	}
}

func setupService(t *testing.T) (*Service, *users.Repository, func()) {
	dbPath := "./test_auth_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.User{}))

	store := users.NewRepository(db)
	service := NewService(store, testAuthConfig())

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return service, store, cleanup
}

func TestService_Register(t *testing.T) {
	service, _, cleanup := setupService(t)
	defer cleanup()

	user, err := service.Register("reader@example.com", "reader", "correcthorse")

	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, entities.UserRoleUser, user.Role)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "correcthorse", user.PasswordHash)
}

func TestService_Register_Validation(t *testing.T) {
	service, _, cleanup := setupService(t)
	defer cleanup()

	_, err := service.Register("not-an-email", "reader", "correcthorse")
	assert.ErrorIs(t, err, ErrEmailInvalid)

	_, err = service.Register("reader@example.com", "", "correcthorse")
	assert.ErrorIs(t, err, ErrUsernameRequired)

	_, err = service.Register("reader@example.com", "reader", "short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestService_Register_Duplicate(t *testing.T) {
	service, _, cleanup := setupService(t)
	defer cleanup()

	_, err := service.Register("reader@example.com", "reader", "correcthorse")
	require.NoError(t, err)

	_, err = service.Register("reader@example.com", "other", "correcthorse")
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestService_Authenticate(t *testing.T) {
	service, _, cleanup := setupService(t)
	defer cleanup()

	registered, err := service.Register("reader@example.com", "reader", "correcthorse")
	require.NoError(t, err)

	user, err := service.Authenticate("reader@example.com", "correcthorse")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
}

func TestService_Authenticate_UniformError(t *testing.T) {
	service, store, cleanup := setupService(t)
	defer cleanup()

	user, err := service.Register("reader@example.com", "reader", "correcthorse")
	require.NoError(t, err)

	// Wrong password and unknown email are indistinguishable
	_, wrongPassword := service.Authenticate("reader@example.com", "wronghorse")
	_, unknownEmail := service.Authenticate("nobody@example.com", "correcthorse")
	assert.ErrorIs(t, wrongPassword, ErrBadCredentials)
	assert.ErrorIs(t, unknownEmail, ErrBadCredentials)

	// Deactivated users cannot log in
	user.IsActive = false
	require.NoError(t, store.Update(user))
	_, inactive := service.Authenticate("reader@example.com", "correcthorse")
	assert.ErrorIs(t, inactive, ErrBadCredentials)
}
