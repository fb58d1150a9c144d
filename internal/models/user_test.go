package models_test

import (
	"testing"

	"flashchat/backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// TestUserBeforeCreate_GeneratesUUID verifies that the BeforeCreate hook generates a valid UUID.
func TestUserBeforeCreate_GeneratesUUID(t *testing.T) {
	// Arrange
	user := &models.User{Username: "nikita99"}
	assert.Empty(t, user.ID, "User ID should be empty before BeforeCreate")

	// Act - Call the hook directly (GORM would call this automatically)
	err := user.BeforeCreate(nil) // nil *gorm.DB is acceptable for this hook

	// Assert
	assert.NoError(t, err)
	assert.NotEmpty(t, user.ID, "User ID must be populated after BeforeCreate")

	parsedUUID, parseErr := uuid.Parse(user.ID)
	assert.NoError(t, parseErr, "User ID must be a valid UUID string")
	assert.NotEqual(t, uuid.Nil, parsedUUID)
}

// TestUserBeforeCreate_PreservesExistingID verifies that the hook doesn't overwrite an existing ID.
func TestUserBeforeCreate_PreservesExistingID(t *testing.T) {
	existingID := uuid.New().String()
	user := &models.User{ID: existingID, Username: "viktor123"}

	err := user.BeforeCreate(nil)

	assert.NoError(t, err)
	assert.Equal(t, existingID, user.ID, "BeforeCreate should preserve existing ID")
}

func TestUserPassword_Roundtrip(t *testing.T) {
	user := &models.User{Username: "bluefqcebaby"}

	err := user.SetPassword("secret-pass")
	assert.NoError(t, err)
	assert.NotEqual(t, "secret-pass", user.Password, "plaintext must never be stored")

	assert.True(t, user.CheckPassword("secret-pass"))
	assert.False(t, user.CheckPassword("wrong-pass"))
	assert.False(t, user.CheckPassword(""))
}

func TestUserPassword_DistinctHashes(t *testing.T) {
	a := &models.User{Username: "user_a"}
	b := &models.User{Username: "user_b"}

	assert.NoError(t, a.SetPassword("same-password"))
	assert.NoError(t, b.SetPassword("same-password"))

	// bcrypt salts every hash.
	assert.NotEqual(t, a.Password, b.Password)
}
