package usecase

import (
	"context"
	"encoding/json"
	"testing"

	"inkwell/pkg/jwt"
	"inkwell/pkg/logger"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hash)
}

func TestLogin_Success(t *testing.T) {
	jwtService := jwt.NewService("test-secret")
	uc := NewAuthUseCase(nil, jwtService, "admin", hashPassword(t, "correct-horse"), logger.New())

	token, err := uc.Login(context.Background(), "admin", "correct-horse")

	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := jwtService.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "admin", claims.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	uc := NewAuthUseCase(nil, jwt.NewService("test-secret"), "admin", hashPassword(t, "correct-horse"), logger.New())

	_, err := uc.Login(context.Background(), "admin", "wrong")

	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestLogin_WrongUsername(t *testing.T) {
	uc := NewAuthUseCase(nil, jwt.NewService("test-secret"), "admin", hashPassword(t, "correct-horse"), logger.New())

	_, err := uc.Login(context.Background(), "root", "correct-horse")

	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestLogin_MissingFields(t *testing.T) {
	uc := NewAuthUseCase(nil, jwt.NewService("test-secret"), "admin", hashPassword(t, "pw"), logger.New())

	_, err := uc.Login(context.Background(), "", "pw")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Login(context.Background(), "admin", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLogin_NoPasswordConfigured(t *testing.T) {
	uc := NewAuthUseCase(nil, jwt.NewService("test-secret"), "admin", "", logger.New())

	_, err := uc.Login(context.Background(), "admin", "anything")

	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestLogin_KVOverride(t *testing.T) {
	kv := newMemoryKV()
	stored, _ := json.Marshal(map[string]string{
		"username":      "rotated",
		"password_hash": hashPassword(t, "new-password"),
	})
	kv.data[adminCredentialsKey] = string(stored)

	uc := NewAuthUseCase(kv, jwt.NewService("test-secret"), "admin", hashPassword(t, "old-password"), logger.New())

	// The configured defaults no longer apply.
	_, err := uc.Login(context.Background(), "admin", "old-password")
	assert.ErrorIs(t, err, ErrUnauthorized)

	token, err := uc.Login(context.Background(), "rotated", "new-password")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestLogin_CorruptKVRecordFallsBack(t *testing.T) {
	kv := newMemoryKV()
	kv.data[adminCredentialsKey] = "{not json"

	uc := NewAuthUseCase(kv, jwt.NewService("test-secret"), "admin", hashPassword(t, "pw"), logger.New())

	token, err := uc.Login(context.Background(), "admin", "pw")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
}
