package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"inkwell/internal/repo/persistent"
	"inkwell/pkg/jwt"
	"inkwell/pkg/logger"

	"golang.org/x/crypto/bcrypt"
)

const adminCredentialsKey = "admin:credentials"

type AuthUseCase interface {
	Login(ctx context.Context, username, password string) (string, error)
}

type adminCredentials struct {
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
}

type authUseCase struct {
	kv         persistent.KV
	jwtService *jwt.Service
	defaults   adminCredentials
	logger     *logger.Logger
}

func NewAuthUseCase(kv persistent.KV, jwtService *jwt.Service, username, passwordHash string, log *logger.Logger) AuthUseCase {
	return &authUseCase{
		kv:         kv,
		jwtService: jwtService,
		defaults:   adminCredentials{Username: username, PasswordHash: passwordHash},
		logger:     log,
	}
}

// Login verifies the admin credentials and issues a signed token. The KV
// record admin:credentials overrides the configured defaults, so the
// password can be rotated without a redeploy.
func (uc *authUseCase) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}

	creds := uc.defaults
	if uc.kv != nil {
		value, ok, err := uc.kv.Get(ctx, adminCredentialsKey)
		if err != nil {
			uc.logger.Warn("Failed to read admin credentials from KV: %v", err)
		} else if ok {
			var stored adminCredentials
			if err := json.Unmarshal([]byte(value), &stored); err != nil {
				uc.logger.Warn("Corrupt admin credentials record: %v", err)
			} else if stored.Username != "" && stored.PasswordHash != "" {
				creds = stored
			}
		}
	}

	if creds.PasswordHash == "" {
		return "", fmt.Errorf("%w: no admin password configured", ErrUnauthorized)
	}

	if username != creds.Username {
		return "", ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(password)); err != nil {
		return "", ErrUnauthorized
	}

	token, err := uc.jwtService.GenerateToken(username, "admin")
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}
	return token, nil
}
