package service

import (
	"context"
	"time"

	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/apperrors"
	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/platform"
)

// AuthService proxies the platform login so the client receives the account
// ID and token it needs to open workflow sessions.
type AuthService struct {
	platform platform.API
	timeout  time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(api platform.API, timeout time.Duration) *AuthService {
	return &AuthService{platform: api, timeout: timeout}
}

// Login authenticates against the platform and returns its session material.
func (s *AuthService) Login(ctx context.Context, email, password string) (platform.LoginResult, error) {
	if email == "" || password == "" {
		return platform.LoginResult{}, apperrors.ErrMissingCredentials
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.platform.Login(ctx, email, password)
}
