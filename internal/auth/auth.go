// Package auth resolves bearer tokens into users. The gate is bucket-wide:
// any authenticated user may reach any client's folder, matching the
// backend's access policy.
package auth

import (
	"context"
	"errors"

	"github.com/appforms/backend/internal/models"
)

// ErrInvalidToken is returned when a token does not resolve to a user.
var ErrInvalidToken = errors.New("invalid or expired token")

// Provider turns a bearer token into the authenticated user.
type Provider interface {
	UserFromToken(ctx context.Context, token string) (*models.User, error)
}

// StaticProvider accepts a single pre-shared token. Used in local
// deployments where no auth service is available.
type StaticProvider struct {
	token string
}

// NewStaticProvider creates a StaticProvider for the given token.
func NewStaticProvider(token string) *StaticProvider {
	return &StaticProvider{token: token}
}

func (p *StaticProvider) UserFromToken(_ context.Context, token string) (*models.User, error) {
	if p.token == "" || token != p.token {
		return nil, ErrInvalidToken
	}
	return &models.User{ID: "local", Email: "local@localhost", Role: "authenticated"}, nil
}

var _ Provider = (*StaticProvider)(nil)
