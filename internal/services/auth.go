// Package services contains the application services sitting between the
// CLI and the API gateway.
package services

import (
	"context"
	"fmt"

	"github.com/dkaras/relocost/internal/api"
	"github.com/dkaras/relocost/internal/models"
	"github.com/dkaras/relocost/internal/session"
)

// AuthService performs login/logout against the remote service and keeps
// the session store in sync with the outcome.
type AuthService struct {
	client   api.Client
	sessions *session.Store
}

func NewAuthService(client api.Client, sessions *session.Store) *AuthService {
	return &AuthService{client: client, sessions: sessions}
}

// Login exchanges credentials for a token and persists the session. The
// store notifies its subscribers before Login returns.
func (a *AuthService) Login(ctx context.Context, username, password string) (*models.Identity, error) {
	resp, err := a.client.Login(ctx, username, password)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	identity := &models.Identity{Username: resp.Username, Email: resp.Email}
	if err := a.sessions.Set(ctx, resp.Token, identity); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	return identity, nil
}

// Logout clears the session locally. The server keeps no session state to
// tear down.
func (a *AuthService) Logout(ctx context.Context) error {
	return a.sessions.Clear(ctx)
}

// Current returns the active session snapshot.
func (a *AuthService) Current() session.Session {
	return a.sessions.Get()
}
