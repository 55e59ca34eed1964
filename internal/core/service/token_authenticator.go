package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/eie-idiomas/admin-api/internal/core/domain"
	"github.com/eie-idiomas/admin-api/internal/core/ports"
)

const bearerScheme = "bearer"

// TokenAuthenticator validates bearer tokens against the user's current
// session. It performs no writes.
type TokenAuthenticator struct {
	tokens *TokenSigner
	users  ports.UserRepository
	log    zerolog.Logger
}

func NewTokenAuthenticator(tokens *TokenSigner, users ports.UserRepository, log zerolog.Logger) *TokenAuthenticator {
	return &TokenAuthenticator{tokens: tokens, users: users, log: log}
}

// Authenticate resolves the Authorization header value to the user whose
// current session is the presented token. Credential faults are returned as
// *domain.AuthError; store failures are wrapped and returned as is.
func (a *TokenAuthenticator) Authenticate(ctx context.Context, authorization string) (*domain.User, error) {
	if authorization == "" {
		return nil, domain.ErrUnauthenticated
	}

	parts := strings.Fields(authorization)
	if len(parts) != 2 {
		return nil, domain.ErrMalformedToken
	}
	if !strings.EqualFold(parts[0], bearerScheme) {
		return nil, domain.ErrWrongScheme
	}

	raw := parts[1]
	claims, err := a.tokens.Parse(raw)
	if err != nil {
		return nil, err
	}

	user, err := a.users.FindBySession(ctx, claims.ID, claims.Nombre, raw)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Deleted, renamed, deactivated and superseded sessions all land here.
			a.log.Debug().Str("user_id", claims.ID).Msg("no user holds the presented session")
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	return user, nil
}
