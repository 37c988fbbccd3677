package ports

import (
	"context"

	"github.com/spendperks/rewards-api/internal/core/domain"
)

// SessionService authenticates identities and resolves bearer tokens.
type SessionService interface {
	// LoginUser authenticates an app user and issues a fresh session token.
	// Previously issued tokens for the same identity stay valid.
	LoginUser(ctx context.Context, userID, password string) (*domain.Session, error)

	// LoginDashboard authenticates a partner-dashboard operator.
	LoginDashboard(ctx context.Context, dashID, password string) (*domain.Session, error)

	// Resolve returns the session for a token of the given kind, or
	// domain.ErrSessionNotFound / domain.ErrSessionExpired.
	Resolve(ctx context.Context, kind domain.SessionKind, token string) (*domain.Session, error)

	// Logout revokes a token. Revoking an unknown token is an error.
	Logout(ctx context.Context, kind domain.SessionKind, token string) error
}

// SessionRepository stores live sessions keyed by (kind, token).
type SessionRepository interface {
	Save(s domain.Session)
	Find(kind domain.SessionKind, token string) (domain.Session, bool)
	Delete(kind domain.SessionKind, token string) bool
}
