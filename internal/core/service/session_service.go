package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/spendperks/rewards-api/internal/core/domain"
	"github.com/spendperks/rewards-api/internal/core/ports"
)

// IdentityDirectory resolves the fixed login directories.
type IdentityDirectory interface {
	User(id string) (domain.UserIdentity, bool)
	Dashboard(id string) (domain.DashboardIdentity, bool)
}

// SessionService implements login, token resolution, and revocation for both
// identity spaces. Tokens are opaque 256-bit random values; a new login never
// invalidates earlier tokens for the same identity.
type SessionService struct {
	directory IdentityDirectory
	repo      ports.SessionRepository
	ttl       time.Duration // 0 means sessions never expire
	logger    zerolog.Logger
}

func NewSessionService(directory IdentityDirectory, repo ports.SessionRepository, ttl time.Duration, logger zerolog.Logger) *SessionService {
	return &SessionService{directory: directory, repo: repo, ttl: ttl, logger: logger}
}

func (s *SessionService) LoginUser(ctx context.Context, userID, password string) (*domain.Session, error) {
	if userID == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	identity, ok := s.directory.User(userID)
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	sess := domain.Session{
		Token:     generateToken(),
		Kind:      domain.SessionKindUser,
		UserID:    identity.UserID,
		Name:      identity.Name,
		CreatedAt: time.Now().UTC(),
	}
	s.repo.Save(sess)

	s.logger.Info().Str("user_id", identity.UserID).Msg("user login")
	return &sess, nil
}

func (s *SessionService) LoginDashboard(ctx context.Context, dashID, password string) (*domain.Session, error) {
	if dashID == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	identity, ok := s.directory.Dashboard(dashID)
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	sess := domain.Session{
		Token:       generateToken(),
		Kind:        domain.SessionKindDashboard,
		DashID:      identity.DashID,
		Name:        identity.Name,
		PartnerSlug: identity.PartnerSlug,
		CreatedAt:   time.Now().UTC(),
	}
	s.repo.Save(sess)

	s.logger.Info().Str("dash_id", identity.DashID).Str("partner", identity.PartnerSlug).Msg("dashboard login")
	return &sess, nil
}

func (s *SessionService) Resolve(ctx context.Context, kind domain.SessionKind, token string) (*domain.Session, error) {
	if token == "" {
		return nil, domain.ErrSessionNotFound
	}
	sess, ok := s.repo.Find(kind, token)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if s.ttl > 0 && time.Since(sess.CreatedAt) > s.ttl {
		s.repo.Delete(kind, token)
		return nil, domain.ErrSessionExpired
	}
	return &sess, nil
}

func (s *SessionService) Logout(ctx context.Context, kind domain.SessionKind, token string) error {
	if !s.repo.Delete(kind, token) {
		return domain.ErrSessionNotFound
	}
	return nil
}

// generateToken returns a 64-char hex token (256 bits of entropy).
func generateToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(err) // crypto/rand failure is unrecoverable
	}
	return hex.EncodeToString(b)
}
