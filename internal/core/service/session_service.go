package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jobdesk/portal-api/internal/core/domain"
	"github.com/jobdesk/portal-api/internal/core/ports"
)

const tokenBytes = 32 // 256 bits of entropy

type sessionService struct {
	repo     ports.SessionRepository
	lifetime time.Duration
	log      zerolog.Logger
}

// NewSessionService returns a SessionService with the given session lifetime.
func NewSessionService(repo ports.SessionRepository, lifetime time.Duration, log zerolog.Logger) ports.SessionService {
	if lifetime <= 0 {
		lifetime = 7 * 24 * time.Hour
	}
	return &sessionService{repo: repo, lifetime: lifetime, log: log}
}

// Issue creates a session for userID and returns the raw token. Only the
// token's SHA-256 digest is persisted; the raw value must reach the client's
// cookie and nothing else — it is never logged.
func (s *sessionService) Issue(ctx context.Context, userID, userAgent, ip string) (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("session token: %w", err)
	}
	token := hex.EncodeToString(buf)

	now := time.Now().UTC()
	session := &domain.Session{
		ID:        hashToken(token),
		UserID:    userID,
		UserAgent: userAgent,
		IP:        ip,
		ExpiresAt: now.Add(s.lifetime),
		CreatedAt: now,
	}

	if err := s.repo.Insert(ctx, session); err != nil {
		return "", fmt.Errorf("insert session: %w", err)
	}
	return token, nil
}

// Resolve maps a raw token to its owning user. An expired session is deleted
// on sight and never returned. A session resolved inside its validity window
// with less than half the lifetime remaining gets its expiry extended to
// now+lifetime, so idle time never exceeds one full lifetime.
func (s *sessionService) Resolve(ctx context.Context, rawToken string) (*domain.User, error) {
	if rawToken == "" {
		return nil, domain.ErrSessionNotFound
	}

	id := hashToken(rawToken)
	session, user, err := s.repo.FindWithUser(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if session.Expired(now) {
		if err := s.repo.Delete(ctx, id); err != nil {
			s.log.Warn().Err(err).Msg("failed to delete expired session")
		}
		return nil, domain.ErrSessionNotFound
	}

	if session.ExpiresAt.Sub(now) < s.lifetime/2 {
		if err := s.repo.UpdateExpiry(ctx, id, now.Add(s.lifetime)); err != nil {
			// The session is still valid; a missed rotation only means the
			// next resolve tries again.
			s.log.Warn().Err(err).Str("user_id", user.ID).Msg("session rotation failed")
		}
	}

	return user, nil
}

// Invalidate deletes the session matching the raw token. Invalidating an
// absent or already-deleted session is not an error.
func (s *sessionService) Invalidate(ctx context.Context, rawToken string) error {
	if rawToken == "" {
		return nil
	}
	if err := s.repo.Delete(ctx, hashToken(rawToken)); err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil
		}
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// hashToken derives the storage key from a raw token. The digest is
// irreversible, so a leaked sessions collection cannot be replayed as
// cookies.
func hashToken(rawToken string) string {
	sum := sha256.Sum256([]byte(rawToken))
	return hex.EncodeToString(sum[:])
}
