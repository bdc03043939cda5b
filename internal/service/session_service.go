package service

import (
	"context"
	"time"

	"github.com/mstanchev/vaxtrack/internal/model"
	appErr "github.com/mstanchev/vaxtrack/internal/pkg/errors"
	"github.com/mstanchev/vaxtrack/internal/pkg/timeutil"
	"github.com/mstanchev/vaxtrack/internal/repo"
)

// SessionService owns the server-side session table: opaque tokens
// mapping to user ids, bounded by a TTL.
type SessionService struct {
	sessions *repo.SessionRepo
	ttl      time.Duration
}

func NewSessionService(sessions *repo.SessionRepo, ttl time.Duration) *SessionService {
	return &SessionService{sessions: sessions, ttl: ttl}
}

func (s *SessionService) Create(ctx context.Context, userID string) (string, error) {
	now := timeutil.NowUnix()
	session := &model.Session{
		Token:     newToken(),
		UserID:    userID,
		Ctime:     now,
		ExpiresAt: now + int64(s.ttl.Seconds()),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return "", err
	}
	return session.Token, nil
}

// Resolve maps a token to its user id. Expired sessions are deleted on
// sight and treated the same as missing ones.
func (s *SessionService) Resolve(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", appErr.ErrUnauthorized
	}
	session, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		return "", appErr.ErrUnauthorized
	}
	if session.ExpiresAt <= timeutil.NowUnix() {
		_ = s.sessions.Delete(ctx, token)
		return "", appErr.ErrUnauthorized
	}
	return session.UserID, nil
}

// Destroy is idempotent: clearing an unknown or already-cleared token
// succeeds.
func (s *SessionService) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Delete(ctx, token)
}

func (s *SessionService) PurgeExpired(ctx context.Context) (int64, error) {
	return s.sessions.DeleteExpiredBefore(ctx, timeutil.NowUnix())
}
