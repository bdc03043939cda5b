package job

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/mstanchev/vaxtrack/internal/service"
)

// SessionCleanupJob purges expired rows from the sessions table so the
// store does not grow without bound.
type SessionCleanupJob struct {
	sessions *service.SessionService
}

func NewSessionCleanupJob(sessions *service.SessionService) *SessionCleanupJob {
	return &SessionCleanupJob{sessions: sessions}
}

func (j *SessionCleanupJob) Name() string {
	return "session_cleanup"
}

func (j *SessionCleanupJob) Run(ctx context.Context) error {
	if j.sessions == nil {
		return nil
	}
	purged, err := j.sessions.PurgeExpired(ctx)
	if err != nil {
		return err
	}
	if purged > 0 {
		logutil.GetLogger(ctx).Info("purged expired sessions", zap.Int64("count", purged))
	}
	return nil
}
