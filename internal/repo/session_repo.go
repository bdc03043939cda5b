package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/mstanchev/vaxtrack/internal/model"
	"github.com/mstanchev/vaxtrack/internal/pkg/dbutil"
	appErr "github.com/mstanchev/vaxtrack/internal/pkg/errors"
)

type SessionRepo struct {
	db *sql.DB
}

func NewSessionRepo(db *sql.DB) *SessionRepo {
	return &SessionRepo{db: db}
}

func (r *SessionRepo) Create(ctx context.Context, session *model.Session) error {
	data := map[string]interface{}{
		"token":      session.Token,
		"user_id":    session.UserID,
		"ctime":      session.Ctime,
		"expires_at": session.ExpiresAt,
	}
	sqlStr, args, err := builder.BuildInsert("sessions", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*model.Session, error) {
	where := map[string]interface{}{"token": token}
	sqlStr, args, err := builder.BuildSelect("sessions", where, []string{"token", "user_id", "ctime", "expires_at"})
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	if !rows.Next() {
		return nil, appErr.ErrNotFound
	}
	var session model.Session
	if err := rows.Scan(&session.Token, &session.UserID, &session.Ctime, &session.ExpiresAt); err != nil {
		return nil, err
	}
	return &session, nil
}

// Delete removes the session if it exists. Deleting an unknown token is
// a no-op, which keeps logout idempotent.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	where := map[string]interface{}{"token": token}
	sqlStr, args, err := builder.BuildDelete("sessions", where)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *SessionRepo) DeleteExpiredBefore(ctx context.Context, cutoff int64) (int64, error) {
	where := map[string]interface{}{"expires_at <": cutoff}
	sqlStr, args, err := builder.BuildDelete("sessions", where)
	if err != nil {
		return 0, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
