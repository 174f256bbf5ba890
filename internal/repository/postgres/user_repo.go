package postgres

import (
	"context"
	"fmt"

	"github.com/NordCoder/Remindus/internal/domain/user"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

var _ user.Store = (*UserRepo)(nil)

type UserRepo struct {
	db  *DB
	log *zap.Logger
}

func NewUserRepo(db *DB) *UserRepo {
	return &UserRepo{db: db, log: zap.L().With(zap.String("component", "postgres.users"))}
}

func (r *UserRepo) WithLogger(l *zap.Logger) *UserRepo {
	if l == nil {
		return r
	}
	cp := *r
	cp.log = l.With(zap.String("component", "postgres.users"))
	return &cp
}

const qUsersAll = `
SELECT id, notification_enabled, notification_hour, notification_minute, fcm_token
FROM users
ORDER BY id;`

// userRow mirrors the columns as stored; every preference column is nullable
// because rows are written by clients we do not control.
type userRow struct {
	ID      string
	Enabled *bool
	Hour    *int32
	Minute  *int32
	Token   *string
}

// ListAll returns every user whose row has the required reminder columns.
// Rows missing one are skipped with a warning instead of failing the read.
func (r *UserRepo) ListAll(ctx context.Context) ([]user.User, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Pool.Query(ctx, qUsersAll)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	raw, err := pgx.CollectRows(rows, pgx.RowToStructByPos[userRow])
	if err != nil {
		return nil, fmt.Errorf("collect users: %w", err)
	}

	out := make([]user.User, 0, len(raw))
	for _, row := range raw {
		u, err := row.toDomain()
		if err != nil {
			r.log.Warn("skipping user row", zap.String("user_id", row.ID), zap.Error(err))
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (row userRow) toDomain() (user.User, error) {
	switch {
	case row.Enabled == nil:
		return user.User{}, fmt.Errorf("%w: notification_enabled is null", ErrMalformedRow)
	case row.Hour == nil:
		return user.User{}, fmt.Errorf("%w: notification_hour is null", ErrMalformedRow)
	case row.Minute == nil:
		return user.User{}, fmt.Errorf("%w: notification_minute is null", ErrMalformedRow)
	}
	u := user.User{
		ID:                  row.ID,
		NotificationEnabled: *row.Enabled,
		NotificationHour:    int(*row.Hour),
		NotificationMinute:  int(*row.Minute),
	}
	// A missing token is a valid state: the user just never becomes due.
	if row.Token != nil {
		u.DeliveryToken = *row.Token
	}
	return u, nil
}
