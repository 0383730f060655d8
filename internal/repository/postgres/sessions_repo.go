package postgres

import (
	"context"

	"github.com/fekusatech/inoutcome-wa/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type sessionsRepo struct{ pool *pgxpool.Pool }

func (r *sessionsRepo) Create(ctx context.Context, s models.Session) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO transaction_sessions(id, group_id, user_id, expires_at) VALUES($1,$2,$3,$4)`,
		s.ID, s.GroupID, s.UserID, s.ExpiresAt,
	)
	return err
}

func (r *sessionsRepo) PurgeExpired(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM transaction_sessions WHERE expires_at < now()`)
	return err
}
