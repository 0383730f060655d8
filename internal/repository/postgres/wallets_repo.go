package postgres

import (
	"context"

	"github.com/fekusatech/inoutcome-wa/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type walletsRepo struct{ pool *pgxpool.Pool }

func (r *walletsRepo) Create(ctx context.Context, groupID, name string, wtype models.WalletType) (models.Wallet, error) {
	id := uuid.NewString()
	var w models.Wallet
	err := r.pool.QueryRow(ctx,
		`INSERT INTO wallets(id, group_id, wallet_name, wallet_type)
		 VALUES($1,$2,$3,$4)
		 RETURNING id, group_id, wallet_name, wallet_type, balance, is_active, created_at`,
		id, groupID, name, wtype,
	).Scan(&w.ID, &w.GroupID, &w.Name, &w.Type, &w.Balance, &w.IsActive, &w.CreatedAt)
	return w, err
}

func (r *walletsRepo) GetByName(ctx context.Context, groupID, name string) (models.Wallet, error) {
	var w models.Wallet
	err := r.pool.QueryRow(ctx,
		`SELECT id, group_id, wallet_name, wallet_type, balance, is_active, created_at
		   FROM wallets
		  WHERE group_id=$1 AND wallet_name=$2 AND is_active`,
		groupID, name,
	).Scan(&w.ID, &w.GroupID, &w.Name, &w.Type, &w.Balance, &w.IsActive, &w.CreatedAt)
	return w, err
}

func (r *walletsRepo) List(ctx context.Context, groupID string) ([]models.Wallet, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, group_id, wallet_name, wallet_type, balance, is_active, created_at
		   FROM wallets
		  WHERE group_id=$1 AND is_active
		  ORDER BY wallet_type, wallet_name`,
		groupID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Wallet
	for rows.Next() {
		var w models.Wallet
		if err := rows.Scan(&w.ID, &w.GroupID, &w.Name, &w.Type, &w.Balance, &w.IsActive, &w.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (r *walletsRepo) TotalBalance(ctx context.Context, groupID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(balance), 0)
		   FROM wallets
		  WHERE group_id=$1 AND is_active`,
		groupID,
	).Scan(&total)
	return total, err
}

func (r *walletsRepo) AdjustBalance(ctx context.Context, walletID string, delta decimal.Decimal) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE wallets SET balance = balance + $2 WHERE id=$1`,
		walletID, delta,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *walletsRepo) Deactivate(ctx context.Context, groupID, name string) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE wallets SET is_active=false WHERE group_id=$1 AND wallet_name=$2 AND is_active`,
		groupID, name,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
