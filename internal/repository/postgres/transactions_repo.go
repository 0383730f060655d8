package postgres

import (
	"context"

	"github.com/fekusatech/inoutcome-wa/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type transactionsRepo struct{ pool *pgxpool.Pool }

const txnColumns = `t.id, t.group_id, t.user_id, t.user_name, t.transaction_category,
       t.item_name, t.quantity, t.price, t.total_amount, t.sender, t.wallet_id,
       COALESCE(w.wallet_name, ''), t.transaction_type, t.created_at`

func scanTxn(row pgx.Row) (models.Transaction, error) {
	var tx models.Transaction
	err := row.Scan(
		&tx.ID, &tx.GroupID, &tx.UserID, &tx.UserName, &tx.Category,
		&tx.ItemName, &tx.Quantity, &tx.Price, &tx.TotalAmount, &tx.Sender,
		&tx.WalletID, &tx.WalletName, &tx.Status, &tx.CreatedAt,
	)
	return tx, err
}

func (r *transactionsRepo) Create(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	const q = `
INSERT INTO transactions (
  id, group_id, user_id, user_name, transaction_category, item_name,
  quantity, price, total_amount, sender, wallet_id, transaction_type
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
RETURNING id, created_at;
`
	err := r.pool.QueryRow(ctx, q,
		tx.ID, tx.GroupID, tx.UserID, tx.UserName, tx.Category, tx.ItemName,
		tx.Quantity, tx.Price, tx.TotalAmount, tx.Sender, tx.WalletID, tx.Status,
	).Scan(&tx.ID, &tx.CreatedAt)
	return tx, err
}

func (r *transactionsRepo) ListPending(ctx context.Context, groupID, userID string) ([]models.Transaction, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+txnColumns+`
		   FROM transactions t
		   LEFT JOIN wallets w ON w.id = t.wallet_id
		  WHERE t.group_id=$1 AND t.user_id=$2 AND t.transaction_type=$3
		  ORDER BY t.created_at ASC`,
		groupID, userID, models.StatusPending,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTxns(rows)
}

func (r *transactionsRepo) UpdatePendingStatus(ctx context.Context, groupID, userID string, status models.Status) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE transactions SET transaction_type=$3
		  WHERE group_id=$1 AND user_id=$2 AND transaction_type=$4`,
		groupID, userID, status, models.StatusPending,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *transactionsRepo) ListRecent(ctx context.Context, groupID string, limit int) ([]models.Transaction, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+txnColumns+`
		   FROM transactions t
		   LEFT JOIN wallets w ON w.id = t.wallet_id
		  WHERE t.group_id=$1
		  ORDER BY t.created_at DESC
		  LIMIT $2`,
		groupID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTxns(rows)
}

func collectTxns(rows pgx.Rows) ([]models.Transaction, error) {
	var out []models.Transaction
	for rows.Next() {
		tx, err := scanTxn(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, tx)
	}
	return out, rows.Err()
}
