package repository

import (
	"context"

	"github.com/fekusatech/inoutcome-wa/internal/models"
	"github.com/shopspring/decimal"
)

type Wallets interface {
	Create(ctx context.Context, groupID, name string, wtype models.WalletType) (models.Wallet, error)
	GetByName(ctx context.Context, groupID, name string) (models.Wallet, error)
	List(ctx context.Context, groupID string) ([]models.Wallet, error)
	TotalBalance(ctx context.Context, groupID string) (decimal.Decimal, error)
	// AdjustBalance atomically adds delta to the wallet balance and reports
	// whether a row was affected.
	AdjustBalance(ctx context.Context, walletID string, delta decimal.Decimal) (bool, error)
	Deactivate(ctx context.Context, groupID, name string) (bool, error)
}

type Transactions interface {
	Create(ctx context.Context, tx models.Transaction) (models.Transaction, error)
	// ListPending returns the pending set for the (group, author) pair,
	// oldest first.
	ListPending(ctx context.Context, groupID, userID string) ([]models.Transaction, error)
	// UpdatePendingStatus moves the whole pending set for the pair to the
	// given terminal status and returns the number of rows affected.
	UpdatePendingStatus(ctx context.Context, groupID, userID string, status models.Status) (int64, error)
	ListRecent(ctx context.Context, groupID string, limit int) ([]models.Transaction, error)
}

type Sessions interface {
	Create(ctx context.Context, s models.Session) error
	PurgeExpired(ctx context.Context) error
}

type AuditLogs interface {
	Create(ctx context.Context, l models.AuditLog) error
}
