package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryOutcome Category = "outcome"
	CategoryIncome  Category = "income"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusRejected  Status = "rejected"
)

// Transaction is one user-reported money movement. TotalAmount is the
// stored product Quantity*Price, computed at parse time.
type Transaction struct {
	ID          string          `json:"id"`
	GroupID     string          `json:"group_id"`
	UserID      string          `json:"user_id"`
	UserName    string          `json:"user_name"`
	Category    Category        `json:"transaction_category"`
	ItemName    string          `json:"item_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Sender      *string         `json:"sender,omitempty"`
	WalletID    *string         `json:"wallet_id,omitempty"`
	// Resolved from wallets on read; empty when the row has no wallet.
	WalletName string    `json:"wallet_name,omitempty"`
	Status     Status    `json:"transaction_type"`
	CreatedAt  time.Time `json:"created_at"`
}
