package models

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type WalletType string

const (
	WalletCash    WalletType = "cash"
	WalletBank    WalletType = "bank"
	WalletEwallet WalletType = "ewallet"
	WalletOther   WalletType = "other"
)

var ErrInvalidWalletType = errors.New("invalid wallet type")

// ParseWalletType validates user input against the closed type set.
func ParseWalletType(s string) (WalletType, error) {
	switch WalletType(strings.ToLower(strings.TrimSpace(s))) {
	case WalletCash:
		return WalletCash, nil
	case WalletBank:
		return WalletBank, nil
	case WalletEwallet:
		return WalletEwallet, nil
	case WalletOther:
		return WalletOther, nil
	}
	return "", ErrInvalidWalletType
}

// Icon returns the display glyph for the wallet type.
func (t WalletType) Icon() string {
	switch t {
	case WalletCash:
		return "💵"
	case WalletBank:
		return "🏦"
	case WalletEwallet:
		return "📱"
	case WalletOther:
		return "💳"
	}
	return "💳"
}

// Wallet is a named money pool scoped to a group. Deactivation is the only
// destructive operation; rows are never hard-deleted.
type Wallet struct {
	ID        string          `json:"id"`
	GroupID   string          `json:"group_id"`
	Name      string          `json:"wallet_name"`
	Type      WalletType      `json:"wallet_type"`
	Balance   decimal.Decimal `json:"balance"`
	IsActive  bool            `json:"is_active"`
	CreatedAt time.Time       `json:"created_at"`
}
