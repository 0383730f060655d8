// Package wallet implements the wallet resolver: prefix extraction,
// lookup/create, listings and per-group balance derivation.
package wallet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/fekusatech/inoutcome-wa/internal/models"
	"github.com/fekusatech/inoutcome-wa/internal/parser"
	repo "github.com/fekusatech/inoutcome-wa/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const opTimeout = 5 * time.Second

// ErrNotFound is returned when no active wallet matches a lookup.
var ErrNotFound = errors.New("wallet not found")

type Service struct {
	r     repo.Wallets
	cache *ristretto.Cache
}

func NewService(r repo.Wallets) (*Service, error) {
	// by-name lookups run on every parsed message; keep them cheap
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10000,
		MaxCost:     10000,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("wallet cache: %w", err)
	}
	return &Service{r: r, cache: cache}, nil
}

// ResolvePrefix extracts an optional wallet-name prefix from free text.
func (s *Service) ResolvePrefix(text string) (name, remainder string, ok bool) {
	return parser.ResolveWalletPrefix(text)
}

func cacheKey(groupID, name string) string { return groupID + "|" + name }

// Lookup finds an active wallet by name within a group. ErrNotFound when
// absent; other errors are store failures.
func (s *Service) Lookup(ctx context.Context, groupID, name string) (models.Wallet, error) {
	if v, ok := s.cache.Get(cacheKey(groupID, name)); ok {
		if w, ok := v.(models.Wallet); ok {
			return w, nil
		}
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	w, err := s.r.GetByName(ctx, groupID, name)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Wallet{}, ErrNotFound
	}
	if err != nil {
		return models.Wallet{}, fmt.Errorf("lookup wallet: %w", err)
	}
	s.cache.Set(cacheKey(groupID, name), w, 1)
	return w, nil
}

// Create persists a new wallet with zero balance. The type must already be
// validated via models.ParseWalletType.
func (s *Service) Create(ctx context.Context, groupID, name string, wtype models.WalletType) (models.Wallet, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	w, err := s.r.Create(ctx, groupID, name, wtype)
	if err != nil {
		return models.Wallet{}, fmt.Errorf("create wallet: %w", err)
	}
	s.cache.Del(cacheKey(groupID, name))
	return w, nil
}

// List returns the group's active wallets ordered by type then name.
func (s *Service) List(ctx context.Context, groupID string) ([]models.Wallet, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	ws, err := s.r.List(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("list wallets: %w", err)
	}
	return ws, nil
}

// TotalBalance sums the active wallet balances of a group; zero when the
// group has no wallets.
func (s *Service) TotalBalance(ctx context.Context, groupID string) (decimal.Decimal, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	total, err := s.r.TotalBalance(ctx, groupID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("total balance: %w", err)
	}
	return total, nil
}

// AdjustBalance adds (income) or subtracts (outcome) amount from the wallet
// balance in a single atomic statement. Reports whether a row was affected.
func (s *Service) AdjustBalance(ctx context.Context, walletID string, amount decimal.Decimal, isIncome bool) (bool, error) {
	delta := amount
	if !isIncome {
		delta = amount.Neg()
	}
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	ok, err := s.r.AdjustBalance(ctx, walletID, delta)
	if err != nil {
		return false, fmt.Errorf("adjust balance: %w", err)
	}
	if ok {
		// balance changed under some name we don't know here
		s.cache.Clear()
	}
	return ok, nil
}

// Deactivate soft-deletes a wallet. Inactive wallets drop out of listings
// and lookups but are never physically removed.
func (s *Service) Deactivate(ctx context.Context, groupID, name string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	ok, err := s.r.Deactivate(ctx, groupID, name)
	if err != nil {
		return false, fmt.Errorf("deactivate wallet: %w", err)
	}
	s.cache.Del(cacheKey(groupID, name))
	return ok, nil
}
