// Package ledger persists parsed transactions as a pending set and drives
// the bulk confirm/reject workflow keyed by (group, author).
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fekusatech/inoutcome-wa/internal/metrics"
	"github.com/fekusatech/inoutcome-wa/internal/models"
	"github.com/fekusatech/inoutcome-wa/internal/parser"
	repo "github.com/fekusatech/inoutcome-wa/internal/repository"
	"github.com/fekusatech/inoutcome-wa/internal/wallet"
	"github.com/fekusatech/inoutcome-wa/internal/worker"
)

const (
	opTimeout   = 5 * time.Second
	sessionTTL  = 24 * time.Hour
	recentLimit = 15
)

type Service struct {
	trx     repo.Transactions
	sess    repo.Sessions
	log     repo.AuditLogs
	wallets *wallet.Service
	wp      *worker.Pool
}

func NewService(t repo.Transactions, s repo.Sessions, l repo.AuditLogs, ws *wallet.Service, wp *worker.Pool) *Service {
	return &Service{trx: t, sess: s, log: l, wallets: ws, wp: wp}
}

func (s *Service) audit(ctx context.Context, entityID, action, details string) {
	var det map[string]any
	if details != "" {
		det = map[string]any{"message": details}
	}
	_ = s.log.Create(ctx, models.AuditLog{
		EntityType: "transaction",
		EntityID:   &entityID,
		Action:     action,
		Details:    det,
	})
}

// Save resolves the parsed wallet name (nil wallet when unresolved or
// absent) and inserts the transaction as pending. Store failures propagate
// to the caller; the orchestrator owns the user-facing apology.
func (s *Service) Save(ctx context.Context, groupID, userID, userName string, p parser.Parsed) (models.Transaction, error) {
	tx := models.Transaction{
		GroupID:     groupID,
		UserID:      userID,
		UserName:    userName,
		Category:    p.Category,
		ItemName:    p.ItemName,
		Quantity:    p.Quantity,
		Price:       p.Price,
		TotalAmount: p.TotalAmount,
		Status:      models.StatusPending,
	}
	if p.Sender != "" {
		sender := p.Sender
		tx.Sender = &sender
	}
	if p.WalletName != "" {
		w, err := s.wallets.Lookup(ctx, groupID, p.WalletName)
		switch {
		case err == nil:
			id := w.ID
			tx.WalletID = &id
			tx.WalletName = w.Name
		case errors.Is(err, wallet.ErrNotFound):
			// unknown prefix word, keep the transaction walletless
		default:
			return models.Transaction{}, err
		}
	}

	saveCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	tx, err := s.trx.Create(saveCtx, tx)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("save transaction: %w", err)
	}
	s.audit(saveCtx, tx.ID, "created", string(p.Category)+" recorded as pending")
	metrics.TransactionsParsed.WithLabelValues(string(p.Category)).Inc()

	// confirmation-session bookkeeping is best effort
	sess := models.Session{GroupID: groupID, UserID: userID, ExpiresAt: time.Now().Add(sessionTTL)}
	s.wp.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		if err := s.sess.Create(ctx, sess); err != nil {
			slog.Warn("session create", "err", err)
		}
	})
	return tx, nil
}

// PendingFor lists the author's pending set in the group, oldest first.
func (s *Service) PendingFor(ctx context.Context, groupID, userID string) ([]models.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	txns, err := s.trx.ListPending(ctx, groupID, userID)
	if err != nil {
		return nil, fmt.Errorf("list pending: %w", err)
	}
	return txns, nil
}

// ConfirmAll moves the entire pending set for the pair to confirmed and
// returns the number of rows affected. Confirmed rows are terminal.
func (s *Service) ConfirmAll(ctx context.Context, groupID, userID string) (int64, error) {
	n, err := s.transition(ctx, groupID, userID, models.StatusConfirmed)
	if err == nil && n > 0 {
		metrics.TransactionsConfirmed.Add(float64(n))
	}
	return n, err
}

// RejectAll is the rejection counterpart of ConfirmAll.
func (s *Service) RejectAll(ctx context.Context, groupID, userID string) (int64, error) {
	n, err := s.transition(ctx, groupID, userID, models.StatusRejected)
	if err == nil && n > 0 {
		metrics.TransactionsRejected.Add(float64(n))
	}
	return n, err
}

func (s *Service) transition(ctx context.Context, groupID, userID string, status models.Status) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	n, err := s.trx.UpdatePendingStatus(ctx, groupID, userID, status)
	if err != nil {
		return 0, fmt.Errorf("set %s: %w", status, err)
	}
	if n > 0 {
		s.audit(ctx, groupID+"/"+userID, "status_change", fmt.Sprintf("%d pending -> %s", n, status))
	}
	return n, nil
}

// Recent lists the group's latest transactions regardless of status,
// newest first. limit <= 0 falls back to the default of 15.
func (s *Service) Recent(ctx context.Context, groupID string, limit int) ([]models.Transaction, error) {
	if limit <= 0 {
		limit = recentLimit
	}
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	txns, err := s.trx.ListRecent(ctx, groupID, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent: %w", err)
	}
	return txns, nil
}

// PurgeExpiredSessions is background maintenance; failures are logged and
// swallowed, never surfaced to the conversation flow.
func (s *Service) PurgeExpiredSessions(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	if err := s.sess.PurgeExpired(ctx); err != nil {
		slog.Error("session purge", "err", err)
	}
}
