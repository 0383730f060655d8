// Package bot wires incoming group messages to the parser, ledger and
// formatter. The messaging transport delivers Message values and sends
// whatever reply Handle returns.
package bot

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/fekusatech/inoutcome-wa/internal/config"
	"github.com/fekusatech/inoutcome-wa/internal/ledger"
	"github.com/fekusatech/inoutcome-wa/internal/metrics"
	"github.com/fekusatech/inoutcome-wa/internal/models"
	"github.com/fekusatech/inoutcome-wa/internal/parser"
	"github.com/fekusatech/inoutcome-wa/internal/summary"
	"github.com/fekusatech/inoutcome-wa/internal/wallet"
)

// Message is one incoming transport event.
type Message struct {
	GroupID    string
	AuthorID   string
	AuthorName string
	Body       string
	IsGroup    bool
}

// Fixed user-facing replies. Failures never leak internal detail.
const (
	replySaveFailed      = "❌ Maaf, terjadi kesalahan saat memproses transaksi Anda."
	replyConfirmed       = "✅ Transaksi Anda telah dikonfirmasi!"
	replyNothingConfirm  = "❌ Tidak ada transaksi pending untuk dikonfirmasi."
	replyConfirmFailed   = "❌ Maaf, terjadi kesalahan saat mengkonfirmasi transaksi."
	replyRejected        = "❌ Transaksi Anda telah dibatalkan. Silakan input ulang transaksi yang benar."
	replyNothingReject   = "❌ Tidak ada transaksi pending untuk dibatalkan."
	replyRejectFailed    = "❌ Maaf, terjadi kesalahan saat membatalkan transaksi."
	replyNoHistory       = "📋 Belum ada transaksi di group ini."
	replyHistoryFailed   = "❌ Maaf, terjadi kesalahan saat mengambil riwayat transaksi."
	replyWalletsFailed   = "❌ Maaf, terjadi kesalahan saat mengambil daftar dompet."
	replyBalanceFailed   = "❌ Maaf, terjadi kesalahan saat mengambil saldo."
	replyAddWalletUsage  = "❌ Format: !addwallet [nama] [tipe]\nTipe: cash, bank, ewallet, other"
	replyBadWalletType   = "❌ Tipe dompet tidak valid. Pilih: cash, bank, ewallet, other"
	replyAddWalletFailed = "❌ Maaf, terjadi kesalahan saat menambah dompet."
)

type Handler struct {
	cfg     config.Config
	ledger  *ledger.Service
	wallets *wallet.Service
	log     *slog.Logger
}

func NewHandler(cfg config.Config, ls *ledger.Service, ws *wallet.Service, log *slog.Logger) *Handler {
	return &Handler{cfg: cfg, ledger: ls, wallets: ws, log: log}
}

// Handle processes one incoming message. ok is false when the bot has
// nothing to say (ignored group, unknown text).
func (h *Handler) Handle(ctx context.Context, msg Message) (reply string, ok bool) {
	if !msg.IsGroup || !h.cfg.GroupAllowed(msg.GroupID) {
		return "", false
	}
	metrics.MessagesTotal.Inc()

	body := strings.TrimSpace(msg.Body)

	// transaction statements first
	if p, matched := parser.Parse(body); matched {
		return h.recordTransaction(ctx, msg, p), true
	}
	metrics.ParseMisses.Inc()

	// confirmation tokens
	switch strings.ToLower(body) {
	case "ya", "yes":
		return h.confirm(ctx, msg), true
	case "tidak", "no":
		return h.reject(ctx, msg), true
	}

	// command surface
	switch {
	case body == "!transactions":
		return h.history(ctx, msg), true
	case body == "!wallets":
		return h.walletList(ctx, msg), true
	case body == "!balance":
		return h.balance(ctx, msg), true
	case body == "!tutorial":
		return summary.TutorialText, true
	case strings.HasPrefix(body, "!addwallet "):
		return h.addWallet(ctx, msg, body), true
	}

	return "", false
}

func (h *Handler) recordTransaction(ctx context.Context, msg Message, p parser.Parsed) string {
	tx, err := h.ledger.Save(ctx, msg.GroupID, msg.AuthorID, msg.AuthorName, p)
	if err != nil {
		h.log.Error("save transaction", "group", msg.GroupID, "err", err)
		return replySaveFailed
	}
	h.log.Info("transaction saved",
		"user", msg.AuthorName,
		"category", tx.Category,
		"item", tx.ItemName,
		"total", tx.TotalAmount,
	)

	pending, err := h.ledger.PendingFor(ctx, msg.GroupID, msg.AuthorID)
	if err != nil {
		h.log.Error("list pending", "group", msg.GroupID, "err", err)
		return replySaveFailed
	}
	wallets, err := h.wallets.List(ctx, msg.GroupID)
	if err != nil {
		// the balances block is best effort, keep the summary
		h.log.Error("list wallets", "group", msg.GroupID, "err", err)
		wallets = nil
	}
	return summary.PendingSummary(pending, wallets)
}

func (h *Handler) confirm(ctx context.Context, msg Message) string {
	n, err := h.ledger.ConfirmAll(ctx, msg.GroupID, msg.AuthorID)
	if err != nil {
		h.log.Error("confirm", "group", msg.GroupID, "err", err)
		return replyConfirmFailed
	}
	if n == 0 {
		return replyNothingConfirm
	}
	return replyConfirmed
}

func (h *Handler) reject(ctx context.Context, msg Message) string {
	n, err := h.ledger.RejectAll(ctx, msg.GroupID, msg.AuthorID)
	if err != nil {
		h.log.Error("reject", "group", msg.GroupID, "err", err)
		return replyRejectFailed
	}
	if n == 0 {
		return replyNothingReject
	}
	return replyRejected
}

func (h *Handler) history(ctx context.Context, msg Message) string {
	rows, err := h.ledger.Recent(ctx, msg.GroupID, 0)
	if err != nil {
		h.log.Error("history", "group", msg.GroupID, "err", err)
		return replyHistoryFailed
	}
	if len(rows) == 0 {
		return replyNoHistory
	}
	return summary.HistorySummary(rows)
}

func (h *Handler) walletList(ctx context.Context, msg Message) string {
	wallets, err := h.wallets.List(ctx, msg.GroupID)
	if err != nil {
		h.log.Error("wallet list", "group", msg.GroupID, "err", err)
		return replyWalletsFailed
	}
	return summary.WalletList(wallets)
}

func (h *Handler) balance(ctx context.Context, msg Message) string {
	wallets, err := h.wallets.List(ctx, msg.GroupID)
	if err != nil {
		h.log.Error("balance wallets", "group", msg.GroupID, "err", err)
		return replyBalanceFailed
	}
	total, err := h.wallets.TotalBalance(ctx, msg.GroupID)
	if err != nil {
		h.log.Error("balance total", "group", msg.GroupID, "err", err)
		return replyBalanceFailed
	}
	return summary.BalanceSummary(wallets, total)
}

func (h *Handler) addWallet(ctx context.Context, msg Message, body string) string {
	parts := strings.Fields(body)
	if len(parts) < 3 {
		return replyAddWalletUsage
	}
	name := parts[1]
	wtype, err := models.ParseWalletType(parts[2])
	if errors.Is(err, models.ErrInvalidWalletType) {
		return replyBadWalletType
	}

	w, err := h.wallets.Create(ctx, msg.GroupID, name, wtype)
	if err != nil {
		h.log.Error("add wallet", "group", msg.GroupID, "err", err)
		return replyAddWalletFailed
	}
	return "✅ Dompet \"" + w.Name + "\" berhasil ditambahkan!"
}
