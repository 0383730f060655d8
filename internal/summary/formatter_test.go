package summary

import (
	"strings"
	"testing"
	"time"

	"github.com/fekusatech/inoutcome-wa/internal/models"
	"github.com/shopspring/decimal"
)

func txn(cat models.Category, item string, qty int, price int64, status models.Status) models.Transaction {
	p := decimal.NewFromInt(price)
	return models.Transaction{
		UserName:    "Budi",
		Category:    cat,
		ItemName:    item,
		Quantity:    qty,
		Price:       p,
		TotalAmount: p.Mul(decimal.NewFromInt(int64(qty))),
		Status:      status,
		CreatedAt:   time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestRupiah(t *testing.T) {
	tests := []struct {
		name string
		in   int64
		want string
	}{
		{"small", 500, "500"},
		{"thousands", 15000, "15.000"},
		{"millions", 1234567, "1.234.567"},
		{"zero", 0, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Rupiah(decimal.NewFromInt(tt.in)); got != tt.want {
				t.Errorf("Rupiah(%d) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestPendingSummaryEmpty(t *testing.T) {
	got := PendingSummary(nil, nil)
	want := "Tidak ada transaksi yang pending."
	if got != want {
		t.Errorf("empty summary = %q, want %q", got, want)
	}
}

func TestPendingSummary(t *testing.T) {
	txns := []models.Transaction{
		txn(models.CategoryOutcome, "beras", 2, 15000, models.StatusPending),
		txn(models.CategoryIncome, "Transfer dari Budi", 1, 50000, models.StatusPending),
	}
	wallets := []models.Wallet{
		{Name: "cash", Type: models.WalletCash, Balance: decimal.NewFromInt(100000)},
	}

	got := PendingSummary(txns, wallets)

	for _, want := range []string{
		"📋 *Transaksi Anda:*",
		"💸 *Pengeluaran:*",
		"1. 2 beras - Rp 30.000",
		"💰 *Pemasukan:*",
		"2. Transfer dari Budi - Rp 50.000",
		"💸 Total Pengeluaran: Rp 30.000",
		"💰 Total Pemasukan: Rp 50.000",
		"💵 Saldo: Rp 20.000",
		"💼 *Saldo Dompet:*",
		"💵 cash: Rp 100.000",
		"Balas *ya* jika ini sesuai, balas *tidak* jika ingin revisi",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q\n%s", want, got)
		}
	}
}

// Pure function: same input, same text.
func TestPendingSummaryIdempotent(t *testing.T) {
	txns := []models.Transaction{
		txn(models.CategoryOutcome, "kopi", 1, 20000, models.StatusPending),
	}
	a := PendingSummary(txns, nil)
	b := PendingSummary(txns, nil)
	if a != b {
		t.Error("PendingSummary is not idempotent on the same input")
	}
}

func TestPendingSummaryWalletSuffix(t *testing.T) {
	tx := txn(models.CategoryOutcome, "beras", 2, 15000, models.StatusPending)
	tx.WalletName = "cash"
	got := PendingSummary([]models.Transaction{tx}, nil)
	if !strings.Contains(got, "1. 2 beras (cash) - Rp 30.000") {
		t.Errorf("wallet suffix missing:\n%s", got)
	}
}

func TestHistorySummary(t *testing.T) {
	sender := "Budi"
	income := txn(models.CategoryIncome, "Transfer dari Budi", 1, 50000, models.StatusConfirmed)
	income.Sender = &sender
	rows := []models.Transaction{
		txn(models.CategoryOutcome, "beras", 2, 15000, models.StatusConfirmed),
		txn(models.CategoryOutcome, "kopi", 1, 20000, models.StatusRejected),
		txn(models.CategoryOutcome, "gula", 1, 7000, models.StatusPending),
		income,
	}

	got := HistorySummary(rows)

	for _, want := range []string{
		"📋 *Riwayat Transaksi Terakhir:*",
		"✅ Budi",
		"❌ Budi",
		"⏳ Budi",
		"Dari: Budi",
		"(1/8/2025)",
		"📊 *Total:*",
		"💸 Total Pengeluaran: Rp 57.000",
		"💰 Total Pemasukan: Rp 50.000",
		"💵 Saldo: Rp -7.000",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("history missing %q\n%s", want, got)
		}
	}
	if strings.Contains(got, "Balas *ya*") {
		t.Error("history must not carry the confirm prompt")
	}
}

func TestWalletList(t *testing.T) {
	if got := WalletList(nil); got != "Tidak ada dompet yang tersedia." {
		t.Errorf("empty list = %q", got)
	}

	wallets := []models.Wallet{
		{Name: "bri", Type: models.WalletBank, Balance: decimal.NewFromInt(250000)},
		{Name: "ovo", Type: models.WalletEwallet, Balance: decimal.Zero},
	}
	got := WalletList(wallets)
	for _, want := range []string{
		"💼 *Daftar Dompet:*",
		"1. 🏦 bri",
		"Saldo: Rp 250.000",
		"2. 📱 ovo",
		"Saldo: Rp 0",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("wallet list missing %q\n%s", want, got)
		}
	}
}

func TestBalanceSummary(t *testing.T) {
	wallets := []models.Wallet{
		{Name: "cash", Type: models.WalletCash, Balance: decimal.NewFromInt(3300)},
	}
	got := BalanceSummary(wallets, decimal.NewFromInt(3300))
	for _, want := range []string{
		"💰 *Total Saldo:*",
		"💵 Total: Rp 3.300",
		"💼 *Detail per Dompet:*",
		"💵 cash: Rp 3.300",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("balance summary missing %q\n%s", want, got)
		}
	}
}
