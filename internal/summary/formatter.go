// Package summary renders transaction and wallet views as WhatsApp-ready
// Indonesian text. All builders are pure.
package summary

import (
	"fmt"
	"strings"

	"github.com/fekusatech/inoutcome-wa/internal/models"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Indonesian)

// Rupiah renders an amount with Indonesian digit grouping ("15.000").
// Fractional amounts keep two decimals; the parser only produces integer
// prices, but wallet balances may carry cents.
func Rupiah(d decimal.Decimal) string {
	if d.IsInteger() {
		return printer.Sprintf("%d", d.IntPart())
	}
	f, _ := d.Float64()
	return printer.Sprintf("%.2f", f)
}

func statusGlyph(s models.Status) string {
	switch s {
	case models.StatusConfirmed:
		return "✅"
	case models.StatusRejected:
		return "❌"
	}
	return "⏳"
}

func splitByCategory(txns []models.Transaction) (outcomes, incomes []models.Transaction) {
	for _, t := range txns {
		if t.Category == models.CategoryIncome {
			incomes = append(incomes, t)
		} else {
			outcomes = append(outcomes, t)
		}
	}
	return
}

// PendingSummary renders the author's pending set plus live wallet
// balances and the fixed confirm/reject prompt. The caller fetches the
// wallet slice; staleness against concurrent writes is acceptable.
func PendingSummary(txns []models.Transaction, wallets []models.Wallet) string {
	if len(txns) == 0 {
		return "Tidak ada transaksi yang pending."
	}

	var b strings.Builder
	b.WriteString("📋 *Transaksi Anda:*\n\n")

	totalOutcome := decimal.Zero
	totalIncome := decimal.Zero
	idx := 1

	outcomes, incomes := splitByCategory(txns)

	if len(outcomes) > 0 {
		b.WriteString("💸 *Pengeluaran:*\n")
		for _, t := range outcomes {
			// recomputed at display time; must agree with the stored total
			total := t.Price.Mul(decimal.NewFromInt(int64(t.Quantity)))
			fmt.Fprintf(&b, "%d. %d %s%s - Rp %s\n", idx, t.Quantity, t.ItemName, walletSuffix(t), Rupiah(total))
			totalOutcome = totalOutcome.Add(total)
			idx++
		}
		b.WriteString("\n")
	}

	if len(incomes) > 0 {
		b.WriteString("💰 *Pemasukan:*\n")
		for _, t := range incomes {
			total := t.Price.Mul(decimal.NewFromInt(int64(t.Quantity)))
			fmt.Fprintf(&b, "%d. %s%s - Rp %s\n", idx, t.ItemName, walletSuffix(t), Rupiah(total))
			totalIncome = totalIncome.Add(total)
			idx++
		}
		b.WriteString("\n")
	}

	b.WriteString("📊 *Ringkasan:*\n")
	fmt.Fprintf(&b, "💸 Total Pengeluaran: Rp %s\n", Rupiah(totalOutcome))
	fmt.Fprintf(&b, "💰 Total Pemasukan: Rp %s\n", Rupiah(totalIncome))
	fmt.Fprintf(&b, "💵 Saldo: Rp %s\n\n", Rupiah(totalIncome.Sub(totalOutcome)))

	if len(wallets) > 0 {
		b.WriteString("💼 *Saldo Dompet:*\n")
		for _, w := range wallets {
			fmt.Fprintf(&b, "%s %s: Rp %s\n", w.Type.Icon(), w.Name, Rupiah(w.Balance))
		}
		b.WriteString("\n")
	}

	b.WriteString("Balas *ya* jika ini sesuai, balas *tidak* jika ingin revisi")
	return b.String()
}

func walletSuffix(t models.Transaction) string {
	if t.WalletName == "" {
		return ""
	}
	return " (" + t.WalletName + ")"
}

// HistorySummary renders the recent-transactions view, newest first as
// given, with per-row status glyph and date. No trailing prompt.
func HistorySummary(rows []models.Transaction) string {
	var b strings.Builder
	b.WriteString("📋 *Riwayat Transaksi Terakhir:*\n\n")

	totalOutcome := decimal.Zero
	totalIncome := decimal.Zero

	outcomes, incomes := splitByCategory(rows)

	if len(outcomes) > 0 {
		b.WriteString("💸 *Pengeluaran:*\n")
		for i, t := range outcomes {
			date := t.CreatedAt.Format("2/1/2006")
			fmt.Fprintf(&b, "%d. %s %s\n", i+1, statusGlyph(t.Status), t.UserName)
			fmt.Fprintf(&b, "   %d %s - Rp %s\n", t.Quantity, t.ItemName, Rupiah(t.Price))
			fmt.Fprintf(&b, "   Total: Rp %s (%s)\n\n", Rupiah(t.TotalAmount), date)
			totalOutcome = totalOutcome.Add(t.TotalAmount)
		}
	}

	if len(incomes) > 0 {
		b.WriteString("💰 *Pemasukan:*\n")
		for i, t := range incomes {
			date := t.CreatedAt.Format("2/1/2006")
			fmt.Fprintf(&b, "%d. %s %s\n", i+1, statusGlyph(t.Status), t.UserName)
			fmt.Fprintf(&b, "   %s - Rp %s\n", t.ItemName, Rupiah(t.Price))
			if t.Sender != nil && *t.Sender != "" {
				fmt.Fprintf(&b, "   Dari: %s\n", *t.Sender)
			}
			fmt.Fprintf(&b, "   Total: Rp %s (%s)\n\n", Rupiah(t.TotalAmount), date)
			totalIncome = totalIncome.Add(t.TotalAmount)
		}
	}

	b.WriteString("📊 *Total:*\n")
	fmt.Fprintf(&b, "💸 Total Pengeluaran: Rp %s\n", Rupiah(totalOutcome))
	fmt.Fprintf(&b, "💰 Total Pemasukan: Rp %s\n", Rupiah(totalIncome))
	fmt.Fprintf(&b, "💵 Saldo: Rp %s", Rupiah(totalIncome.Sub(totalOutcome)))
	return b.String()
}

// WalletList renders the !wallets view.
func WalletList(wallets []models.Wallet) string {
	if len(wallets) == 0 {
		return "Tidak ada dompet yang tersedia."
	}

	var b strings.Builder
	b.WriteString("💼 *Daftar Dompet:*\n\n")
	for i, w := range wallets {
		fmt.Fprintf(&b, "%d. %s %s\n", i+1, w.Type.Icon(), w.Name)
		fmt.Fprintf(&b, "   Saldo: Rp %s\n\n", Rupiah(w.Balance))
	}
	return b.String()
}

// BalanceSummary renders the !balance view.
func BalanceSummary(wallets []models.Wallet, total decimal.Decimal) string {
	var b strings.Builder
	b.WriteString("💰 *Total Saldo:*\n\n")
	fmt.Fprintf(&b, "💵 Total: Rp %s\n\n", Rupiah(total))

	if len(wallets) > 0 {
		b.WriteString("💼 *Detail per Dompet:*\n")
		for _, w := range wallets {
			fmt.Fprintf(&b, "%s %s: Rp %s\n", w.Type.Icon(), w.Name, Rupiah(w.Balance))
		}
	}
	return b.String()
}

// TutorialText is the fixed !tutorial reply.
const TutorialText = `📌 Daftar Perintah Bot InOutCome
💸 Cek Riwayat Transaksi
!transactions
Menampilkan transaksi terakhir yang dicatat.

👛 Lihat Dompet & Saldo
!wallets
Menampilkan semua dompet aktif dan saldonya.

💰 Cek Total Saldo
!balance
Menampilkan total saldo dari semua dompet.

➕ Tambah Dompet Baru
!addwallet [nama_dompet] [tipe]
Menambahkan dompet baru ke sistem.

Contoh:
!addwallet bri bank
!addwallet ovo ewallet

Tipe dompet yang tersedia:
- cash (tunai)
- bank (rekening)
- ewallet (GoPay, OVO, dll)
- other (lainnya)`
