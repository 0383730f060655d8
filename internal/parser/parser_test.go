package parser

import (
	"testing"

	"github.com/fekusatech/inoutcome-wa/internal/models"
)

func TestParseOutcome(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		item     string
		quantity int
		price    int64
		total    int64
		wallet   string
	}{
		{"qty and price", "beli beras 2 15000", "beras", 2, 15000, 30000, ""},
		{"price only defaults qty", "beli kopi 20000", "kopi", 1, 20000, 20000, ""},
		{"buy verb", "buy sabun 3 5000", "sabun", 3, 5000, 15000, ""},
		{"tumbas verb", "tumbas gula 7000", "gula", 1, 7000, 7000, ""},
		{"case insensitive", "BELI Beras 2 15000", "Beras", 2, 15000, 30000, ""},
		{"multi word item", "beli minyak goreng 2 28000", "minyak goreng", 2, 28000, 56000, ""},
		{"curated wallet prefix", "cash beli beras 2 15000", "beras", 2, 15000, 30000, "cash"},
		{"curated wallet case", "GoPay beli kopi 20000", "kopi", 1, 20000, 20000, "gopay"},
		{"generic wallet prefix", "bca beli kopi 20000", "kopi", 1, 20000, 20000, "bca"},
		{"leading whitespace", "  beli kopi 20000  ", "kopi", 1, 20000, 20000, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := Parse(tt.text)
			if !ok {
				t.Fatalf("Parse(%q) did not match", tt.text)
			}
			if p.Category != models.CategoryOutcome {
				t.Errorf("category = %q, want outcome", p.Category)
			}
			if p.ItemName != tt.item {
				t.Errorf("item = %q, want %q", p.ItemName, tt.item)
			}
			if p.Quantity != tt.quantity {
				t.Errorf("quantity = %d, want %d", p.Quantity, tt.quantity)
			}
			if p.Price.IntPart() != tt.price {
				t.Errorf("price = %s, want %d", p.Price, tt.price)
			}
			if p.TotalAmount.IntPart() != tt.total {
				t.Errorf("total = %s, want %d", p.TotalAmount, tt.total)
			}
			if p.WalletName != tt.wallet {
				t.Errorf("wallet = %q, want %q", p.WalletName, tt.wallet)
			}
			if p.Sender != "" {
				t.Errorf("sender = %q, want empty for outcome", p.Sender)
			}
		})
	}
}

func TestParseIncome(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		sender string
		amount int64
	}{
		{"transfer dari", "transfer dari Budi 50000", "Budi", 50000},
		{"terima dari", "terima dari Ibu 100000", "Ibu", 100000},
		{"bare dari", "dari Andi 25000", "Andi", 25000},
		{"from", "from Budi 50000", "Budi", 50000},
		{"multi word sender", "transfer dari Pak Budi 50000", "Pak Budi", 50000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := Parse(tt.text)
			if !ok {
				t.Fatalf("Parse(%q) did not match", tt.text)
			}
			if p.Category != models.CategoryIncome {
				t.Errorf("category = %q, want income", p.Category)
			}
			if p.Sender != tt.sender {
				t.Errorf("sender = %q, want %q", p.Sender, tt.sender)
			}
			if p.ItemName != "Transfer dari "+tt.sender {
				t.Errorf("item = %q, want %q", p.ItemName, "Transfer dari "+tt.sender)
			}
			if p.Quantity != 1 {
				t.Errorf("quantity = %d, want 1", p.Quantity)
			}
			if p.TotalAmount.IntPart() != tt.amount {
				t.Errorf("total = %s, want %d", p.TotalAmount, tt.amount)
			}
		})
	}
}

func TestParseNoMatch(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"chit chat", "halo apa kabar"},
		{"empty", ""},
		{"whitespace", "   "},
		{"command", "!wallets"},
		{"digits in item", "beli beras2 15000"},
		{"fractional price", "beli kopi 20000.50"},
		{"verb only", "beli"},
		{"missing amount", "transfer dari Budi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if p, ok := Parse(tt.text); ok {
				t.Errorf("Parse(%q) matched unexpectedly: %+v", tt.text, p)
			}
		})
	}
}

// The curated wallet list must win over the generic single-word fallback,
// and the fallback must still split any leading bare word.
func TestResolveWalletPrefix(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wallet    string
		remainder string
		ok        bool
	}{
		{"curated", "cash beli beras 2 15000", "cash", "beli beras 2 15000", true},
		{"curated uppercase", "OVO beli kopi 20000", "ovo", "beli kopi 20000", true},
		{"generic eats verbs too", "beli beras 2 15000", "beli", "beras 2 15000", true},
		{"generic unknown wallet", "bca beli kopi 20000", "bca", "beli kopi 20000", true},
		{"single word", "halo", "", "", false},
		{"leading digit", "2 beli beras", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, rem, ok := ResolveWalletPrefix(tt.text)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if name != tt.wallet || rem != tt.remainder {
				t.Errorf("got (%q, %q), want (%q, %q)", name, rem, tt.wallet, tt.remainder)
			}
		})
	}
}
