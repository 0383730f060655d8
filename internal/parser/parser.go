// Package parser classifies free-text group messages as transaction
// statements. It is pure: no I/O, no store access.
package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/fekusatech/inoutcome-wa/internal/models"
	"github.com/shopspring/decimal"
)

// Parsed is the result of classifying a message body.
type Parsed struct {
	Category    models.Category
	Action      string
	ItemName    string
	Quantity    int
	Price       decimal.Decimal
	TotalAmount decimal.Decimal
	Sender      string
	WalletName  string
}

// matcher pairs an anchored pattern with a post-processing step, evaluated
// first-match-wins. Ordering is significant: outcome before income, and the
// four-field outcome form before the three-field one.
type matcher struct {
	re    *regexp.Regexp
	build func(m []string) Parsed
}

var outcomeMatchers = []matcher{
	{
		// beli/buy/tumbas <item> <qty> <price>
		re: regexp.MustCompile(`(?i)^(beli|buy|tumbas)\s+([^\d]+)\s+(\d+)\s+(\d+)$`),
		build: func(m []string) Parsed {
			qty := mustInt(m[3])
			price := mustDecimal(m[4])
			return Parsed{
				Category:    models.CategoryOutcome,
				Action:      strings.ToLower(m[1]),
				ItemName:    strings.TrimSpace(m[2]),
				Quantity:    qty,
				Price:       price,
				TotalAmount: price.Mul(decimal.NewFromInt(int64(qty))),
			}
		},
	},
	{
		// beli/buy/tumbas <item> <price>, quantity defaults to 1
		re: regexp.MustCompile(`(?i)^(beli|buy|tumbas)\s+([^\d]+)\s+(\d+)$`),
		build: func(m []string) Parsed {
			price := mustDecimal(m[3])
			return Parsed{
				Category:    models.CategoryOutcome,
				Action:      strings.ToLower(m[1]),
				ItemName:    strings.TrimSpace(m[2]),
				Quantity:    1,
				Price:       price,
				TotalAmount: price,
			}
		},
	},
}

var incomeMatchers = []matcher{
	{
		re:    regexp.MustCompile(`(?i)^(transfer|terima)\s+dari\s+([^\d]+)\s+(\d+)$`),
		build: buildIncome,
	},
	{
		re:    regexp.MustCompile(`(?i)^(dari|from)\s+([^\d]+)\s+(\d+)$`),
		build: buildIncome,
	},
}

func buildIncome(m []string) Parsed {
	sender := strings.TrimSpace(m[2])
	amount := mustDecimal(m[3])
	return Parsed{
		Category:    models.CategoryIncome,
		Action:      strings.ToLower(m[1]),
		ItemName:    "Transfer dari " + sender,
		Quantity:    1,
		Price:       amount,
		TotalAmount: amount,
		Sender:      sender,
	}
}

// Wallet-name prefix patterns: the curated set is consulted before the
// generic single-word fallback. The fallback matches almost any leading
// word, so it will happily consume a transaction verb as a wallet name;
// Parse compensates by re-trying the full text when the remainder fails.
var walletMatchers = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(cash|mandiri|gopay|ovo|dana)\s+(.+)$`),
	regexp.MustCompile(`(?i)^([a-zA-Z]+)\s+(.+)$`),
}

// ResolveWalletPrefix splits a leading wallet name from the text. The
// returned name is lowercased; remainder is trimmed.
func ResolveWalletPrefix(text string) (name, remainder string, ok bool) {
	for _, re := range walletMatchers {
		if m := re.FindStringSubmatch(text); m != nil {
			return strings.ToLower(m[1]), strings.TrimSpace(m[2]), true
		}
	}
	return "", "", false
}

// Parse classifies a raw message body. The second return is false when the
// message is not a transaction statement; that is not an error.
func Parse(raw string) (Parsed, bool) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return Parsed{}, false
	}

	if name, rest, ok := ResolveWalletPrefix(text); ok {
		if p, matched := parseBody(rest); matched {
			p.WalletName = name
			return p, true
		}
	}
	return parseBody(text)
}

func parseBody(text string) (Parsed, bool) {
	for _, m := range outcomeMatchers {
		if sub := m.re.FindStringSubmatch(text); sub != nil {
			return m.build(sub), true
		}
	}
	for _, m := range incomeMatchers {
		if sub := m.re.FindStringSubmatch(text); sub != nil {
			return m.build(sub), true
		}
	}
	return Parsed{}, false
}

// The capture groups are digit-only runs, so these cannot fail.
func mustInt(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func mustDecimal(s string) decimal.Decimal {
	n, _ := strconv.ParseInt(s, 10, 64)
	return decimal.NewFromInt(n)
}
