package wallet

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fekusatech/inoutcome-wa/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type memRepo struct {
	rows    []models.Wallet
	lookups int
}

func (m *memRepo) Create(_ context.Context, groupID, name string, wtype models.WalletType) (models.Wallet, error) {
	w := models.Wallet{
		ID: uuid.NewString(), GroupID: groupID, Name: name, Type: wtype,
		Balance: decimal.Zero, IsActive: true, CreatedAt: time.Now(),
	}
	m.rows = append(m.rows, w)
	return w, nil
}

func (m *memRepo) GetByName(_ context.Context, groupID, name string) (models.Wallet, error) {
	m.lookups++
	for _, w := range m.rows {
		if w.GroupID == groupID && w.Name == name && w.IsActive {
			return w, nil
		}
	}
	return models.Wallet{}, pgx.ErrNoRows
}

func (m *memRepo) List(_ context.Context, groupID string) ([]models.Wallet, error) {
	var out []models.Wallet
	for _, w := range m.rows {
		if w.GroupID == groupID && w.IsActive {
			out = append(out, w)
		}
	}
	return out, nil
}

func (m *memRepo) TotalBalance(_ context.Context, groupID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, w := range m.rows {
		if w.GroupID == groupID && w.IsActive {
			total = total.Add(w.Balance)
		}
	}
	return total, nil
}

func (m *memRepo) AdjustBalance(_ context.Context, walletID string, delta decimal.Decimal) (bool, error) {
	for i, w := range m.rows {
		if w.ID == walletID {
			m.rows[i].Balance = w.Balance.Add(delta)
			return true, nil
		}
	}
	return false, nil
}

func (m *memRepo) Deactivate(_ context.Context, groupID, name string) (bool, error) {
	for i, w := range m.rows {
		if w.GroupID == groupID && w.Name == name && w.IsActive {
			m.rows[i].IsActive = false
			return true, nil
		}
	}
	return false, nil
}

func newTestService(t *testing.T) (*Service, *memRepo) {
	t.Helper()
	repo := &memRepo{}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, repo
}

func TestCreateAndLookup(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	w, err := svc.Create(ctx, "g1", "bri", models.WalletBank)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !w.Balance.IsZero() {
		t.Errorf("new wallet balance = %s, want 0", w.Balance)
	}

	got, err := svc.Lookup(ctx, "g1", "bri")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if got.ID != w.ID || got.Type != models.WalletBank {
		t.Errorf("lookup = %+v, want created wallet", got)
	}

	if _, err := svc.Lookup(ctx, "g1", "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("lookup missing = %v, want ErrNotFound", err)
	}
	if _, err := svc.Lookup(ctx, "g2", "bri"); !errors.Is(err, ErrNotFound) {
		t.Errorf("wallets must be group scoped, got %v", err)
	}
}

func TestTotalBalanceExcludesInactive(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	for _, b := range []int64{1000, 2500, -200} {
		w, _ := repo.Create(ctx, "g1", "w"+decimal.NewFromInt(b).String(), models.WalletCash)
		_, _ = repo.AdjustBalance(ctx, w.ID, decimal.NewFromInt(b))
	}
	dead, _ := repo.Create(ctx, "g1", "dead", models.WalletOther)
	_, _ = repo.AdjustBalance(ctx, dead.ID, decimal.NewFromInt(9999))
	_, _ = repo.Deactivate(ctx, "g1", "dead")

	total, err := svc.TotalBalance(ctx, "g1")
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if !total.Equal(decimal.NewFromInt(3300)) {
		t.Errorf("total = %s, want 3300", total)
	}

	// empty group sums to zero
	empty, err := svc.TotalBalance(ctx, "g-none")
	if err != nil || !empty.IsZero() {
		t.Errorf("empty group total = %s, %v; want 0, nil", empty, err)
	}
}

func TestAdjustBalance(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	w, _ := repo.Create(ctx, "g1", "cash", models.WalletCash)

	ok, err := svc.AdjustBalance(ctx, w.ID, decimal.NewFromInt(50000), true)
	if err != nil || !ok {
		t.Fatalf("income adjust = %v, %v", ok, err)
	}
	ok, err = svc.AdjustBalance(ctx, w.ID, decimal.NewFromInt(30000), false)
	if err != nil || !ok {
		t.Fatalf("outcome adjust = %v, %v", ok, err)
	}

	got, _ := repo.GetByName(ctx, "g1", "cash")
	if !got.Balance.Equal(decimal.NewFromInt(20000)) {
		t.Errorf("balance = %s, want 20000", got.Balance)
	}

	// unknown wallet id reports no row affected, not an error
	ok, err = svc.AdjustBalance(ctx, uuid.NewString(), decimal.NewFromInt(1), true)
	if err != nil {
		t.Fatalf("adjust unknown: %v", err)
	}
	if ok {
		t.Error("adjust unknown id reported a row affected")
	}
}

func TestDeactivateHidesWallet(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, "g1", "ovo", models.WalletEwallet); err != nil {
		t.Fatal(err)
	}
	ok, err := svc.Deactivate(ctx, "g1", "ovo")
	if err != nil || !ok {
		t.Fatalf("deactivate = %v, %v", ok, err)
	}

	if _, err := svc.Lookup(ctx, "g1", "ovo"); !errors.Is(err, ErrNotFound) {
		t.Errorf("deactivated wallet still resolvable: %v", err)
	}
	ws, _ := svc.List(ctx, "g1")
	if len(ws) != 0 {
		t.Errorf("listing shows inactive wallets: %+v", ws)
	}
}

func TestParseWalletType(t *testing.T) {
	tests := []struct {
		in      string
		want    models.WalletType
		wantErr bool
	}{
		{"cash", models.WalletCash, false},
		{"BANK", models.WalletBank, false},
		{" ewallet ", models.WalletEwallet, false},
		{"other", models.WalletOther, false},
		{"crypto", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := models.ParseWalletType(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseWalletType(%q) err = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseWalletType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
