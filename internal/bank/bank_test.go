// internal/bank/bank_test.go
//
// 本檔為 Bank 模組的單元測試：模擬帳戶、查詢、餘額調整、轉帳、交易紀錄、
// 併發原子性與 Fetch 延遲。全部 in-memory 執行。

package bank

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashu-nk/ashu-afric-test/internal/storage"
	"github.com/ashu-nk/ashu-afric-test/internal/transfer"
)

func amt(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// newBank 建立載入預設模擬帳戶的 Bank。
func newBank(t *testing.T) *Bank {
	t.Helper()
	b := NewBank(Options{})
	b.Load(DefaultAccounts())
	return b
}

// get 安全取出帳戶狀態，錯誤時直接讓測試失敗。
func get(t *testing.T, b *Bank, id int64) Account {
	t.Helper()
	a, err := b.Get(id)
	require.NoError(t, err, "Get(%d)", id)
	return a
}

// TestDefaultAccounts 驗證模擬帳戶、排序、總餘額與啟用篩選。
func TestDefaultAccounts(t *testing.T) {
	b := newBank(t)

	all := b.List()
	require.Len(t, all, 3)
	for i, a := range all {
		assert.Equal(t, int64(i+1), a.ID)
		assert.Equal(t, "XAF", a.Currency)
	}
	assert.Equal(t, "Compte Épargne", all[1].Name)
	assert.Equal(t, Savings, all[1].Type)
	assert.True(t, b.TotalBalance().Equal(amt(5500000)), "total=%s", b.TotalBalance())
	assert.Len(t, b.ActiveAccounts(), 3)
}

func TestActiveAccountsFilter(t *testing.T) {
	accts := DefaultAccounts()
	accts[2].Active = false
	b := NewBank(Options{})
	b.Load(accts)

	active := b.ActiveAccounts()
	require.Len(t, active, 2)
	assert.Equal(t, int64(1), active[0].ID)
	assert.Equal(t, int64(2), active[1].ID)
	// 總額仍包含停用帳戶
	assert.True(t, b.TotalBalance().Equal(amt(5500000)))
}

func TestGetNotFound(t *testing.T) {
	b := newBank(t)
	_, err := b.Get(99)
	require.ErrorIs(t, err, ErrNotFound)
}

// TestSnapshotsAreCopies 回傳的快照修改後不影響內部狀態。
func TestSnapshotsAreCopies(t *testing.T) {
	b := newBank(t)
	a := get(t, b, 1)
	a.Balance = amt(0)
	a.Name = "changed"

	list := b.List()
	list[0].Active = false

	got := get(t, b, 1)
	assert.True(t, got.Balance.Equal(amt(1250000)))
	assert.Equal(t, "Compte Principal", got.Name)
	assert.True(t, got.Active)
}

func TestAdjustBalance(t *testing.T) {
	b := newBank(t)
	ctx := context.Background()

	out, err := b.Execute(ctx, AdjustBalance{AccountID: 3, Amount: amt(50000)})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.True(t, out[0].Balance.Equal(amt(800000)))

	// 負數調整允許低於 0
	_, err = b.Execute(ctx, AdjustBalance{AccountID: 3, Amount: amt(-900000), Note: "fee"})
	require.NoError(t, err)
	assert.True(t, get(t, b, 3).Balance.Equal(amt(-100000)))

	txns, err := b.Transactions(3)
	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.Equal(t, In, txns[0].Direction)
	assert.Equal(t, "adjustment", txns[0].Note)
	assert.Equal(t, Out, txns[1].Direction)
	assert.True(t, txns[1].Amount.Equal(amt(900000)))
	assert.Equal(t, "fee", txns[1].Note)

	_, err = b.Execute(ctx, AdjustBalance{AccountID: 3, Amount: decimal.Zero})
	require.ErrorIs(t, err, ErrBadAmount)
	_, err = b.Execute(ctx, AdjustBalance{AccountID: 3, Amount: decimal.RequireFromString("10.5")})
	require.ErrorIs(t, err, ErrBadAmount)
	assert.True(t, get(t, b, 3).Balance.Equal(amt(-100000)))
	_, err = b.Execute(ctx, AdjustBalance{AccountID: 42, Amount: amt(1)})
	require.ErrorIs(t, err, ErrNotFound)
}

// TestTransfer 驗證正常轉帳與雙邊交易紀錄。
func TestTransfer(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	b := NewBank(Options{Now: func() time.Time { return now }})
	b.Load(DefaultAccounts())

	out, err := b.Execute(context.Background(), Transfer{FromID: 1, ToID: 3, Amount: amt(250000)})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.True(t, out[0].Balance.Equal(amt(1000000)))
	assert.True(t, out[1].Balance.Equal(amt(1000000)))
	assert.True(t, b.TotalBalance().Equal(amt(5500000)))

	from, err := b.Transactions(1)
	require.NoError(t, err)
	to, err := b.Transactions(3)
	require.NoError(t, err)
	require.Len(t, from, 1)
	require.Len(t, to, 1)

	assert.Equal(t, Out, from[0].Direction)
	assert.Equal(t, int64(3), from[0].CounterID)
	assert.Equal(t, In, to[0].Direction)
	assert.Equal(t, int64(1), to[0].CounterID)
	assert.Equal(t, now, from[0].Time)
	assert.Equal(t, "transfer", to[0].Note)
	assert.NotEmpty(t, from[0].ID)
	assert.NotEqual(t, from[0].ID, to[0].ID)
}

// TestTransferFullBalance 轉出全部餘額為合法邊界。
func TestTransferFullBalance(t *testing.T) {
	b := newBank(t)
	_, err := b.Execute(context.Background(), Transfer{FromID: 3, ToID: 1, Amount: amt(750000)})
	require.NoError(t, err)
	assert.True(t, get(t, b, 3).Balance.IsZero())
}

// TestTransferRejected 各種失敗情境都不改變任何狀態。
func TestTransferRejected(t *testing.T) {
	inactive := DefaultAccounts()
	inactive[1].Active = false
	inactive = append(inactive,
		Account{ID: 4, Number: "FR7600000000001", Currency: "EUR", Balance: amt(100), Type: Checking, Active: true},
		Account{ID: 5, Number: "FR7600000000002", Currency: "EUR", Balance: amt(100), Type: Checking, Active: true},
	)

	cases := []struct {
		name string
		cmd  Transfer
		want error
	}{
		{"same account", Transfer{FromID: 1, ToID: 1, Amount: amt(1)}, ErrSameAccount},
		{"unknown from", Transfer{FromID: 9, ToID: 1, Amount: amt(1)}, ErrNotFound},
		{"unknown to", Transfer{FromID: 1, ToID: 9, Amount: amt(1)}, ErrNotFound},
		{"inactive", Transfer{FromID: 1, ToID: 2, Amount: amt(1)}, ErrInactive},
		{"currency", Transfer{FromID: 1, ToID: 4, Amount: amt(1)}, ErrCurrencyMismatch},
		{"zero", Transfer{FromID: 1, ToID: 3, Amount: amt(0)}, ErrInvalidTransfer},
		{"negative", Transfer{FromID: 1, ToID: 3, Amount: amt(-100)}, ErrInvalidTransfer},
		{"exceeds", Transfer{FromID: 3, ToID: 1, Amount: amt(750001)}, ErrInvalidTransfer},
		{"fractional XAF", Transfer{FromID: 1, ToID: 3, Amount: decimal.RequireFromString("0.5")}, ErrBadAmount},
		{"negative fractional", Transfer{FromID: 1, ToID: 3, Amount: decimal.RequireFromString("-0.5")}, ErrInvalidTransfer},
		{"sub-cent EUR", Transfer{FromID: 4, ToID: 5, Amount: decimal.RequireFromString("0.005")}, ErrBadAmount},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := NewBank(Options{})
			b.Load(inactive)
			before := b.List()

			_, err := b.Execute(context.Background(), tc.cmd)
			require.ErrorIs(t, err, tc.want)
			assert.Equal(t, before, b.List())
			for _, a := range before {
				txns, err := b.Transactions(a.ID)
				require.NoError(t, err)
				assert.Empty(t, txns)
			}
		})
	}
}

func TestTransferCents(t *testing.T) {
	b := NewBank(Options{})
	b.Load([]Account{
		{ID: 1, Number: "A", Currency: "EUR", Balance: amt(10), Type: Checking, Active: true},
		{ID: 2, Number: "B", Currency: "EUR", Balance: amt(10), Type: Checking, Active: true},
	})
	out, err := b.Execute(context.Background(), Transfer{FromID: 1, ToID: 2, Amount: decimal.RequireFromString("2.50")})
	require.NoError(t, err)
	assert.True(t, out[0].Balance.Equal(decimal.RequireFromString("7.5")))
	assert.True(t, out[1].Balance.Equal(decimal.RequireFromString("12.5")))
}

// TestTransferValidationError 取得驗證結果中的訊息。
func TestTransferValidationError(t *testing.T) {
	b := NewBank(Options{Validator: transfer.NewValidator(transfer.DefaultLocale)})
	b.Load(DefaultAccounts())

	_, err := b.Execute(context.Background(), Transfer{FromID: 3, ToID: 1, Amount: amt(1000000)})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.False(t, verr.Result.IsValid)
	assert.Equal(t, []string{"Le montant ne peut pas dépasser le solde du compte"}, verr.Result.Errors)
	assert.Contains(t, err.Error(), "invalid transfer")
}

// TestConcurrentTransfersAtomicity 併發雙向轉帳後總額不變且無負餘額。
func TestConcurrentTransfersAtomicity(t *testing.T) {
	b := NewBank(Options{})
	b.Load([]Account{
		{ID: 1, Number: "A", Currency: "XAF", Balance: amt(1000), Type: Checking, Active: true},
		{ID: 2, Number: "B", Currency: "XAF", Balance: amt(1000), Type: Checking, Active: true},
	})
	ctx := context.Background()

	const n = 200
	var wg sync.WaitGroup
	wg.Add(2 * n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			if _, err := b.Execute(ctx, Transfer{FromID: 1, ToID: 2, Amount: amt(1)}); err != nil {
				t.Errorf("1->2: %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			if _, err := b.Execute(ctx, Transfer{FromID: 2, ToID: 1, Amount: amt(1)}); err != nil {
				t.Errorf("2->1: %v", err)
			}
		}()
	}
	wg.Wait()

	a1, a2 := get(t, b, 1), get(t, b, 2)
	assert.False(t, a1.Balance.IsNegative())
	assert.False(t, a2.Balance.IsNegative())
	assert.True(t, b.TotalBalance().Equal(amt(2000)))

	l1, _ := b.Transactions(1)
	l2, _ := b.Transactions(2)
	assert.Len(t, l1, 2*n)
	assert.Len(t, l2, 2*n)
}

func TestExecuteCanceledContext(t *testing.T) {
	b := newBank(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := b.Execute(ctx, Transfer{FromID: 1, ToID: 2, Amount: amt(1)})
	require.ErrorIs(t, err, context.Canceled)
	assert.True(t, get(t, b, 1).Balance.Equal(amt(1250000)))
}

func TestFetch(t *testing.T) {
	b := NewBank(Options{Latency: 10 * time.Millisecond})
	b.Load(DefaultAccounts())

	start := time.Now()
	accts, err := b.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, accts, 3)
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
}

func TestFetchCanceled(t *testing.T) {
	b := NewBank(Options{Latency: time.Hour})
	b.Load(DefaultAccounts())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()
	_, err := b.Fetch(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestTransactionsNotFound(t *testing.T) {
	b := newBank(t)
	_, err := b.Transactions(7)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFromSeed(t *testing.T) {
	seed := storage.Seed{Accounts: []storage.SeedAccount{
		{ID: 10, Number: "CM1", Name: "Main", Balance: amt(500), Currency: "XAF", Type: "savings", Active: true},
	}}
	accts, err := FromSeed(seed)
	require.NoError(t, err)
	require.Len(t, accts, 1)
	assert.Equal(t, Savings, accts[0].Type)
	assert.True(t, accts[0].Balance.Equal(amt(500)))

	seed.Accounts[0].Type = "loan"
	_, err = FromSeed(seed)
	require.ErrorIs(t, err, ErrUnknownType)

	seed.Accounts[0].Currency = ""
	_, err = FromSeed(seed)
	require.ErrorIs(t, err, storage.ErrMissingField)
}

// TestLoadReplacesState Load 會清空舊帳戶與交易紀錄。
func TestLoadReplacesState(t *testing.T) {
	b := newBank(t)
	_, err := b.Execute(context.Background(), Transfer{FromID: 1, ToID: 2, Amount: amt(10)})
	require.NoError(t, err)

	b.Load(DefaultAccounts()[:1])
	assert.Len(t, b.List(), 1)
	txns, err := b.Transactions(1)
	require.NoError(t, err)
	assert.Empty(t, txns)
}
