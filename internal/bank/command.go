// internal/bank/command.go

package bank

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Command 為提交給 Bank.Execute 的狀態變更。
// apply 在持有鎖的情況下執行，必須先完成所有檢查再修改狀態。
type Command interface {
	apply(b *Bank, now time.Time) ([]Account, error)
}

// AdjustBalance 直接增減帳戶餘額（正數入帳、負數扣款），不檢查餘額下限。
type AdjustBalance struct {
	AccountID int64
	Amount    decimal.Decimal
	Note      string
}

func (c AdjustBalance) apply(b *Bank, now time.Time) ([]Account, error) {
	if c.Amount.IsZero() {
		return nil, ErrBadAmount
	}
	a, ok := b.accts[c.AccountID]
	if !ok {
		return nil, ErrNotFound
	}
	if !fitsMinorUnit(c.Amount, a.Currency) {
		return nil, ErrBadAmount
	}

	a.Balance = a.Balance.Add(c.Amount)
	dir := In
	if c.Amount.IsNegative() {
		dir = Out
	}
	b.record(Transaction{
		ID:        uuid.NewString(),
		AccountID: a.ID,
		Time:      now,
		Amount:    c.Amount.Abs(),
		Direction: dir,
		Note:      noteOr(c.Note, "adjustment"),
	})
	return []Account{*a}, nil
}

// Transfer 由 FromID 轉出 Amount 至 ToID。
// 檢查順序：相同帳戶 → 帳戶存在 → 啟用狀態 → 幣別 → 金額驗證 → 最小單位。
type Transfer struct {
	FromID int64
	ToID   int64
	Amount decimal.Decimal
	Note   string
}

func (c Transfer) apply(b *Bank, now time.Time) ([]Account, error) {
	if c.FromID == c.ToID {
		return nil, ErrSameAccount
	}
	from, ok1 := b.accts[c.FromID]
	to, ok2 := b.accts[c.ToID]
	if !ok1 || !ok2 {
		return nil, ErrNotFound
	}
	if !from.Active || !to.Active {
		return nil, ErrInactive
	}
	if from.Currency != to.Currency {
		return nil, ErrCurrencyMismatch
	}
	if res := b.validator.Validate(c.Amount, from.Balance); !res.IsValid {
		return nil, &ValidationError{Result: res}
	}
	if !fitsMinorUnit(c.Amount, from.Currency) {
		return nil, ErrBadAmount
	}

	from.Balance = from.Balance.Sub(c.Amount)
	to.Balance = to.Balance.Add(c.Amount)

	note := noteOr(c.Note, "transfer")
	b.record(Transaction{ID: uuid.NewString(), AccountID: from.ID, Time: now, Amount: c.Amount, Direction: Out, CounterID: to.ID, Note: note})
	b.record(Transaction{ID: uuid.NewString(), AccountID: to.ID, Time: now, Amount: c.Amount, Direction: In, CounterID: from.ID, Note: note})
	return []Account{*from, *to}, nil
}

// minorUnits 為各幣別的小數位數；XAF、XOF 沒有輔幣，未列出者為 2。
var minorUnits = map[string]int32{
	"XAF": 0,
	"XOF": 0,
}

// fitsMinorUnit 回報 amount 是否能以該幣別的最小單位精確表示。
func fitsMinorUnit(amount decimal.Decimal, currency string) bool {
	places, ok := minorUnits[currency]
	if !ok {
		places = 2
	}
	return amount.Equal(amount.Truncate(places))
}

func noteOr(note, fallback string) string {
	if note == "" {
		return fallback
	}
	return note
}
