// internal/bank/bank.go

// Package bank 定義帳戶儲存庫：查詢一律回傳不可變的值快照，
// 狀態變更只能透過 Command 提交給 Execute。
// 以單一互斥鎖 (sync.Mutex) 序列化所有讀寫，跨帳戶的轉帳在同一臨界區內完成。
package bank

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ashu-nk/ashu-afric-test/internal/transfer"
)

// Repository 為帳戶資料的讀寫介面。
type Repository interface {
	Fetch(ctx context.Context) ([]Account, error)
	List() []Account
	ActiveAccounts() []Account
	Get(id int64) (Account, error)
	TotalBalance() decimal.Decimal
	Transactions(id int64) ([]Transaction, error)
	Execute(ctx context.Context, cmd Command) ([]Account, error)
}

var _ Repository = (*Bank)(nil)

// Options 設定 Bank 的依賴；零值皆有預設。
type Options struct {
	Validator *transfer.Validator // 轉帳驗證器，預設使用 transfer.DefaultLocale
	Latency   time.Duration       // Fetch 的模擬延遲
	Now       func() time.Time    // 交易時間來源，測試可替換
}

// Bank 為 in-memory 帳戶儲存庫。
// - mu：序列化所有讀寫。
// - accts：帳戶索引（ID → *Account），指標只在臨界區內修改，對外只回傳拷貝。
// - txns：每個帳戶的交易紀錄，依時間先後追加。
type Bank struct {
	mu        sync.Mutex
	accts     map[int64]*Account
	txns      map[int64][]Transaction
	validator *transfer.Validator
	latency   time.Duration
	now       func() time.Time
}

// NewBank 建立空白的 Bank。
func NewBank(opts Options) *Bank {
	if opts.Validator == nil {
		opts.Validator = transfer.NewValidator(transfer.DefaultLocale)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Bank{
		accts:     make(map[int64]*Account),
		txns:      make(map[int64][]Transaction),
		validator: opts.Validator,
		latency:   opts.Latency,
		now:       opts.Now,
	}
}

// Load 以指定帳戶取代目前全部狀態，並清空交易紀錄。
func (b *Bank) Load(accts []Account) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.accts = make(map[int64]*Account, len(accts))
	b.txns = make(map[int64][]Transaction, len(accts))
	for _, a := range accts {
		cp := a
		b.accts[a.ID] = &cp
	}
}

// Fetch 模擬向後端載入帳戶：等待 Latency 後回傳帳戶清單。
// ctx 取消時立即返回。
func (b *Bank) Fetch(ctx context.Context) ([]Account, error) {
	if b.latency > 0 {
		timer := time.NewTimer(b.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("fetch accounts: %w", ctx.Err())
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("fetch accounts: %w", err)
	}
	return b.List(), nil
}

// List 回傳所有帳戶的快照，依 ID 排序。
func (b *Bank) List() []Account {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshot(func(*Account) bool { return true })
}

// ActiveAccounts 只回傳啟用中的帳戶。
func (b *Bank) ActiveAccounts() []Account {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshot(func(a *Account) bool { return a.Active })
}

// Get 依 ID 取得帳戶快照；不存在回傳 ErrNotFound。
func (b *Bank) Get(id int64) (Account, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	a, ok := b.accts[id]
	if !ok {
		return Account{}, ErrNotFound
	}
	return *a, nil
}

// TotalBalance 加總所有帳戶餘額（含停用帳戶）。
func (b *Bank) TotalBalance() decimal.Decimal {
	b.mu.Lock()
	defer b.mu.Unlock()
	total := decimal.Zero
	for _, a := range b.accts {
		total = total.Add(a.Balance)
	}
	return total
}

// Transactions 回傳指定帳戶的交易紀錄拷貝（時間由舊到新）。
func (b *Bank) Transactions(id int64) ([]Transaction, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.accts[id]; !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(b.txns[id]), nil
}

// Execute 在同一臨界區內套用 cmd，回傳受影響帳戶的最新快照。
// 任何錯誤都不會留下部分變更。
func (b *Bank) Execute(ctx context.Context, cmd Command) ([]Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return cmd.apply(b, b.now())
}

// snapshot 需持有 mu。
func (b *Bank) snapshot(keep func(*Account) bool) []Account {
	out := make([]Account, 0, len(b.accts))
	for _, a := range b.accts {
		if keep(a) {
			out = append(out, *a)
		}
	}
	slices.SortFunc(out, func(x, y Account) int { return cmp.Compare(x.ID, y.ID) })
	return out
}

// record 需持有 mu。
func (b *Bank) record(tx Transaction) {
	b.txns[tx.AccountID] = append(b.txns[tx.AccountID], tx)
}
