// internal/bank/mock.go

package bank

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ashu-nk/ashu-afric-test/internal/storage"
)

// DefaultAccounts 回傳內建的三個 XAF 模擬帳戶。
func DefaultAccounts() []Account {
	return []Account{
		{ID: 1, Number: "CM00100012345", Name: "Compte Principal", Balance: decimal.NewFromInt(1250000), Currency: "XAF", Type: Checking, Active: true},
		{ID: 2, Number: "CM00100067890", Name: "Compte Épargne", Balance: decimal.NewFromInt(3500000), Currency: "XAF", Type: Savings, Active: true},
		{ID: 3, Number: "CM00100054321", Name: "Compte Courant", Balance: decimal.NewFromInt(750000), Currency: "XAF", Type: Checking, Active: true},
	}
}

// FromSeed 將種子檔轉為帳戶；type 只接受 checking 與 savings。
func FromSeed(s storage.Seed) ([]Account, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	out := make([]Account, 0, len(s.Accounts))
	for _, sa := range s.Accounts {
		t := AccountType(sa.Type)
		if t != Checking && t != Savings {
			return nil, fmt.Errorf("account %d: %w: %q", sa.ID, ErrUnknownType, sa.Type)
		}
		out = append(out, Account{
			ID:       sa.ID,
			Number:   sa.Number,
			Name:     sa.Name,
			Balance:  sa.Balance,
			Currency: sa.Currency,
			Type:     t,
			Active:   sa.Active,
		})
	}
	return out, nil
}
