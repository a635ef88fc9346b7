// Package bank 定義核心領域模型與業務規則。
// 本檔定義 Account 與 Transaction 結構，不含任何 HTTP 或儲存細節。

package bank

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType is the product kind of an account.
type AccountType string

const (
	Checking AccountType = "checking"
	Savings  AccountType = "savings"
)

// Direction of a transaction relative to its account.
type Direction string

const (
	In  Direction = "in"
	Out Direction = "out"
)

// Account is an immutable snapshot of a bank account.
type Account struct {
	ID       int64           `json:"id"`
	Number   string          `json:"account_number"`
	Name     string          `json:"account_name"`
	Balance  decimal.Decimal `json:"balance"`
	Currency string          `json:"currency"`
	Type     AccountType     `json:"type"`
	Active   bool            `json:"is_active"`
}

// Transaction represents one movement on an account.
type Transaction struct {
	ID        string          `json:"id"`
	AccountID int64           `json:"account_id"`
	Time      time.Time       `json:"time"`
	Amount    decimal.Decimal `json:"amount"`
	Direction Direction       `json:"direction"`
	CounterID int64           `json:"counter_account,omitempty"`
	Note      string          `json:"note"`
}
