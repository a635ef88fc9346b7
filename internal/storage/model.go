// internal/storage/model.go
//
// 定義種子資料（seed fixture）檔的結構。
// 服務啟動時可由此格式載入帳戶，取代內建的模擬帳戶；本層不寫回任何狀態。
package storage

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// 種子檔驗證錯誤。
var (
	ErrDuplicateID   = errors.New("duplicate account id")
	ErrInvalidSeedID = errors.New("account id must be > 0")
	ErrMissingField  = errors.New("missing required field")
)

// Meta 為種子檔的中繼資料。
type Meta struct {
	Source  string `json:"source"`         // 來源，例如 "mock"
	Version int    `json:"version"`        // 結構版本號
	Note    string `json:"note,omitempty"` // 備註
}

// SeedAccount 為帳戶在種子檔中的格式。
// Balance 可寫成 JSON 數字或字串。
type SeedAccount struct {
	ID       int64           `json:"id"`
	Number   string          `json:"account_number"`
	Name     string          `json:"account_name"`
	Balance  decimal.Decimal `json:"balance"`
	Currency string          `json:"currency"`
	Type     string          `json:"type"`
	Active   bool            `json:"is_active"`
}

// Seed 為完整的種子檔內容。
type Seed struct {
	Meta     Meta          `json:"_meta"`
	Accounts []SeedAccount `json:"accounts"`
}

// Validate 檢查 ID 唯一且為正數，帳號與幣別必填。
func (s Seed) Validate() error {
	seen := make(map[int64]struct{}, len(s.Accounts))
	for i, a := range s.Accounts {
		if a.ID <= 0 {
			return fmt.Errorf("accounts[%d]: %w", i, ErrInvalidSeedID)
		}
		if _, dup := seen[a.ID]; dup {
			return fmt.Errorf("accounts[%d]: %w: %d", i, ErrDuplicateID, a.ID)
		}
		seen[a.ID] = struct{}{}
		if a.Number == "" {
			return fmt.Errorf("accounts[%d]: %w: account_number", i, ErrMissingField)
		}
		if a.Currency == "" {
			return fmt.Errorf("accounts[%d]: %w: currency", i, ErrMissingField)
		}
	}
	return nil
}
