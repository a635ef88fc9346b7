// internal/transfer/validate.go

// Package transfer 提供轉帳金額驗證。
// 驗證本身不執行轉帳也不改動餘額；所有失敗透過 Result.Errors 回報，不回傳 error。
package transfer

import (
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultLocale 為錯誤訊息的顯示語系。
var DefaultLocale = language.MustParse("fr-CM")

// 延遲建立，確保 init 中的訊息目錄已註冊。
var defaultValidator = sync.OnceValue(func() *Validator {
	return NewValidator(DefaultLocale)
})

// Result 為驗證結果；Errors 依檢查順序排列，可同時包含多筆。
type Result struct {
	IsValid bool     `json:"is_valid"`
	Errors  []string `json:"errors"`
}

// Validator 依固定語系輸出錯誤訊息。建立後即不可變，可併發使用。
type Validator struct {
	locale          language.Tag
	msgNotPositive  string
	msgExceedsFunds string
}

// NewValidator 以指定語系建立 Validator；訊息於建立時即解析完成。
func NewValidator(tag language.Tag) *Validator {
	p := message.NewPrinter(tag)
	return &Validator{
		locale:          tag,
		msgNotPositive:  p.Sprintf(KeyAmountNotPositive),
		msgExceedsFunds: p.Sprintf(KeyAmountExceedsBalance),
	}
}

// Locale 回傳此 Validator 的顯示語系。
func (v *Validator) Locale() language.Tag {
	return v.locale
}

// Validate 以預設語系驗證。
func Validate(amount, availableBalance decimal.Decimal) Result {
	return defaultValidator().Validate(amount, availableBalance)
}

// Validate 檢查轉帳金額：
//  1. amount <= 0 → 金額必須大於 0
//  2. amount > availableBalance → 金額不得超過餘額
//
// 兩項檢查各自獨立，不提前返回；amount == availableBalance 視為合法。
func (v *Validator) Validate(amount, availableBalance decimal.Decimal) Result {
	errs := make([]string, 0, 2)
	if amount.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, v.msgNotPositive)
	}
	if amount.GreaterThan(availableBalance) {
		errs = append(errs, v.msgExceedsFunds)
	}
	return Result{IsValid: len(errs) == 0, Errors: errs}
}
