// internal/bank/errors.go
//
// 集中定義領域錯誤，由上層 HTTP handler 轉換成對應的狀態碼。

package bank

import (
	"errors"
	"strings"

	"github.com/ashu-nk/ashu-afric-test/internal/transfer"
)

var (
	// ErrNotFound 代表帳戶不存在。對應 404。
	ErrNotFound = errors.New("account not found")

	// ErrBadAmount 代表金額為 0，或小數位數超過幣別的最小單位。對應 400。
	ErrBadAmount = errors.New("invalid amount")

	// ErrSameAccount 代表轉帳來源與目標相同。對應 400。
	ErrSameAccount = errors.New("from and to are same")

	// ErrInactive 代表帳戶已停用。對應 409。
	ErrInactive = errors.New("account is inactive")

	// ErrCurrencyMismatch 代表兩帳戶幣別不同；本系統不做匯率換算。對應 400。
	ErrCurrencyMismatch = errors.New("currency mismatch")

	// ErrUnknownType 代表種子資料中的帳戶類型無法辨識。
	ErrUnknownType = errors.New("unknown account type")

	// ErrInvalidTransfer 代表轉帳金額未通過驗證。對應 422。
	// 實際回傳的是 *ValidationError，可用 errors.Is 比對本值。
	ErrInvalidTransfer = errors.New("invalid transfer")
)

// ValidationError 攜帶驗證器的完整結果。
type ValidationError struct {
	Result transfer.Result
}

func (e *ValidationError) Error() string {
	return ErrInvalidTransfer.Error() + ": " + strings.Join(e.Result.Errors, "; ")
}

// Is 讓 errors.Is(err, ErrInvalidTransfer) 成立。
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidTransfer
}
