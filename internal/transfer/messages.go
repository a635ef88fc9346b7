// internal/transfer/messages.go

package transfer

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// 訊息 key 即英文顯示字串；英文 locale 直接輸出 key。
const (
	KeyAmountNotPositive    = "amount must be greater than 0"
	KeyAmountExceedsBalance = "amount cannot exceed the account balance"
)

func init() {
	fr := language.French
	message.SetString(fr, KeyAmountNotPositive, "Le montant doit être supérieur à 0")
	message.SetString(fr, KeyAmountExceedsBalance, "Le montant ne peut pas dépasser le solde du compte")

	en := language.English
	message.SetString(en, KeyAmountNotPositive, KeyAmountNotPositive)
	message.SetString(en, KeyAmountExceedsBalance, KeyAmountExceedsBalance)
}
