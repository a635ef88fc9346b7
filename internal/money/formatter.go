// internal/money/formatter.go

// Package money 負責金額的顯示格式。
// 金額一律以 decimal.Decimal 表示，避免浮點誤差；XAF（FCFA）為零小數位貨幣。
package money

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Formatter 將金額轉為「千分位分組 + 貨幣標籤」的顯示字串。
type Formatter struct {
	Label     string // 貨幣標籤，例如 "FCFA"
	Separator rune   // 千分位分隔字元
}

// XAF 為中非法郎的預設格式：空白分組、無小數、後綴 FCFA。
var XAF = Formatter{Label: "FCFA", Separator: ' '}

// numberFractionDigits 為 FormatNumber 保留的最大小數位數。
const numberFractionDigits = 3

// NewFormatter 以指定標籤與分隔字元建立 Formatter。
func NewFormatter(label string, sep rune) Formatter {
	return Formatter{Label: label, Separator: sep}
}

// FormatXAF 等同 XAF.Format。
func FormatXAF(amount float64) (string, error) {
	return XAF.Format(amount)
}

// Format 格式化 float64 金額；NaN 與 ±Inf 回傳 ErrInvalidArgument。
func (f Formatter) Format(amount float64) (string, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "", fmt.Errorf("%w: non-finite amount %v", ErrInvalidArgument, amount)
	}
	return f.FormatDecimal(decimal.NewFromFloat(amount)), nil
}

// FormatDecimal 四捨五入（遠離零）至整數後分組，並附上貨幣標籤。
//
//	1000     → "1 000 FCFA"
//	-1000    → "-1 000 FCFA"
func (f Formatter) FormatDecimal(amount decimal.Decimal) string {
	s := f.group(amount.StringFixed(0))
	if f.Label == "" {
		return s
	}
	return s + " " + f.Label
}

// FormatNumber 僅輸出分組後的數字（不含標籤），
// 最多保留三位小數並以逗號作為小數點，尾端 0 省略。
func (f Formatter) FormatNumber(n decimal.Decimal) string {
	s := n.Round(numberFractionDigits).String()
	intPart, frac, _ := strings.Cut(s, ".")
	out := f.group(intPart)
	if frac != "" {
		out += "," + frac
	}
	return out
}

// group 將整數字串（可含負號）每三位插入分隔字元。
func (f Formatter) group(digits string) string {
	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}
	if len(digits) <= 3 {
		return sign + digits
	}

	var b strings.Builder
	b.WriteString(sign)
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if i > 0 {
			b.WriteRune(f.Separator)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
