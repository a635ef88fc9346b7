// internal/money/errors.go

package money

import "errors"

// ErrInvalidArgument 代表輸入金額無法格式化（NaN 或 ±Inf）。
var ErrInvalidArgument = errors.New("invalid argument")
