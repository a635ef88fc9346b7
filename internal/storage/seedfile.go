// internal/storage/seedfile.go

package storage

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadSeed 讀取並驗證 JSON 種子檔。
// 未知欄位視為錯誤，避免拼錯欄位名稱時被默默忽略。
func LoadSeed(path string) (Seed, error) {
	var seed Seed
	f, err := os.Open(path)
	if err != nil {
		return seed, fmt.Errorf("open seed: %w", err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&seed); err != nil {
		return seed, fmt.Errorf("decode seed %s: %w", path, err)
	}
	if err := seed.Validate(); err != nil {
		return seed, fmt.Errorf("seed %s: %w", path, err)
	}
	return seed, nil
}
