// internal/config/config.go

// Package config 由環境變數（以及可選的 .env 檔）載入服務設定。
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"
	"unicode/utf8"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/text/language"
)

// ErrInvalid 代表設定值不合法。
var ErrInvalid = errors.New("invalid config")

// Config 為服務的全部設定。
type Config struct {
	HTTPAddr        string        `env:"HTTP_ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// SeedFile 為空時使用內建模擬帳戶。
	SeedFile     string        `env:"SEED_FILE"`
	FetchLatency time.Duration `env:"FETCH_LATENCY" envDefault:"1s"`

	CurrencyLabel  string `env:"CURRENCY_LABEL" envDefault:"FCFA"`
	GroupSeparator string `env:"GROUP_SEPARATOR" envDefault:" "`
	DisplayLocale  string `env:"DISPLAY_LOCALE" envDefault:"fr-CM"`

	LoginPath   string   `env:"LOGIN_PATH" envDefault:"/auth/login"`
	PublicPaths []string `env:"PUBLIC_PATHS" envDefault:"/auth/login,/auth/register,/auth/logout,/health" envSeparator:","`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`
}

// Load 先嘗試讀取 envFiles（預設 .env，不存在則略過），再解析環境變數並驗證。
// 已存在的環境變數不會被 .env 覆蓋。
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return Parse()
}

// Parse 只從目前的環境變數解析設定。
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate 檢查無法由型別表達的限制。
func (c Config) Validate() error {
	if c.HTTPAddr == "" {
		return fmt.Errorf("%w: HTTP_ADDR is empty", ErrInvalid)
	}
	if c.FetchLatency < 0 {
		return fmt.Errorf("%w: FETCH_LATENCY must be >= 0", ErrInvalid)
	}
	if utf8.RuneCountInString(c.GroupSeparator) != 1 {
		return fmt.Errorf("%w: GROUP_SEPARATOR must be a single character, got %q", ErrInvalid, c.GroupSeparator)
	}
	if _, err := language.Parse(c.DisplayLocale); err != nil {
		return fmt.Errorf("%w: DISPLAY_LOCALE %q: %v", ErrInvalid, c.DisplayLocale, err)
	}
	if c.LoginPath == "" || c.LoginPath[0] != '/' {
		return fmt.Errorf("%w: LOGIN_PATH must start with /", ErrInvalid)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("%w: LOG_FORMAT must be console or json, got %q", ErrInvalid, c.LogFormat)
	}
	return nil
}

// Separator 回傳千分位分隔字元；需先通過 Validate。
func (c Config) Separator() rune {
	r, _ := utf8.DecodeRuneInString(c.GroupSeparator)
	return r
}

// Locale 回傳顯示語系；需先通過 Validate。
func (c Config) Locale() language.Tag {
	return language.Make(c.DisplayLocale)
}
