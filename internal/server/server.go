// internal/server/server.go

// Package server 提供 HTTP/JSON 介面，作為 bank 模組的應用層。
// handler 只負責解析與驗證請求、呼叫 bank、輸出格式化後的 JSON。
package server

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/ashu-nk/ashu-afric-test/internal/bank"
	"github.com/ashu-nk/ashu-afric-test/internal/money"
	"github.com/ashu-nk/ashu-afric-test/internal/navigation"
	"github.com/ashu-nk/ashu-afric-test/internal/transfer"
)

// DefaultLoginPath 為未指定 Guard 時的登入頁。
const DefaultLoginPath = "/auth/login"

// Options 為 Server 的可選依賴；零值皆有預設。
type Options struct {
	Formatter *money.Formatter    // 預設 money.XAF
	Validator *transfer.Validator // /transfer/validate 使用；預設 transfer.DefaultLocale
	Guard     *navigation.Guard   // 預設只開放登入、註冊、登出與 /health
	Logger    *zerolog.Logger     // 預設不輸出
	Redirects map[string]string   // 固定導向表，預設 "/" 與 "/auth" 導向登入頁
}

// Server 為 HTTP 層核心結構。
type Server struct {
	Bank      bank.Repository
	formatter money.Formatter
	validator *transfer.Validator
	guard     *navigation.Guard
	redirects map[string]string
	validate  *validator.Validate
	log       zerolog.Logger
	mux       *chi.Mux
}

// NewServer 建立 Server 並完成路由註冊。
func NewServer(b bank.Repository, opts Options) *Server {
	s := &Server{
		Bank:      b,
		formatter: money.XAF,
		validator: opts.Validator,
		guard:     opts.Guard,
		redirects: opts.Redirects,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		log:       zerolog.Nop(),
	}
	if opts.Formatter != nil {
		s.formatter = *opts.Formatter
	}
	if s.validator == nil {
		s.validator = transfer.NewValidator(transfer.DefaultLocale)
	}
	if s.guard == nil {
		s.guard = navigation.NewGuard(DefaultLoginPath, []string{"/auth/register", "/auth/logout", "/health"}, nil)
	}
	if s.redirects == nil {
		login := s.guard.LoginPath()
		s.redirects = map[string]string{"/": login, "/auth": login, "/auth/": login}
	}
	if opts.Logger != nil {
		s.log = *opts.Logger
	}
	s.mux = s.routes()
	return s
}
