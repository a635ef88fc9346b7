// internal/server/router.go
//
// 路由註冊與中介層。所有請求依序經過：
// request id → 存取日誌 → panic 復原 → 固定導向 → 授權守衛 → handler。
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/hlog"
)

// Router 回傳整個 HTTP 處理鏈。
func (s *Server) Router() http.Handler {
	return s.mux
}

func (s *Server) routes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(hlog.NewHandler(s.log))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("req_id", middleware.GetReqID(r.Context())).
			Int("status", status).
			Int("size", size).
			Dur("duration", d).
			Msg("request")
	}))
	r.Use(middleware.Recoverer)
	r.Use(s.resolve)
	r.Use(s.requireAuth)

	r.Get("/health", s.health)

	r.Route("/auth", func(r chi.Router) {
		r.Get("/login", s.loginPage)
		r.Post("/login", s.login)
		r.Get("/register", s.registerPage)
		r.Post("/logout", s.logout)
	})

	r.Get("/myDashboard", s.dashboard)
	r.Get("/home", s.dashboard)

	r.Get("/accounts", s.listAccounts)
	r.Get("/accounts/{id}", s.getAccount)
	r.Get("/transactions", s.transactions)

	r.Post("/transfer/validate", s.validateTransfer)
	r.Post("/transfer", s.transfer)

	return r
}
