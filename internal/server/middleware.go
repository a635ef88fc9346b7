// internal/server/middleware.go

package server

import (
	"context"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/ashu-nk/ashu-afric-test/internal/navigation"
)

// sessionCookie 保存示範用的登入使用者名稱（無簽章，僅供示範）。
const sessionCookie = "demo_user"

type principalKey struct{}

// principalFrom 回傳 requireAuth 放入 context 的使用者；未登入為空字串。
func principalFrom(ctx context.Context) string {
	p, _ := ctx.Value(principalKey{}).(string)
	return p
}

// readPrincipal 由 cookie 取出使用者名稱。
func readPrincipal(r *http.Request) string {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return ""
	}
	name, err := url.QueryUnescape(c.Value)
	if err != nil {
		return ""
	}
	return name
}

// resolve 處理固定導向，並把未註冊的 GET 路徑導向登入頁。
// 兩者都在授權守衛之前執行，導向目標本身為公開頁面。
func (s *Server) resolve(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if target, ok := s.redirects[r.URL.Path]; ok {
			http.Redirect(w, r, target, http.StatusFound)
			return
		}
		if r.Method == http.MethodGet && !s.mux.Match(chi.NewRouteContext(), r.Method, r.URL.Path) {
			http.Redirect(w, r, s.guard.LoginPath(), http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireAuth 以 navigation.Guard 評估每個請求。
// 被拒絕的 GET/HEAD 以 302 導向登入頁，其他方法回 401 並附上導向位置。
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		who := readPrincipal(r)
		d := s.guard.Evaluate(navigation.Request{
			Path:      r.URL.Path,
			FullPath:  r.URL.RequestURI(),
			Principal: who,
		})
		if !d.Allow {
			hlog.FromRequest(r).Debug().Str("path", r.URL.Path).Str("redirect", d.Redirect).Msg("authentication required")
			if r.Method == http.MethodGet || r.Method == http.MethodHead {
				http.Redirect(w, r, d.Redirect, http.StatusFound)
				return
			}
			writeJSON(w, http.StatusUnauthorized, errorBody{Error: "authentication required", Redirect: d.Redirect})
			return
		}
		ctx := context.WithValue(r.Context(), principalKey{}, who)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
