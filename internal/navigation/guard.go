// internal/navigation/guard.go

// Package navigation 將「未登入即導向登入頁」的路由守衛抽象為通用的授權判斷：
// 每個請求（或前端導覽）先轉成 Request，再由 Guard 評估，與任何 UI 框架或 HTTP 路由器無關。
package navigation

import (
	"net/url"
	"slices"
)

// ReturnURLParam 為登入頁用來接回原始目的地的查詢參數。
const ReturnURLParam = "returnUrl"

// Request 描述一次導覽。
type Request struct {
	Path      string // 不含查詢字串的路徑，用於比對公開頁面
	FullPath  string // 含查詢字串，用於登入後導回
	Principal string // 目前使用者；空字串代表未登入
}

// Predicate 判斷請求是否被允許。
type Predicate func(Request) bool

// Authenticated 只要有使用者即允許。
func Authenticated(r Request) bool {
	return r.Principal != ""
}

// Decision 為 Guard 的評估結果。
// Allow 為 false 時，Redirect 為應導向的位置，ReturnURL 為登入後應回到的位置。
type Decision struct {
	Allow     bool
	Redirect  string
	ReturnURL string
}

// Guard 評估請求：公開頁面一律放行，其餘交由 predicate 決定。
type Guard struct {
	loginPath string
	public    []string
	allow     Predicate
}

// NewGuard 建立 Guard。loginPath 本身永遠視為公開；allow 為 nil 時使用 Authenticated。
func NewGuard(loginPath string, publicPaths []string, allow Predicate) *Guard {
	if allow == nil {
		allow = Authenticated
	}
	public := slices.Clone(publicPaths)
	if !slices.Contains(public, loginPath) {
		public = append(public, loginPath)
	}
	return &Guard{loginPath: loginPath, public: public, allow: allow}
}

// LoginPath 回傳登入頁路徑。
func (g *Guard) LoginPath() string {
	return g.loginPath
}

// IsPublic 回報 path 是否為公開頁面（完整比對）。
func (g *Guard) IsPublic(path string) bool {
	return slices.Contains(g.public, path)
}

// Evaluate 回傳對 r 的判斷。
func (g *Guard) Evaluate(r Request) Decision {
	if g.IsPublic(r.Path) || g.allow(r) {
		return Decision{Allow: true}
	}
	ret := r.FullPath
	if ret == "" {
		ret = r.Path
	}
	return Decision{Redirect: g.LoginURL(ret), ReturnURL: ret}
}

// LoginURL 組出帶 returnUrl 的登入頁網址；returnURL 為空則不附加。
func (g *Guard) LoginURL(returnURL string) string {
	if returnURL == "" {
		return g.loginPath
	}
	return g.loginPath + "?" + url.Values{ReturnURLParam: {returnURL}}.Encode()
}
