// internal/server/handler.go

package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"
	"github.com/shopspring/decimal"

	"github.com/ashu-nk/ashu-afric-test/internal/bank"
	"github.com/ashu-nk/ashu-afric-test/internal/navigation"
)

// defaultLanding 為登入後沒有 returnUrl 時的目的地。
const defaultLanding = "/myDashboard"

// accountView 附帶格式化餘額；balance_number 不含幣別標籤，供輸入欄位預填。
type accountView struct {
	bank.Account
	FormattedBalance string `json:"formatted_balance"`
	BalanceNumber    string `json:"balance_number"`
}

type transactionView struct {
	bank.Transaction
	FormattedAmount string `json:"formatted_amount"`
}

type dashboardView struct {
	User                  string          `json:"user"`
	TotalBalance          decimal.Decimal `json:"total_balance"`
	FormattedTotalBalance string          `json:"formatted_total_balance"`
	Accounts              []accountView   `json:"accounts"`
}

type loginRequest struct {
	Username  string `json:"username" validate:"required,max=64"`
	ReturnURL string `json:"return_url"`
}

type loginResponse struct {
	User     string `json:"user"`
	Redirect string `json:"redirect"`
}

type registerResponse struct {
	Available bool   `json:"available"`
	Login     string `json:"login"`
}

type validateRequest struct {
	FromID int64           `json:"from_account_id" validate:"required,gt=0"`
	Amount decimal.Decimal `json:"amount"`
}

type transferRequest struct {
	FromID int64           `json:"from_account_id" validate:"required,gt=0"`
	ToID   int64           `json:"to_account_id" validate:"required,gt=0"`
	Amount decimal.Decimal `json:"amount"`
	Note   string          `json:"note" validate:"max=140"`
}

type transferResponse struct {
	Message string      `json:"message"`
	From    accountView `json:"from"`
	To      accountView `json:"to"`
}

// health：GET /health。
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// loginPage：GET /auth/login，告知 client 登入後應回到的位置。
func (s *Server) loginPage(w http.ResponseWriter, r *http.Request) {
	ret := safeReturn(r.URL.Query().Get(navigation.ReturnURLParam))
	writeJSON(w, http.StatusOK, loginResponse{User: principalFrom(r.Context()), Redirect: ret})
}

// login：POST /auth/login，設定示範 session cookie。
// 回傳的 redirect 取自 body 的 return_url 或查詢參數 returnUrl，只接受站內路徑。
func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !s.decode(w, r, &req) {
		return
	}
	ret := req.ReturnURL
	if ret == "" {
		ret = r.URL.Query().Get(navigation.ReturnURLParam)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    url.QueryEscape(req.Username),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	hlog.FromRequest(r).Info().Str("user", req.Username).Msg("login")
	writeJSON(w, http.StatusOK, loginResponse{User: req.Username, Redirect: safeReturn(ret)})
}

// registerPage：GET /auth/register。示範環境不開放註冊，只回傳登入頁位置。
func (s *Server) registerPage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, registerResponse{
		Available: false,
		Login:     s.guard.LoginPath(),
	})
}

// logout：POST /auth/logout，清除 cookie。
func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// dashboard：GET /myDashboard、/home。
// 透過 Fetch 載入帳戶（含模擬延遲），回傳總餘額與啟用中的帳戶。
func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	if _, err := s.Bank.Fetch(r.Context()); err != nil {
		s.writeBankErr(w, r, err)
		return
	}
	accts := s.Bank.ActiveAccounts()
	active := make([]accountView, len(accts))
	for i, a := range accts {
		active[i] = s.viewAccount(a)
	}
	total := s.Bank.TotalBalance()
	writeJSON(w, http.StatusOK, dashboardView{
		User:                  principalFrom(r.Context()),
		TotalBalance:          total,
		FormattedTotalBalance: s.formatter.FormatDecimal(total),
		Accounts:              active,
	})
}

// listAccounts：GET /accounts。
func (s *Server) listAccounts(w http.ResponseWriter, r *http.Request) {
	accts := s.Bank.List()
	out := make([]accountView, len(accts))
	for i, a := range accts {
		out[i] = s.viewAccount(a)
	}
	writeJSON(w, http.StatusOK, out)
}

// getAccount：GET /accounts/{id}。
func (s *Server) getAccount(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	a, err := s.Bank.Get(id)
	if err != nil {
		s.writeBankErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.viewAccount(a))
}

// transactions：GET /transactions[?account_id=]。
// 指定帳戶時回傳該帳戶紀錄，否則合併所有帳戶；皆為新到舊。
func (s *Server) transactions(w http.ResponseWriter, r *http.Request) {
	var ids []int64
	if raw := r.URL.Query().Get("account_id"); raw != "" {
		id, err := parseID(raw)
		if err != nil {
			writeErr(w, http.StatusBadRequest, err.Error())
			return
		}
		ids = []int64{id}
	} else {
		for _, a := range s.Bank.List() {
			ids = append(ids, a.ID)
		}
	}

	out := []transactionView{}
	for _, id := range ids {
		txns, err := s.Bank.Transactions(id)
		if err != nil {
			s.writeBankErr(w, r, err)
			return
		}
		for _, tx := range txns {
			out = append(out, transactionView{Transaction: tx, FormattedAmount: s.formatter.FormatDecimal(tx.Amount)})
		}
	}
	slices.SortStableFunc(out, func(a, b transactionView) int {
		return b.Time.Compare(a.Time)
	})
	writeJSON(w, http.StatusOK, out)
}

// validateTransfer：POST /transfer/validate。
// 以來源帳戶目前餘額驗證金額，永遠回 200 與驗證結果。
func (s *Server) validateTransfer(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if !s.decode(w, r, &req) {
		return
	}
	a, err := s.Bank.Get(req.FromID)
	if err != nil {
		s.writeBankErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.validator.Validate(req.Amount, a.Balance))
}

// transfer：POST /transfer。成功後回傳兩帳戶最新狀態。
func (s *Server) transfer(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if !s.decode(w, r, &req) {
		return
	}
	out, err := s.Bank.Execute(r.Context(), bank.Transfer{
		FromID: req.FromID,
		ToID:   req.ToID,
		Amount: req.Amount,
		Note:   req.Note,
	})
	if err != nil {
		s.writeBankErr(w, r, err)
		return
	}
	hlog.FromRequest(r).Info().
		Int64("from", req.FromID).
		Int64("to", req.ToID).
		Str("amount", req.Amount.String()).
		Str("user", principalFrom(r.Context())).
		Msg("transfer executed")
	writeJSON(w, http.StatusOK, transferResponse{
		Message: "transfer success",
		From:    s.viewAccount(out[0]),
		To:      s.viewAccount(out[1]),
	})
}

func (s *Server) viewAccount(a bank.Account) accountView {
	return accountView{
		Account:          a,
		FormattedBalance: s.formatter.FormatDecimal(a.Balance),
		BalanceNumber:    s.formatter.FormatNumber(a.Balance),
	}
}

// decode 解析 JSON body 並執行欄位驗證；失敗時已寫出 400。
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	if err := s.validate.Struct(v); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// writeBankErr 將領域錯誤映射為 HTTP 狀態碼。
func (s *Server) writeBankErr(w http.ResponseWriter, r *http.Request, err error) {
	var verr *bank.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, verr.Result)
	case errors.Is(err, bank.ErrNotFound):
		writeErr(w, http.StatusNotFound, err.Error())
	case errors.Is(err, bank.ErrInactive):
		writeErr(w, http.StatusConflict, err.Error())
	case errors.Is(err, bank.ErrSameAccount),
		errors.Is(err, bank.ErrBadAmount),
		errors.Is(err, bank.ErrCurrencyMismatch):
		writeErr(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeErr(w, http.StatusServiceUnavailable, "request canceled")
	default:
		hlog.FromRequest(r).Error().Err(err).Msg("unexpected error")
		writeErr(w, http.StatusInternalServerError, "internal error")
	}
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid account id: " + strconv.Quote(raw))
	}
	return id, nil
}

// safeReturn 只接受站內絕對路徑，避免開放式導向。
func safeReturn(ret string) string {
	if ret == "" || !strings.HasPrefix(ret, "/") || strings.HasPrefix(ret, "//") || strings.HasPrefix(ret, "/\\") {
		return defaultLanding
	}
	return ret
}
