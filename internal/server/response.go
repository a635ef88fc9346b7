// internal/server/response.go
//
// 統一 HTTP 回應格式：成功回應與錯誤回應皆為 JSON。
package server

import (
	"encoding/json"
	"net/http"
)

type errorBody struct {
	Error    string `json:"error"`
	Redirect string `json:"redirect,omitempty"`
}

// writeJSON 輸出成功回應。
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeErr 以 {"error": "..."} 輸出錯誤。
func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, errorBody{Error: msg})
}
