// Package reports exposes the persisted report history over HTTP.
package reports

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/tryathq/backdown/infra/store"
)

// NewListHandler returns an HTTP handler serving the report index via
// GET /api/reports. Requests must include an Authorization header with
// "Bearer <token>" when token is non-empty.
func NewListHandler(s *store.Store, token string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !authorized(r, token) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		entries, err := s.List()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if entries == nil {
			entries = []store.Entry{}
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(entries); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}

// NewDownloadHandler returns an HTTP handler serving a stored workbook via
// GET /api/reports/{id}/download.
func NewDownloadHandler(s *store.Store, token string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !authorized(r, token) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		id := reportID(r.URL.Path)
		if id == "" {
			http.Error(w, "missing report id", http.StatusBadRequest)
			return
		}
		path, entry, err := s.Open(id)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="`+entry.File+`"`)
		http.ServeFile(w, r, path)
	})
}

// Mux wires both handlers under /api/reports.
func Mux(s *store.Store, token string) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/api/reports", NewListHandler(s, token))
	mux.Handle("/api/reports/", NewDownloadHandler(s, token))
	return mux
}

func authorized(r *http.Request, token string) bool {
	if token == "" {
		return true
	}
	return r.Header.Get("Authorization") == "Bearer "+token
}

// reportID extracts the id from /api/reports/{id}/download paths.
func reportID(path string) string {
	rest := strings.TrimPrefix(path, "/api/reports/")
	rest = strings.TrimSuffix(rest, "/download")
	if strings.Contains(rest, "/") {
		return ""
	}
	return rest
}
