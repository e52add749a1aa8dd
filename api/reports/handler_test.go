package reports

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tryathq/backdown/infra/store"
)

func newStore(t *testing.T) (*store.Store, store.Entry) {
	t.Helper()
	s, err := store.New(filepath.Join(t.TempDir(), "reports"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	src := filepath.Join(t.TempDir(), "report.xlsx")
	if err := os.WriteFile(src, []byte("workbook"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	entry, err := s.Save(src, store.Entry{Title: "run", RunAt: time.Now().UTC(), Rows: 5})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	return s, entry
}

func TestListHandler_AuthAndBody(t *testing.T) {
	s, entry := newStore(t)
	mux := Mux(s, "tok")

	req := httptest.NewRequest("GET", "/api/reports", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	var out []store.Entry
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out) != 1 || out[0].ID != entry.ID {
		t.Fatalf("unexpected body: %s", rr.Body.String())
	}
	// unauthorized
	req = httptest.NewRequest("GET", "/api/reports", nil)
	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rr.Code)
	}
}

func TestDownloadHandler(t *testing.T) {
	s, entry := newStore(t)
	mux := Mux(s, "")

	req := httptest.NewRequest("GET", "/api/reports/"+entry.ID+"/download", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rr.Code, rr.Body.String())
	}
	if rr.Body.String() != "workbook" {
		t.Fatalf("unexpected body: %s", rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Disposition"); ct == "" {
		t.Fatalf("missing content disposition")
	}

	req = httptest.NewRequest("GET", "/api/reports/nope/download", nil)
	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rr.Code)
	}
}

func TestListHandler_EmptyStore(t *testing.T) {
	s, err := store.New(filepath.Join(t.TempDir(), "reports"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	h := NewListHandler(s, "")
	req := httptest.NewRequest("GET", "/api/reports", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	if body := rr.Body.String(); body != "[]\n" {
		t.Fatalf("expected empty array, got %q", body)
	}
}
