package ui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/thep200/repo-visualizer/cfg"
	"github.com/thep200/repo-visualizer/pkg/log"
)

func testMux(t *testing.T) *http.ServeMux {
	t.Helper()
	logger, _ := log.NewNopLogger()
	loader, _ := cfg.NewMockLoader()
	config, _ := loader.Load()

	// Routes under test never reach the facade
	handler, err := NewHandler(logger, config, nil)
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	return mux
}

func TestGetViewsListsAllPresets(t *testing.T) {
	mux := testMux(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/views", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var views []string
	if err := json.Unmarshal(rec.Body.Bytes(), &views); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(views) != 4 {
		t.Errorf("views = %v, want 4 presets", views)
	}
}

func TestLoadRepoValidation(t *testing.T) {
	mux := testMux(t)

	cases := []struct {
		name   string
		method string
		target string
		want   int
	}{
		{"rejects GET", http.MethodGet, "/api/load?repo=acme/widget", http.StatusMethodNotAllowed},
		{"rejects missing repo", http.MethodPost, "/api/load", http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.target, nil))
			if rec.Code != tc.want {
				t.Errorf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}

func TestSetViewRequiresPost(t *testing.T) {
	mux := testMux(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/view?name=overview", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}
