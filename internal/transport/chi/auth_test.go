package chi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name   string
		keys   []string
		path   string
		header string
		want   int
	}{
		{"no keys pass through", nil, "/search", "", http.StatusOK},
		{"blank keys pass through", []string{"", ""}, "/search", "", http.StatusOK},
		{"missing header", []string{"secret"}, "/search", "", http.StatusUnauthorized},
		{"wrong scheme", []string{"secret"}, "/search", "Basic secret", http.StatusUnauthorized},
		{"empty token", []string{"secret"}, "/search", "Bearer ", http.StatusUnauthorized},
		{"wrong key", []string{"secret"}, "/search", "Bearer nope", http.StatusUnauthorized},
		{"valid key", []string{"secret"}, "/search", "Bearer secret", http.StatusOK},
		{"second key", []string{"one", "two"}, "/suggest", "Bearer two", http.StatusOK},
		{"health is public", []string{"secret"}, "/health", "", http.StatusOK},
		{"metrics is public", []string{"secret"}, "/metrics", "", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := BearerAuthMiddleware(tt.keys)(okHandler())

			req := httptest.NewRequest(http.MethodGet, tt.path, http.NoBody)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != tt.want {
				t.Errorf("got %d, want %d", rr.Code, tt.want)
			}
			if rr.Code == http.StatusUnauthorized {
				if body := decode[errorResponse](t, rr); body.Code != codeUnauthorized {
					t.Errorf("code = %q, want %q", body.Code, codeUnauthorized)
				}
			}
		})
	}
}

func TestRouter_AuthProtectsSearch(t *testing.T) {
	h := NewRouter(NewServer(&mockSearch{}, &mockHealth{}, 0.3, nil), RouterOptions{APIKeys: []string{"k"}})

	rr := do(t, h, http.MethodGet, "/trending", "")
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rr.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/trending", http.NoBody)
	req.Header.Set("Authorization", "Bearer k")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
}
