package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultSecurityConfig(t *testing.T) {
	t.Parallel()
	want := SecurityConfig{
		EnableCORS:     true,
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
	}
	if diff := cmp.Diff(want, DefaultSecurityConfig()); diff != "" {
		t.Errorf("DefaultSecurityConfig() mismatch (-want +got):\n%s", diff)
	}
}

func serve(cfg SecurityConfig, method, origin string) (*httptest.ResponseRecorder, bool) {
	called := false
	h := SecurityMiddleware(cfg, func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
	})
	req := httptest.NewRequest(method, "/metrics", http.NoBody)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec, called
}

func TestSecurityMiddleware_HardeningHeaders(t *testing.T) {
	t.Parallel()
	for _, method := range []string{http.MethodGet, http.MethodHead, http.MethodOptions} {
		rec, _ := serve(SecurityConfig{}, method, "")
		for header, want := range map[string]string{
			"X-Content-Type-Options":  "nosniff",
			"X-Frame-Options":         "DENY",
			"X-XSS-Protection":        "1; mode=block",
			"Referrer-Policy":         "strict-origin-when-cross-origin",
			"Content-Security-Policy": "default-src 'none'; frame-ancestors 'none'",
		} {
			if got := rec.Header().Get(header); got != want {
				t.Errorf("%s %s = %q, want %q", method, header, got, want)
			}
		}
	}
}

func TestSecurityMiddleware_CORS(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		cfg         SecurityConfig
		origin      string
		wantOrigin  string
		wantMethods string
	}{
		{"wildcard", DefaultSecurityConfig(), "https://grafana.local", "*", "GET, OPTIONS"},
		{"wildcard without origin header", DefaultSecurityConfig(), "", "*", "GET, OPTIONS"},
		{
			"listed origin echoed",
			SecurityConfig{EnableCORS: true, AllowedOrigins: []string{"https://a.example"}, AllowedMethods: []string{"GET"}},
			"https://a.example", "https://a.example", "GET",
		},
		{
			"unlisted origin",
			SecurityConfig{EnableCORS: true, AllowedOrigins: []string{"https://a.example"}, AllowedMethods: []string{"GET"}},
			"https://b.example", "", "",
		},
		{
			"cors disabled",
			SecurityConfig{AllowedOrigins: []string{"*"}, AllowedMethods: []string{"GET"}},
			"https://a.example", "", "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec, _ := serve(tt.cfg, http.MethodGet, tt.origin)
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("Allow-Origin = %q, want %q", got, tt.wantOrigin)
			}
			if got := rec.Header().Get("Access-Control-Allow-Methods"); got != tt.wantMethods {
				t.Errorf("Allow-Methods = %q, want %q", got, tt.wantMethods)
			}
		})
	}
}

func TestSecurityMiddleware_Dispatch(t *testing.T) {
	t.Parallel()
	tests := []struct {
		method     string
		wantStatus int
		wantNext   bool
	}{
		{http.MethodOptions, http.StatusNoContent, false},
		{http.MethodGet, http.StatusTeapot, true},
		{http.MethodPost, http.StatusTeapot, true},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			t.Parallel()
			rec, called := serve(DefaultSecurityConfig(), tt.method, "https://x.example")
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if called != tt.wantNext {
				t.Errorf("next called = %v, want %v", called, tt.wantNext)
			}
		})
	}
}

func TestAllowedOrigin(t *testing.T) {
	t.Parallel()
	tests := []struct {
		allowed []string
		origin  string
		want    string
		ok      bool
	}{
		{nil, "https://a", "", false},
		{[]string{"https://a"}, "", "", false},
		{[]string{"https://a", "https://b"}, "https://b", "https://b", true},
		{[]string{"https://a", "*"}, "https://z", "*", true},
	}
	for _, tt := range tests {
		got, ok := allowedOrigin(tt.allowed, tt.origin)
		if got != tt.want || ok != tt.ok {
			t.Errorf("allowedOrigin(%v, %q) = %q, %v; want %q, %v", tt.allowed, tt.origin, got, ok, tt.want, tt.ok)
		}
	}
}
