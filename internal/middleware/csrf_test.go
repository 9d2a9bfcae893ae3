package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhiselink/dhiselink/internal/config"
)

func csrfTestHandler(t *testing.T) http.Handler {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /feed", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("POST /submit", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	cfg := &config.Config{AppEnv: "development"}
	return Chain(mux, Config(cfg), CSRFProtection)
}

func csrfCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == csrfCookieName {
			return c
		}
	}
	t.Fatal("csrf cookie not set")
	return nil
}

func TestCSRFTokenExposedOnSafeRequests(t *testing.T) {
	handler := csrfTestHandler(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/feed", nil))
	resp := rec.Result()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	cookie := csrfCookie(t, resp)
	assert.True(t, cookie.HttpOnly)
	assert.NotEmpty(t, cookie.Value)

	// Clients reading the JSON API get the token from this header, since
	// the cookie is not script-readable.
	assert.Equal(t, cookie.Value, resp.Header.Get(csrfHeader))
}

func TestCSRFFullCycle(t *testing.T) {
	handler := csrfTestHandler(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/feed", nil))
	resp := rec.Result()

	cookie := csrfCookie(t, resp)
	token := resp.Header.Get(csrfHeader)
	require.NotEmpty(t, token)

	tests := []struct {
		name       string
		header     string
		form       string
		wantStatus int
	}{
		{name: "token in header", header: token, wantStatus: http.StatusCreated},
		{name: "token in form field", form: token, wantStatus: http.StatusCreated},
		{name: "missing token", wantStatus: http.StatusForbidden},
		{name: "wrong token", header: "not-the-token", wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := url.Values{}
			if tt.form != "" {
				form.Set(csrfFormField, tt.form)
			}

			req := httptest.NewRequest("POST", "/submit", strings.NewReader(form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			req.AddCookie(cookie)
			if tt.header != "" {
				req.Header.Set(csrfHeader, tt.header)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestCSRFRejectsPostWithoutPriorGet(t *testing.T) {
	handler := csrfTestHandler(t)

	req := httptest.NewRequest("POST", "/submit", strings.NewReader(""))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
