package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestCookie_WriteAttributes(t *testing.T) {
	tests := []struct {
		name     string
		secure   bool
		sameSite http.SameSite
	}{
		{"development", false, http.SameSiteLaxMode},
		{"production cross-origin", true, http.SameSiteNoneMode},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			c := Cookie{Secure: tc.secure, MaxAge: time.Hour}
			c.Write(rr, "abc123")

			cookies := rr.Result().Cookies()
			if len(cookies) != 1 {
				t.Fatalf("Expected 1 cookie, got %d", len(cookies))
			}

			got := cookies[0]
			if got.Name != CookieName {
				t.Errorf("Expected cookie name %q, got %q", CookieName, got.Name)
			}
			if !got.HttpOnly {
				t.Error("Session cookie must be HTTP-only")
			}
			if got.Secure != tc.secure {
				t.Errorf("Expected Secure=%v", tc.secure)
			}
			if got.SameSite != tc.sameSite {
				t.Errorf("Expected SameSite %v, got %v", tc.sameSite, got.SameSite)
			}
			if got.MaxAge != 3600 {
				t.Errorf("Expected MaxAge 3600, got %d", got.MaxAge)
			}
		})
	}
}

func TestCookie_ClearExpiresImmediately(t *testing.T) {
	rr := httptest.NewRecorder()
	c := Cookie{Secure: false, MaxAge: time.Hour}
	c.Clear(rr)

	cookies := rr.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("Expected 1 cookie, got %d", len(cookies))
	}
	if cookies[0].MaxAge >= 0 {
		t.Errorf("Expected negative MaxAge, got %d", cookies[0].MaxAge)
	}
	if cookies[0].Value != "" {
		t.Errorf("Expected empty value, got %q", cookies[0].Value)
	}
}

func TestTokenFromRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/users/profile", nil)
	if token := TokenFromRequest(req); token != "" {
		t.Errorf("Expected empty token without cookie, got %q", token)
	}

	req.AddCookie(&http.Cookie{Name: CookieName, Value: "tok-42"})
	if token := TokenFromRequest(req); token != "tok-42" {
		t.Errorf("Expected tok-42, got %q", token)
	}
}

func TestGenerateToken_UniqueAndHex(t *testing.T) {
	a, err := generateToken(32)
	if err != nil {
		t.Fatalf("generateToken failed: %v", err)
	}
	b, err := generateToken(32)
	if err != nil {
		t.Fatalf("generateToken failed: %v", err)
	}

	if len(a) != 64 {
		t.Errorf("Expected 64 hex chars, got %d", len(a))
	}
	if a == b {
		t.Error("Tokens must be unique")
	}
}
