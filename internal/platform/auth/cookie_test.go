package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func issuedCookie(t *testing.T, production bool) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	SetSessionCookie(rec, "token", "tok-value", time.Hour, production)
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("got %d cookies, want 1", len(cookies))
	}
	return cookies[0]
}

func TestSetSessionCookieDev(t *testing.T) {
	c := issuedCookie(t, false)
	if c.Name != "token" || c.Value != "tok-value" {
		t.Errorf("cookie = %s=%s", c.Name, c.Value)
	}
	if !c.HttpOnly {
		t.Error("cookie must be httpOnly")
	}
	if c.Secure {
		t.Error("dev cookie must not be Secure")
	}
	if c.SameSite != http.SameSiteStrictMode {
		t.Errorf("dev SameSite = %v, want Strict", c.SameSite)
	}
}

func TestSetSessionCookieProduction(t *testing.T) {
	c := issuedCookie(t, true)
	if !c.Secure {
		t.Error("production cookie must be Secure")
	}
	if c.SameSite != http.SameSiteNoneMode {
		t.Errorf("production SameSite = %v, want None", c.SameSite)
	}
}

func TestClearSessionCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	ClearSessionCookie(rec, "token", false)
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("got %d cookies, want 1", len(cookies))
	}
	c := cookies[0]
	if c.Value != "" || c.MaxAge >= 0 {
		t.Errorf("clear cookie = %q maxAge=%d, want empty with negative MaxAge", c.Value, c.MaxAge)
	}
	if !c.HttpOnly {
		t.Error("clear cookie must keep httpOnly")
	}
}
