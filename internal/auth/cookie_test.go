// ABOUTME: Tests for session cookie attributes across environments
// ABOUTME: Covers write/clear attribute policy and clear idempotency

package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func findCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("cookie %q not set", name)
	return nil
}

func TestCookieManager_Write_Development(t *testing.T) {
	m := NewCookieManager("session", 24*time.Hour, false)
	rec := httptest.NewRecorder()

	m.Write(rec, "token-value")

	cookie := findCookie(t, rec, "session")
	if cookie.Value != "token-value" {
		t.Errorf("Value = %q, want %q", cookie.Value, "token-value")
	}
	if !cookie.HttpOnly {
		t.Error("HttpOnly = false, want true")
	}
	if cookie.Secure {
		t.Error("Secure = true, want false in development")
	}
	if cookie.SameSite != http.SameSiteLaxMode {
		t.Errorf("SameSite = %v, want Lax in development", cookie.SameSite)
	}
	if cookie.Path != "/" {
		t.Errorf("Path = %q, want %q", cookie.Path, "/")
	}
	if cookie.MaxAge != int((24 * time.Hour).Seconds()) {
		t.Errorf("MaxAge = %d, want %d", cookie.MaxAge, int((24*time.Hour).Seconds()))
	}
}

func TestCookieManager_Write_Production(t *testing.T) {
	m := NewCookieManager("session", 24*time.Hour, true)
	rec := httptest.NewRecorder()

	m.Write(rec, "token-value")

	cookie := findCookie(t, rec, "session")
	if !cookie.Secure {
		t.Error("Secure = false, want true in production")
	}
	if cookie.SameSite != http.SameSiteNoneMode {
		t.Errorf("SameSite = %v, want None in production", cookie.SameSite)
	}
}

func TestCookieManager_Clear(t *testing.T) {
	m := NewCookieManager("session", 24*time.Hour, false)
	rec := httptest.NewRecorder()

	m.Clear(rec)

	cookie := findCookie(t, rec, "session")
	if cookie.Value != "" {
		t.Errorf("Value = %q, want empty", cookie.Value)
	}
	if cookie.MaxAge != -1 {
		t.Errorf("MaxAge = %d, want -1", cookie.MaxAge)
	}
}

func TestCookieManager_Clear_Idempotent(t *testing.T) {
	m := NewCookieManager("session", 24*time.Hour, false)

	// Clearing twice with no cookie present must not differ from clearing once
	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		m.Clear(rec)
		cookie := findCookie(t, rec, "session")
		if cookie.MaxAge != -1 {
			t.Errorf("clear %d: MaxAge = %d, want -1", i+1, cookie.MaxAge)
		}
	}
}

func TestCookieManager_Read(t *testing.T) {
	m := NewCookieManager("session", 24*time.Hour, false)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "token-value"})

	if got := m.Read(req); got != "token-value" {
		t.Errorf("Read() = %q, want %q", got, "token-value")
	}
}

func TestCookieManager_Read_Absent(t *testing.T) {
	m := NewCookieManager("session", 24*time.Hour, false)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := m.Read(req); got != "" {
		t.Errorf("Read() = %q, want empty for absent cookie", got)
	}
}
