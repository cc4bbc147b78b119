package fileserver

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientKeyFunc_UsesRemoteAddrHost(t *testing.T) {
	fn := ClientKeyFunc(false)

	r := httptest.NewRequest(http.MethodGet, "http://example/", nil)
	r.RemoteAddr = "10.0.0.9:5555"
	r.Header.Set("X-Forwarded-For", "1.2.3.4")

	if got := fn(r); got != "10.0.0.9" {
		t.Fatalf("expected remote host (XFF ignored), got %q", got)
	}
}

func TestClientKeyFunc_TrustXForwardedForUsesFirstIP(t *testing.T) {
	fn := ClientKeyFunc(true)

	r := httptest.NewRequest(http.MethodGet, "http://example/", nil)
	r.RemoteAddr = "10.0.0.9:5555"
	r.Header.Set("X-Forwarded-For", " 1.2.3.4 , 5.6.7.8")

	if got := fn(r); got != "1.2.3.4" {
		t.Fatalf("expected first XFF ip, got %q", got)
	}
}

func TestClientKeyFunc_IPv6AndOddRemoteAddr(t *testing.T) {
	fn := ClientKeyFunc(false)

	r := httptest.NewRequest(http.MethodGet, "http://example/", nil)
	r.RemoteAddr = "[::1]:8080"
	if got := fn(r); got != "::1" {
		t.Fatalf("expected ::1, got %q", got)
	}

	r.RemoteAddr = "pipe"
	if got := fn(r); got != "pipe" {
		t.Fatalf("expected raw RemoteAddr fallback, got %q", got)
	}

	r.RemoteAddr = ""
	if got := fn(r); got != "unknown" {
		t.Fatalf("expected unknown, got %q", got)
	}
}
