package ratelimit

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestLimiter_AllowAndReset(t *testing.T) {
	l := New(2, time.Minute)
	defer l.Stop()

	now := time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	if !l.Allow("10.0.0.1") || !l.Allow("10.0.0.1") {
		t.Fatal("first two requests should be allowed")
	}
	if l.Allow("10.0.0.1") {
		t.Error("third request in the window should be refused")
	}
	if !l.Allow("10.0.0.2") {
		t.Error("other keys have their own window")
	}
	if got := l.RetryAfter("10.0.0.1"); got != time.Minute {
		t.Errorf("RetryAfter: got %v, want 1m", got)
	}

	now = now.Add(time.Minute + time.Second)
	if !l.Allow("10.0.0.1") {
		t.Error("request after the window should be allowed")
	}
	if got := l.RetryAfter("unknown"); got != 0 {
		t.Errorf("RetryAfter(unknown): got %v, want 0", got)
	}
}

func TestLimiter_StopTwice(t *testing.T) {
	l := New(1, time.Millisecond)
	l.Stop()
	l.Stop()
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{name: "forwarded for", headers: map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}, remote: "10.0.0.1:5000", want: "203.0.113.7"},
		{name: "real ip", headers: map[string]string{"X-Real-IP": " 203.0.113.8 "}, remote: "10.0.0.1:5000", want: "203.0.113.8"},
		{name: "remote addr", remote: "192.0.2.1:1234", want: "192.0.2.1"},
		{name: "remote without port", remote: "192.0.2.1", want: "192.0.2.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/structures/bem/2025-2026", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := ClientIP(r); got != tt.want {
				t.Errorf("ClientIP: got %q, want %q", got, tt.want)
			}
		})
	}
}
