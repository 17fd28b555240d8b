package session

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestCodec(t *testing.T, now time.Time) *Codec {
	t.Helper()
	c, err := NewCodec("test-secret", 24*time.Hour)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	return c.WithClock(func() time.Time { return now })
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	c := newTestCodec(t, now)
	uid := uuid.New()

	token, exp, err := c.Issue(uid)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if !exp.Equal(now.Add(24 * time.Hour)) {
		t.Fatalf("expiry = %v, want %v", exp, now.Add(24*time.Hour))
	}

	got, err := c.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if got != uid {
		t.Fatalf("Verify = %s, want %s", got, uid)
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	issued := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	token, _, err := newTestCodec(t, issued).Issue(uuid.New())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	later := newTestCodec(t, issued.Add(25*time.Hour))
	if _, err := later.Verify(token); !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("Verify expired = %v, want ErrExpiredToken", err)
	}
}

func TestVerifyRejectsTampering(t *testing.T) {
	now := time.Now()
	c := newTestCodec(t, now)
	token, _, err := c.Issue(uuid.New())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("token has %d segments", len(parts))
	}

	other, err := NewCodec("another-secret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	foreign, _, _ := other.Issue(uuid.New())
	foreignParts := strings.Split(foreign, ".")

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"swapped payload", parts[0] + "." + foreignParts[1] + "." + parts[2]},
		{"foreign secret", foreign},
		{"alg none", "eyJhbGciOiJub25lIiwidHlwIjoiSldUIn0." + parts[1] + "."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := c.Verify(tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("Verify(%q) = %v, want ErrInvalidToken", tt.name, err)
			}
		})
	}
}

func TestNewCodecRequiresSecret(t *testing.T) {
	if _, err := NewCodec("", time.Hour); err == nil {
		t.Fatal("expected error for empty secret")
	}
}
