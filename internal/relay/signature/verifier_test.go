package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sign(secret, timestamp string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(body)
	return fmt.Sprintf("t=%s,v1=%s", timestamp, hex.EncodeToString(mac.Sum(nil)))
}

func TestVerifyAcceptsValidSignature(t *testing.T) {
	v := NewVerifier(testLogger(), "whsec_test")
	body := []byte(`{"type":"charge.succeeded"}`)
	if err := v.Verify(body, sign("whsec_test", "1234567890", body)); err != nil {
		t.Fatalf("verify: %v", err)
	}
}

func TestVerifyRejectsMutatedBody(t *testing.T) {
	v := NewVerifier(testLogger(), "whsec_test")
	body := []byte(`{"type":"charge.succeeded","id":"evt_123"}`)
	header := sign("whsec_test", "1234567890", body)

	for i := range body {
		mutated := append([]byte(nil), body...)
		mutated[i] ^= 0x01
		if err := v.Verify(mutated, header); !errors.Is(err, ErrMismatch) {
			t.Fatalf("byte %d: got %v, want ErrMismatch", i, err)
		}
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	v := NewVerifier(testLogger(), "whsec_test")
	body := []byte("payload")
	if err := v.Verify(body, sign("whsec_other", "1234567890", body)); !errors.Is(err, ErrMismatch) {
		t.Fatalf("got %v, want ErrMismatch", err)
	}
}

func TestVerifyHeaderFormat(t *testing.T) {
	v := NewVerifier(testLogger(), "whsec_test")
	body := []byte("payload")
	cases := []struct {
		name   string
		header string
	}{
		{"empty", ""},
		{"timestamp only", "t=1234567890"},
		{"signature only", "v1=deadbeef"},
		{"swapped fields", "v1=deadbeef,t=1234567890"},
		{"non-integer timestamp", "t=now,v1=deadbeef"},
		{"non-hex signature", "t=1234567890,v1=zzzz"},
		{"empty signature", "t=1234567890,v1="},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if err := v.Verify(body, c.header); !errors.Is(err, ErrInvalidFormat) {
				t.Fatalf("got %v, want ErrInvalidFormat", err)
			}
		})
	}
}

func TestVerifySkippedWithoutSecret(t *testing.T) {
	v := NewVerifier(testLogger(), "")
	if err := v.Verify([]byte("anything"), "not even a header"); err != nil {
		t.Fatalf("verification should be disabled without a secret, got %v", err)
	}
}
