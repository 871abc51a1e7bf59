package auth

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPasswordNeverStoresPlaintext(t *testing.T) {
	const password = "s3cret-password"

	hash, err := HashPassword(password, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == password || strings.Contains(hash, password) {
		t.Fatal("hash must not contain the plaintext password")
	}
	if err := ComparePassword(hash, password); err != nil {
		t.Fatalf("ComparePassword with correct password: %v", err)
	}
	if err := ComparePassword(hash, "wrong-password"); err == nil {
		t.Fatal("expected wrong password to fail comparison")
	}
}

func TestNewResetTicket(t *testing.T) {
	raw, digest, err := NewResetTicket()
	if err != nil {
		t.Fatalf("NewResetTicket: %v", err)
	}
	if len(raw) != 64 {
		t.Errorf("raw length = %d, want 64 hex chars", len(raw))
	}
	if raw == digest {
		t.Fatal("digest must differ from the raw ticket")
	}
	if DigestResetTicket(raw) != digest {
		t.Fatal("digest must be reproducible from the raw ticket")
	}

	raw2, digest2, err := NewResetTicket()
	if err != nil {
		t.Fatalf("NewResetTicket: %v", err)
	}
	if raw == raw2 || digest == digest2 {
		t.Fatal("consecutive tickets must not repeat")
	}
}
