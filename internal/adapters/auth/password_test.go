package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCompare(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	salt, err := hasher.GenerateSalt()
	if err != nil {
		t.Fatalf("generate salt failed: %v", err)
	}
	if salt == "" {
		t.Fatal("expected non-empty salt")
	}

	hash, err := hasher.Hash(salt, "correct-horse")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if err := hasher.Compare(hash, salt, "correct-horse"); err != nil {
		t.Errorf("expected matching password to compare, got %v", err)
	}
	if err := hasher.Compare(hash, salt, "wrong-password"); err == nil {
		t.Error("expected mismatched password to fail")
	}
	if err := hasher.Compare(hash, "other-salt", "correct-horse"); err == nil {
		t.Error("expected mismatched salt to fail")
	}
}

func TestGenerateSalt_Unique(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)
	a, err := hasher.GenerateSalt()
	if err != nil {
		t.Fatalf("generate salt failed: %v", err)
	}
	b, err := hasher.GenerateSalt()
	if err != nil {
		t.Fatalf("generate salt failed: %v", err)
	}
	if a == b {
		t.Error("expected distinct salts")
	}
}

func TestHash_LongPassword(t *testing.T) {
	// bcrypt rejects inputs over 72 bytes; the sha256 digest keeps long
	// passwords within that limit.
	hasher := NewBcryptHasher(bcrypt.MinCost)
	long := make([]byte, 200)
	for i := range long {
		long[i] = 'a'
	}
	salt, err := hasher.GenerateSalt()
	if err != nil {
		t.Fatalf("generate salt failed: %v", err)
	}
	hash, err := hasher.Hash(salt, string(long))
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if err := hasher.Compare(hash, salt, string(long)); err != nil {
		t.Errorf("expected long password to round-trip, got %v", err)
	}
}
