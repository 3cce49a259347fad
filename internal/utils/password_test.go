package utils

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPasswordSaltsEachCall(t *testing.T) {
	h1, err := HashPassword("s3cret", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	h2, err := HashPassword("s3cret", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("two hashes of the same password are identical; salt missing")
	}
	if !VerifyPassword(h1, "s3cret") || !VerifyPassword(h2, "s3cret") {
		t.Errorf("both hashes should verify the original password")
	}
}

func TestVerifyPasswordRejectsWrongPassword(t *testing.T) {
	h, err := HashPassword("correct", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if VerifyPassword(h, "incorrect") {
		t.Errorf("wrong password verified")
	}
	if VerifyPassword("not-a-bcrypt-hash", "correct") {
		t.Errorf("garbage hash verified")
	}
}
