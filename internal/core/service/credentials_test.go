package service

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestCredentials_HashAndVerify(t *testing.T) {
	c := NewCredentials(MinBcryptCost)
	h, err := c.Hash("password123")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if !c.Verify("password123", h) {
		t.Fatalf("expected password to verify")
	}
	if c.Verify("password124", h) {
		t.Fatalf("wrong password must not verify")
	}
	if c.Verify("password123", "not-a-hash") {
		t.Fatalf("malformed hash must not verify")
	}
}

func TestCredentials_CostFloor(t *testing.T) {
	h, err := NewCredentials(4).Hash("password123")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	cost, err := bcrypt.Cost([]byte(h))
	if err != nil {
		t.Fatalf("Cost: %v", err)
	}
	if cost < MinBcryptCost {
		t.Fatalf("expected cost >= %d, got %d", MinBcryptCost, cost)
	}
}

func TestCredentials_HashesAreSalted(t *testing.T) {
	c := NewCredentials(MinBcryptCost)
	a, _ := c.Hash("same")
	b, _ := c.Hash("same")
	if a == b {
		t.Fatalf("expected distinct salted hashes")
	}
}
