package services

import (
	"strings"
	"testing"
)

func TestHashPassword(t *testing.T) {
	stored, err := HashPassword("pass")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	if stored == "pass" {
		t.Fatal("stored form equals the plaintext password")
	}

	parts := strings.Split(stored, ".")
	if len(parts) != 2 {
		t.Fatalf("stored form %q does not have exactly one separator", stored)
	}
	if len(parts[0]) != scryptKeyLen*2 {
		t.Fatalf("derived key hex length = %d; want %d", len(parts[0]), scryptKeyLen*2)
	}
	if len(parts[1]) != scryptSaltLen*2 {
		t.Fatalf("salt hex length = %d; want %d", len(parts[1]), scryptSaltLen*2)
	}
}

func TestHashPasswordSaltsDiffer(t *testing.T) {
	a, err := HashPassword("pass")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	b, err := HashPassword("pass")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	if a == b {
		t.Fatal("two hashes of the same password are identical")
	}
}

func TestComparePassword(t *testing.T) {
	stored, err := HashPassword("pass")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	match, err := ComparePassword(stored, "pass")
	if err != nil {
		t.Fatalf("ComparePassword: %v", err)
	}
	if !match {
		t.Fatal("correct password did not match")
	}

	match, err = ComparePassword(stored, "other")
	if err != nil {
		t.Fatalf("ComparePassword: %v", err)
	}
	if match {
		t.Fatal("wrong password matched")
	}
}

func TestComparePasswordMalformed(t *testing.T) {
	if _, err := ComparePassword("no-separator", "pass"); err == nil {
		t.Fatal("expected error for stored form without separator")
	}
}
