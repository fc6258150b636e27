package models

import "testing"

func TestHashAndComparePassword(t *testing.T) {
	t.Parallel()

	u := User{Password: "correct horse"}
	if err := u.HashPassword(); err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if u.Password == "correct horse" {
		t.Fatal("password was not hashed")
	}

	if !u.ComparePassword("correct horse") {
		t.Error("exact plaintext should verify")
	}
	if u.ComparePassword("correct hors") {
		t.Error("truncated plaintext should not verify")
	}
	if u.ComparePassword("Correct horse") {
		t.Error("one-character mutation should not verify")
	}
	if u.ComparePassword("") {
		t.Error("empty plaintext should not verify")
	}
}

func TestHashPasswordSaltsFreshly(t *testing.T) {
	t.Parallel()

	a := User{Password: "same-secret"}
	b := User{Password: "same-secret"}
	if err := a.HashPassword(); err != nil {
		t.Fatal(err)
	}
	if err := b.HashPassword(); err != nil {
		t.Fatal(err)
	}
	if a.Password == b.Password {
		t.Error("two hashes of the same plaintext should differ (fresh salt per call)")
	}
}

func TestValidRole(t *testing.T) {
	t.Parallel()

	for _, role := range []string{"surveyor", "engineer", "admin"} {
		if !ValidRole(role) {
			t.Errorf("ValidRole(%q) = false, want true", role)
		}
	}
	for _, role := range []string{"", "Surveyor", "superuser"} {
		if ValidRole(role) {
			t.Errorf("ValidRole(%q) = true, want false", role)
		}
	}
}
