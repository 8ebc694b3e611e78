package auth

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func testHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing: %v", err)
	}
	return string(hash)
}

func TestBcryptVerifier(t *testing.T) {
	v := &BcryptVerifier{Username: "admin", PasswordHash: testHash(t, "Admin123")}

	tests := []struct {
		name     string
		username string
		password string
		wantErr  bool
	}{
		{"correct", "admin", "Admin123", false},
		{"username padded", " admin ", "Admin123", false},
		{"wrong password", "admin", "admin123", true},
		{"wrong username", "root", "Admin123", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Verify(tt.username, tt.password)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidCredentials) {
					t.Errorf("err = %v, want ErrInvalidCredentials", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestBcryptVerifierBadHash(t *testing.T) {
	v := &BcryptVerifier{Username: "admin", PasswordHash: "not-a-hash"}

	err := v.Verify("admin", "Admin123")
	if err == nil {
		t.Fatal("expected error for malformed hash")
	}
	if errors.Is(err, ErrInvalidCredentials) {
		t.Error("malformed hash should not look like a credential mismatch")
	}
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("Admin123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "Admin123" {
		t.Fatal("hash should not equal the password")
	}

	v := &BcryptVerifier{Username: "admin", PasswordHash: hash}
	if err := v.Verify("admin", "Admin123"); err != nil {
		t.Errorf("verify with generated hash: %v", err)
	}

	if _, err := HashPassword(""); err == nil {
		t.Error("expected error for empty password")
	}
}

func TestNewVerifier(t *testing.T) {
	if _, ok := NewVerifier(Config{}).(AllowAll); !ok {
		t.Error("empty config should allow all")
	}
	if _, ok := NewVerifier(Config{Username: "admin"}).(AllowAll); !ok {
		t.Error("config without hash should allow all")
	}

	v := NewVerifier(Config{Username: "admin", PasswordHash: testHash(t, "secret")})
	if err := v.Verify("admin", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
	if err := v.Verify("admin", "secret"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAllowAll(t *testing.T) {
	if err := (AllowAll{}).Verify("", ""); err != nil {
		t.Errorf("AllowAll.Verify = %v", err)
	}
}
