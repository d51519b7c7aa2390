package auth

import "testing"

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("secret-password")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if hash == "secret-password" {
		t.Fatal("hash must not equal plaintext")
	}

	if !CheckPassword(hash, "secret-password") {
		t.Fatal("expected correct password to match")
	}
	if CheckPassword(hash, "wrong-password") {
		t.Fatal("expected wrong password to fail")
	}
	if CheckPassword(hash, "") {
		t.Fatal("expected empty password to fail")
	}
}

func TestCheckPasswordInvalidHash(t *testing.T) {
	// 壊れたハッシュは不一致として扱う（fail closed）
	if CheckPassword("not-a-bcrypt-hash", "secret-password") {
		t.Fatal("expected comparison against invalid hash to fail")
	}
}
