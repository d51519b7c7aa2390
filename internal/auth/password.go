package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost はパスワードハッシュの計算コストです。
const bcryptCost = 10

// HashPassword は平文パスワードからbcryptハッシュを生成します。
// 平文をそのまま保存してはいけません。
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// CheckPassword は平文パスワードを保存済みハッシュと比較します。
// 比較エラーはすべて不一致として扱います。
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
