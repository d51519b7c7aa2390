package user

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateOTP はアカウント有効化用の6桁ワンタイムパスワードを生成します。
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
