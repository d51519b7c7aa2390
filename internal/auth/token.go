// Package auth は認証・認可機能を提供します。
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL はセッショントークンの有効期間です。期限切れ後は再ログインが必要です。
const TokenTTL = 24 * time.Hour

// ErrInvalidToken は署名不正・改ざん・期限切れなど検証に失敗したトークンを表します。
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims はセッショントークンに含まれる利用者情報です。
type Claims struct {
	UserID string `json:"id"`
	Name   string `json:"name,omitempty"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// TokenManager はセッショントークンの発行と検証を担います。
// 署名鍵は構築時に注入し、グローバル状態には置きません。
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager は TokenManager を作成します。
func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    TokenTTL,
	}
}

// Issue はユーザー情報を含む署名付きトークンを発行します。
func (m *TokenManager) Issue(userID, name, role string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Name:   name,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify はトークンを検証し、含まれるクレームを返します。
// 検証に失敗した場合は ErrInvalidToken を返します。
func (m *TokenManager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		// HS256以外のアルゴリズムを指定したトークンは受け付けない
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
