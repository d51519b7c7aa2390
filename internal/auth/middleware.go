package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// TokenCookieName はセッショントークンを格納するクッキー名です。
const TokenCookieName = "token"

// ContextClaimsKey は、ハンドラー間で検証済みクレームを共有するためのキーです。
const ContextClaimsKey = "auth.claims"

// RequireAuth はセッショントークンを検証するミドルウェアを返します。
// クッキーが無ければ 401、検証に失敗しても 401 で遮断し、
// 成功した場合はクレームをコンテキストに載せて後続に渡します。
func RequireAuth(tm *TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(TokenCookieName)
		if err != nil || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Unauthorized",
			})
			return
		}

		claims, err := tm.Verify(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    "FORBIDDEN",
				"message": "Forbidden",
			})
			return
		}

		c.Set(ContextClaimsKey, claims)
		c.Next()
	}
}

// ClaimsFrom はコンテキストから検証済みクレームを取り出します。
func ClaimsFrom(c *gin.Context) (*Claims, bool) {
	value, exists := c.Get(ContextClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*Claims)
	return claims, ok
}
