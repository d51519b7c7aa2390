package user

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/hirehub/internal/auth"
)

// MailScheduler は登録完了メールを非同期キューへ投入するためのインターフェースです。
type MailScheduler interface {
	ScheduleWelcome(ctx context.Context, u *User) error
}

// Handler は認証・ユーザー系エンドポイントのハンドラーをまとめた構造体です。
type Handler struct {
	store         Store
	tokens        *auth.TokenManager
	limiter       *auth.LoginLimiter
	mail          MailScheduler // nil の場合はメール送信をスキップ
	secureCookies bool
	logger        *log.Logger
}

// NewHandler は Handler を作成します。
func NewHandler(store Store, tokens *auth.TokenManager, limiter *auth.LoginLimiter, mail MailScheduler, secureCookies bool, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{
		store:         store,
		tokens:        tokens,
		limiter:       limiter,
		mail:          mail,
		secureCookies: secureCookies,
		logger:        logger,
	}
}

type registerRequest struct {
	Name            string `json:"name"`
	Contact         string `json:"contact"`
	Email           string `json:"email"`
	Company         string `json:"company"`
	CompanySize     string `json:"company_size"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Role            string `json:"role"`
	Location        string `json:"location"`
}

// Register は POST /register のハンドラーです。
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, NewError("INVALID_INPUT", "Please fill all the fields"))
		return
	}

	if req.Name == "" || req.Contact == "" || req.Email == "" ||
		req.Password == "" || req.ConfirmPassword == "" || req.Role == "" || req.Location == "" {
		respondWithError(c, NewError("INVALID_INPUT", "Please fill all the fields"))
		return
	}

	role := Role(req.Role)
	if !ValidRole(role) {
		respondWithError(c, NewError("INVALID_INPUT", "Invalid role"))
		return
	}

	// 会社情報は雇用主の場合のみ必須、それ以外の役割では保存しない
	company, companySize := "", ""
	if role == RoleEmployer {
		if req.Company == "" {
			respondWithError(c, NewError("INVALID_INPUT", "Company details are required for employers"))
			return
		}
		company = req.Company
		companySize = req.CompanySize
		if companySize == "" {
			companySize = DefaultCompanySize
		}
		if !ValidCompanySize(companySize) {
			respondWithError(c, NewError("INVALID_INPUT", "Invalid company size"))
			return
		}
	}

	email := NormalizeEmail(req.Email)
	ctx := c.Request.Context()

	if _, err := h.store.FindByEmail(ctx, email); err == nil {
		respondWithError(c, NewError("USER_EXISTS", "User already exists"))
		return
	} else if !errors.Is(err, ErrNotFound) {
		respondWithError(c, err)
		return
	}

	if req.Password != req.ConfirmPassword {
		respondWithError(c, NewError("INVALID_INPUT", "Passwords do not match"))
		return
	}

	if _, err := h.store.FindByContact(ctx, req.Contact); err == nil {
		respondWithError(c, NewError("CONTACT_EXISTS", "Contact already exists"))
		return
	} else if !errors.Is(err, ErrNotFound) {
		respondWithError(c, err)
		return
	}

	otp, err := GenerateOTP()
	if err != nil {
		respondWithError(c, err)
		return
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	created, err := h.store.Create(ctx, &User{
		Name:        req.Name,
		Contact:     req.Contact,
		Email:       email,
		Location:    req.Location,
		Company:     company,
		CompanySize: companySize,
		Password:    hashed,
		Role:        role,
		OTP:         otp,
		OTPExpiry:   time.Now().Add(OTPValidity),
		IsActivated: false,
	})
	if err != nil {
		// 存在確認と挿入の間のレースはユニークインデックス違反に落ちるため、
		// 重複エラーとして返す
		if errors.Is(err, ErrDuplicate) {
			respondWithError(c, NewError("USER_EXISTS", "User already exists"))
			return
		}
		respondWithError(c, err)
		return
	}

	// メール送信の失敗は登録自体を失敗させない
	if h.mail != nil {
		if err := h.mail.ScheduleWelcome(ctx, created); err != nil {
			h.logger.Printf("failed to schedule welcome mail for %s: %v", created.Email, err)
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"user":    created.Sanitize(),
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login は POST /login のハンドラーです。
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, NewError("INVALID_INPUT", "Please fill all the fields"))
		return
	}
	if req.Email == "" || req.Password == "" {
		respondWithError(c, NewError("INVALID_INPUT", "Please fill all the fields"))
		return
	}

	ip := c.ClientIP()
	if h.limiter != nil {
		if retryAfter := h.limiter.CheckLock(ip); retryAfter > 0 {
			c.Header("Retry-After", strconv.FormatInt(int64(retryAfter.Seconds()), 10))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"code":    "TOO_MANY_ATTEMPTS",
				"message": "Too many failed attempts, try again later",
			})
			return
		}
	}

	u, err := h.store.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respondWithError(c, NewError("USER_NOT_FOUND", "User not found"))
			return
		}
		respondWithError(c, err)
		return
	}

	if !auth.CheckPassword(u.Password, req.Password) {
		if h.limiter != nil {
			h.limiter.RecordFailure(ip)
		}
		respondWithError(c, NewError("INVALID_CREDENTIALS", "Invalid credentials"))
		return
	}
	if h.limiter != nil {
		h.limiter.Reset(ip)
	}

	token, err := h.tokens.Issue(u.ID.Hex(), u.Name, string(u.Role))
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.setTokenCookie(c, token, int(auth.TokenTTL.Seconds()))
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    u.Sanitize(),
	})
}

// Logout は GET /logout のハンドラーです。
// クッキーの有無に関わらず無条件で削除します。サーバー側の無効化はありません。
func (h *Handler) Logout(c *gin.Context) {
	h.setTokenCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{
		"message": "Logout successful",
	})
}

// Authcheck は GET /authcheck のハンドラーです。
// トークンが有効でも、ユーザーが削除済みの場合は 401 を返します。
func (h *Handler) Authcheck(c *gin.Context) {
	claims, ok := auth.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"code":    "UNAUTHORIZED",
			"message": "Unauthorized",
		})
		return
	}

	u, err := h.store.FindByID(c.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Unauthorized",
			})
			return
		}
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User authenticated",
		"user":    u.Sanitize(),
	})
}

// ListUsers は GET /users のハンドラーです。管理者のみ閲覧できます。
func (h *Handler) ListUsers(c *gin.Context) {
	claims, ok := auth.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"code":    "UNAUTHORIZED",
			"message": "Unauthorized",
		})
		return
	}
	if claims.Role != string(RoleAdmin) {
		respondWithError(c, NewError("FORBIDDEN", "Forbidden"))
		return
	}

	users, err := h.store.List(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	if len(users) == 0 {
		respondWithError(c, NewError("NO_USERS", "No users found"))
		return
	}

	sanitized := make([]Sanitized, 0, len(users))
	for i := range users {
		sanitized = append(sanitized, users[i].Sanitize())
	}
	c.JSON(http.StatusOK, sanitized)
}

// setTokenCookie はセッションクッキーを設定します。
// 本番環境ではクロスサイトのフロントエンドに対応するため SameSite=None + Secure、
// 開発環境では SameSite=Strict を使います。
func (h *Handler) setTokenCookie(c *gin.Context, token string, maxAge int) {
	if h.secureCookies {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteStrictMode)
	}
	c.SetCookie(auth.TokenCookieName, token, maxAge, "/", "", h.secureCookies, true)
}

// respondWithError はエラーをHTTPステータスとJSONボディへ変換します。
// APIエラー以外は詳細を漏らさず 500 の定型メッセージにします。
func respondWithError(c *gin.Context, err error) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		status := http.StatusBadRequest
		switch apiErr.Code {
		case "FORBIDDEN":
			status = http.StatusForbidden
		case "NO_USERS":
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{
			"code":    apiErr.Code,
			"message": apiErr.Message,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"code":    "INTERNAL_ERROR",
		"message": "Internal server error",
	})
}
