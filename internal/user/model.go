// Package user はユーザーの永続化と認証系HTTPハンドラーを提供します。
package user

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role はユーザーの役割を表します。
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleCandidate Role = "candidate"
	RoleEmployer  Role = "employer"
)

// ValidRole は既知の役割かどうかを判定します。
func ValidRole(role Role) bool {
	switch role {
	case RoleAdmin, RoleCandidate, RoleEmployer:
		return true
	default:
		return false
	}
}

// companySizes は許可される従業員規模の値です。
var companySizes = []string{"1-10", "11-50", "51-200", "201-500", "501"}

// ValidCompanySize は従業員規模が既知の値かどうかを判定します。
func ValidCompanySize(size string) bool {
	for _, s := range companySizes {
		if s == size {
			return true
		}
	}
	return false
}

// DefaultCompanySize は雇用主が規模を指定しなかった場合の既定値です。
const DefaultCompanySize = "1-10"

// OTPValidity はアカウント有効化OTPの有効期間です。
const OTPValidity = 72 * time.Hour

// User はユーザードキュメントを表します。
// email と contact はストア側のユニークインデックスで一意性を保証します。
type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Contact     string             `bson:"contact" json:"contact"`
	Email       string             `bson:"email" json:"email"`
	Location    string             `bson:"location,omitempty" json:"location,omitempty"`
	Company     string             `bson:"company,omitempty" json:"company,omitempty"`
	CompanySize string             `bson:"company_size,omitempty" json:"company_size,omitempty"`
	Password    string             `bson:"password" json:"-"`
	Role        Role               `bson:"role" json:"role"`
	OTP         string             `bson:"otp,omitempty" json:"-"`
	OTPExpiry   time.Time          `bson:"otp_expiry,omitempty" json:"-"`
	IsActivated bool               `bson:"is_activated" json:"isActivated"`
	CreatedAt   time.Time          `bson:"created_at" json:"-"`
}

// Sanitized はクライアントへ返すユーザー表現です。
// パスワードハッシュとOTPは含みません。
type Sanitized struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Contact     string `json:"contact"`
	Email       string `json:"email"`
	Location    string `json:"location,omitempty"`
	Role        Role   `json:"role"`
	IsActivated bool   `json:"isActivated"`
	Company     string `json:"company,omitempty"`
	CompanySize string `json:"company_size,omitempty"`
}

// Sanitize はハッシュやOTPを除いた表現を返します。
func (u *User) Sanitize() Sanitized {
	return Sanitized{
		ID:          u.ID.Hex(),
		Name:        u.Name,
		Contact:     u.Contact,
		Email:       u.Email,
		Location:    u.Location,
		Role:        u.Role,
		IsActivated: u.IsActivated,
		Company:     u.Company,
		CompanySize: u.CompanySize,
	}
}

// NormalizeEmail はメールアドレスを小文字化し前後の空白を除きます。
// 保存・検索とも正規化後の値で行います。
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
