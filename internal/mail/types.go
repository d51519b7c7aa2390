// Package mail は登録完了メールの非同期配信を提供します。
package mail

import "time"

// Status は配信の状態を表します。
type Status string

const (
	StatusQueued  Status = "queued"
	StatusSending Status = "sending"
	StatusSent    Status = "sent"
	StatusFailed  Status = "error"
)

// ErrorInfo は配信失敗時のエラー情報を保持します。
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Record は1通分の配信状態を表します。
type Record struct {
	DeliveryID string     `json:"deliveryId"`
	Email      string     `json:"email"`
	Status     Status     `json:"status"`
	Error      *ErrorInfo `json:"error,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	ExpiresAt  time.Time  `json:"expiresAt"`
}
