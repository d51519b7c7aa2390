package user

import "errors"

// ストア実装が返す共通エラー。
var (
	// ErrNotFound は該当するユーザーが存在しないことを表します。
	ErrNotFound = errors.New("user not found")
	// ErrDuplicate はユニークインデックス違反（email/contact の重複）を表します。
	// 存在確認と挿入の間のレースもこのエラーに落ちます。
	ErrDuplicate = errors.New("duplicate user")
)

// Error はクライアントへ返すAPIエラーです。
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NewError は API エラーを作成します。
func NewError(code, message string) *Error {
	return &Error{Code: code, Message: message}
}
