package mail

import (
	"bytes"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"

	"github.com/yourusername/hirehub/internal/config"
)

// WelcomeMessage は登録完了メールの内容です。
type WelcomeMessage struct {
	Name  string
	Email string
	OTP   string
}

// Sender はメールを1通送信します。テストではスタブに差し替えます。
type Sender interface {
	SendWelcome(msg *WelcomeMessage) error
}

// otpValidityDays はメール本文に記載する有効化コードの有効日数です。
const otpValidityDays = 3

var welcomeTemplate = template.Must(template.New("welcome").Parse(`<!DOCTYPE html>
<html>
  <body style="font-family: sans-serif; color: #333;">
    <h2>Welcome, {{.Name}}!</h2>
    <p>You have registered successfully.</p>
    <p>Your activation code is <strong>{{.OTP}}</strong>.
       It expires in {{.Days}} days.</p>
  </body>
</html>
`))

// RenderWelcomeBody は登録完了メールのHTML本文を生成します。
func RenderWelcomeBody(msg *WelcomeMessage) (string, error) {
	var buf bytes.Buffer
	err := welcomeTemplate.Execute(&buf, struct {
		Name string
		OTP  string
		Days int
	}{
		Name: msg.Name,
		OTP:  msg.OTP,
		Days: otpValidityDays,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render welcome mail: %w", err)
	}
	return buf.String(), nil
}

// SMTPSender は SMTP 経由でメールを送信します。
type SMTPSender struct {
	dialer *gomail.Dialer
	sender string
}

// NewSMTPSender は SMTPSender を作成します。
func NewSMTPSender(cfg *config.Config) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		sender: cfg.SMTPSender,
	}
}

// SendWelcome は登録完了メールを送信します。
func (s *SMTPSender) SendWelcome(msg *WelcomeMessage) error {
	body, err := RenderWelcomeBody(msg)
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.sender)
	m.SetHeader("To", msg.Email)
	m.SetHeader("Subject", "Register successful")
	m.SetBody("text/plain", "You have registered successfully")
	m.AddAlternative("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send welcome mail: %w", err)
	}
	return nil
}
