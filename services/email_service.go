// file: services/email_service.go
package services

import (
	"fmt"
	"net/smtp"

	"go.uber.org/zap"
)

// EmailService 发送邮箱验证邮件。未配置 SMTP 凭据时自动禁用，注册流程不受影响。
type EmailService struct {
	host     string
	port     string
	username string
	password string
	baseURL  string
	log      *zap.SugaredLogger
}

func NewEmailService(host, port, username, password, baseURL string, log *zap.SugaredLogger) *EmailService {
	return &EmailService{
		host:     host,
		port:     port,
		username: username,
		password: password,
		baseURL:  baseURL,
		log:      log,
	}
}

func (e *EmailService) Enabled() bool {
	return e.username != "" && e.password != ""
}

// SendVerificationEmail 发送带验证链接的邮件。调用方按 best-effort 处理失败。
func (e *EmailService) SendVerificationEmail(email, token string) error {
	if !e.Enabled() {
		e.log.Debugw("email service disabled, skipping verification mail", "to", email)
		return nil
	}

	verificationURL := fmt.Sprintf("%s/verify-email/%s", e.baseURL, token)
	body := fmt.Sprintf(
		"From: Attack on Hash Function CTF <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: Verify Your Email - Attack on Hash Function CTF\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"<h1>ATTACK ON HASH FUNCTION</h1>"+
			"<p>Welcome to the CTF platform! To complete your registration, please verify your email address.</p>"+
			"<p><a href=\"%s\">VERIFY EMAIL</a></p>"+
			"<p>If the link doesn't work, copy and paste it into your browser:<br>%s</p>"+
			"<p>If you didn't create an account, please ignore this email.</p>",
		e.username, email, verificationURL, verificationURL)

	auth := smtp.PlainAuth("", e.username, e.password, e.host)
	addr := e.host + ":" + e.port
	if err := smtp.SendMail(addr, auth, e.username, []string{email}, []byte(body)); err != nil {
		return fmt.Errorf("send verification email: %w", err)
	}
	e.log.Infow("verification email sent", "to", email)
	return nil
}
