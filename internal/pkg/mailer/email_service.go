package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"mindwell-be/internal/config"
)

type IEmailService interface {
	SendOTP(toEmail string, otpCode string) error
	SendResetToken(toEmail string, token string) error
}

type EmailService struct {
	dialer *gomail.Dialer
	sender string
}

func NewEmailService(cfg *config.SMTPConfig) IEmailService {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Email, cfg.Password)
	return &EmailService{
		dialer: dialer,
		sender: fmt.Sprintf("%s <%s>", cfg.SenderName, cfg.Email),
	}
}

func (s *EmailService) SendOTP(toEmail string, otpCode string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.sender)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Your MindWell verification code")

	body := fmt.Sprintf(`
		<div style="font-family: sans-serif; max-width: 480px; margin: 0 auto;">
			<h2>Welcome to MindWell</h2>
			<p>Use the code below to verify your email address. It expires in 10 minutes.</p>
			<p style="font-size: 28px; letter-spacing: 6px; font-weight: bold;">%s</p>
			<p>If you did not create a MindWell account, you can safely ignore this email.</p>
		</div>`, otpCode)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send otp email: %w", err)
	}
	return nil
}

func (s *EmailService) SendResetToken(toEmail string, token string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.sender)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Reset your MindWell password")

	body := fmt.Sprintf(`
		<div style="font-family: sans-serif; max-width: 480px; margin: 0 auto;">
			<h2>Password reset requested</h2>
			<p>Use the token below to reset your password. It expires in 15 minutes.</p>
			<p style="font-size: 20px; font-weight: bold;">%s</p>
			<p>If you did not request a reset, no action is needed.</p>
		</div>`, token)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}
	return nil
}
