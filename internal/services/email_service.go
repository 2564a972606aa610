package services

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type EmailService interface {
	SendRegistrationOTP(email, otp, username string) error
	SendDeletionNotice(email, username string) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer: dialer,
		from:   fromEmail,
	}
}

func (s *emailService) SendRegistrationOTP(email, otp, username string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Verify your account")

	body := fmt.Sprintf(`
		<h2>Welcome, %s!</h2>
		<p>Thank you for registering. Use the following code to verify your email:</p>
		<p><strong>%s</strong></p>
		<p>If you did not create this account, you can ignore this email.</p>
	`, username, otp)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send registration email: %w", err)
	}
	return nil
}

func (s *emailService) SendDeletionNotice(email, username string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Your account is scheduled for deletion")

	body := fmt.Sprintf(`
		<h3>Account deletion confirmed</h3>
		<p>Hi %s, your account and its data will be permanently removed shortly.</p>
		<p>If this was not you, contact support immediately.</p>
	`, username)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send deletion email: %w", err)
	}
	return nil
}
