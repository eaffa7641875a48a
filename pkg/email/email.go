package email

import (
	"context"
	"errors"
	"fmt"

	"go-applicant-tracker/config"

	"gopkg.in/gomail.v2"
)

var ErrNotConfigured = errors.New("email: SMTP is not configured")

// Sender delivers the account emails of the service.
type Sender interface {
	SendVerificationLink(ctx context.Context, to, name, link string) error
	SendPasswordResetLink(ctx context.Context, to, link string) error
	SendCredentials(ctx context.Context, to string, data CredentialsEmailData) error
}

// dialer is satisfied by *gomail.Dialer.
type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// EmailService sends HTML emails over SMTP.
type EmailService struct {
	dialer    dialer
	host      string
	fromEmail string
	appName   string
}

func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		dialer:    gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		host:      cfg.SMTPHost,
		fromEmail: cfg.SMTPFromEmail,
		appName:   "Applicant Portal",
	}
}

// IsConfigured checks if the email service has a host and sender address
func (s *EmailService) IsConfigured() bool {
	return s.host != "" && s.fromEmail != ""
}

func (s *EmailService) SendVerificationLink(ctx context.Context, to, name, link string) error {
	return s.send(ctx, to, "Verify Email Address", verifyEmailTemplate, VerifyEmailData{
		AppName: s.appName,
		Name:    name,
		Link:    link,
	})
}

func (s *EmailService) SendPasswordResetLink(ctx context.Context, to, link string) error {
	return s.send(ctx, to, "Reset Password Notification", resetPasswordTemplate, ResetPasswordData{
		AppName: s.appName,
		Link:    link,
	})
}

func (s *EmailService) SendCredentials(ctx context.Context, to string, data CredentialsEmailData) error {
	data.AppName = s.appName
	return s.send(ctx, to, "Your account has been created", credentialsTemplate, data)
}

func (s *EmailService) send(ctx context.Context, to, subject, tmpl string, data interface{}) error {
	if !s.IsConfigured() {
		return ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := render(tmpl, data)
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.fromEmail)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
