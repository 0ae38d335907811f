package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

// Service sends patient-facing notification emails.
type Service interface {
	SendBookingConfirmation(ctx context.Context, to, doctorName, date, timeSlot string) error
	SendCancellationNotice(ctx context.Context, to, doctorName, date, timeSlot string) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type smtpService struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPService(cfg SMTPConfig) Service {
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *smtpService) SendBookingConfirmation(ctx context.Context, to, doctorName, date, timeSlot string) error {
	subject := "Your appointment request was received"
	body := fmt.Sprintf(
		"Your appointment with Dr. %s on %s at %s is pending confirmation. You will be notified once the doctor confirms it.",
		doctorName, date, timeSlot,
	)
	return s.send(to, subject, body)
}

func (s *smtpService) SendCancellationNotice(ctx context.Context, to, doctorName, date, timeSlot string) error {
	subject := "Your appointment was cancelled"
	body := fmt.Sprintf(
		"Your appointment with Dr. %s on %s at %s has been cancelled.",
		doctorName, date, timeSlot,
	)
	return s.send(to, subject, body)
}

func (s *smtpService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
