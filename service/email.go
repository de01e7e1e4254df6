package service

import (
	"fmt"
	"strings"

	"github.com/Soufianejami/coworkingcaisse/config"
	"github.com/Soufianejami/coworkingcaisse/models"

	"gopkg.in/gomail.v2"
)

// EmailService sends transactional mail (password resets, stock alerts).
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService creates an email service.
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// SendPasswordResetEmail mails a reset link to the user.
func (s *EmailService) SendPasswordResetEmail(toEmail, username, resetLink string) error {
	if !s.cfg.Enabled {
		return fmt.Errorf("email service disabled, set email.enabled=true")
	}

	subject := "Coworking Caisse - Password reset"
	body := fmt.Sprintf(`<html><body>
<p>Hello <strong>%s</strong>,</p>
<p>We received a request to reset your password. Click the link below to choose a new one:</p>
<p><a href="%s">Reset my password</a></p>
<p>The link expires in 30 minutes. If you did not request a reset, ignore this mail.</p>
</body></html>`, username, resetLink)

	return s.sendEmail(toEmail, subject, body)
}

// SendLowStockAlert mails the configured recipient a list of items at or under
// their minimum threshold.
func (s *EmailService) SendLowStockAlert(items []models.Inventory) error {
	if !s.cfg.Enabled {
		return fmt.Errorf("email service disabled, set email.enabled=true")
	}
	if s.cfg.AlertTo == "" {
		return fmt.Errorf("no alert recipient configured, set email.alert_to")
	}
	if len(items) == 0 {
		return nil
	}

	var rows strings.Builder
	for _, item := range items {
		rows.WriteString(fmt.Sprintf("<tr><td>%s</td><td>%d</td><td>%d</td></tr>",
			item.Product.Name, item.Quantity, item.MinThreshold))
	}

	subject := fmt.Sprintf("Coworking Caisse - %d item(s) low on stock", len(items))
	body := fmt.Sprintf(`<html><body>
<p>The following items are at or under their minimum stock threshold:</p>
<table border="1" cellpadding="4">
<tr><th>Product</th><th>Quantity</th><th>Threshold</th></tr>
%s
</table>
</body></html>`, rows.String())

	return s.sendEmail(s.cfg.AlertTo, subject, body)
}

func (s *EmailService) sendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}
