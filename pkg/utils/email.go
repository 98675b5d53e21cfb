package utils

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"
)

const appName = "Field Booking"

// Common header template for all emails
const emailHeader = `
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; margin: 0; padding: 0;">
	<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
		<div style="text-align: center; margin-bottom: 30px; background-color: #f9f9f9; padding: 20px;">
			<h2 style="color: #2e7d32; margin: 0;">Field Booking</h2>
		</div>
`

// Common footer template for all emails
const emailFooter = `
		<div style="text-align: center; margin-top: 20px; font-size: 12px; color: #666; border-top: 1px solid #eee; padding-top: 20px;">
			<p>This is an automated message, please do not reply to this email.</p>
		</div>
	</div>
</body>
</html>
`

type MailerConfig struct {
	From     string
	Password string
	Host     string
	Port     string
}

// Mailer sends HTML mail through an authenticated SMTP relay.
type Mailer struct {
	cfg  MailerConfig
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
	log  *zap.Logger
}

func NewMailer(cfg MailerConfig, log *zap.Logger) *Mailer {
	return &Mailer{cfg: cfg, send: smtp.SendMail, log: log.Named("mailer")}
}

func (m *Mailer) configured() bool {
	return m.cfg.From != "" && m.cfg.Password != "" && m.cfg.Host != "" && m.cfg.Port != ""
}

func (m *Mailer) sendEmail(to []string, subject, body string) error {
	if !m.configured() {
		m.log.Warn("email configuration not set, message not sent", zap.Strings("to", to))
		return nil
	}

	headers := [][2]string{
		{"From", fmt.Sprintf("%s <%s>", appName, m.cfg.From)},
		{"To", strings.Join(to, ",")},
		{"Subject", subject},
		{"MIME-Version", "1.0"},
		{"Content-Type", "text/html; charset=UTF-8"},
	}

	var message strings.Builder
	for _, h := range headers {
		fmt.Fprintf(&message, "%s: %s\r\n", h[0], h[1])
	}
	message.WriteString("\r\n" + body)

	auth := smtp.PlainAuth("", m.cfg.From, m.cfg.Password, m.cfg.Host)
	if err := m.send(m.cfg.Host+":"+m.cfg.Port, auth, m.cfg.From, to, []byte(message.String())); err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	m.log.Info("email sent", zap.Strings("to", to))
	return nil
}

// SendVerificationCode mails a one-time confirmation code. net/smtp has no
// cancellation, so ctx is unused.
func (m *Mailer) SendVerificationCode(_ context.Context, to, code string) error {
	subject := "Your confirmation code - " + appName
	body := fmt.Sprintf(emailHeader+`
				<div style="background-color: #f9f9f9; padding: 20px; border-radius: 5px;">
					<h1 style="color: #2c3e50; text-align: center;">Confirmation code</h1>
					<p>Hello,</p>
					<p>%s</p>
					<div style="text-align: center; margin: 30px 0; font-size: 28px; letter-spacing: 6px;"><strong>%s</strong></div>
				</div>`+emailFooter,
		VerificationMessage(code), code)

	return m.sendEmail([]string{to}, subject, body)
}
