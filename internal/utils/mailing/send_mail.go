package mailing

import (
	"Recipe-Sharing/internal/utils"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"gopkg.in/gomail.v2"
)

type MailConfig struct {
	AppURL       string
	SMTPHost     string
	SMTPPort     string
	SMTPSender   string
	SMTPEmail    string
	SMTPPassword string
}

type Mailer interface {
	SendMail(toEmail string, subject string, body string) error
}

type smtpMailer struct {
	config MailConfig
}

func LoadMailConfig() MailConfig {
	return MailConfig{
		AppURL:       utils.GetConfig("APP_URL"),
		SMTPHost:     utils.GetConfig("SMTP_HOST"),
		SMTPPort:     utils.GetConfig("SMTP_PORT"),
		SMTPSender:   utils.GetConfig("SMTP_SENDER_NAME"),
		SMTPEmail:    utils.GetConfig("SMTP_AUTH_EMAIL"),
		SMTPPassword: utils.GetConfig("SMTP_AUTH_PASSWORD"),
	}
}

func NewMailer() Mailer {
	return &smtpMailer{config: LoadMailConfig()}
}

func (m *smtpMailer) SendMail(toEmail string, subject string, body string) error {
	mailer := gomail.NewMessage()
	mailer.SetAddressHeader("From", m.config.SMTPEmail, m.config.SMTPSender)
	mailer.SetHeader("To", toEmail)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body)
	port, err := strconv.Atoi(m.config.SMTPPort)
	if err != nil {
		return err
	}
	dialer := gomail.NewDialer(
		m.config.SMTPHost,
		port,
		m.config.SMTPEmail,
		m.config.SMTPPassword,
	)

	return dialer.DialAndSend(mailer)
}

var verificationTemplate = template.Must(template.New("verify").Parse(
	`<p>Welcome to Recipe Sharing!</p>` +
		`<p>Please confirm your account by <a href="{{.Link}}">clicking here</a>.</p>` +
		`<p>If you did not create an account you can ignore this email.</p>`,
))

// VerificationEmailBody renders the account confirmation mail for the given
// verification token.
func VerificationEmailBody(appURL, token string) (string, error) {
	link := fmt.Sprintf("%s/verify?token=%s", strings.TrimRight(appURL, "/"), token)

	var sb strings.Builder
	if err := verificationTemplate.Execute(&sb, struct{ Link string }{Link: link}); err != nil {
		return "", err
	}
	return sb.String(), nil
}
