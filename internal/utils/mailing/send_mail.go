package mailing

import (
	"bytes"
	"errors"
	"html/template"
	"strconv"

	"turmeric-trace/internal/utils"

	"gopkg.in/gomail.v2"
)

var ErrNotConfigured = errors.New("mail delivery is not configured")

type MailConfig struct {
	AppURL       string
	SMTPHost     string
	SMTPPort     string
	SMTPSender   string
	SMTPEmail    string
	SMTPPassword string
}

// Mailer delivers HTML mail.
type Mailer interface {
	Send(toEmail string, subject string, body string) error
}

type smtpMailer struct{}

func NewMailer() Mailer {
	return smtpMailer{}
}

func (smtpMailer) Send(toEmail string, subject string, body string) error {
	return SendMail(toEmail, subject, body)
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

func SendMail(toEmail string, subject string, body string) error {
	emailConfig := LoadMailConfig()
	if emailConfig.SMTPHost == "" {
		return ErrNotConfigured
	}

	mailer := gomail.NewMessage()
	mailer.SetAddressHeader("From", emailConfig.SMTPEmail, emailConfig.SMTPSender)
	mailer.SetHeader("To", toEmail)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body)
	port, err := strconv.Atoi(emailConfig.SMTPPort)
	if err != nil {
		return err
	}
	dialer := gomail.NewDialer(
		emailConfig.SMTPHost,
		port,
		emailConfig.SMTPEmail,
		emailConfig.SMTPPassword,
	)

	return dialer.DialAndSend(mailer)
}

var traceTemplate = template.Must(template.New("trace").Parse(`<html><body>
<p>A turmeric product has been shared with you.</p>
<p><b>{{.ProductName}}</b>{{if .LotNumber}} (lot {{.LotNumber}}){{end}}, batch <code>{{.BatchCode}}</code>.</p>
{{if .Message}}<p>{{.Message}}</p>{{end}}
<p><a href="{{.TraceURL}}">View the farm-to-product trace</a></p>
</body></html>`))

type TraceMail struct {
	ProductName string
	LotNumber   string
	BatchCode   string
	Message     string
	TraceURL    string
}

// RenderTraceMail builds the body of a shared trace link. Fields are HTML-escaped.
func RenderTraceMail(m TraceMail) (string, error) {
	var buf bytes.Buffer
	if err := traceTemplate.Execute(&buf, m); err != nil {
		return "", err
	}
	return buf.String(), nil
}
