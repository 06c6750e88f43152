package services

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// Mailer delivers the verification OTP. The SMTP implementation is
// used when mail settings are configured; otherwise the OTP is logged
// so local development keeps working.
type Mailer interface {
	SendOTP(email, name, otp string) error
}

type smtpMailer struct {
	host string
	port int
	user string
	pass string
	from string
}

// NewMailerFromEnv picks the SMTP mailer when SMTP_HOST is set and the
// logging mailer otherwise.
func NewMailerFromEnv() Mailer {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return &logMailer{}
	}
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}
	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = os.Getenv("SMTP_USER")
	}
	return &smtpMailer{
		host: host,
		port: port,
		user: os.Getenv("SMTP_USER"),
		pass: os.Getenv("SMTP_PASS"),
		from: from,
	}
}

func (m *smtpMailer) SendOTP(email, name, otp string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", email)
	msg.SetHeader("Subject", "ExpenseML Email Verification")
	msg.SetBody("text/plain", fmt.Sprintf(
		"Hello %s,\n\nYour Email Verification OTP is: %s. It expires in 10 minutes.\n\nThanks for using ExpenseML!", name, otp))
	msg.AddAlternative("text/html", fmt.Sprintf(
		`<div style="font-family:Arial,sans-serif"><h2>ExpenseML Email Verification</h2>
<p>Hello <strong>%s</strong>,</p>
<p>Please use the OTP below to verify your email address. It is valid for 10 minutes.</p>
<p style="font-size:28px;letter-spacing:5px"><strong>%s</strong></p>
<p>If you did not request this, please ignore this email.</p></div>`, name, otp))

	dialer := gomail.NewDialer(m.host, m.port, m.user, m.pass)
	return dialer.DialAndSend(msg)
}

type logMailer struct{}

func (m *logMailer) SendOTP(email, name, otp string) error {
	log.Printf("mail disabled (no SMTP_HOST): OTP for %s is %s", email, otp)
	return nil
}
