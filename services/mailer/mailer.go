package mailer

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// Mailer sends one-time codes over SMTP. When SMTP is not configured, or a
// send fails, the code is written to the process log instead so that login
// still works in degraded mode; SendOTP reports which channel was used.
type Mailer struct {
	host     string
	port     int
	from     string
	password string
}

// NewFromEnv reads SMTP_HOST, SMTP_PORT, SMTP_EMAIL and SMTP_PASSWORD.
func NewFromEnv() *Mailer {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}
	return &Mailer{
		host:     os.Getenv("SMTP_HOST"),
		port:     port,
		from:     os.Getenv("SMTP_EMAIL"),
		password: os.Getenv("SMTP_PASSWORD"),
	}
}

func (m *Mailer) configured() bool {
	return m.from != "" && m.password != ""
}

// SendOTP delivers the verification code to the user's email. Returns true
// only when the email was actually sent.
func (m *Mailer) SendOTP(to, code string) bool {
	if !m.configured() {
		log.Printf("[OTP] Email not configured. OTP for %s: %s", to, code)
		return false
	}

	host := m.host
	if host == "" {
		host = "smtp.gmail.com"
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Civic Monitor — Your Verification Code")
	msg.SetBody("text/html", otpBody(code))

	dialer := gomail.NewDialer(host, m.port, m.from, m.password)
	if err := dialer.DialAndSend(msg); err != nil {
		log.Printf("[OTP] Email failed: %v. OTP for %s: %s", err, to, code)
		return false
	}

	log.Printf("[OTP] Email sent to %s", to)
	return true
}

func otpBody(code string) string {
	return fmt.Sprintf(`
	<html>
	<body style="font-family: Arial, sans-serif; background: #0d1117; color: #f1f5f9; padding: 40px;">
		<div style="max-width: 400px; margin: 0 auto; background: rgba(255,255,255,0.05); border-radius: 16px; padding: 40px;">
			<h2 style="text-align: center; color: #818cf8;">Civic Monitor</h2>
			<p style="text-align: center; color: #94a3b8;">Your verification code is:</p>
			<div style="text-align: center; font-size: 36px; font-weight: 900; letter-spacing: 12px; color: #6366f1; padding: 20px;">
				%s
			</div>
			<p style="text-align: center; font-size: 13px; color: #64748b;">This code expires in 5 minutes.</p>
		</div>
	</body>
	</html>`, code)
}
