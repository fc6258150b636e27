package mailer

import (
	"strings"
	"testing"
)

func TestSendOTPUnconfiguredFallsBackToLog(t *testing.T) {
	m := &Mailer{}
	if sent := m.SendOTP("user@example.com", "123456"); sent {
		t.Error("unconfigured mailer must report the email as not sent")
	}
}

func TestOTPBodyContainsCode(t *testing.T) {
	t.Parallel()

	body := otpBody("042137")
	if !strings.Contains(body, "042137") {
		t.Error("mail body must contain the code")
	}
	if !strings.Contains(body, "expires in 5 minutes") {
		t.Error("mail body must state the expiry window")
	}
}
