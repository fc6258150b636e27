package authUtils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const otpLifetime = 5 * time.Minute

// GenerateOTP returns a 6-digit numeric code. Leading zeros are allowed,
// so the code is always exactly six characters.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// OTPExpiry returns the moment a code generated now stops being valid.
func OTPExpiry(now time.Time) time.Time {
	return now.Add(otpLifetime)
}

// IsOTPValid reports whether a code with the given expiry is still usable
// at now. A missing expiry means no code is in flight, which is invalid.
// The code is still accepted at exactly the expiry instant.
func IsOTPValid(expiry *time.Time, now time.Time) bool {
	if expiry == nil {
		return false
	}
	return !now.After(*expiry)
}
