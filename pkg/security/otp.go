package security

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// OTPTTL is how long an issued one-time passcode stays valid.
const OTPTTL = 10 * time.Minute

// otpSpace covers the fixed-width 6-digit range 100000-999999 inclusive.
const (
	otpMin   = 100000
	otpRange = 900000
)

// GenerateOTP draws a 6-digit code uniformly from the OTP space using the
// platform CSPRNG.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpRange))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+otpMin), nil
}
