package enums

import "fmt"

// OTPPurpose tags a pending one-time passcode with the flow it belongs to.
// A code issued for one purpose never verifies against the other.
type OTPPurpose string

const (
	OTPPurposeRegistration  OTPPurpose = "registration"
	OTPPurposePasswordReset OTPPurpose = "password_reset"
)

var validOTPPurposes = []OTPPurpose{
	OTPPurposeRegistration,
	OTPPurposePasswordReset,
}

// String implements fmt.Stringer.
func (p OTPPurpose) String() string {
	return string(p)
}

// IsValid reports whether the value is a known OTPPurpose.
func (p OTPPurpose) IsValid() bool {
	for _, candidate := range validOTPPurposes {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseOTPPurpose converts raw input into an OTPPurpose.
func ParseOTPPurpose(value string) (OTPPurpose, error) {
	for _, candidate := range validOTPPurposes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid otp purpose %q", value)
}
