package auth

import (
	"fmt"

	"github.com/medicore-health/medicore-backend/pkg/enums"
)

// otpEmail returns the subject and HTML body for an OTP dispatch. The code is
// embedded in the body; expiry wording matches the actual OTP TTL.
func otpEmail(purpose enums.OTPPurpose, code string) (subject, body string) {
	if purpose == enums.OTPPurposePasswordReset {
		subject = "Password Reset OTP"
		body = otpBody(subject, fmt.Sprintf("Your OTP for password reset is: %s. This OTP will expire in 10 minutes.", code), code)
		return subject, body
	}
	subject = "Verify Your Email - Registration OTP"
	body = otpBody(subject, fmt.Sprintf("Your OTP for email verification is: %s. This OTP will expire in 10 minutes.", code), code)
	return subject, body
}

func otpBody(heading, message, code string) string {
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>%s</h2>
  <p>%s</p>
  <div style="background-color: #f0f0f0; padding: 20px; text-align: center; margin: 20px 0;">
    <h3 style="color: #333; font-size: 24px; letter-spacing: 3px;">%s</h3>
  </div>
  <p>If you didn't request this, please ignore this email.</p>
</div>`, heading, message, code)
}
