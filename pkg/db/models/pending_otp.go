package models

import (
	"crypto/subtle"
	"time"

	"github.com/medicore-health/medicore-backend/pkg/enums"
)

// PendingOTP is the single live one-time passcode attached to an account.
// Code, expiry, and purpose travel together as one jsonb document so they can
// never disagree with each other. At most one instance exists per account;
// issuing a new code replaces the whole record.
type PendingOTP struct {
	Code      string           `json:"code"`
	ExpiresAt time.Time        `json:"expires_at"`
	Purpose   enums.OTPPurpose `json:"purpose"`
}

// Matches reports whether the candidate verifies against the stored code at
// the given instant. It is a pure predicate: expired codes (now at or past
// the expiry) and mismatches both return false, and nothing is mutated.
// The comparison is constant time in the candidate value.
func (p *PendingOTP) Matches(candidate string, now time.Time) bool {
	if p == nil || p.Code == "" {
		return false
	}
	if !now.Before(p.ExpiresAt) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(p.Code), []byte(candidate)) == 1
}

// For reports whether the pending code was issued for the given purpose.
func (p *PendingOTP) For(purpose enums.OTPPurpose) bool {
	return p != nil && p.Purpose == purpose
}
