package models_test

import (
	"testing"
	"time"

	"github.com/medicore-health/medicore-backend/pkg/db/models"
	"github.com/medicore-health/medicore-backend/pkg/enums"
)

func pendingOTP(expiry time.Time) *models.PendingOTP {
	return &models.PendingOTP{
		Code:      "654321",
		ExpiresAt: expiry,
		Purpose:   enums.OTPPurposeRegistration,
	}
}

func TestMatches(t *testing.T) {
	now := time.Now().UTC()
	otp := pendingOTP(now.Add(10 * time.Minute))

	if !otp.Matches("654321", now) {
		t.Fatal("expected correct code to match before expiry")
	}
	if otp.Matches("123456", now) {
		t.Fatal("wrong code must not match")
	}
	if otp.Matches("", now) {
		t.Fatal("empty candidate must not match")
	}
}

func TestMatchesExpiryBoundary(t *testing.T) {
	now := time.Now().UTC()
	otp := pendingOTP(now)

	// Exactly at the expiry instant the code is already dead.
	if otp.Matches("654321", now) {
		t.Fatal("code must not match at its expiry instant")
	}
	if otp.Matches("654321", now.Add(time.Second)) {
		t.Fatal("code must not match after expiry")
	}
	if !otp.Matches("654321", now.Add(-time.Second)) {
		t.Fatal("code should match just before expiry")
	}
}

func TestMatchesNilReceiver(t *testing.T) {
	var otp *models.PendingOTP
	if otp.Matches("654321", time.Now().UTC()) {
		t.Fatal("nil pending otp must never match")
	}
}

func TestFor(t *testing.T) {
	otp := pendingOTP(time.Now().UTC().Add(time.Minute))

	if !otp.For(enums.OTPPurposeRegistration) {
		t.Fatal("expected registration purpose to match")
	}
	if otp.For(enums.OTPPurposePasswordReset) {
		t.Fatal("password reset purpose must not match a registration code")
	}

	var nilOTP *models.PendingOTP
	if nilOTP.For(enums.OTPPurposeRegistration) {
		t.Fatal("nil pending otp has no purpose")
	}
}
