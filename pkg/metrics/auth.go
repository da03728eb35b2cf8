package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// AuthMetrics records outcomes for the account-lifecycle flows.
type AuthMetrics struct {
	logins    *prometheus.CounterVec
	otpIssued *prometheus.CounterVec
	otpVerify *prometheus.CounterVec
}

// NewAuthMetrics registers the auth flow metrics on the provided registerer.
// A nil registerer yields a no-op recorder, matching how optional deps are
// handled elsewhere.
func NewAuthMetrics(reg prometheus.Registerer) *AuthMetrics {
	if reg == nil {
		return &AuthMetrics{}
	}
	logins := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_logins_total",
		Help: "Login attempts by outcome.",
	}, []string{"outcome"})
	otpIssued := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_otp_issued_total",
		Help: "One-time passcodes issued by purpose.",
	}, []string{"purpose"})
	otpVerify := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_otp_verifications_total",
		Help: "One-time passcode verification attempts by purpose and outcome.",
	}, []string{"purpose", "outcome"})
	reg.MustRegister(logins, otpIssued, otpVerify)
	return &AuthMetrics{
		logins:    logins,
		otpIssued: otpIssued,
		otpVerify: otpVerify,
	}
}

// IncLogin increments the login counter for the given outcome.
func (m *AuthMetrics) IncLogin(outcome string) {
	if m == nil || m.logins == nil {
		return
	}
	m.logins.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncOTPIssued increments the issuance counter for the given purpose.
func (m *AuthMetrics) IncOTPIssued(purpose string) {
	if m == nil || m.otpIssued == nil {
		return
	}
	m.otpIssued.WithLabelValues(normalizeLabel(purpose)).Inc()
}

// IncOTPVerification increments the verification counter.
func (m *AuthMetrics) IncOTPVerification(purpose, outcome string) {
	if m == nil || m.otpVerify == nil {
		return
	}
	m.otpVerify.WithLabelValues(normalizeLabel(purpose), normalizeLabel(outcome)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
