package security_test

import (
	"strconv"
	"testing"

	"github.com/medicore-health/medicore-backend/pkg/security"
)

func TestGenerateOTPStaysInRange(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := security.GenerateOTP()
		if err != nil {
			t.Fatalf("GenerateOTP returned error: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("expected 6 digits, got %q", code)
		}
		n, err := strconv.Atoi(code)
		if err != nil {
			t.Fatalf("code %q is not numeric: %v", code, err)
		}
		if n < 100000 || n > 999999 {
			t.Fatalf("code %d outside the six digit range", n)
		}
	}
}

func TestGenerateOTPVaries(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		code, err := security.GenerateOTP()
		if err != nil {
			t.Fatalf("GenerateOTP returned error: %v", err)
		}
		seen[code] = true
	}
	if len(seen) < 2 {
		t.Fatal("expected multiple distinct codes across generations")
	}
}
