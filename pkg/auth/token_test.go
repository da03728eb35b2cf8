package auth_test

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/medicore-health/medicore-backend/pkg/auth"
	"github.com/medicore-health/medicore-backend/pkg/config"
)

func tokenConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "unit-test-secret",
		Issuer:            "medicore-test",
		ExpirationMinutes: 60,
	}
}

func TestMintAndParseSessionToken(t *testing.T) {
	cfg := tokenConfig()
	accountID := uuid.New()

	token, err := auth.MintSessionToken(cfg, time.Now().UTC(), accountID)
	if err != nil {
		t.Fatalf("MintSessionToken returned error: %v", err)
	}

	claims, err := auth.ParseSessionToken(cfg, token)
	if err != nil {
		t.Fatalf("ParseSessionToken returned error: %v", err)
	}
	if claims.AccountID != accountID {
		t.Fatalf("claims.AccountID = %s, want %s", claims.AccountID, accountID)
	}
	if claims.Issuer != cfg.Issuer {
		t.Fatalf("claims.Issuer = %q, want %q", claims.Issuer, cfg.Issuer)
	}
}

func TestParseSessionTokenRejectsWrongSecret(t *testing.T) {
	cfg := tokenConfig()
	token, err := auth.MintSessionToken(cfg, time.Now().UTC(), uuid.New())
	if err != nil {
		t.Fatalf("MintSessionToken returned error: %v", err)
	}

	other := cfg
	other.Secret = "a-different-secret"
	if _, err := auth.ParseSessionToken(other, token); err == nil {
		t.Fatal("expected parse failure with the wrong secret")
	}
}

func TestParseSessionTokenRejectsExpired(t *testing.T) {
	cfg := tokenConfig()
	issuedAt := time.Now().UTC().Add(-2 * time.Hour)

	token, err := auth.MintSessionToken(cfg, issuedAt, uuid.New())
	if err != nil {
		t.Fatalf("MintSessionToken returned error: %v", err)
	}
	if _, err := auth.ParseSessionToken(cfg, token); err == nil {
		t.Fatal("expected parse failure for an expired token")
	}
}

func TestParseSessionTokenRejectsWrongIssuer(t *testing.T) {
	minting := tokenConfig()
	minting.Issuer = "someone-else"
	token, err := auth.MintSessionToken(minting, time.Now().UTC(), uuid.New())
	if err != nil {
		t.Fatalf("MintSessionToken returned error: %v", err)
	}

	if _, err := auth.ParseSessionToken(tokenConfig(), token); err == nil {
		t.Fatal("expected parse failure for the wrong issuer")
	}
}

func TestMintSessionTokenValidation(t *testing.T) {
	cfg := tokenConfig()
	now := time.Now().UTC()

	if _, err := auth.MintSessionToken(cfg, now, uuid.Nil); err == nil {
		t.Fatal("expected error for nil account id")
	}

	missingSecret := cfg
	missingSecret.Secret = ""
	if _, err := auth.MintSessionToken(missingSecret, now, uuid.New()); err == nil {
		t.Fatal("expected error for missing secret")
	}
}
