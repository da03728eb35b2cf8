package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionClaims is the typed JWT issued to clients. The account identifier is
// the sole application claim; request-authentication middleware recovers it
// under the "id" key.
type SessionClaims struct {
	AccountID uuid.UUID `json:"id"`
	jwt.RegisteredClaims
}
