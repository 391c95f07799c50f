package models

import (
	"time"
)

// TokenResponse carries a freshly minted bearer token. Tokens are never
// persisted; validity is self-contained in the signature and expiry.
type TokenResponse struct {
	Token     string    `json:"token"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}
