package i

import (
	"time"

	"github.com/google/uuid"
)

// PlayerClaims is what a signed token asserts about its bearer.
type PlayerClaims struct {
	PlayerID uuid.UUID
	Handle   string
}

// Tokenizer issues and verifies player tokens.
type Tokenizer interface {
	// Issue creates a token for the claims that expires after ttl.
	Issue(claims PlayerClaims, ttl time.Duration) (string, error)

	// Parse validates a token and returns its claims.
	Parse(token string) (PlayerClaims, error)
}
