package identity

import (
	"net/http"
	"strings"

	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/gin-gonic/gin"
)

const (
	// ContextPlayerClaims is the key used to store player claims in the Gin context.
	ContextPlayerClaims = "playerClaims"
)

// Authorize rejects requests without a valid bearer token and stores the
// token's claims in the context.
func Authorize(ts i.Tokenizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Retrieve the access token from the Authorization header.
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		// Split the "Bearer" prefix from the token.
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatus(http.StatusUnauthorized) // Malformed Authorization header.
			return
		}

		claims, err := ts.Parse(strings.TrimSpace(parts[1]))
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Set(ContextPlayerClaims, claims)
		c.Next()
	}
}

// Claims returns the claims stored by Authorize.
func Claims(c *gin.Context) (i.PlayerClaims, bool) {
	v, ok := c.Get(ContextPlayerClaims)
	if !ok {
		return i.PlayerClaims{}, false
	}
	claims, ok := v.(i.PlayerClaims)
	return claims, ok
}
