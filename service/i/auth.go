package i

import (
	dmn "github.com/beka-birhanu/vinom-maze/domain"
)

// Authenticator registers players and signs them in.
type Authenticator interface {
	// Register creates a new player with the given handle and password.
	Register(handle, password string) (*dmn.Player, error)

	// SignIn verifies the credentials and returns the player with a signed token.
	SignIn(handle, password string) (*dmn.Player, string, error)
}
