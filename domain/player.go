package domain

import (
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/nbutton23/zxcvbn-go"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordStrengthScore = 3

	handlePattern   = `^[a-zA-Z0-9_]+$` // Alphanumeric with underscores
	minHandleLength = 3
	maxHandleLength = 20
)

var (
	handleRegex = regexp.MustCompile(handlePattern)

	ErrHandleTooShort    = errors.New("handle too short")
	ErrHandleTooLong     = errors.New("handle too long")
	ErrInvalidHandle     = errors.New("invalid handle format")
	ErrWeakPassword      = errors.New("weak password")
	ErrHandleConflict    = errors.New("handle already taken")
	ErrPlayerNotFound    = errors.New("player not found")
	ErrInvalidCredential = errors.New("invalid handle or password")
)

// PasswordCost is the bcrypt cost used when hashing new passwords.
var PasswordCost = 12

// Player is a registered maze runner.
type Player struct {
	ID           uuid.UUID `bson:"_id"`
	Handle       string    `bson:"handle"`
	PasswordHash string    `bson:"passwordHash"`
	CreatedAt    time.Time `bson:"createdAt"`
}

// PlayerConfig holds the parameters for registering a player.
type PlayerConfig struct {
	ID            uuid.UUID
	Handle        string
	PlainPassword string
}

// NewPlayer validates the handle and password and hashes the password.
func NewPlayer(config PlayerConfig) (*Player, error) {
	if err := ValidateHandle(config.Handle); err != nil {
		return nil, err
	}

	if err := validatePassword(config.PlainPassword, config.Handle); err != nil {
		return nil, err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(config.PlainPassword), PasswordCost)
	if err != nil {
		return nil, err
	}

	return &Player{
		ID:           config.ID,
		Handle:       config.Handle,
		PasswordHash: string(passwordHash),
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// VerifyPassword reports whether password matches the stored hash.
func (p *Player) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)) == nil
}

// ValidateHandle checks length and character set of a player handle.
func ValidateHandle(handle string) error {
	if len(handle) < minHandleLength {
		return ErrHandleTooShort
	}
	if len(handle) > maxHandleLength {
		return ErrHandleTooLong
	}
	if !handleRegex.MatchString(handle) {
		return ErrInvalidHandle
	}
	return nil
}

// validatePassword rejects guessable passwords, including ones built from
// the handle itself.
func validatePassword(password, handle string) error {
	result := zxcvbn.PasswordStrength(password, []string{handle})
	if result.Score < minPasswordStrengthScore {
		return ErrWeakPassword
	}
	return nil
}
