package token

import (
	"errors"
	"time"

	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken         = errors.New("invalid token")
	ErrUnexpectedSigningAlg = errors.New("unexpected signing method")
)

// playerClaims is the JWT body of a player token.
type playerClaims struct {
	Handle string `json:"handle"`
	jwt.StandardClaims
}

// JwtService issues HS256 player tokens.
type JwtService struct {
	secretKey []byte
	issuer    string
}

var _ i.Tokenizer = &JwtService{}

// NewJwtService creates a JWT service signing with secretKey.
func NewJwtService(secretKey, issuer string) *JwtService {
	return &JwtService{
		secretKey: []byte(secretKey),
		issuer:    issuer,
	}
}

// Issue signs a token for the player that expires after ttl.
func (s *JwtService) Issue(c i.PlayerClaims, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := playerClaims{
		Handle: c.Handle,
		StandardClaims: jwt.StandardClaims{
			Subject:   c.PlayerID.String(),
			Issuer:    s.issuer,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

// Parse validates the signature, expiry and issuer of a token.
func (s *JwtService) Parse(tokenString string) (i.PlayerClaims, error) {
	claims := &playerClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, s.getSigningKey)
	if err != nil {
		return i.PlayerClaims{}, err
	}
	if !token.Valid || !claims.VerifyIssuer(s.issuer, true) {
		return i.PlayerClaims{}, ErrInvalidToken
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return i.PlayerClaims{}, ErrInvalidToken
	}
	return i.PlayerClaims{PlayerID: id, Handle: claims.Handle}, nil
}

// getSigningKey returns the signing key for token validation.
func (s *JwtService) getSigningKey(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, ErrUnexpectedSigningAlg
	}
	return s.secretKey, nil
}
