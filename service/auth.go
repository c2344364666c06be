package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/google/uuid"
)

const defaultTokenTTL = 24 * time.Hour

type Auth struct {
	playerRepo i.PlayerRepo
	tokenizer  i.Tokenizer
	tokenTTL   time.Duration
}

// NewAuthService creates the player authentication service.
func NewAuthService(pr i.PlayerRepo, t i.Tokenizer, tokenTTL time.Duration) (*Auth, error) {
	if pr == nil || t == nil {
		return nil, errors.New("auth service requires a player repo and a tokenizer")
	}
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &Auth{
		playerRepo: pr,
		tokenizer:  t,
		tokenTTL:   tokenTTL,
	}, nil
}

func (a *Auth) Register(handle, password string) (*dmn.Player, error) {
	player, err := dmn.NewPlayer(dmn.PlayerConfig{
		ID:            uuid.New(),
		Handle:        handle,
		PlainPassword: password,
	})
	if err != nil {
		return nil, err
	}

	if err := a.playerRepo.Save(context.Background(), player); err != nil {
		return nil, err
	}
	return player, nil
}

func (a *Auth) SignIn(handle, password string) (*dmn.Player, string, error) {
	player, err := a.playerRepo.ByHandle(context.Background(), handle)
	if errors.Is(err, dmn.ErrPlayerNotFound) {
		return nil, "", dmn.ErrInvalidCredential
	}
	if err != nil {
		return nil, "", fmt.Errorf("looking up player: %w", err)
	}

	if !player.VerifyPassword(password) {
		return nil, "", dmn.ErrInvalidCredential
	}

	token, err := a.tokenizer.Issue(i.PlayerClaims{
		PlayerID: player.ID,
		Handle:   player.Handle,
	}, a.tokenTTL)
	if err != nil {
		return nil, "", err
	}
	return player, token, nil
}
