package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const strongPassword = "violet-Harbor-71-quietly-Juggles"

func TestNewPlayer(t *testing.T) {
	PasswordCost = bcrypt.MinCost

	t.Run("valid player", func(t *testing.T) {
		id := uuid.New()
		p, err := NewPlayer(PlayerConfig{ID: id, Handle: "maze_runner", PlainPassword: strongPassword})
		require.NoError(t, err)
		assert.Equal(t, id, p.ID)
		assert.Equal(t, "maze_runner", p.Handle)
		assert.NotEqual(t, strongPassword, p.PasswordHash)
		assert.False(t, p.CreatedAt.IsZero())

		assert.True(t, p.VerifyPassword(strongPassword))
		assert.False(t, p.VerifyPassword("wrong"))
	})

	t.Run("invalid handles", func(t *testing.T) {
		cases := map[string]error{
			"ab":                        ErrHandleTooShort,
			"a_handle_that_is_too_long": ErrHandleTooLong,
			"has space":                 ErrInvalidHandle,
			"dash-ed":                   ErrInvalidHandle,
		}
		for handle, want := range cases {
			_, err := NewPlayer(PlayerConfig{ID: uuid.New(), Handle: handle, PlainPassword: strongPassword})
			assert.ErrorIs(t, err, want, handle)
		}
	})

	t.Run("weak password", func(t *testing.T) {
		for _, pw := range []string{"password", "123456", "maze_runner1"} {
			_, err := NewPlayer(PlayerConfig{ID: uuid.New(), Handle: "maze_runner", PlainPassword: pw})
			assert.ErrorIs(t, err, ErrWeakPassword, pw)
		}
	})
}

func TestRun_Ranked(t *testing.T) {
	assert.True(t, (&Run{}).Ranked())
	assert.False(t, (&Run{AutoSolved: true}).Ranked())
}
