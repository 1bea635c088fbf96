package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iiroan/blue/internal/storage"
)

type brokenAdapter struct{ storage.Adapter }

func (brokenAdapter) Get(context.Context, string) (string, error) {
	return "", errors.New("disk unplugged")
}

func (brokenAdapter) Set(context.Context, string, string) error {
	return errors.New("disk unplugged")
}

func TestTokens_Lifecycle(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	tokens := Tokens{Adapter: mem}

	_, ok, err := tokens.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, tokens.Save(ctx, "abc123"))
	got, ok, err := tokens.Load(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc123", got)

	raw, err := mem.Get(ctx, TokenKey)
	require.NoError(t, err)
	assert.Equal(t, "abc123", raw)

	require.NoError(t, tokens.Clear(ctx))
	_, ok, err = tokens.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTokens_StorageErrors(t *testing.T) {
	ctx := context.Background()
	tokens := Tokens{Adapter: brokenAdapter{}}

	_, _, err := tokens.Load(ctx)
	require.ErrorContains(t, err, "loading token")
	require.ErrorContains(t, tokens.Save(ctx, "x"), "saving token")
}
