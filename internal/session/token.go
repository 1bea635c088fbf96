// Package session keeps the API auth token next to the settings blob.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/iiroan/blue/internal/storage"
)

// TokenKey is the storage key for the auth token.
const TokenKey = "token"

// Tokens reads and writes the auth token through a storage adapter.
type Tokens struct {
	Adapter storage.Adapter
}

// Save stores token, replacing any previous value.
func (t Tokens) Save(ctx context.Context, token string) error {
	if err := t.Adapter.Set(ctx, TokenKey, token); err != nil {
		return fmt.Errorf("saving token: %w", err)
	}
	return nil
}

// Load returns the stored token. ok is false when no token is stored or the
// stored token is empty.
func (t Tokens) Load(ctx context.Context) (token string, ok bool, err error) {
	token, err = t.Adapter.Get(ctx, TokenKey)
	if errors.Is(err, storage.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("loading token: %w", err)
	}
	return token, token != "", nil
}

// Clear removes the token by storing an empty value.
func (t Tokens) Clear(ctx context.Context) error {
	return t.Save(ctx, "")
}
