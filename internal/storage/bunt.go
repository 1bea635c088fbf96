package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/tidwall/buntdb"
)

// Bunt stores values in a BuntDB database.
type Bunt struct {
	db *buntdb.DB
}

// NewBunt opens a BuntDB file, or an in-memory database for ":memory:".
func NewBunt(path string) (*Bunt, error) {
	db, err := buntdb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open buntdb: %w", err)
	}
	return &Bunt{db: db}, nil
}

func (b *Bunt) Get(_ context.Context, key string) (string, error) {
	var value string
	err := b.db.View(func(tx *buntdb.Tx) error {
		v, err := tx.Get(key)
		if err != nil {
			return err
		}
		value = v
		return nil
	})
	if errors.Is(err, buntdb.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %q: %w", key, err)
	}
	return value, nil
}

func (b *Bunt) Set(_ context.Context, key, value string) error {
	return b.db.Update(func(tx *buntdb.Tx) error {
		if _, _, err := tx.Set(key, value, nil); err != nil {
			return fmt.Errorf("failed to store %q: %w", key, err)
		}
		return nil
	})
}

// Close closes the database.
func (b *Bunt) Close() error {
	if b.db != nil {
		return b.db.Close()
	}
	return nil
}
