// Package store persists whole aggregates as JSON documents, one per key.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/multierr"

	"github.com/LPereira2025/Plano-Emagrecimento/internal/logging"
)

// Document keys. The names are a stable contract with existing data.
const (
	KeyWeightData      = "weightData"
	KeyMeals           = "meals"
	KeyInitialWeight   = "initialWeight"
	KeyTargetWeight    = "targetWeight"
	KeyTargetDate      = "targetDate"
	KeyLoggedExercises = "loggedExercises"
)

// Keys lists every aggregate plano owns.
var Keys = []string{
	KeyWeightData,
	KeyMeals,
	KeyInitialWeight,
	KeyTargetWeight,
	KeyTargetDate,
	KeyLoggedExercises,
}

// Backend stores raw documents. A single Put replaces the whole document.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}

// Load decodes the document under key into a T. It never fails: a missing
// key, a backend error or an undecodable value all yield def.
func Load[T any](ctx context.Context, b Backend, key string, def T) T {
	raw, ok, err := b.Get(ctx, key)
	if err != nil {
		logging.Log.WithError(err).Warnf("load %s: using default", key)
		return def
	}
	if !ok {
		logging.Log.Debugf("load %s: no stored value", key)
		return def
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		logging.Log.WithError(err).Warnf("load %s: stored value is malformed, using default", key)
		return def
	}
	return out
}

// Save encodes value and replaces the document under key.
func Save[T any](ctx context.Context, b Backend, key string, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := b.Put(ctx, key, raw); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	logging.Log.Debugf("saved %s (%d bytes)", key, len(raw))
	return nil
}

// Reset deletes every stored document, returning all failures together.
func Reset(ctx context.Context, b Backend) error {
	keys, err := b.Keys(ctx)
	if err != nil {
		return fmt.Errorf("list documents: %w", err)
	}
	var errs error
	for _, key := range keys {
		if err := b.Delete(ctx, key); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("delete %s: %w", key, err))
		}
	}
	return errs
}
