package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/LPereira2025/Plano-Emagrecimento/internal/store"
)

var ErrEmptyExercise = errors.New("exercise description is required")

// LogExercise returns a copy of logged with label appended.
func LogExercise(logged []string, label string) []string {
	out := make([]string, len(logged), len(logged)+1)
	copy(out, logged)
	return append(out, label)
}

func LoadExercises(ctx context.Context, b store.Backend) []string {
	return store.Load(ctx, b, store.KeyLoggedExercises, []string{})
}

// RecordExercise trims label, rejects blanks, and persists the extended list.
func RecordExercise(ctx context.Context, b store.Backend, label string) ([]string, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, ErrEmptyExercise
	}
	logged := LogExercise(LoadExercises(ctx, b), label)
	if err := store.Save(ctx, b, store.KeyLoggedExercises, logged); err != nil {
		return nil, fmt.Errorf("add exercise: %w", err)
	}
	return logged, nil
}
