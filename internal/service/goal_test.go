package service_test

import (
	"context"
	"testing"

	"github.com/LPereira2025/Plano-Emagrecimento/internal/service"
	"github.com/LPereira2025/Plano-Emagrecimento/internal/store"
)

func TestLoadGoalSettingsDefaults(t *testing.T) {
	t.Parallel()
	goal := service.LoadGoalSettings(context.Background(), store.NewMemory(), day("2024-07-15"))
	if goal.InitialWeight != 85 || goal.TargetWeight != 75 {
		t.Fatalf("unexpected default weights %+v", goal)
	}
	if goal.TargetDate != day("2024-10-15") {
		t.Fatalf("expected target date three months out, got %s", goal.TargetDate)
	}
}

func TestLoadGoalSettingsFallsBackPerKey(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	b := store.NewMemory()
	if err := b.Put(ctx, store.KeyTargetWeight, []byte("70")); err != nil {
		t.Fatalf("seed target: %v", err)
	}
	if err := b.Put(ctx, store.KeyTargetDate, []byte(`"not-a-date"`)); err != nil {
		t.Fatalf("seed date: %v", err)
	}

	goal := service.LoadGoalSettings(ctx, b, day("2024-07-15"))
	if goal.TargetWeight != 70 {
		t.Fatalf("expected stored target weight, got %.1f", goal.TargetWeight)
	}
	if goal.InitialWeight != 85 {
		t.Fatalf("expected default initial weight, got %.1f", goal.InitialWeight)
	}
	if goal.TargetDate != day("2024-10-15") {
		t.Fatalf("expected invalid date to fall back, got %s", goal.TargetDate)
	}
}

func TestUpdateGoalSettings(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	b := newTestStore(t)
	today := day("2024-07-15")

	goal, err := service.UpdateGoalSettings(ctx, b, today, service.GoalUpdate{
		TargetWeight: floatPtr(72),
		TargetDate:   "2024-12-31",
	})
	if err != nil {
		t.Fatalf("update goal: %v", err)
	}
	if goal.TargetWeight != 72 || goal.TargetDate != day("2024-12-31") || goal.InitialWeight != 85 {
		t.Fatalf("unexpected goal %+v", goal)
	}

	goal, err = service.UpdateGoalSettings(ctx, b, today, service.GoalUpdate{InitialWeight: floatPtr(200), Unit: "lb"})
	if err != nil {
		t.Fatalf("update initial weight in lb: %v", err)
	}
	if goal.InitialWeight < 90.71 || goal.InitialWeight > 90.72 {
		t.Fatalf("expected ~90.72 kg, got %.4f", goal.InitialWeight)
	}
}

func TestUpdateGoalSettingsValidatesBeforeWriting(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	b := store.NewMemory()

	_, err := service.UpdateGoalSettings(ctx, b, day("2024-07-15"), service.GoalUpdate{
		TargetWeight: floatPtr(70),
		TargetDate:   "31/12/2024",
	})
	if err == nil {
		t.Fatalf("expected invalid date to fail")
	}
	keys, err := b.Keys(ctx)
	if err != nil {
		t.Fatalf("list keys: %v", err)
	}
	if len(keys) != 0 {
		t.Fatalf("expected no writes, got keys %v", keys)
	}
}
