package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/LPereira2025/Plano-Emagrecimento/internal/model"
	"github.com/LPereira2025/Plano-Emagrecimento/internal/store"
)

const (
	DefaultInitialWeightKg = 85.0
	DefaultTargetWeightKg  = 75.0
	defaultTargetMonths    = 3
)

// DefaultGoalSettings is what a fresh install starts from: the target date
// sits three months after today.
func DefaultGoalSettings(today model.Date) model.GoalSettings {
	return model.GoalSettings{
		InitialWeight: DefaultInitialWeightKg,
		TargetWeight:  DefaultTargetWeightKg,
		TargetDate:    model.DateOf(today.Time().AddDate(0, defaultTargetMonths, 0)),
	}
}

// LoadGoalSettings reads the three goal scalars independently; each falls
// back to its own default.
func LoadGoalSettings(ctx context.Context, b store.Backend, today model.Date) model.GoalSettings {
	def := DefaultGoalSettings(today)
	out := model.GoalSettings{
		InitialWeight: store.Load(ctx, b, store.KeyInitialWeight, def.InitialWeight),
		TargetWeight:  store.Load(ctx, b, store.KeyTargetWeight, def.TargetWeight),
		TargetDate:    store.Load(ctx, b, store.KeyTargetDate, def.TargetDate),
	}
	if _, err := model.ParseDate(string(out.TargetDate)); err != nil {
		out.TargetDate = def.TargetDate
	}
	return out
}

type GoalUpdate struct {
	InitialWeight *float64
	TargetWeight  *float64
	Unit          string
	TargetDate    string
}

// UpdateGoalSettings validates every provided field before writing any of
// them, then saves each changed scalar as its own document.
func UpdateGoalSettings(ctx context.Context, b store.Backend, today model.Date, in GoalUpdate) (model.GoalSettings, error) {
	var initialKg, targetKg float64
	var err error
	if in.InitialWeight != nil {
		if initialKg, err = convertWeightToKg(*in.InitialWeight, in.Unit); err != nil {
			return model.GoalSettings{}, fmt.Errorf("initial weight: %w", err)
		}
	}
	if in.TargetWeight != nil {
		if targetKg, err = convertWeightToKg(*in.TargetWeight, in.Unit); err != nil {
			return model.GoalSettings{}, fmt.Errorf("target weight: %w", err)
		}
	}
	var targetDate model.Date
	if strings.TrimSpace(in.TargetDate) != "" {
		if targetDate, err = model.ParseDate(in.TargetDate); err != nil {
			return model.GoalSettings{}, err
		}
	}

	if in.InitialWeight != nil {
		if err := store.Save(ctx, b, store.KeyInitialWeight, initialKg); err != nil {
			return model.GoalSettings{}, fmt.Errorf("set initial weight: %w", err)
		}
	}
	if in.TargetWeight != nil {
		if err := store.Save(ctx, b, store.KeyTargetWeight, targetKg); err != nil {
			return model.GoalSettings{}, fmt.Errorf("set target weight: %w", err)
		}
	}
	if targetDate != "" {
		if err := store.Save(ctx, b, store.KeyTargetDate, targetDate); err != nil {
			return model.GoalSettings{}, fmt.Errorf("set target date: %w", err)
		}
	}
	return LoadGoalSettings(ctx, b, today), nil
}
