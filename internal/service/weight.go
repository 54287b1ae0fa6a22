package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/LPereira2025/Plano-Emagrecimento/internal/clock"
	"github.com/LPereira2025/Plano-Emagrecimento/internal/logging"
	"github.com/LPereira2025/Plano-Emagrecimento/internal/model"
	"github.com/LPereira2025/Plano-Emagrecimento/internal/store"
)

// MinPlausibleWeightKg is the lowest accepted body weight, exclusive.
const MinPlausibleWeightKg = 20.0

var ErrImplausibleWeight = errors.New("weight must be greater than 20 kg")

type WeightInput struct {
	Weight float64
	Unit   string
	// Date defaults to today when empty.
	Date string
}

// RecordedWeight is the entry that was stored and the series it is now part of.
type RecordedWeight struct {
	Date   model.Date
	Weight float64
	Series []model.WeightEntry
}

// ParseWeightInput turns raw user text into kilograms, refusing anything that
// is not a plausible human body weight.
func ParseWeightInput(raw, unit string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(raw, ",", ".")), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid weight %q", raw)
	}
	kg, err := convertWeightToKg(v, unit)
	if err != nil {
		return 0, err
	}
	if err := ValidateWeight(kg); err != nil {
		return 0, err
	}
	return kg, nil
}

func ValidateWeight(kg float64) error {
	if err := validatePositiveFloat("weight", kg); err != nil {
		return err
	}
	if kg <= MinPlausibleWeightKg {
		return ErrImplausibleWeight
	}
	return nil
}

// LogWeight returns a copy of series holding weight for date. An entry already
// on that date is replaced in place; otherwise the entry is appended. Callers
// validate weight first.
func LogWeight(series []model.WeightEntry, date model.Date, weight float64) []model.WeightEntry {
	entry := model.WeightEntry{Date: date, Weight: weight}
	out := make([]model.WeightEntry, len(series), len(series)+1)
	copy(out, series)
	for i := range out {
		if out[i].Date == date {
			out[i] = entry
			return out
		}
	}
	return append(out, entry)
}

func LoadWeightSeries(ctx context.Context, b store.Backend) []model.WeightEntry {
	return store.Load(ctx, b, store.KeyWeightData, []model.WeightEntry{})
}

// RecordWeight validates in, merges it into the stored series and persists the
// whole series. Invalid input returns an error before the store is read.
func RecordWeight(ctx context.Context, b store.Backend, clk clock.Clock, in WeightInput) (RecordedWeight, error) {
	kg, err := convertWeightToKg(in.Weight, in.Unit)
	if err != nil {
		return RecordedWeight{}, err
	}
	if err := ValidateWeight(kg); err != nil {
		return RecordedWeight{}, err
	}

	date := model.DateOf(clk.Now())
	if strings.TrimSpace(in.Date) != "" {
		date, err = model.ParseDate(in.Date)
		if err != nil {
			return RecordedWeight{}, err
		}
	}

	series := LogWeight(LoadWeightSeries(ctx, b), date, kg)
	if err := store.Save(ctx, b, store.KeyWeightData, series); err != nil {
		return RecordedWeight{}, fmt.Errorf("record weight: %w", err)
	}
	logging.Log.Debugf("recorded %.2f kg on %s (%d entries)", kg, date, len(series))
	return RecordedWeight{Date: date, Weight: kg, Series: series}, nil
}
