package service_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/LPereira2025/Plano-Emagrecimento/internal/clock"
	"github.com/LPereira2025/Plano-Emagrecimento/internal/model"
	"github.com/LPereira2025/Plano-Emagrecimento/internal/service"
	"github.com/LPereira2025/Plano-Emagrecimento/internal/store"
)

func TestLogWeightReplacesExistingDate(t *testing.T) {
	t.Parallel()
	series := []model.WeightEntry{
		{Date: day("2024-07-01"), Weight: 85},
		{Date: day("2024-07-08"), Weight: 84.5},
		{Date: day("2024-07-15"), Weight: 84},
	}

	got := service.LogWeight(series, day("2024-07-08"), 83.9)
	if len(got) != len(series) {
		t.Fatalf("expected length %d, got %d", len(series), len(got))
	}
	matches := 0
	for _, e := range got {
		if e.Date == day("2024-07-08") {
			matches++
			if e.Weight != 83.9 {
				t.Fatalf("expected replaced weight 83.9, got %.2f", e.Weight)
			}
		}
	}
	if matches != 1 {
		t.Fatalf("expected exactly one entry on 2024-07-08, got %d", matches)
	}
	if got[1].Date != day("2024-07-08") {
		t.Fatalf("expected replacement to keep position 1, got %+v", got)
	}
	if series[1].Weight != 84.5 {
		t.Fatalf("input series was mutated: %+v", series)
	}
}

func TestLogWeightAppendsNewDate(t *testing.T) {
	t.Parallel()
	series := []model.WeightEntry{{Date: day("2024-07-01"), Weight: 85}}

	got := service.LogWeight(series, day("2024-07-02"), 84.8)
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[1] != (model.WeightEntry{Date: day("2024-07-02"), Weight: 84.8}) {
		t.Fatalf("unexpected appended entry %+v", got[1])
	}
	if len(series) != 1 {
		t.Fatalf("input series was mutated")
	}
}

func TestLogWeightIsIdempotent(t *testing.T) {
	t.Parallel()
	for _, series := range [][]model.WeightEntry{
		nil,
		{{Date: day("2024-07-01"), Weight: 85}},
		{{Date: day("2024-07-01"), Weight: 85}, {Date: day("2024-07-03"), Weight: 84}},
	} {
		once := service.LogWeight(series, day("2024-07-03"), 83.5)
		twice := service.LogWeight(once, day("2024-07-03"), 83.5)
		if !reflect.DeepEqual(once, twice) {
			t.Fatalf("expected idempotent merge, got %+v then %+v", once, twice)
		}
	}
}

func TestParseWeightInput(t *testing.T) {
	t.Parallel()
	cases := []struct {
		raw     string
		unit    string
		want    float64
		wantErr bool
	}{
		{raw: "84.5", unit: "kg", want: 84.5},
		{raw: " 84,5 ", unit: "", want: 84.5},
		{raw: "abc", unit: "kg", wantErr: true},
		{raw: "20", unit: "kg", wantErr: true},
		{raw: "5", unit: "kg", wantErr: true},
		{raw: "NaN", unit: "kg", wantErr: true},
		{raw: "80", unit: "stone", wantErr: true},
	}
	for _, tc := range cases {
		got, err := service.ParseWeightInput(tc.raw, tc.unit)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("expected %q to be rejected", tc.raw)
			}
			continue
		}
		if err != nil {
			t.Fatalf("parse %q: %v", tc.raw, err)
		}
		if got != tc.want {
			t.Fatalf("parse %q: expected %.2f, got %.2f", tc.raw, tc.want, got)
		}
	}
}

func TestRecordWeightUsesTodayAndPersists(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	b := newTestStore(t)
	clk := clock.NewFixed(at("2024-07-20"))

	if _, err := service.RecordWeight(ctx, b, clk, service.WeightInput{Weight: 84, Unit: "kg"}); err != nil {
		t.Fatalf("record weight: %v", err)
	}
	clk.Advance(3 * time.Hour)
	if _, err := service.RecordWeight(ctx, b, clk, service.WeightInput{Weight: 83.6, Unit: "kg"}); err != nil {
		t.Fatalf("record weight again: %v", err)
	}

	series := service.LoadWeightSeries(ctx, b)
	if len(series) != 1 {
		t.Fatalf("expected one entry for the day, got %+v", series)
	}
	if series[0].Date != day("2024-07-20") || series[0].Weight != 83.6 {
		t.Fatalf("unexpected entry %+v", series[0])
	}
}

func TestRecordWeightConvertsPounds(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	b := newTestStore(t)

	rec, err := service.RecordWeight(ctx, b, clock.NewFixed(at("2024-07-20")), service.WeightInput{Weight: 180, Unit: "lb", Date: " 2024-07-19 "})
	if err != nil {
		t.Fatalf("record weight: %v", err)
	}
	if rec.Date != day("2024-07-19") {
		t.Fatalf("expected normalized stored date, got %q", rec.Date)
	}
	series := rec.Series
	if series[0].Date != day("2024-07-19") {
		t.Fatalf("expected explicit date to be used, got %s", series[0].Date)
	}
	if series[0].Weight < 81 || series[0].Weight > 82 {
		t.Fatalf("expected converted weight around 81.6kg, got %.4f", series[0].Weight)
	}
}

func TestRecordWeightRejectsImplausibleWeightWithoutWriting(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	b := newTestStore(t)
	if err := store.Save(ctx, b, store.KeyWeightData, []model.WeightEntry{{Date: day("2024-07-01"), Weight: 85}}); err != nil {
		t.Fatalf("seed series: %v", err)
	}
	before, _, _ := b.Get(ctx, store.KeyWeightData)

	_, err := service.RecordWeight(ctx, b, clock.NewFixed(at("2024-07-20")), service.WeightInput{Weight: 5, Unit: "kg"})
	if !errors.Is(err, service.ErrImplausibleWeight) {
		t.Fatalf("expected ErrImplausibleWeight, got %v", err)
	}

	after, _, _ := b.Get(ctx, store.KeyWeightData)
	if string(before) != string(after) {
		t.Fatalf("series changed after rejected input: %s -> %s", before, after)
	}
}

func TestLoadWeightSeriesDefaultsToEmpty(t *testing.T) {
	t.Parallel()
	b := newTestStore(t)
	if got := service.LoadWeightSeries(context.Background(), b); len(got) != 0 {
		t.Fatalf("expected empty series, got %+v", got)
	}
}
