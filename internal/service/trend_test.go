package service_test

import (
	"testing"

	"github.com/LPereira2025/Plano-Emagrecimento/internal/model"
	"github.com/LPereira2025/Plano-Emagrecimento/internal/service"
)

var testGoal = model.GoalSettings{InitialWeight: 85, TargetWeight: 75, TargetDate: "2024-10-01"}

func TestComputeTrendEmptySeries(t *testing.T) {
	t.Parallel()
	tr := service.ComputeTrend(nil, testGoal, day("2024-07-15"))

	if tr.CurrentWeight != testGoal.InitialWeight {
		t.Fatalf("expected current weight %.1f, got %.1f", testGoal.InitialWeight, tr.CurrentWeight)
	}
	if tr.TotalLoss != 0 {
		t.Fatalf("expected zero total loss, got %.2f", tr.TotalLoss)
	}
	if tr.ToGoal != 10 {
		t.Fatalf("expected 10 kg to goal, got %.2f", tr.ToGoal)
	}
	if tr.WeeklyChange != nil {
		t.Fatalf("expected weekly change to be unavailable, got %.2f", *tr.WeeklyChange)
	}
}

func TestComputeTrendWeeklyChangeAcrossFullWindow(t *testing.T) {
	t.Parallel()
	series := []model.WeightEntry{
		{Date: day("2024-07-01"), Weight: 85},
		{Date: day("2024-07-08"), Weight: 83},
	}
	tr := service.ComputeTrend(series, testGoal, day("2024-07-08"))

	if tr.WeeklyChange == nil {
		t.Fatalf("expected weekly change")
	}
	if *tr.WeeklyChange != -2 {
		t.Fatalf("expected weekly change -2.0, got %.2f", *tr.WeeklyChange)
	}
	if !tr.Improving() {
		t.Fatalf("a loss should count as improving")
	}
	if tr.TotalLoss != 2 || tr.ToGoal != 8 {
		t.Fatalf("unexpected totals: loss=%.2f toGoal=%.2f", tr.TotalLoss, tr.ToGoal)
	}
}

func TestComputeTrendSortsAndUsesLatestEntry(t *testing.T) {
	t.Parallel()
	series := []model.WeightEntry{
		{Date: day("2024-07-15"), Weight: 84},
		{Date: day("2024-07-01"), Weight: 85},
		{Date: day("2024-07-12"), Weight: 84.6},
	}
	tr := service.ComputeTrend(series, testGoal, day("2024-07-15"))

	if tr.CurrentWeight != 84 {
		t.Fatalf("expected current weight from latest date, got %.2f", tr.CurrentWeight)
	}
	if tr.Series[0].Date != day("2024-07-01") || tr.Series[2].Date != day("2024-07-15") {
		t.Fatalf("expected ascending series, got %+v", tr.Series)
	}
	if series[0].Date != day("2024-07-15") {
		t.Fatalf("input series was reordered")
	}
	if tr.WeeklyChange == nil {
		t.Fatalf("expected weekly change")
	}
	got := *tr.WeeklyChange
	if got > -0.59 || got < -0.61 {
		t.Fatalf("expected weekly change of -0.6 against 2024-07-12, got %.4f", got)
	}
}

func TestComputeTrendWeeklyChangeUnavailable(t *testing.T) {
	t.Parallel()
	cases := map[string][]model.WeightEntry{
		"single entry": {{Date: day("2024-07-15"), Weight: 84}},
		"nothing in window": {
			{Date: day("2024-06-01"), Weight: 86},
			{Date: day("2024-06-20"), Weight: 85},
		},
		"equal weight": {
			{Date: day("2024-07-10"), Weight: 84},
			{Date: day("2024-07-15"), Weight: 84},
		},
	}
	for name, series := range cases {
		tr := service.ComputeTrend(series, testGoal, day("2024-07-15"))
		if tr.WeeklyChange != nil {
			t.Fatalf("%s: expected unavailable weekly change, got %.2f", name, *tr.WeeklyChange)
		}
		if tr.Improving() {
			t.Fatalf("%s: unavailable change must not count as improving", name)
		}
	}
}

func TestComputeTrendWeightGainIsPositive(t *testing.T) {
	t.Parallel()
	series := []model.WeightEntry{
		{Date: day("2024-07-12"), Weight: 84},
		{Date: day("2024-07-15"), Weight: 84.5},
	}
	tr := service.ComputeTrend(series, testGoal, day("2024-07-15"))
	if tr.WeeklyChange == nil || *tr.WeeklyChange != 0.5 {
		t.Fatalf("expected +0.5 weekly change, got %v", tr.WeeklyChange)
	}
	if tr.Improving() {
		t.Fatalf("a gain must not count as improving")
	}
}

func TestComputeTrendIgnoresFutureEntriesForWindowStart(t *testing.T) {
	t.Parallel()
	series := []model.WeightEntry{
		{Date: day("2024-07-01"), Weight: 86},
		{Date: day("2024-07-20"), Weight: 83},
	}
	tr := service.ComputeTrend(series, testGoal, day("2024-07-10"))
	if tr.WeeklyChange != nil {
		t.Fatalf("expected no entry in window, got %.2f", *tr.WeeklyChange)
	}
}

func TestComputeTrendDaysToTarget(t *testing.T) {
	t.Parallel()
	tr := service.ComputeTrend(nil, testGoal, day("2024-09-21"))
	if tr.DaysToTarget != 10 {
		t.Fatalf("expected 10 days to target, got %d", tr.DaysToTarget)
	}
	tr = service.ComputeTrend(nil, testGoal, day("2024-10-03"))
	if tr.DaysToTarget != -2 {
		t.Fatalf("expected -2 days to target, got %d", tr.DaysToTarget)
	}
}
