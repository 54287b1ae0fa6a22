package service

import (
	"sort"

	"github.com/LPereira2025/Plano-Emagrecimento/internal/model"
)

// WeeklyWindowDays is the trailing window, inclusive of both ends, used for the
// weekly change.
const WeeklyWindowDays = 7

type Trend struct {
	Today         model.Date          `json:"today"`
	Series        []model.WeightEntry `json:"series"`
	InitialWeight float64             `json:"initial_weight"`
	TargetWeight  float64             `json:"target_weight"`
	TargetDate    model.Date          `json:"target_date"`
	CurrentWeight float64             `json:"current_weight"`
	TotalLoss     float64             `json:"total_loss"`
	ToGoal        float64             `json:"to_goal"`
	// WeeklyChange is nil when no comparison point exists in the window.
	// Negative means weight was lost.
	WeeklyChange *float64 `json:"weekly_change,omitempty"`
	DaysToTarget int      `json:"days_to_target"`
}

// Improving reports whether the weekly change is a loss or a plateau.
func (t Trend) Improving() bool {
	return t.WeeklyChange != nil && *t.WeeklyChange <= 0
}

// ComputeTrend derives the dashboard figures from series and goal as seen on
// today. series is not modified.
func ComputeTrend(series []model.WeightEntry, goal model.GoalSettings, today model.Date) Trend {
	sorted := make([]model.WeightEntry, len(series))
	copy(sorted, series)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})

	current := goal.InitialWeight
	if len(sorted) > 0 {
		current = sorted[len(sorted)-1].Weight
	}

	out := Trend{
		Today:         today,
		Series:        sorted,
		InitialWeight: goal.InitialWeight,
		TargetWeight:  goal.TargetWeight,
		TargetDate:    goal.TargetDate,
		CurrentWeight: current,
		TotalLoss:     goal.InitialWeight - current,
		ToGoal:        current - goal.TargetWeight,
		WeeklyChange:  weeklyChange(sorted, current, today),
	}
	if goal.TargetDate != "" && !goal.TargetDate.Time().IsZero() {
		out.DaysToTarget = daysBetween(today, goal.TargetDate)
	}
	return out
}

// weeklyChange compares current against the first entry of sorted that falls
// within [today-7d, today].
func weeklyChange(sorted []model.WeightEntry, current float64, today model.Date) *float64 {
	from := today.AddDays(-WeeklyWindowDays)
	for _, e := range sorted {
		if e.Date < from || e.Date > today {
			continue
		}
		if e.Weight == current {
			return nil
		}
		change := current - e.Weight
		return &change
	}
	return nil
}

func daysBetween(from, to model.Date) int {
	hours := to.Time().Sub(from.Time()).Hours()
	if hours >= 0 {
		return int(hours/24 + 0.5)
	}
	return int(hours/24 - 0.5)
}
