package model

import (
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// Date is a calendar day in YYYY-MM-DD form with no time-of-day component.
type Date string

// DateOf truncates t to its local calendar day.
func DateOf(t time.Time) Date {
	return Date(t.Format(DateLayout))
}

func ParseDate(value string) (Date, error) {
	value = strings.TrimSpace(value)
	t, err := time.ParseInLocation(DateLayout, value, time.Local)
	if err != nil {
		return "", fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", value)
	}
	return DateOf(t), nil
}

// Time is midnight of the day in the local zone. A malformed date yields the
// zero time.
func (d Date) Time() time.Time {
	t, err := time.ParseInLocation(DateLayout, string(d), time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

func (d Date) String() string { return string(d) }

type WeightEntry struct {
	Date   Date    `json:"date"`
	Weight float64 `json:"weight"`
}

type GoalSettings struct {
	InitialWeight float64 `json:"initialWeight"`
	TargetWeight  float64 `json:"targetWeight"`
	TargetDate    Date    `json:"targetDate"`
}

type MealCategory string

const (
	Breakfast      MealCategory = "Pequeno-almoço"
	Lunch          MealCategory = "Almoço"
	AfternoonSnack MealCategory = "Meio da tarde"
	Dinner         MealCategory = "Jantar"
)

// MealCategories is the fixed set of daily slots in display order.
var MealCategories = []MealCategory{Breakfast, Lunch, AfternoonSnack, Dinner}

var categoryAliases = map[string]MealCategory{
	"breakfast":      Breakfast,
	"pequeno-almoço": Breakfast,
	"pequeno-almoco": Breakfast,
	"lunch":          Lunch,
	"almoço":         Lunch,
	"almoco":         Lunch,
	"snack":          AfternoonSnack,
	"snacks":         AfternoonSnack,
	"meio da tarde":  AfternoonSnack,
	"dinner":         Dinner,
	"jantar":         Dinner,
}

// ParseMealCategory accepts the stored Portuguese names and English aliases.
func ParseMealCategory(value string) (MealCategory, error) {
	key := strings.ToLower(strings.TrimSpace(value))
	if c, ok := categoryAliases[key]; ok {
		return c, nil
	}
	return "", fmt.Errorf("unknown meal category %q (use breakfast, lunch, snack or dinner)", value)
}

func (c MealCategory) Valid() bool {
	for _, known := range MealCategories {
		if c == known {
			return true
		}
	}
	return false
}

type MealItem struct {
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
}

type MealRecord struct {
	Description string     `json:"description"`
	Calories    *float64   `json:"calories,omitempty"`
	ImageURL    string     `json:"imageUrl,omitempty"`
	Items       []MealItem `json:"items,omitempty"`
}

// MealLedger maps each category to its records in insertion order.
type MealLedger map[MealCategory][]MealRecord

// NewMealLedger returns a ledger with every category present and empty.
func NewMealLedger() MealLedger {
	ledger := make(MealLedger, len(MealCategories))
	for _, c := range MealCategories {
		ledger[c] = []MealRecord{}
	}
	return ledger
}

type Exercise struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CalorieEstimate is the validated result of a photo-based calorie estimation.
type CalorieEstimate struct {
	TotalCalories float64    `json:"totalCalories"`
	Items         []MealItem `json:"items"`
}
