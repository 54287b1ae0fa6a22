package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/LPereira2025/Plano-Emagrecimento/internal/logging"
	"github.com/LPereira2025/Plano-Emagrecimento/internal/model"
)

// Suggester is the generative-suggestion service. Implementations validate
// response shapes; a mismatch is an error.
type Suggester interface {
	EstimateCalories(ctx context.Context, image []byte, mimeType string) (model.CalorieEstimate, error)
	MealSuggestion(ctx context.Context, category model.MealCategory, dietPlan string) (string, error)
	MotivationalQuote(ctx context.Context) (string, error)
	ExerciseSuggestions(ctx context.Context) ([]model.Exercise, error)
}

var (
	ErrEstimateFailed     = errors.New("Falha ao estimar calorias. Por favor, tente novamente.")
	ErrSuggesterDisabled  = errors.New("suggestion service is not configured (set gemini.api_key)")
	errEmptySuggestion    = errors.New("empty suggestion")
	errMalformedEstimate  = errors.New("malformed calorie estimate")
	errMalformedExercises = errors.New("malformed exercise suggestions")
)

// EstimateMealCalories never fabricates a result: on any failure it returns
// ErrEstimateFailed wrapping the cause.
func EstimateMealCalories(ctx context.Context, s Suggester, image []byte, mimeType string) (model.CalorieEstimate, error) {
	if s == nil {
		return model.CalorieEstimate{}, fmt.Errorf("%w: %v", ErrEstimateFailed, ErrSuggesterDisabled)
	}
	if len(image) == 0 {
		return model.CalorieEstimate{}, fmt.Errorf("%w: image is empty", ErrEstimateFailed)
	}
	est, err := s.EstimateCalories(ctx, image, mimeType)
	if err != nil {
		logging.Log.WithError(err).Warn("calorie estimation failed")
		return model.CalorieEstimate{}, fmt.Errorf("%w: %v", ErrEstimateFailed, err)
	}
	if err := validateEstimate(est); err != nil {
		return model.CalorieEstimate{}, fmt.Errorf("%w: %v", ErrEstimateFailed, err)
	}
	return est, nil
}

func validateEstimate(est model.CalorieEstimate) error {
	if est.TotalCalories < 0 {
		return errMalformedEstimate
	}
	for _, item := range est.Items {
		if strings.TrimSpace(item.Name) == "" || item.Calories < 0 {
			return errMalformedEstimate
		}
	}
	return nil
}

// SuggestMeal returns a recipe idea for category, or a fixed apology text.
// The second result reports whether the text came from the service.
func SuggestMeal(ctx context.Context, s Suggester, category model.MealCategory) (string, bool) {
	if s == nil {
		return MealSuggestionFailure, false
	}
	text, err := s.MealSuggestion(ctx, category, DietPlan[category])
	if err == nil && strings.TrimSpace(text) == "" {
		err = errEmptySuggestion
	}
	if err != nil {
		logging.Log.WithError(err).Warnf("meal suggestion for %s failed", category)
		return MealSuggestionFailure, false
	}
	return strings.TrimSpace(text), true
}

// Quote returns a motivational quote, falling back to DefaultQuote silently.
func Quote(ctx context.Context, s Suggester) string {
	if s == nil {
		return DefaultQuote
	}
	text, err := s.MotivationalQuote(ctx)
	if err == nil && strings.TrimSpace(text) == "" {
		err = errEmptySuggestion
	}
	if err != nil {
		logging.Log.WithError(err).Debug("motivational quote failed, using default")
		return DefaultQuote
	}
	return strings.TrimSpace(text)
}

// SuggestExercises returns the service's list, or the first three local
// fallbacks when the call fails or the list is unusable.
func SuggestExercises(ctx context.Context, s Suggester) ([]model.Exercise, bool) {
	fallback := func() []model.Exercise {
		out := make([]model.Exercise, suggestedExerciseSize)
		copy(out, FallbackExercises[:suggestedExerciseSize])
		return out
	}
	if s == nil {
		return fallback(), false
	}
	items, err := s.ExerciseSuggestions(ctx)
	if err == nil && !validExercises(items) {
		err = errMalformedExercises
	}
	if err != nil {
		logging.Log.WithError(err).Warn("exercise suggestions failed, using fallback")
		return fallback(), false
	}
	return items, true
}

func validExercises(items []model.Exercise) bool {
	if len(items) == 0 {
		return false
	}
	for _, it := range items {
		if strings.TrimSpace(it.Name) == "" {
			return false
		}
	}
	return true
}
