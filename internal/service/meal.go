package service

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/LPereira2025/Plano-Emagrecimento/internal/logging"
	"github.com/LPereira2025/Plano-Emagrecimento/internal/model"
	"github.com/LPereira2025/Plano-Emagrecimento/internal/store"
)

var ErrEmptyMeal = errors.New("meal description is required")

// LogMeal returns a copy of ledger with record appended to category. Other
// categories share their backing slices with the input, which is never
// written to.
func LogMeal(ledger model.MealLedger, category model.MealCategory, record model.MealRecord) model.MealLedger {
	out := make(model.MealLedger, len(ledger)+1)
	for c, records := range ledger {
		out[c] = records
	}
	prev := ledger[category]
	next := make([]model.MealRecord, len(prev), len(prev)+1)
	copy(next, prev)
	out[category] = append(next, record)
	return out
}

// LoadMealLedger reads the ledger and makes sure every category is present.
func LoadMealLedger(ctx context.Context, b store.Backend) model.MealLedger {
	ledger := store.Load(ctx, b, store.KeyMeals, model.NewMealLedger())
	if ledger == nil {
		ledger = model.NewMealLedger()
	}
	for _, c := range model.MealCategories {
		if ledger[c] == nil {
			ledger[c] = []model.MealRecord{}
		}
	}
	return ledger
}

type MealInput struct {
	Category    model.MealCategory
	Description string
	// Estimate and Image together turn the record into a photo meal.
	Estimate  *model.CalorieEstimate
	Image     []byte
	ImageMIME string
}

// BuildMealRecord applies photo enrichment: with both an estimate and an image
// the description lists the recognised items and the calories, image and
// items are attached. Otherwise only the description is kept.
func BuildMealRecord(in MealInput) model.MealRecord {
	if in.Estimate == nil || len(in.Image) == 0 {
		return model.MealRecord{Description: strings.TrimSpace(in.Description)}
	}
	names := make([]string, 0, len(in.Estimate.Items))
	for _, item := range in.Estimate.Items {
		names = append(names, item.Name)
	}
	items := make([]model.MealItem, len(in.Estimate.Items))
	copy(items, in.Estimate.Items)
	total := in.Estimate.TotalCalories
	return model.MealRecord{
		Description: photoMealPrefix + strings.Join(names, ", "),
		Calories:    &total,
		ImageURL:    dataURL(in.ImageMIME, in.Image),
		Items:       items,
	}
}

func dataURL(mimeType string, data []byte) string {
	if strings.TrimSpace(mimeType) == "" {
		mimeType = "image/jpeg"
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// MealSaver runs "save meal" actions against one backend. Identical saves are
// single-flight: a trigger that arrives while the same save is running joins
// it instead of appending a second record. Distinct saves are applied one at
// a time against the whole ledger.
type MealSaver struct {
	backend store.Backend
	group   singleflight.Group
	mu      sync.Mutex
}

func NewMealSaver(b store.Backend) *MealSaver {
	return &MealSaver{backend: b}
}

type SavedMeal struct {
	Category model.MealCategory
	Record   model.MealRecord
	// Joined is set when more than one trigger shared this save.
	Joined bool
}

func (s *MealSaver) Save(ctx context.Context, in MealInput) (SavedMeal, error) {
	if !in.Category.Valid() {
		return SavedMeal{}, fmt.Errorf("unknown meal category %q", in.Category)
	}
	if strings.TrimSpace(in.Description) == "" && (in.Estimate == nil || len(in.Image) == 0) {
		return SavedMeal{}, ErrEmptyMeal
	}

	v, err, shared := s.group.Do(saveKey(in), func() (any, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		record := BuildMealRecord(in)
		ledger := LogMeal(LoadMealLedger(ctx, s.backend), in.Category, record)
		if err := store.Save(ctx, s.backend, store.KeyMeals, ledger); err != nil {
			return nil, fmt.Errorf("add meal: %w", err)
		}
		logging.Log.Debugf("logged meal in %s (%d records)", in.Category, len(ledger[in.Category]))
		return record, nil
	})
	if err != nil {
		return SavedMeal{}, err
	}
	return SavedMeal{Category: in.Category, Record: v.(model.MealRecord), Joined: shared}, nil
}

// saveKey identifies a save by everything that ends up in its record.
func saveKey(in MealInput) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%s\x00%s\x00", in.Category, strings.TrimSpace(in.Description), in.ImageMIME)
	if in.Estimate != nil {
		fmt.Fprintf(h, "%v\x00", in.Estimate.TotalCalories)
		for _, item := range in.Estimate.Items {
			fmt.Fprintf(h, "%s=%v\x00", item.Name, item.Calories)
		}
	}
	h.Write(in.Image)
	return hex.EncodeToString(h.Sum(nil))
}

// MealCalories sums the known calories of records; records without an
// estimate count as zero.
func MealCalories(records []model.MealRecord) float64 {
	var total float64
	for _, r := range records {
		if r.Calories != nil {
			total += *r.Calories
		}
	}
	return total
}
