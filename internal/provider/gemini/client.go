// Package gemini talks to the Gemini generateContent REST endpoint and
// implements the suggestion service used by meals, quotes and exercises.
package gemini

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"

	"github.com/LPereira2025/Plano-Emagrecimento/internal/logging"
	"github.com/LPereira2025/Plano-Emagrecimento/internal/model"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	DefaultModel   = "gemini-2.5-flash"

	defaultRetryMax = 2
	defaultTimeout  = 45 * time.Second
)

const (
	estimatePrompt = `You are an expert nutritionist. Analyze the image of the meal provided. Identify each food item, estimate its weight in grams, and calculate its caloric value. Provide the total estimated calories for the entire meal. Your response MUST be a valid JSON object, and nothing else. The JSON object should follow this structure: { "totalCalories": number, "items": [ { "name": "food item name in Portuguese", "calories": number } ] }. If you cannot identify the food, return { "totalCalories": 0, "items": [] }.`
	mealPrompt     = `You are a creative chef specializing in healthy Portuguese cuisine. Based on the diet plan below, suggest a simple and delicious recipe for %s. Be creative but stick to the allowed ingredients. Provide just the recipe name and a short description, in Portuguese. Diet Plan: "%s"`
	quotePrompt    = `Generate a short, inspiring motivational quote in Portuguese about perseverance, health, and weight loss. Make it positive and encouraging.`
	exercisePrompt = `Suggest 3 simple, at-home exercises for weight loss that require no equipment, suitable for a beginner. Return the response as a JSON array of objects, each with "name" and "description" properties, in Portuguese. For example: [{"name": "Agachamentos", "description": "3 séries de 15 repetições"}]. Do not include any other text or explanation.`
)

var (
	ErrMissingAPIKey = errors.New("missing Gemini API key")
	ErrShapeMismatch = errors.New("gemini response does not match the expected shape")
)

type Client struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *retryablehttp.Client
}

// NewClient returns a client with a quiet retrying transport.
func NewClient(apiKey, modelName, baseURL string) *Client {
	rc := retryablehttp.NewClient()
	rc.Logger = log.New(io.Discard, "", 0)
	rc.RetryMax = defaultRetryMax
	rc.HTTPClient.Timeout = defaultTimeout
	return &Client{APIKey: apiKey, Model: modelName, BaseURL: baseURL, HTTPClient: rc}
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generationConfig struct {
	ResponseMimeType string         `json:"responseMimeType,omitempty"`
	ResponseSchema   map[string]any `json:"responseSchema,omitempty"`
	ThinkingConfig   map[string]any `json:"thinkingConfig,omitempty"`
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

var estimateSchema = map[string]any{
	"type": "OBJECT",
	"properties": map[string]any{
		"totalCalories": map[string]any{"type": "NUMBER"},
		"items": map[string]any{
			"type": "ARRAY",
			"items": map[string]any{
				"type": "OBJECT",
				"properties": map[string]any{
					"name":     map[string]any{"type": "STRING"},
					"calories": map[string]any{"type": "NUMBER"},
				},
			},
		},
	},
}

var exerciseSchema = map[string]any{
	"type": "ARRAY",
	"items": map[string]any{
		"type": "OBJECT",
		"properties": map[string]any{
			"name":        map[string]any{"type": "STRING"},
			"description": map[string]any{"type": "STRING"},
		},
	},
}

func (c *Client) EstimateCalories(ctx context.Context, image []byte, mimeType string) (model.CalorieEstimate, error) {
	if strings.TrimSpace(mimeType) == "" {
		mimeType = "image/jpeg"
	}
	req := generateRequest{
		Contents: []content{{Parts: []part{
			{Text: estimatePrompt},
			{InlineData: &inlineData{MimeType: mimeType, Data: base64.StdEncoding.EncodeToString(image)}},
		}}},
		GenerationConfig: &generationConfig{ResponseMimeType: "application/json", ResponseSchema: estimateSchema},
	}
	text, err := c.generate(ctx, req)
	if err != nil {
		return model.CalorieEstimate{}, fmt.Errorf("estimate calories: %w", err)
	}
	return parseEstimate(text)
}

func (c *Client) MealSuggestion(ctx context.Context, category model.MealCategory, dietPlan string) (string, error) {
	req := generateRequest{Contents: []content{{Parts: []part{{Text: fmt.Sprintf(mealPrompt, category, dietPlan)}}}}}
	text, err := c.generate(ctx, req)
	if err != nil {
		return "", fmt.Errorf("meal suggestion: %w", err)
	}
	return strings.TrimSpace(text), nil
}

func (c *Client) MotivationalQuote(ctx context.Context) (string, error) {
	req := generateRequest{
		Contents:         []content{{Parts: []part{{Text: quotePrompt}}}},
		GenerationConfig: &generationConfig{ThinkingConfig: map[string]any{"thinkingBudget": 0}},
	}
	text, err := c.generate(ctx, req)
	if err != nil {
		return "", fmt.Errorf("motivational quote: %w", err)
	}
	return strings.TrimSpace(text), nil
}

func (c *Client) ExerciseSuggestions(ctx context.Context) ([]model.Exercise, error) {
	req := generateRequest{
		Contents:         []content{{Parts: []part{{Text: exercisePrompt}}}},
		GenerationConfig: &generationConfig{ResponseMimeType: "application/json", ResponseSchema: exerciseSchema},
	}
	text, err := c.generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("exercise suggestions: %w", err)
	}
	return parseExercises(text)
}

func (c *Client) generate(ctx context.Context, body generateRequest) (string, error) {
	if strings.TrimSpace(c.APIKey) == "" {
		return "", ErrMissingAPIKey
	}
	baseURL := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	modelName := strings.TrimSpace(c.Model)
	if modelName == "" {
		modelName = DefaultModel
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = NewClient(c.APIKey, modelName, baseURL).HTTPClient
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal Gemini payload: %w", err)
	}
	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", baseURL, modelName)
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, url, payload)
	if err != nil {
		return "", fmt.Errorf("create Gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.APIKey)

	logging.Log.Debugf("[gemini] POST models/%s:generateContent", modelName)
	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute Gemini request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read Gemini response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if msg := gjson.GetBytes(raw, "error.message").String(); msg != "" {
			return "", fmt.Errorf("Gemini request failed with status %d: %s", resp.StatusCode, msg)
		}
		return "", fmt.Errorf("Gemini request failed with status %d", resp.StatusCode)
	}

	text := gjson.GetBytes(raw, "candidates.0.content.parts.0.text")
	if !text.Exists() {
		if reason := gjson.GetBytes(raw, "promptFeedback.blockReason").String(); reason != "" {
			return "", fmt.Errorf("Gemini blocked the prompt: %s", reason)
		}
		return "", fmt.Errorf("%w: no candidate text", ErrShapeMismatch)
	}
	return text.String(), nil
}

// parseEstimate accepts only {"totalCalories": number, "items": [{"name": string, "calories": number}]}.
func parseEstimate(text string) (model.CalorieEstimate, error) {
	text = strings.TrimSpace(text)
	if !gjson.Valid(text) {
		return model.CalorieEstimate{}, fmt.Errorf("%w: invalid JSON", ErrShapeMismatch)
	}
	root := gjson.Parse(text)
	if !root.IsObject() {
		return model.CalorieEstimate{}, fmt.Errorf("%w: expected an object", ErrShapeMismatch)
	}
	total := root.Get("totalCalories")
	if total.Type != gjson.Number {
		return model.CalorieEstimate{}, fmt.Errorf("%w: totalCalories is not a number", ErrShapeMismatch)
	}
	items := root.Get("items")
	if !items.IsArray() {
		return model.CalorieEstimate{}, fmt.Errorf("%w: items is not an array", ErrShapeMismatch)
	}

	out := model.CalorieEstimate{TotalCalories: total.Float(), Items: []model.MealItem{}}
	var shapeErr error
	items.ForEach(func(_, item gjson.Result) bool {
		name, calories := item.Get("name"), item.Get("calories")
		if !item.IsObject() || name.Type != gjson.String || calories.Type != gjson.Number {
			shapeErr = fmt.Errorf("%w: malformed item %s", ErrShapeMismatch, item.Raw)
			return false
		}
		out.Items = append(out.Items, model.MealItem{Name: name.String(), Calories: calories.Float()})
		return true
	})
	if shapeErr != nil {
		return model.CalorieEstimate{}, shapeErr
	}
	return out, nil
}

func parseExercises(text string) ([]model.Exercise, error) {
	text = strings.TrimSpace(text)
	if !gjson.Valid(text) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrShapeMismatch)
	}
	root := gjson.Parse(text)
	if !root.IsArray() {
		return nil, fmt.Errorf("%w: expected an array", ErrShapeMismatch)
	}
	var out []model.Exercise
	var shapeErr error
	root.ForEach(func(_, item gjson.Result) bool {
		name, desc := item.Get("name"), item.Get("description")
		if !item.IsObject() || name.Type != gjson.String || desc.Type != gjson.String {
			shapeErr = fmt.Errorf("%w: malformed exercise %s", ErrShapeMismatch, item.Raw)
			return false
		}
		out = append(out, model.Exercise{Name: name.String(), Description: desc.String()})
		return true
	})
	if shapeErr != nil {
		return nil, shapeErr
	}
	return out, nil
}
