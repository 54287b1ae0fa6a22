package service

import "github.com/LPereira2025/Plano-Emagrecimento/internal/model"

// DietPlan is the allowed-food guidance per meal slot, used to steer meal
// suggestions.
var DietPlan = map[model.MealCategory]string{
	model.Breakfast:      "Chá autorizado ou café, leite sem lactose ou bebida vegetal autorizada, ou iogurte autorizado ou 1 ovo. 2 fatias de pão sem glúten (50g) ou 30g de flocos de aveia/corn-flakes/farinha permitida ou 4 galetes de arroz (28g). 1 peça de fruta.",
	model.Lunch:          "Sopa de legumes. 100g de carne ou peixe magro ou 2 ovos. 1 batata (80g) ou 3 colheres de sopa de arroz/quinoa/massa sem glúten. Legumes e/ou hortaliças autorizados.",
	model.AfternoonSnack: "1 peça de fruta. 2 fatias de pão sem glúten ou de fermentação lenta (50g) ou 30g de flocos de aveia ou corn-flakes. Bebida vegetal autorizada ou leite sem lactose ou 1 iogurte autorizado.",
	model.Dinner:         "Sopa de legumes. 150g de carne ou peixe magro ou 2 ovos. 2 batatas (160g) ou 6 colheres de sopa de arroz/quinoa/massa sem glúten. Legumes e/ou hortaliças autorizados.",
}

// FallbackExercises backs the exercise suggestions when the service is down.
var FallbackExercises = []model.Exercise{
	{Name: "Caminhada Rápida", Description: "30 minutos de caminhada em ritmo acelerado."},
	{Name: "Agachamento (Bodyweight Squats)", Description: "3 séries de 15 repetições."},
	{Name: "Prancha Abdominal (Plank)", Description: "3 séries, segurando o máximo de tempo possível."},
	{Name: "Flexões (Push-ups)", Description: "3 séries de 10 repetições (pode ser com os joelhos no chão)."},
	{Name: "Elevação de joelhos (High Knees)", Description: "3 séries de 30 segundos."},
}

// SampleWeightData seeds a demo database.
var SampleWeightData = []model.WeightEntry{
	{Date: "2024-07-01", Weight: 85.0},
	{Date: "2024-07-08", Weight: 84.5},
	{Date: "2024-07-15", Weight: 84.0},
}

const (
	DefaultQuote          = "Acredite em si mesmo e em tudo que você é. Saiba que existe algo dentro de você que é maior que qualquer obstáculo."
	MealSuggestionFailure = "Não foi possível obter uma sugestão. Tente novamente."
	HydrationReminder     = "Lembrete: Beba água!"
	WalkReminder          = "Caminhe por 5 minutos!"
	photoMealPrefix       = "Refeição da foto: "
	suggestedExerciseSize = 3
)
