package topics

const (
	// Previsões
	PredictionMade = "prediction_made"
)
