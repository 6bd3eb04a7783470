package dto

// PredictionResponse é o corpo de sucesso do POST /predict (probabilidades em 0..100)
type PredictionResponse struct {
	HomeWinProbability float64 `json:"home_win_probability"`
	DrawProbability    float64 `json:"draw_probability"`
	AwayWinProbability float64 `json:"away_win_probability"`
	PredictedResult    string  `json:"predicted_result"`
	ExpectedScore      string  `json:"expected_score"`
}

// ErrorResponse é o corpo opcional das respostas não-2xx
type ErrorResponse struct {
	Error string `json:"error"`
}
