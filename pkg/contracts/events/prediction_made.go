package events

import "time"

// Evento publicado no tópico "prediction_made" após uma previsão bem-sucedida
type Probabilities struct {
	HomeWin float64 `json:"home_win"`
	Draw    float64 `json:"draw"`
	AwayWin float64 `json:"away_win"`
}

type PredictionMade struct {
	SessionID       string        `json:"session_id"`
	HomeTeam        string        `json:"home_team"`
	AwayTeam        string        `json:"away_team"`
	Probabilities   Probabilities `json:"probabilities"`
	PredictedResult string        `json:"predicted_result"`
	ExpectedScore   string        `json:"expected_score"`
	Ts              time.Time     `json:"ts"`
	Source          string        `json:"source"` // "predictor-web"
}
