// Package history mantém a lista limitada das últimas previsões da sessão.
package history

import (
	"time"

	"github.com/radieske/match-predictor/internal/web/predictor/dto"
)

// Outcome é o resultado previsto, gravado exatamente como veio do backend
type Outcome string

const (
	HomeWin Outcome = "Home Win"
	Draw    Outcome = "Draw"
	AwayWin Outcome = "Away Win"
)

// MaxEntries limita o tamanho da lista; os mais antigos saem primeiro
const MaxEntries = 10

// Key é a chave durável da lista
const Key = "predictionHistory"

// timestampLayout reproduz Date.toISOString (UTC com milissegundos)
const timestampLayout = "2006-01-02T15:04:05.000Z"

// Record é imutável depois de criado
type Record struct {
	HomeTeam      string  `json:"homeTeam"`
	AwayTeam      string  `json:"awayTeam"`
	Result        Outcome `json:"result"`
	ExpectedScore string  `json:"expectedScore"`
	Timestamp     string  `json:"timestamp"`
}

func NewRecord(resp dto.PredictionResponse, homeTeam, awayTeam string, at time.Time) Record {
	return Record{
		HomeTeam:      homeTeam,
		AwayTeam:      awayTeam,
		Result:        Outcome(resp.PredictedResult),
		ExpectedScore: resp.ExpectedScore,
		Timestamp:     at.UTC().Format(timestampLayout),
	}
}

// prepend insere no topo e corta em MaxEntries sem alterar a fatia original
func prepend(list []Record, r Record) []Record {
	out := make([]Record, 0, min(len(list)+1, MaxEntries))
	out = append(out, r)
	for _, it := range list {
		if len(out) == MaxEntries {
			break
		}
		out = append(out, it)
	}
	return out
}
