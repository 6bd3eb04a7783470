package view

import (
	"strconv"

	"github.com/radieske/match-predictor/internal/web/logo"
	"github.com/radieske/match-predictor/internal/web/predictor/dto"
)

// Bars são as larguras CSS das barras de probabilidade
type Bars struct {
	Home string `json:"home"`
	Draw string `json:"draw"`
	Away string `json:"away"`
}

// Result é o view-model do painel de resultados
type Result struct {
	HomeTeam        string      `json:"homeTeam"`
	AwayTeam        string      `json:"awayTeam"`
	HomeLogo        logo.Visual `json:"homeLogo"`
	AwayLogo        logo.Visual `json:"awayLogo"`
	HomeWin         string      `json:"homeWin"`
	Draw            string      `json:"draw"`
	AwayWin         string      `json:"awayWin"`
	Bars            Bars        `json:"bars"`
	PredictedResult string      `json:"predictedResult"`
	ExpectedScore   string      `json:"expectedScore"`
	ResultClass     string      `json:"resultClass"`
}

// Percent formata como o template literal `${v}%` (55 -> "55%", 55.5 -> "55.5%")
func Percent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}

// NewResult monta o view-model; as probabilidades são exibidas como recebidas
func NewResult(resp dto.PredictionResponse, homeTeam, awayTeam string, homeLogo, awayLogo logo.Visual) Result {
	return Result{
		HomeTeam: homeTeam,
		AwayTeam: awayTeam,
		HomeLogo: homeLogo,
		AwayLogo: awayLogo,
		HomeWin:  Percent(resp.HomeWinProbability),
		Draw:     Percent(resp.DrawProbability),
		AwayWin:  Percent(resp.AwayWinProbability),
		Bars: Bars{
			Home: Percent(resp.HomeWinProbability),
			Draw: Percent(resp.DrawProbability),
			Away: Percent(resp.AwayWinProbability),
		},
		PredictedResult: resp.PredictedResult,
		ExpectedScore:   resp.ExpectedScore,
		ResultClass:     ResultClass(resp.PredictedResult),
	}
}

// Ops preenche nomes, logos, probabilidades, resultado e placar, nessa ordem
func (r Result) Ops() []Op {
	ops := r.TeamOps()
	ops = append(ops, r.ProbabilityOps()...)
	return append(ops, r.OutcomeOps()...)
}

// TeamOps preenche nomes e logos dos dois times
func (r Result) TeamOps() []Op {
	return []Op{
		text(SelHomeName, r.HomeTeam),
		text(SelAwayName, r.AwayTeam),
		{Kind: KindLogo, Target: SelHomeLogo, Payload: r.HomeLogo},
		{Kind: KindLogo, Target: SelAwayLogo, Payload: r.AwayLogo},
	}
}

// ProbabilityOps preenche os três números
func (r Result) ProbabilityOps() []Op {
	return []Op{
		text(SelHomeProbability, r.HomeWin),
		text(SelDrawProbability, r.Draw),
		text(SelAwayProbability, r.AwayWin),
	}
}

// OutcomeOps preenche resultado previsto e placar esperado
func (r Result) OutcomeOps() []Op {
	return []Op{
		text(SelPredicted, r.PredictedResult),
		text(SelExpectedScore, r.ExpectedScore),
	}
}

// BarOps anima as barras; aplicado com atraso para a transição CSS ser visível
func (r Result) BarOps() []Op {
	return []Op{
		style(SelHomeBar, "width", r.Bars.Home),
		style(SelDrawBar, "width", r.Bars.Draw),
		style(SelAwayBar, "width", r.Bars.Away),
	}
}

// ResultClass escolhe a classe do rótulo; qualquer outro texto é tratado como empate
func ResultClass(result string) string {
	switch result {
	case "Home Win":
		return "result-home-win"
	case "Away Win":
		return "result-away-win"
	default:
		return "result-draw"
	}
}
