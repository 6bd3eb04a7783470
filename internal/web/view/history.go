package view

import "github.com/radieske/match-predictor/internal/web/logo"

// EmptyHistoryMessage é o placeholder da lista vazia
const EmptyHistoryMessage = "No prediction history yet. Make your first prediction!"

// HistoryItem é uma linha clicável do histórico
type HistoryItem struct {
	Index       int         `json:"index"`
	HomeTeam    string      `json:"homeTeam"`
	AwayTeam    string      `json:"awayTeam"`
	Timestamp   string      `json:"timestamp"`
	HomeLogo    logo.Visual `json:"homeLogo"`
	AwayLogo    logo.Visual `json:"awayLogo"`
	VS          string      `json:"vs"`
	Result      string      `json:"result"`
	ResultClass string      `json:"resultClass"`
}

// History é o view-model completo da lista, sempre reconstruído do zero
type History struct {
	Empty       bool          `json:"empty"`
	Placeholder string        `json:"placeholder,omitempty"`
	Items       []HistoryItem `json:"items"`
}

func (h History) Ops() []Op {
	return []Op{{Kind: KindHistory, Target: SelHistoryList, Payload: h}}
}
