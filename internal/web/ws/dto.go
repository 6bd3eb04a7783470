package ws

import "github.com/radieske/match-predictor/internal/web/view"

// ClientMsg representa uma mensagem recebida do cliente WebSocket
// Type: ping | ready
type ClientMsg struct {
	Type string `json:"type"`
}

// Frame é o lote de instruções de UI de uma sessão
type Frame struct {
	SessionID string    `json:"sessionId"`
	Ops       []view.Op `json:"ops"`
}
