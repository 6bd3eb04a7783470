// Package view transforma respostas e históricos em view-models e em
// instruções de UI (Op) que o adaptador do navegador apenas aplica.
package view

// Tipos de instrução
const (
	KindText        = "text"         // textContent = Value
	KindAttr        = "attr"         // setAttribute(Name, Value)
	KindClassAdd    = "class_add"    // classList.add(Value)
	KindClassRemove = "class_remove" // classList.remove(Value)
	KindClassSet    = "class_set"    // className = Value
	KindStyle       = "style"        // style[Name] = Value
	KindDisabled    = "disabled"     // disabled = Value == "true"
	KindFormValue   = "form_value"   // value = Value
	KindScroll      = "scroll"       // scrollIntoView({behavior: smooth, block: nearest})
	KindRemove      = "remove"       // element.remove()
	KindLogo        = "logo"         // Payload: logo.Visual
	KindButton      = "button"       // Payload: Button
	KindHistory     = "history"      // Payload: History
	KindNotify      = "notify"       // Payload: Notification (insere no body)
)

// Seletores dos elementos da página
const (
	SelRoot            = ":root"
	SelForm            = "#prediction-form"
	SelSubmit          = `#prediction-form button[type="submit"]`
	SelHomeInput       = "#home-team"
	SelAwayInput       = "#away-team"
	SelSpinner         = "#loading-spinner"
	SelResults         = "#results-section"
	SelHomeName        = "#home-team-display"
	SelAwayName        = "#away-team-display"
	SelHomeLogo        = "#home-team-logo"
	SelAwayLogo        = "#away-team-logo"
	SelHomeProbability = "#home-win-probability"
	SelDrawProbability = "#draw-probability"
	SelAwayProbability = "#away-win-probability"
	SelHomeBar         = ".home-probability"
	SelDrawBar         = ".draw-probability"
	SelAwayBar         = ".away-probability"
	SelPredicted       = "#predicted-result"
	SelExpectedScore   = "#expected-score"
	SelHistoryList     = "#history-list"
	SelThemeIcon       = "#theme-toggle i"
	SelBody            = "body"
)

// ClassVisible é a classe CSS que dispara as transições de entrada
const ClassVisible = "visible"

// Op é uma instrução idempotente aplicada a um elemento
type Op struct {
	Kind    string `json:"kind"`
	Target  string `json:"target"`
	Name    string `json:"name,omitempty"`
	Value   string `json:"value,omitempty"`
	Payload any    `json:"payload,omitempty"`
}

// Sink recebe as instruções de uma sessão; implementado pelo hub WebSocket
type Sink interface {
	Push(sessionID string, ops ...Op)
}

// Discard descarta as instruções (sessões sem adaptador conectado, testes)
type Discard struct{}

func (Discard) Push(string, ...Op) {}

func text(target, v string) Op { return Op{Kind: KindText, Target: target, Value: v} }

func style(target, prop, v string) Op {
	return Op{Kind: KindStyle, Target: target, Name: prop, Value: v}
}
