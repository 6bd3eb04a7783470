package view

// Button descreve o estado do botão de submit
type Button struct {
	Disabled bool   `json:"disabled"`
	Icon     string `json:"icon"`
	Label    string `json:"label"`
}

var (
	busyButton = Button{Disabled: true, Icon: "fas fa-spinner fa-spin", Label: "Predicting..."}
	idleButton = Button{Disabled: false, Icon: "fas fa-magic", Label: "Predict"}
)

// Loading liga (on=true) ou desfaz o estado de carregamento
func Loading(on bool) []Op {
	b, display := idleButton, "none"
	if on {
		b, display = busyButton, "block"
	}
	return []Op{
		{Kind: KindButton, Target: SelSubmit, Payload: b},
		style(SelSpinner, "display", display),
	}
}

// PanelShow exibe o painel (ainda sem a classe visible) e rola até ele
func PanelShow() []Op {
	return []Op{
		style(SelResults, "display", "block"),
		{Kind: KindScroll, Target: SelResults},
	}
}

// PanelVisible dispara a transição de entrada
func PanelVisible() []Op {
	return []Op{{Kind: KindClassAdd, Target: SelResults, Value: ClassVisible}}
}

// PanelCollapse inicia a transição de saída
func PanelCollapse() []Op {
	return []Op{{Kind: KindClassRemove, Target: SelResults, Value: ClassVisible}}
}

// PanelHide esconde o painel ao fim da transição de saída
func PanelHide() []Op {
	return []Op{style(SelResults, "display", "none")}
}

// FormValues repopula o formulário (replay de um item do histórico)
func FormValues(homeTeam, awayTeam string) []Op {
	return []Op{
		{Kind: KindFormValue, Target: SelHomeInput, Value: homeTeam},
		{Kind: KindFormValue, Target: SelAwayInput, Value: awayTeam},
	}
}
