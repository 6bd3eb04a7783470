package view

// Notification é o aviso transitório de erro
type Notification struct {
	ID      string `json:"id"`
	Icon    string `json:"icon"`
	Message string `json:"message"`
}

func NewNotification(id, message string) Notification {
	return Notification{ID: id, Icon: "fas fa-exclamation-circle", Message: message}
}

func (n Notification) sel() string { return "#" + n.ID }

// InsertOps cria o elemento no body, ainda invisível
func (n Notification) InsertOps() []Op {
	return []Op{{Kind: KindNotify, Target: SelBody, Payload: n}}
}

func (n Notification) ShowOps() []Op {
	return []Op{{Kind: KindClassAdd, Target: n.sel(), Value: ClassVisible}}
}

func (n Notification) FadeOps() []Op {
	return []Op{{Kind: KindClassRemove, Target: n.sel(), Value: ClassVisible}}
}

func (n Notification) RemoveOps() []Op {
	return []Op{{Kind: KindRemove, Target: n.sel()}}
}
