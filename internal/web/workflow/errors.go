package workflow

import "errors"

// Mensagens de validação exibidas na notificação
const (
	MsgMissingTeams = "Please select both home and away teams"
	MsgSameTeams    = "Home and away teams cannot be the same"
)

// ErrValidation é o alvo de errors.Is para qualquer ValidationError
var ErrValidation = errors.New("validation failed")

// ValidationError rejeita a submissão antes de qualquer requisição
type ValidationError struct {
	Reason  string // "missing_team" | "same_team"
	Message string
}

func (e *ValidationError) Error() string        { return e.Message }
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// RequestError é uma falha na chamada ao endpoint de previsão; Message é o
// texto já exibido ao usuário e Err a causa original
type RequestError struct {
	Message string
	Err     error
}

func (e *RequestError) Error() string { return e.Message }
func (e *RequestError) Unwrap() error { return e.Err }

// Form são os dois campos obrigatórios do formulário
type Form struct {
	HomeTeam string `json:"home_team"`
	AwayTeam string `json:"away_team"`
}

// Validate falha com campo vazio ou times iguais
func Validate(f Form) error {
	if f.HomeTeam == "" || f.AwayTeam == "" {
		return &ValidationError{Reason: "missing_team", Message: MsgMissingTeams}
	}
	if f.HomeTeam == f.AwayTeam {
		return &ValidationError{Reason: "same_team", Message: MsgSameTeams}
	}
	return nil
}
