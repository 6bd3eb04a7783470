package predictor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/radieske/match-predictor/internal/web/predictor/dto"
)

// GenericMessage é a mensagem exibida quando o backend não informa o erro
const GenericMessage = "An error occurred while making the prediction"

// StatusError representa uma resposta não-2xx do endpoint de previsão
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("predict http %d: %s", e.StatusCode, e.Message)
}

// ErrDecode indica corpo de sucesso que não é um PredictionResponse válido
var ErrDecode = errors.New("predict: malformed response body")

// Client chama o backend externo de previsão; uma requisição por chamada, sem retry
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Limiter *rate.Limiter
}

func New(base string, timeout time.Duration, rps int) *Client {
	c := &Client{
		BaseURL: strings.TrimRight(base, "/"),
		HTTP:    &http.Client{Timeout: timeout},
	}
	if rps > 0 {
		c.Limiter = rate.NewLimiter(rate.Limit(rps), rps)
	}
	return c
}

// Predict envia home_team e away_team como form-urlencoded
func (c *Client) Predict(ctx context.Context, homeTeam, awayTeam string) (*dto.PredictionResponse, error) {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	form := url.Values{}
	form.Set("home_team", homeTeam)
	form.Set("away_team", awayTeam)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/predict", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("predict request: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("predict read body: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: res.StatusCode, Message: errorMessage(body)}
	}

	var out dto.PredictionResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return &out, nil
}

// errorMessage extrai {error} do corpo; ausente ou inválido => GenericMessage
func errorMessage(body []byte) string {
	var e dto.ErrorResponse
	if err := json.Unmarshal(body, &e); err != nil || e.Error == "" {
		return GenericMessage
	}
	return e.Error
}

// UserMessage é o texto exibido na notificação para qualquer falha da requisição
func UserMessage(err error) string {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Message
	}
	return GenericMessage
}
