// Package workflow orquestra a submissão do formulário de previsão: validação,
// estado de carregamento, chamada ao backend, renderização e histórico.
package workflow

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/radieske/match-predictor/internal/shared/logger"
	"github.com/radieske/match-predictor/internal/web/history"
	"github.com/radieske/match-predictor/internal/web/logo"
	"github.com/radieske/match-predictor/internal/web/predictor"
	"github.com/radieske/match-predictor/internal/web/predictor/dto"
	"github.com/radieske/match-predictor/internal/web/schedule"
	"github.com/radieske/match-predictor/internal/web/view"
	"github.com/radieske/match-predictor/pkg/contracts/events"
)

// Atrasos das transições de UI
const (
	BarDelay         = 100 * time.Millisecond // layout assenta antes da animação das barras
	PanelRevealDelay = 10 * time.Millisecond
	PanelHideDelay   = 300 * time.Millisecond
	NotifyShowDelay  = 10 * time.Millisecond
	NotifyVisibleFor = 4 * time.Second
	NotifyFadeOut    = 300 * time.Millisecond
)

// Chaves dos elementos com transições agendadas
const (
	taskResults = "results-section"
	taskBars    = "probability-bars"
)

type Predictor interface {
	Predict(ctx context.Context, homeTeam, awayTeam string) (*dto.PredictionResponse, error)
}

type HistoryStore interface {
	Add(ctx context.Context, sessionID string, r history.Record) error
	Lookup(ctx context.Context, sessionID string, index int, timestamp string) (history.Record, error)
}

type Publisher interface {
	PublishPredictionMade(ctx context.Context, e events.PredictionMade) error
}

// Controller é seguro para uso concorrente por várias sessões
type Controller struct {
	Predictor Predictor
	Logos     history.LogoResolver
	History   HistoryStore
	Publisher Publisher // opcional
	Sink      view.Sink
	Sched     schedule.Scheduler
	Log       *zap.Logger

	Now   func() time.Time
	NewID func() string

	OnPredicted func()              // métricas (counter++)
	OnRejected  func(string)        // métricas por motivo
	OnFailed    func(string)        // métricas por estágio
	OnLatency   func(time.Duration) // métricas

	mu      sync.Mutex
	visible map[string]bool // painel de resultados visível, por sessão
}

func New(p Predictor, logos history.LogoResolver, h HistoryStore, sink view.Sink, sched schedule.Scheduler, log *zap.Logger) *Controller {
	if sink == nil {
		sink = view.Discard{}
	}
	return &Controller{
		Predictor: p,
		Logos:     logos,
		History:   h,
		Sink:      sink,
		Sched:     sched,
		Log:       logger.Named(log, "workflow"),
		Now:       time.Now,
		NewID:     uuid.NewString,
		visible:   make(map[string]bool),
	}
}

// Submit executa o fluxo completo de uma submissão
func (c *Controller) Submit(ctx context.Context, sessionID string, f Form) (*view.Result, error) {
	if err := Validate(f); err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) && c.OnRejected != nil {
			c.OnRejected(ve.Reason)
		}
		c.Notify(sessionID, err.Error())
		return nil, err
	}

	c.showLoading(sessionID)
	// sempre desfaz o carregamento, com sucesso ou falha
	defer c.Sink.Push(sessionID, view.Loading(false)...)

	start := c.Now()
	resp, err := c.Predictor.Predict(ctx, f.HomeTeam, f.AwayTeam)
	if c.OnLatency != nil {
		c.OnLatency(c.Now().Sub(start))
	}
	if err != nil {
		c.Log.Warn("prediction request failed",
			zap.String("session", sessionID),
			zap.String("home_team", f.HomeTeam),
			zap.String("away_team", f.AwayTeam),
			zap.Error(err),
		)
		c.failed("request")
		msg := predictor.UserMessage(err)
		c.Notify(sessionID, msg)
		return nil, &RequestError{Message: msg, Err: err}
	}

	res := c.render(ctx, sessionID, f, *resp)

	rec := history.NewRecord(*resp, f.HomeTeam, f.AwayTeam, c.Now())
	if err := c.History.Add(ctx, sessionID, rec); err != nil {
		// o resultado já foi exibido; falha de persistência não desfaz a previsão
		c.Log.Warn("history append failed", zap.String("session", sessionID), zap.Error(err))
		c.failed("history")
	}

	c.publish(ctx, sessionID, f, *resp)
	if c.OnPredicted != nil {
		c.OnPredicted()
	}

	c.Log.Debug("prediction rendered",
		zap.String("session", sessionID),
		zap.String("predicted_result", resp.PredictedResult),
	)
	return &res, nil
}

// Replay repopula o formulário com o item do histórico e refaz a previsão.
// timestamp identifica a linha clicada quando a lista mudou desde a renderização.
func (c *Controller) Replay(ctx context.Context, sessionID string, index int, timestamp string) (*view.Result, error) {
	rec, err := c.History.Lookup(ctx, sessionID, index, timestamp)
	if err != nil {
		return nil, err
	}
	c.Sink.Push(sessionID, view.FormValues(rec.HomeTeam, rec.AwayTeam)...)
	return c.Submit(ctx, sessionID, Form{HomeTeam: rec.HomeTeam, AwayTeam: rec.AwayTeam})
}

// Reset recolhe o painel de resultados (botão reset do formulário)
func (c *Controller) Reset(sessionID string) {
	c.collapse(sessionID, true)
}

// Notify mostra um aviso transitório: entra em 10ms, sai após 4s e é removido 300ms depois
func (c *Controller) Notify(sessionID, message string) {
	n := view.NewNotification("notification-"+c.NewID(), message)
	c.Sink.Push(sessionID, n.InsertOps()...)

	// chaves próprias da notificação: nunca canceladas por outro ciclo
	base := schedule.Key(sessionID, n.ID)
	c.Sched.After(base+":show", NotifyShowDelay, func() {
		c.Sink.Push(sessionID, n.ShowOps()...)
	})
	c.Sched.After(base+":fade", NotifyVisibleFor, func() {
		c.Sink.Push(sessionID, n.FadeOps()...)
		c.Sched.After(base+":remove", NotifyFadeOut, func() {
			c.Sink.Push(sessionID, n.RemoveOps()...)
		})
	})
}

// Visible informa se o painel de resultados da sessão está visível
func (c *Controller) Visible(sessionID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.visible[sessionID]
}

// Forget descarta o estado da sessão quando a última aba desconecta; a próxima
// página começa com o painel escondido
func (c *Controller) Forget(sessionID string) {
	c.Sched.Cancel(schedule.Key(sessionID, taskResults))
	c.Sched.Cancel(schedule.Key(sessionID, taskBars))
	c.setVisible(sessionID, false)
}

func (c *Controller) setVisible(sessionID string, v bool) {
	c.mu.Lock()
	if v {
		c.visible[sessionID] = true
	} else {
		delete(c.visible, sessionID)
	}
	c.mu.Unlock()
}

func (c *Controller) showLoading(sessionID string) {
	c.Sink.Push(sessionID, view.Loading(true)...)
	c.collapse(sessionID, false)
}

// collapse remove a classe visible e esconde o painel após a transição;
// sem force só age se o painel estiver visível
func (c *Controller) collapse(sessionID string, force bool) {
	if !force && !c.Visible(sessionID) {
		return
	}
	key := schedule.Key(sessionID, taskResults)
	// um reveal atrasado do ciclo anterior não pode cair depois do collapse
	c.Sched.Cancel(key)
	c.setVisible(sessionID, false)
	c.Sink.Push(sessionID, view.PanelCollapse()...)
	c.Sched.After(key, PanelHideDelay, func() {
		c.Sink.Push(sessionID, view.PanelHide()...)
	})
}

// render aplica os passos do sucesso na ordem: times, logos, números, barras
// (atrasadas), resultado/placar e exibição do painel
func (c *Controller) render(ctx context.Context, sessionID string, f Form, resp dto.PredictionResponse) view.Result {
	var homeLogo, awayLogo logo.Visual
	// as duas sondagens são independentes e cada uma escreve só o próprio logo
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { homeLogo = c.resolve(gctx, f.HomeTeam); return nil })
	g.Go(func() error { awayLogo = c.resolve(gctx, f.AwayTeam); return nil })
	_ = g.Wait()

	res := view.NewResult(resp, f.HomeTeam, f.AwayTeam, homeLogo, awayLogo)

	c.Sink.Push(sessionID, res.TeamOps()...)
	c.Sink.Push(sessionID, res.ProbabilityOps()...)
	c.Sched.After(schedule.Key(sessionID, taskBars), BarDelay, func() {
		c.Sink.Push(sessionID, res.BarOps()...)
	})
	c.Sink.Push(sessionID, res.OutcomeOps()...)

	// o hide pendente do ciclo anterior é cancelado antes do display:block
	key := schedule.Key(sessionID, taskResults)
	c.Sched.Cancel(key)
	c.setVisible(sessionID, true)
	c.Sink.Push(sessionID, view.PanelShow()...)
	c.Sched.After(key, PanelRevealDelay, func() {
		c.Sink.Push(sessionID, view.PanelVisible()...)
	})

	return res
}

func (c *Controller) resolve(ctx context.Context, team string) logo.Visual {
	if c.Logos == nil {
		return logo.Badge(team)
	}
	return c.Logos.Resolve(ctx, team)
}

func (c *Controller) publish(ctx context.Context, sessionID string, f Form, resp dto.PredictionResponse) {
	if c.Publisher == nil {
		return
	}
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()

	err := c.Publisher.PublishPredictionMade(pctx, events.PredictionMade{
		SessionID: sessionID,
		HomeTeam:  f.HomeTeam,
		AwayTeam:  f.AwayTeam,
		Probabilities: events.Probabilities{
			HomeWin: resp.HomeWinProbability,
			Draw:    resp.DrawProbability,
			AwayWin: resp.AwayWinProbability,
		},
		PredictedResult: resp.PredictedResult,
		ExpectedScore:   resp.ExpectedScore,
		Ts:              c.Now().UTC(),
		Source:          "predictor-web",
	})
	if err != nil {
		c.Log.Warn("prediction event publish failed", zap.String("session", sessionID), zap.Error(err))
		c.failed("publish")
	}
}

func (c *Controller) failed(stage string) {
	if c.OnFailed != nil {
		c.OnFailed(stage)
	}
}
