package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Workflow agrupa os coletores do fluxo de previsão
type Workflow struct {
	Predicted prometheus.Counter
	Rejected  *prometheus.CounterVec
	Failed    *prometheus.CounterVec
	Latency   prometheus.Histogram
}

// NewWorkflow cria e registra os coletores no registerer informado
func NewWorkflow(reg prometheus.Registerer) *Workflow {
	m := &Workflow{
		Predicted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "predictor_web_predictions_total",
			Help: "previsões concluídas com sucesso",
		}),
		Rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "predictor_web_validation_rejections_total",
			Help: "submissões rejeitadas antes da requisição",
		}, []string{"reason"}),
		Failed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "predictor_web_failures_total",
			Help: "falhas por estágio",
		}, []string{"stage"}),
		Latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "predictor_web_upstream_seconds",
			Help:    "latência da chamada ao endpoint de previsão",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.Predicted, m.Rejected, m.Failed, m.Latency)
	return m
}

func (m *Workflow) OnPredicted()              { m.Predicted.Inc() }
func (m *Workflow) OnRejected(reason string)  { m.Rejected.WithLabelValues(reason).Inc() }
func (m *Workflow) OnFailed(stage string)     { m.Failed.WithLabelValues(stage).Inc() }
func (m *Workflow) OnLatency(d time.Duration) { m.Latency.Observe(d.Seconds()) }
