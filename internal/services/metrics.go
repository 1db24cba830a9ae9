package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/WEBtestTEAM88/playful-wagerland/internal/models"
)

const metricsNamespace = "wagerland"

type Metrics struct {
	RoundsSettled   *prometheus.CounterVec
	StakeTotal      *prometheus.CounterVec
	PayoutTotal     *prometheus.CounterVec
	BetsRejected    *prometheus.CounterVec
	ActiveSessions  prometheus.Gauge
	SettleLatency   prometheus.Histogram
	StorageFailures prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RoundsSettled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "rounds_settled_total",
			Help:      "Settled rounds by game and recorded result",
		}, []string{"game", "result"}),
		StakeTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "stake_total",
			Help:      "Currency staked by game",
		}, []string{"game"}),
		PayoutTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "payout_total",
			Help:      "Currency credited back by game",
		}, []string{"game"}),
		BetsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "bets_rejected_total",
			Help:      "Bets rejected before any balance change",
		}, []string{"reason"}),
		ActiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "active_sessions",
			Help:      "Multi-step rounds awaiting player input",
		}),
		SettleLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "settle_latency_seconds",
			Help:      "Time from debit to settlement",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		StorageFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "storage_failures_total",
			Help:      "Failed write-through persists",
		}),
	}

	reg.MustRegister(
		m.RoundsSettled,
		m.StakeTotal,
		m.PayoutTotal,
		m.BetsRejected,
		m.ActiveSessions,
		m.SettleLatency,
		m.StorageFailures,
	)

	return m
}

func (m *Metrics) observeStake(game models.GameType, stake int64) {
	if m == nil {
		return
	}
	m.StakeTotal.WithLabelValues(string(game)).Add(float64(stake))
}

func (m *Metrics) observeSettle(round *models.BetRound, opened time.Time) {
	if m == nil {
		return
	}
	game := string(round.GameType)
	m.RoundsSettled.WithLabelValues(game, string(round.Recorded)).Inc()
	m.PayoutTotal.WithLabelValues(game).Add(float64(round.Credited))
	m.SettleLatency.Observe(time.Since(opened).Seconds())
}

func (m *Metrics) reject(reason string) {
	if m == nil {
		return
	}
	m.BetsRejected.WithLabelValues(reason).Inc()
}

func (m *Metrics) sessionOpened() {
	if m == nil {
		return
	}
	m.ActiveSessions.Inc()
}

func (m *Metrics) sessionClosed() {
	if m == nil {
		return
	}
	m.ActiveSessions.Dec()
}

func (m *Metrics) storageFailed() {
	if m == nil {
		return
	}
	m.StorageFailures.Inc()
}
