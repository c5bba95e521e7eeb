package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Business Metrics
var (
	GamesPlayed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameGamesPlayed,
			Help: HelpTextGamesPlayed,
		},
		[]string{LabelGame, LabelResult},
	)

	CoinsWagered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCoinsWagered,
			Help: HelpTextCoinsWagered,
		},
	)

	CoinsPaidOut = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCoinsPaidOut,
			Help: HelpTextCoinsPaidOut,
		},
	)

	CooldownRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCooldownRejections,
			Help: HelpTextCooldownRejections,
		},
		[]string{LabelCommand},
	)

	BetsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameBetsRejected,
			Help: HelpTextBetsRejected,
		},
		[]string{LabelReason},
	)
)
