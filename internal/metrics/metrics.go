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

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)
)

// Loots Metrics
var (
	LootsPollsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLootsPollsTotal,
			Help: HelpTextLootsPollsTotal,
		},
		[]string{LabelOutcome},
	)

	LootsPollDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameLootsPollDuration,
			Help:    HelpTextLootsPollDuration,
			Buckets: HTTPLatencyBuckets,
		},
	)

	LootsLoginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLootsLoginsTotal,
			Help: HelpTextLootsLoginsTotal,
		},
		[]string{LabelOutcome},
	)

	LootsRetryInterval = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameLootsRetryInterval,
			Help: HelpTextLootsRetryInterval,
		},
	)

	LootsAdmittedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameLootsAdmittedTotal,
			Help: HelpTextLootsAdmittedTotal,
		},
	)

	LootsCreditedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameLootsCreditedTotal,
			Help: HelpTextLootsCreditedTotal,
		},
	)

	LootsPointsCredited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameLootsPointsCredited,
			Help: HelpTextLootsPointsCredited,
		},
	)

	LootsCreditSkipsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLootsCreditSkipsTotal,
			Help: HelpTextLootsCreditSkipsTotal,
		},
		[]string{LabelReason},
	)
)

// Prize Draw Metrics
var (
	PrizeDrawsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePrizeDrawsTotal,
			Help: HelpTextPrizeDrawsTotal,
		},
		[]string{LabelOutcome},
	)

	PrizesWonTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePrizesWonTotal,
			Help: HelpTextPrizesWonTotal,
		},
		[]string{LabelPool},
	)
)
