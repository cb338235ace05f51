package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Conversation Metrics
var (
	ConversationRounds = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameConversationRounds,
			Help: HelpTextConversationRounds,
		},
		[]string{LabelOutcome},
	)

	TransportFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameTransportFailures,
			Help: HelpTextTransportFailures,
		},
	)
)

// Economy Metrics
var (
	CoinsAwarded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCoinsAwarded,
			Help: HelpTextCoinsAwarded,
		},
		[]string{LabelSource},
	)

	CoinsSpent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCoinsSpent,
			Help: HelpTextCoinsSpent,
		},
	)

	ItemsPurchased = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsPurchased,
			Help: HelpTextItemsPurchased,
		},
		[]string{LabelItem},
	)

	BoosterActivations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameBoosterActivations,
			Help: HelpTextBoosterActivations,
		},
		[]string{LabelItem},
	)
)

// Session Metrics
var (
	DeveloperCommands = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameDeveloperCommands,
			Help: HelpTextDeveloperCommands,
		},
		[]string{LabelCommand},
	)

	SessionResets = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSessionResets,
			Help: HelpTextSessionResets,
		},
		[]string{LabelReason},
	)
)
