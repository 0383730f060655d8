package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Conversation flow
	MessagesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_messages_total",
			Help: "Total group messages handled",
		},
	)
	TransactionsParsed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_transactions_parsed_total",
			Help: "Messages parsed into transactions",
		},
		[]string{"category"}, // outcome|income
	)
	ParseMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_parse_misses_total",
			Help: "Messages that matched no transaction pattern",
		},
	)
	TransactionsConfirmed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_transactions_confirmed_total",
			Help: "Pending transactions moved to confirmed",
		},
	)
	TransactionsRejected = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_transactions_rejected_total",
			Help: "Pending transactions moved to rejected",
		},
	)

	// Worker queue
	WorkerQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_queue_depth",
			Help: "Current worker queue depth",
		},
	)
)

// Handler for the /metrics endpoint
var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(MessagesTotal)
	prometheus.MustRegister(TransactionsParsed)
	prometheus.MustRegister(ParseMisses)
	prometheus.MustRegister(TransactionsConfirmed)
	prometheus.MustRegister(TransactionsRejected)
	prometheus.MustRegister(WorkerQueueDepth)
}
