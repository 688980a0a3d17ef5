package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(activationsTotal, accountsDistributedTotal, quotaDeniedTotal) }

var activationsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "activations_total",
		Help: "Count of redeemed activation codes per target level.",
	},
	[]string{"level"},
)

var accountsDistributedTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "accounts_distributed_total",
		Help: "Count of pooled credentials handed out to users.",
	},
)

var quotaDeniedTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "quota_denied_total",
		Help: "Count of credential requests denied before distribution.",
	},
	[]string{"reason"}, // 'expired', 'quota', 'empty_pool'
)

func IncActivation(level string) { activationsTotal.WithLabelValues(level).Inc() }
func IncAccountDistributed() { accountsDistributedTotal.Inc() }
func IncQuotaDenied(reason string) { quotaDeniedTotal.WithLabelValues(reason).Inc() }
