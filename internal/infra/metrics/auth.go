package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(registrationsTotal, loginsTotal, verificationCodesIssued) }

var registrationsTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "registrations_total",
		Help: "Count of successfully registered users.",
	},
)

var loginsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "logins_total",
		Help: "Count of login attempts by outcome.",
	},
	[]string{"outcome"}, // 'success', 'failure'
)

var verificationCodesIssued = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "verification_codes_issued_total",
		Help: "Count of issued email verification codes per type.",
	},
	[]string{"type"}, // 'register', 'reset'
)

func IncRegistration() { registrationsTotal.Inc() }
func IncLogin(success bool) { loginsTotal.WithLabelValues(outcome(success)).Inc() }
func IncVerificationCode(typ string) { verificationCodesIssued.WithLabelValues(typ).Inc() }

func outcome(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}
