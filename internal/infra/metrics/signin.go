package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(signinTotal)
}

var signinTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "signin_submissions_total",
		Help: "Sign-in form submissions by result (success/error).",
	},
	[]string{"result"},
)

func IncSignIn(result string) {
	signinTotal.WithLabelValues(norm(result)).Inc()
}

// norm keeps label values lowercase and bounded.
func norm(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "unknown"
	}
	return s
}
