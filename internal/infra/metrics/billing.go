package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		refundsTotal,
		checkoutTotal,
	)
}

var (
	refundsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "refunds_total",
			Help: "Refund pipeline runs by outcome (succeeded/not_found/invalid/failed).",
		},
		[]string{"outcome"},
	)

	checkoutTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_initiations_total",
			Help: "Checkout initiation attempts by resolved state.",
		},
		[]string{"state"},
	)
)

func IncRefund(outcome string) {
	refundsTotal.WithLabelValues(norm(outcome)).Inc()
}

func IncCheckout(state string) {
	checkoutTotal.WithLabelValues(norm(state)).Inc()
}
