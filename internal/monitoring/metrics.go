package monitoring

import "github.com/prometheus/client_golang/prometheus"

var (
	Settlements = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "casino_settlements_total",
			Help: "Settled wagers by game and result",
		},
		[]string{"game", "result"},
	)

	AmountWagered = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "casino_wagered_total",
			Help: "Total amount wagered",
		},
		[]string{"game"},
	)

	AmountPaidOut = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "casino_paid_out_total",
			Help: "Total amount paid out",
		},
		[]string{"game"},
	)

	PaymentReviews = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_reviews_total",
			Help: "Deposit/withdrawal reviews by kind and decision",
		},
		[]string{"kind", "decision"},
	)
)

func Init() {
	prometheus.MustRegister(Settlements)
	prometheus.MustRegister(AmountWagered)
	prometheus.MustRegister(AmountPaidOut)
	prometheus.MustRegister(PaymentReviews)
}
