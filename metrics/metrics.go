package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the order-workflow counters. Constructed against an explicit
// registry so tests can use their own without collisions.
type Metrics struct {
	OrdersCreated   prometheus.Counter
	OrdersRejected  prometheus.Counter
	OrdersCancelled prometheus.Counter
	EmailFailures   prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		OrdersCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "shopsphere_orders_created_total",
			Help: "Orders successfully created.",
		}),
		OrdersRejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "shopsphere_orders_rejected_total",
			Help: "Checkout attempts rejected (empty cart, insufficient stock, validation).",
		}),
		OrdersCancelled: factory.NewCounter(prometheus.CounterOpts{
			Name: "shopsphere_orders_cancelled_total",
			Help: "Orders cancelled with stock restored.",
		}),
		EmailFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "shopsphere_order_email_failures_total",
			Help: "Order confirmation emails that failed to send.",
		}),
	}
}
