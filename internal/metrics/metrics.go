package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	CustomerOpsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "custsvc_customer_ops_total",
			Help: "Customer operations counter by op and outcome",
		},
		[]string{"op", "outcome"}, // create|update|delete , ok|validation|not_found|conflict|error
	)
)

func MustRegister(r prometheus.Registerer) {
	r.MustRegister(
		CustomerOpsTotal,
	)
}
