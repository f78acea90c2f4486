// Package metrics holds the Prometheus collectors the engine exposes on
// /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ShiftsGenerated counts shifts written by recurrence generation, split
	// by the operation that produced them.
	ShiftsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "scheduler",
		Name:      "shifts_generated_total",
		Help:      "Shifts written by recurrence generation.",
	}, []string{"operation"}) // resync, extend

	// ConflictsRejected counts manual saves refused by the double-booking
	// check.
	ConflictsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "scheduler",
		Name:      "conflicts_rejected_total",
		Help:      "Shift saves rejected because the employee was double-booked.",
	})

	// ClockIns counts attendance clock-in attempts by outcome.
	ClockIns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "scheduler",
		Name:      "clock_ins_total",
		Help:      "Clock-in attempts by outcome.",
	}, []string{"outcome"}) // ok, out_of_range, low_accuracy, geo_error, invalid
)
