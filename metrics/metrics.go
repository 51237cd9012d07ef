// Package metrics exports solver instrumentation as Prometheus metrics.
//
// A Recorder registers its collectors on a caller-supplied registry and
// adapts them to tsp.Hooks, so the solver itself stays free of any metrics
// dependency:
//
//	reg := prometheus.NewRegistry()
//	rec, err := metrics.NewRecorder(reg)
//	opts.Hooks = rec.Hooks()
//	res, err := tsp.Solve(ctx, points, opts)
//	rec.ObserveResult(opts.Algo, res)
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/salesman/tsp"
)

const (
	namespace = "salesman"
	subsystem = "solver"
)

// ErrNilRegistry is returned when NewRecorder gets no registry.
var ErrNilRegistry = errors.New("metrics: nil registry")

// Recorder holds the solver collectors. Safe for concurrent use.
type Recorder struct {
	expanded   prometheus.Counter
	children   prometheus.Counter
	pruned     prometheus.Counter
	incumbents prometheus.Counter
	timeouts   prometheus.Counter
	bestCost   prometheus.Gauge
	runs       *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewRecorder creates the collectors and registers them on reg.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	if reg == nil {
		return nil, ErrNilRegistry
	}
	r := &Recorder{
		expanded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name: "nodes_expanded_total",
			Help: "Search nodes whose children were bounded",
		}),
		children: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name: "children_bounded_total",
			Help: "Candidate children bounded via matrix reduction",
		}),
		pruned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name: "children_pruned_total",
			Help: "Children skipped because their bound could not beat the incumbent",
		}),
		incumbents: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name: "incumbent_updates_total",
			Help: "Strictly better complete tours recorded",
		}),
		timeouts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name: "timeouts_total",
			Help: "Searches stopped by the execution time budget",
		}),
		bestCost: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name: "best_cost",
			Help: "Cost of the most recent incumbent",
		}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name: "runs_total",
			Help: "Finished solver runs by algorithm and status",
		}, []string{"algorithm", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name:    "run_duration_seconds",
			Help:    "Wall-clock duration of solver runs",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 15, 30, 60, 300},
		}, []string{"algorithm"}),
	}

	for _, c := range []prometheus.Collector{
		r.expanded, r.children, r.pruned, r.incumbents, r.timeouts, r.bestCost, r.runs, r.duration,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Hooks returns tsp.Hooks feeding this recorder.
func (r *Recorder) Hooks() tsp.Hooks {
	return tsp.Hooks{
		OnExpand: func(_, children int) {
			r.expanded.Inc()
			r.children.Add(float64(children))
		},
		OnPrune: func(_, count int) {
			r.pruned.Add(float64(count))
		},
		OnIncumbent: func(cost float64, _ int) {
			r.incumbents.Inc()
			r.bestCost.Set(cost)
		},
		OnTimeout: func() {
			r.timeouts.Inc()
		},
	}
}

// ObserveResult records a finished run.
func (r *Recorder) ObserveResult(algo tsp.Algorithm, res tsp.Result) {
	r.runs.WithLabelValues(algo.String(), res.Status.String()).Inc()
	r.duration.WithLabelValues(algo.String()).Observe(res.Elapsed.Seconds())
	if res.Found() {
		r.bestCost.Set(res.Cost)
	}
}
