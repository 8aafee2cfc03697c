// Package metrics exposes solver activity as Prometheus metrics.
//
// A Collector is an allot.Observer and a prometheus.Collector at the same
// time: hand it to allot.Options.Observer and register it with any registry.
// For one-shot command-line runs WriteFile dumps a registry in the text
// exposition format (node_exporter textfile style).
package metrics

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/katalvlaran/allot"
)

const namespace = "allot"

// Collector aggregates allot.Result values.
type Collector struct {
	solves      *prometheus.CounterVec
	rejections  *prometheus.CounterVec
	nodes       *prometheus.CounterVec
	relaxations prometheus.Counter
	duration    prometheus.Histogram
	value       prometheus.Gauge
	vars        prometheus.Gauge
}

// New returns an unregistered Collector.
func New() *Collector {
	return &Collector{
		solves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "solves_total",
			Help:      "Solves by outcome status.",
		}, []string{"status"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "precheck_rejections_total",
			Help:      "Instances rejected by the precheck, by failed check.",
		}, []string{"reason"}),
		nodes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      "nodes_total",
			Help:      "Branch-and-bound nodes by what happened to them.",
		}, []string{"kind"}),
		relaxations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      "relaxations_total",
			Help:      "Linear relaxations solved.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "solve_duration_seconds",
			Help:      "Wall-clock time per solve.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		value: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_value",
			Help:      "Objective of the most recent solve (-1 when infeasible).",
		}),
		vars: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_model_variables",
			Help:      "Decision variables in the most recent model.",
		}),
	}
}

// Observe implements allot.Observer.
func (c *Collector) Observe(res allot.Result) {
	c.solves.WithLabelValues(res.Status.String()).Inc()
	if !res.Precheck.Feasible() {
		c.rejections.WithLabelValues(res.Precheck.Reason.String()).Inc()
	}

	st := res.Search
	c.nodes.WithLabelValues("evaluated").Add(float64(st.Nodes))
	c.nodes.WithLabelValues("pruned_infeasible").Add(float64(st.PrunedInfeasible))
	c.nodes.WithLabelValues("pruned_bound").Add(float64(st.PrunedBound))
	c.nodes.WithLabelValues("unresolved").Add(float64(st.Unresolved))
	c.nodes.WithLabelValues("integral").Add(float64(st.IntegralLeaves))
	c.nodes.WithLabelValues("branched").Add(float64(st.Branched))
	c.relaxations.Add(float64(st.Relaxations))

	c.duration.Observe(res.Elapsed.Seconds())
	c.value.Set(float64(res.Value))
	c.vars.Set(float64(res.Model.Vars))
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.solves.Describe(ch)
	c.rejections.Describe(ch)
	c.nodes.Describe(ch)
	c.relaxations.Describe(ch)
	c.duration.Describe(ch)
	c.value.Describe(ch)
	c.vars.Describe(ch)
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.solves.Collect(ch)
	c.rejections.Collect(ch)
	c.nodes.Collect(ch)
	c.relaxations.Collect(ch)
	c.duration.Collect(ch)
	c.value.Collect(ch)
	c.vars.Collect(ch)
}

// WriteText writes every family gathered from g in the text exposition format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	mfs, err := g.Gather()
	if err != nil {
		return fmt.Errorf("metrics: gather: %w", err)
	}
	for _, mf := range mfs {
		if _, err = expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("metrics: write %s: %w", mf.GetName(), err)
		}
	}

	return nil
}

// WriteFile atomically replaces path with the text exposition of g.
func WriteFile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	return nil
}
