package hooks

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/charmingruby/decor/decor"
	"github.com/charmingruby/decor/outcome"
)

const (
	statusOK    = "ok"
	statusError = "error"
)

// Collector owns the prometheus series recorded by Metrics: a call counter by
// function and status, and a duration histogram by function.
type Collector struct {
	registry     *prometheus.Registry
	calls        *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	callsName    string
	durationName string
}

// NewCollector registers the collector's series on registry under namespace.
// A nil registry gets a fresh one.
//
// Example:
//
//	c, err := hooks.NewCollector("decortour", nil)
//	if err != nil {
//		return err
//	}
//	counted := decor.Chain[int, int](target, hooks.Metrics[int, int](c))
func NewCollector(namespace string, registry *prometheus.Registry) (*Collector, error) {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	c := &Collector{
		registry:     registry,
		callsName:    prometheus.BuildFQName(namespace, "", "calls_total"),
		durationName: prometheus.BuildFQName(namespace, "", "call_duration_seconds"),
		calls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "calls_total",
				Help:      "Wrapped function calls by function and status",
			},
			[]string{"func", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "call_duration_seconds",
				Help:      "Time spent inside wrapped functions",
				Buckets:   prometheus.ExponentialBuckets(0.00001, 10, 7),
			},
			[]string{"func"},
		),
	}
	for _, col := range []prometheus.Collector{c.calls, c.duration} {
		if err := registry.Register(col); err != nil {
			return nil, fmt.Errorf("hooks: register metrics: %w", err)
		}
	}
	return c, nil
}

// Registry returns the registry the series live on, for exposition.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Metrics records every call made through the decorated function on c.
func Metrics[A any, R any](c *Collector) decor.Decorator[A, R] {
	return decor.Decorate(decor.Hooks[A, R]{
		After: func(call decor.Call[A], out outcome.Outcome[R]) {
			c.observe(call.Meta.Name, out.IsOk(), out.Elapsed().Seconds())
		},
	})
}

func (c *Collector) observe(name string, ok bool, seconds float64) {
	status := statusOK
	if !ok {
		status = statusError
	}
	c.calls.WithLabelValues(name, status).Inc()
	c.duration.WithLabelValues(name).Observe(seconds)
}

// Row summarises the calls of one function.
type Row struct {
	Func    string
	Calls   uint64
	Errors  uint64
	Seconds float64
}

// Summary gathers the registry and returns one Row per function observed by
// c, sorted by name. Series of other collectors on a shared registry are
// ignored.
func (c *Collector) Summary() ([]Row, error) {
	families, err := c.registry.Gather()
	if err != nil {
		return nil, fmt.Errorf("hooks: gather metrics: %w", err)
	}
	rows := map[string]*Row{}
	row := func(name string) *Row {
		r, ok := rows[name]
		if !ok {
			r = &Row{Func: name}
			rows[name] = r
		}
		return r
	}
	for _, mf := range families {
		switch {
		case mf.GetName() == c.callsName:
			for _, m := range mf.GetMetric() {
				labels := map[string]string{}
				for _, lp := range m.GetLabel() {
					labels[lp.GetName()] = lp.GetValue()
				}
				n := uint64(m.GetCounter().GetValue())
				r := row(labels["func"])
				r.Calls += n
				if labels["status"] == statusError {
					r.Errors += n
				}
			}
		case mf.GetName() == c.durationName:
			for _, m := range mf.GetMetric() {
				for _, lp := range m.GetLabel() {
					if lp.GetName() == "func" {
						row(lp.GetValue()).Seconds += m.GetHistogram().GetSampleSum()
					}
				}
			}
		}
	}
	if len(rows) == 0 {
		return []Row{}, nil
	}
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		out = append(out, *r)
	}
	slices.SortFunc(out, func(a, b Row) int { return strings.Compare(a.Func, b.Func) })
	return out, nil
}

// IsAlreadyRegistered reports whether err comes from registering a collector
// twice on the same registry.
func IsAlreadyRegistered(err error) bool {
	var are prometheus.AlreadyRegisteredError
	return errors.As(err, &are)
}
