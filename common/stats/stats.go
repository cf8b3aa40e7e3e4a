// Package stats provides a small set of instrument interfaces backed by
// go-metrics, and a StatsReceiver that can be passed down a call tree and
// scoped at each level.
//
// On top of go-metrics it adds:
// - A Latency instrument to record callsite latency with a display precision.
// - Finagle style JSON rendering, optionally pretty printed.
// - A latched mode which snapshots the registry at a fixed interval, so every
//   reader in the interval sees the same numbers.
package stats

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/rcrowley/go-metrics"
	log "github.com/sirupsen/logrus"
)

// Time is the clock used by instruments and latching. Overridden in tests.
var Time Clock = systemClock{}

// Overridable instrument creation.
var NewCounter func() Counter = newMetricCounter
var NewGauge func() Gauge = newMetricGauge
var NewHistogram func() Histogram = newMetricHistogram
var NewLatency func() Latency = newLatency

// MarshalerPretty is implemented by registries that can render indented JSON.
type MarshalerPretty interface {
	MarshalJSONPretty() ([]byte, error)
}

// StatsRegistry is the subset of a go-metrics registry a receiver needs.
//
// Only the finagle registry knows how to render Latency instruments.
type StatsRegistry interface {
	// GetOrRegister returns the metric under name, registering the given one
	// (or the result of calling it, if it is a func) when there is none.
	GetOrRegister(string, interface{}) interface{}
	Unregister(string)
	Each(func(string, interface{}))
}

// StatsReceiver creates instruments under a hierarchical name.
//
// Names are joined with '/'. A '/' inside a name element is replaced with
// "_SLASH_" rather than rejected, since elements are sometimes generated.
type StatsReceiver interface {
	// Scope returns a receiver that prefixes every name with scope.
	//
	//   stat.Scope("foo", "bar").Counter("baz") // same as stat.Counter("foo", "bar", "baz")
	//
	Scope(scope ...string) StatsReceiver

	// Precision returns a receiver whose Latency instruments render in the
	// given unit. It does not change what is recorded.
	Precision(time.Duration) StatsReceiver

	Counter(name ...string) Counter
	Gauge(name ...string) Gauge
	Histogram(name ...string) Histogram
	Latency(name ...string) Latency

	Remove(name ...string)

	// Render marshals the registry to JSON. Unlatched receivers clear their
	// histograms on every call.
	Render(pretty bool) []byte
}

// DefaultStatsReceiver returns an unlatched receiver over a go-metrics registry.
func DefaultStatsReceiver() StatsReceiver {
	stat, _ := NewCustomStatsReceiver(nil, 0)
	return stat
}

// NewLatchedStatsReceiver returns a receiver that snapshots its registry every
// latched interval. Call cancelFn to stop the latching goroutine; Render must
// not be called after that.
func NewLatchedStatsReceiver(latched time.Duration) (stat StatsReceiver, cancelFn func()) {
	return NewCustomStatsReceiver(nil, latched)
}

// NewCustomStatsReceiver is NewLatchedStatsReceiver with an explicit registry.
// A latched interval <= 0 disables latching.
func NewCustomStatsReceiver(makeRegistry func() StatsRegistry, latched time.Duration) (stat StatsReceiver, cancelFn func()) {
	if makeRegistry == nil {
		makeRegistry = func() StatsRegistry { return metrics.NewRegistry() }
	}
	s := &defaultStatsReceiver{
		makeRegistry: makeRegistry,
		registry:     makeRegistry(),
		precision:    time.Nanosecond,
	}
	cancel := func() {}
	if latched > 0 {
		var ctx context.Context
		ctx, cancel = context.WithCancel(context.Background())
		s.latchCh = make(chan chan StatsRegistry)
		first := Time.Now().Add(latched).Truncate(latched)
		go s.latch(ctx, capture(s.registry, makeRegistry()), Time.NewTicker(latched), first)
	}
	return s, cancel
}

// latch owns the snapshot until ctx is done, replacing it on every tick from
// first on and handing it to Render on request.
func (s *defaultStatsReceiver) latch(ctx context.Context, captured StatsRegistry, ticker Ticker, first time.Time) {
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case t := <-ticker.C():
			if t.Before(first) {
				continue
			}
			captured = capture(s.registry, s.makeRegistry())
			clearHistograms(s.registry)
		case req := <-s.latchCh:
			req <- captured
		}
	}
}

// capture copies snapshots of every instrument in src into dst.
func capture(src, dst StatsRegistry) StatsRegistry {
	src.Each(func(name string, i interface{}) {
		switch m := i.(type) {
		case Counter:
			dst.GetOrRegister(name, m.Capture())
		case Gauge:
			dst.GetOrRegister(name, m.Capture())
		case Histogram:
			dst.GetOrRegister(name, m.Capture())
		case Latency:
			dst.GetOrRegister(name, m.Capture())
		default:
			log.Info("Unrecognized capture instrument: ", name, i)
		}
	})
	return dst
}

func clearHistograms(reg StatsRegistry) {
	reg.Each(func(name string, i interface{}) {
		if h, ok := i.(metrics.Histogram); ok {
			h.Clear()
		}
	})
}

type defaultStatsReceiver struct {
	makeRegistry func() StatsRegistry
	registry     StatsRegistry
	latchCh      chan chan StatsRegistry
	precision    time.Duration
	scope        []string
}

func (s *defaultStatsReceiver) with(precision time.Duration, scope []string) *defaultStatsReceiver {
	return &defaultStatsReceiver{s.makeRegistry, s.registry, s.latchCh, precision, scope}
}

func (s *defaultStatsReceiver) Scope(scope ...string) StatsReceiver {
	return s.with(s.precision, s.scoped(scope...))
}

func (s *defaultStatsReceiver) Precision(precision time.Duration) StatsReceiver {
	if precision < 1 {
		precision = 1
	}
	return s.with(precision, s.scope)
}

func (s *defaultStatsReceiver) Counter(name ...string) Counter {
	return s.registry.GetOrRegister(s.scopedName(name...), NewCounter).(Counter)
}

func (s *defaultStatsReceiver) Gauge(name ...string) Gauge {
	return s.registry.GetOrRegister(s.scopedName(name...), NewGauge).(Gauge)
}

func (s *defaultStatsReceiver) Histogram(name ...string) Histogram {
	return s.registry.GetOrRegister(s.scopedName(name...), NewHistogram).(Histogram)
}

func (s *defaultStatsReceiver) Latency(name ...string) Latency {
	// Not lazy: a plain go-metrics registry can't cast the result of a factory to Latency.
	return s.registry.GetOrRegister(s.scopedName(name...), NewLatency().Precision(s.precision)).(Latency)
}

func (s *defaultStatsReceiver) Remove(name ...string) {
	s.registry.Unregister(s.scopedName(name...))
}

func (s *defaultStatsReceiver) Render(pretty bool) []byte {
	reg := s.registry
	if s.latchCh != nil {
		req := make(chan StatsRegistry)
		s.latchCh <- req
		reg = <-req
	}

	var bytes []byte
	var err error
	if mp, ok := reg.(MarshalerPretty); ok && pretty {
		bytes, err = mp.MarshalJSONPretty()
	} else {
		bytes, err = json.Marshal(reg)
	}
	if err != nil {
		panic("StatsRegistry bug, cannot be marshaled")
	}
	if s.latchCh == nil {
		clearHistograms(s.registry)
	}
	return bytes
}

func (s *defaultStatsReceiver) scoped(scope ...string) []string {
	out := make([]string, 0, len(s.scope)+len(scope))
	out = append(out, s.scope...)
	for _, e := range scope {
		out = append(out, strings.Replace(e, "/", "_SLASH_", -1))
	}
	return out
}

func (s *defaultStatsReceiver) scopedName(name ...string) string {
	return strings.Join(s.scoped(name...), "/")
}

// NilStatsReceiver ignores all stats operations.
func NilStatsReceiver(scope ...string) StatsReceiver {
	return &nilStatsReceiver{}
}

type nilStatsReceiver struct{}

func (s *nilStatsReceiver) Scope(scope ...string) StatsReceiver             { return s }
func (s *nilStatsReceiver) Precision(precision time.Duration) StatsReceiver { return s }
func (s *nilStatsReceiver) Counter(name ...string) Counter {
	return &metricCounter{metrics.NilCounter{}}
}
func (s *nilStatsReceiver) Gauge(name ...string) Gauge {
	return &metricGauge{metrics.NilGauge{}}
}
func (s *nilStatsReceiver) Histogram(name ...string) Histogram {
	return &metricHistogram{metrics.NilHistogram{}}
}
func (s *nilStatsReceiver) Latency(name ...string) Latency { return &nilLatency{} }
func (s *nilStatsReceiver) Remove(name ...string)          {}
func (s *nilStatsReceiver) Render(pretty bool) []byte      { return []byte{} }

// Counter mirrors metrics.Counter.
type Counter interface {
	Capture() Counter
	Clear()
	Count() int64
	Inc(int64)
	Update(int64)
}
type metricCounter struct{ metrics.Counter }

func (m *metricCounter) Capture() Counter { return &metricCounter{m.Snapshot()} }
func (m *metricCounter) Update(i int64)   { m.Inc(i - m.Count()) }
func newMetricCounter() Counter           { return &metricCounter{metrics.NewCounter()} }

// Gauge holds an int64 that can be set arbitrarily.
type Gauge interface {
	Capture() Gauge
	Update(int64)
	Value() int64
}
type metricGauge struct{ metrics.Gauge }

func (m *metricGauge) Capture() Gauge { return &metricGauge{m.Snapshot()} }
func newMetricGauge() Gauge           { return &metricGauge{metrics.NewGauge()} }

// HistogramView reads a histogram.
type HistogramView interface {
	Mean() float64
	Count() int64
	Max() int64
	Min() int64
	Sum() int64
	Percentiles(ps []float64) []float64
}

// Histogram samples int64 values over time.
type Histogram interface {
	HistogramView
	Capture() Histogram
	Update(int64)
}
type metricHistogram struct{ metrics.Histogram }

func (m *metricHistogram) Capture() Histogram { return &metricHistogram{m.Snapshot()} }
func newMetricHistogram() Histogram {
	return &metricHistogram{metrics.NewHistogram(metrics.NewUniformSample(1000))}
}

// Latency is a histogram of nanosecond durations between Time and Stop.
type Latency interface {
	Capture() Latency
	Time() Latency
	Stop()
	GetPrecision() time.Duration
	Precision(time.Duration) Latency
}

type metricLatency struct {
	metrics.Histogram
	start     time.Time
	precision time.Duration
}

func (l *metricLatency) Time() Latency { l.start = Time.Now(); return l }
func (l *metricLatency) Stop()         { l.Update(Time.Since(l.start).Nanoseconds()) }
func (l *metricLatency) Capture() Latency {
	return &metricLatency{l.Histogram.Snapshot(), l.start, l.precision}
}
func (l *metricLatency) GetPrecision() time.Duration { return l.precision }
func (l *metricLatency) Precision(p time.Duration) Latency {
	if p < 1 {
		p = 1
	}
	l.precision = p
	return l
}
func newLatency() Latency {
	return &metricLatency{Histogram: metrics.NewHistogram(metrics.NewUniformSample(1000)), precision: time.Nanosecond}
}

type nilLatency struct{}

func (l *nilLatency) Time() Latency                   { return l }
func (l *nilLatency) Stop()                           {}
func (l *nilLatency) Capture() Latency                { return l }
func (l *nilLatency) GetPrecision() time.Duration     { return 0 }
func (l *nilLatency) Precision(time.Duration) Latency { return l }

// finagleStatsRegistry renders Twitter/Finagle style metrics: one flat key
// per value, histograms expanded into avg, count, extremes and percentiles.
type finagleStatsRegistry struct {
	metrics.Registry
}

func NewFinagleStatsRegistry() StatsRegistry {
	return &finagleStatsRegistry{metrics.NewRegistry()}
}

type jsonMap map[string]interface{}

func (r *finagleStatsRegistry) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.MarshalAll())
}

func (r *finagleStatsRegistry) MarshalJSONPretty() ([]byte, error) {
	return json.MarshalIndent(r.MarshalAll(), "", "  ")
}

func (r *finagleStatsRegistry) MarshalAll() jsonMap {
	data := make(jsonMap)
	r.Each(func(name string, i interface{}) {
		switch stat := i.(type) {
		case Counter:
			data[name] = stat.Count()
		case Gauge:
			data[name] = stat.Value()
		case Histogram:
			marshalHistogram(data, name, stat.Capture(), time.Nanosecond)
		case Latency:
			l := stat.Capture()
			marshalHistogram(data, name, l.(HistogramView), l.GetPrecision())
		default:
			log.Info("Unrecognized marshal instrument: ", name, i)
		}
	})
	return data
}

func marshalHistogram(data jsonMap, name string, hist HistogramView, precision time.Duration) {
	f64p := float64(precision)
	i64p := int64(precision)
	data[name+".avg"] = hist.Mean() / f64p
	data[name+".count"] = hist.Count()
	data[name+".max"] = hist.Max() / i64p
	data[name+".min"] = hist.Min() / i64p
	data[name+".sum"] = hist.Sum() / i64p
	for i, pctl := range hist.Percentiles(defaultPercentiles) {
		data[name+"."+defaultPercentileLabels[i]] = pctl / f64p
	}
}

var defaultPercentiles = []float64{0.5, 0.9, 0.95, 0.99, 0.999, 0.9999}
var defaultPercentileLabels = []string{"p50", "p90", "p95", "p99", "p999", "p9999"}

// Clock is the part of package time instruments use.
type Clock interface {
	Now() time.Time
	Since(t time.Time) time.Duration
	NewTicker(d time.Duration) Ticker
}

// Ticker wraps time.Ticker so tests can drive latching.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type systemClock struct{}

func (systemClock) Now() time.Time                   { return time.Now() }
func (systemClock) Since(t time.Time) time.Duration  { return time.Since(t) }
func (systemClock) NewTicker(d time.Duration) Ticker { return &systemTicker{time.NewTicker(d)} }

type systemTicker struct{ *time.Ticker }

func (t *systemTicker) C() <-chan time.Time { return t.Ticker.C }

// NewTestClock returns a clock frozen at now, reporting since for every
// elapsed time and ticking whenever ch delivers.
func NewTestClock(now time.Time, since time.Duration, ch <-chan time.Time) Clock {
	return testClock{now, since, ch}
}

type testClock struct {
	now   time.Time
	since time.Duration
	ch    <-chan time.Time
}

type testTicker struct{ ch <-chan time.Time }

func (c testClock) Now() time.Time                 { return c.now }
func (c testClock) Since(time.Time) time.Duration  { return c.since }
func (c testClock) NewTicker(time.Duration) Ticker { return &testTicker{c.ch} }
func (t *testTicker) C() <-chan time.Time          { return t.ch }
func (t *testTicker) Stop()                        {}
