package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrecisionChange(t *testing.T) {
	stat := DefaultStatsReceiver().(*defaultStatsReceiver)
	assert.Equal(t, time.Nanosecond, stat.precision, "default precision should be nanos")

	statp := stat.Precision(time.Millisecond).(*defaultStatsReceiver)
	assert.Equal(t, time.Nanosecond, stat.precision, "original receiver should be unchanged")
	assert.Equal(t, time.Millisecond, statp.precision)

	statz := stat.Precision(0).(*defaultStatsReceiver)
	assert.Equal(t, time.Duration(1), statz.precision)
}

func TestScopeChange(t *testing.T) {
	stat := DefaultStatsReceiver().(*defaultStatsReceiver)
	assert.Empty(t, stat.scope)

	statp := stat.Scope("a/b", "c").(*defaultStatsReceiver)
	assert.Empty(t, stat.scope, "original receiver should be unchanged")
	assert.Equal(t, []string{"a_SLASH_b", "c"}, statp.scope)
	assert.Equal(t, "a_SLASH_b/c/d", statp.scopedName("d"))

	// sibling scopes must not share backing arrays
	x := statp.Scope("x").(*defaultStatsReceiver)
	y := statp.Scope("y").(*defaultStatsReceiver)
	assert.Equal(t, "a_SLASH_b/c/x", x.scopedName())
	assert.Equal(t, "a_SLASH_b/c/y", y.scopedName())
}

func TestScopedInstrumentsShareRegistry(t *testing.T) {
	stat := DefaultStatsReceiver()
	stat.Scope(IceScope).Counter(IceBindCounter).Inc(2)
	assert.EqualValues(t, 2, stat.Counter(IceScope, IceBindCounter).Count())

	stat.Remove(IceScope, IceBindCounter)
	assert.EqualValues(t, 0, stat.Counter(IceScope, IceBindCounter).Count())
}

func TestRegister(t *testing.T) {
	reg := NewFinagleStatsRegistry()
	assert.NotNil(t, reg.GetOrRegister("counter", NewCounter()))
	assert.NotNil(t, reg.GetOrRegister("gauge", NewGauge()))
	assert.NotNil(t, reg.GetOrRegister("histogram", NewHistogram()))
	assert.NotNil(t, reg.GetOrRegister("latency", NewLatency()))
}

func TestMarshal(t *testing.T) {
	ct := make(chan time.Time, 2)
	defer func() { Time = systemClock{} }()
	Time = NewTestClock(time.Unix(0, 0), time.Nanosecond*5, ct)

	reg := NewFinagleStatsRegistry()
	reg.GetOrRegister("counter", NewCounter()).(Counter).Inc(1)
	reg.GetOrRegister("gauge", NewGauge()).(Gauge).Update(2)

	reg.GetOrRegister("latency", NewLatency()).(Latency).Time().Stop()
	Time = NewTestClock(time.Unix(0, 0), time.Nanosecond*10, ct)
	reg.GetOrRegister("latency", NewLatency()).(Latency).Time().Stop()

	bytes, err := reg.(MarshalerPretty).MarshalJSONPretty()
	require.NoError(t, err)
	expected := `{
  "counter": 1,
  "gauge": 2,
  "latency.avg": 7.5,
  "latency.count": 2,
  "latency.max": 10,
  "latency.min": 5,
  "latency.p50": 7.5,
  "latency.p90": 10,
  "latency.p95": 10,
  "latency.p99": 10,
  "latency.p999": 10,
  "latency.p9999": 10,
  "latency.sum": 15
}`
	assert.Equal(t, expected, string(bytes))
}

func TestNonLatching(t *testing.T) {
	stat := DefaultStatsReceiver()
	stat.Counter("counter").Inc(1)
	assert.Equal(t, `{"counter":{"count":1}}`, string(stat.Render(false)))
}

func TestLatching(t *testing.T) {
	ct := make(chan time.Time)
	defer func() { Time = systemClock{} }()
	Time = NewTestClock(time.Unix(0, 0), time.Nanosecond, ct)

	statIface, cancelFn := NewCustomStatsReceiver(NewFinagleStatsRegistry, 5*time.Nanosecond)
	defer cancelFn()

	// Nothing is captured until the first snapshot time has passed.
	statIface.Counter("counter").Inc(1)
	ct <- Time.Now()
	assert.Equal(t, "{}", string(statIface.Render(true)))

	ct <- Time.Now().Add(time.Minute)
	assert.Equal(t, `{"counter":1}`, string(statIface.Render(false)))
}

func TestNilStatsReceiver(t *testing.T) {
	stat := NilStatsReceiver().Scope("anything")
	stat.Counter("c").Inc(1)
	stat.Gauge("g").Update(1)
	stat.Histogram("h").Update(1)
	stat.Latency("l").Time().Stop()
	assert.EqualValues(t, 0, stat.Counter("c").Count())
	assert.Empty(t, stat.Render(true))
}
