package events

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func endEvent(op string, outcome Outcome) Event {
	return Event{Kind: KindCallEnd, CallID: "c1", Operation: op, ServerName: "s", Outcome: outcome, Duration: 10 * time.Millisecond}
}

func TestRecordingSinkConcurrent(t *testing.T) {
	r := &RecordingSink{}
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Emit(Event{Kind: KindCallStart})
		}()
	}
	wg.Wait()
	assert.Len(t, r.Events(), 50)

	r.Reset()
	assert.Empty(t, r.Events())
}

func TestMultiSink(t *testing.T) {
	a, b := &RecordingSink{}, &RecordingSink{}
	MultiSink{a, nil, b, LoggingSink{}}.Emit(endEvent("addEngine", OutcomeError))
	assert.Len(t, a.Events(), 1)
	assert.Len(t, b.Events(), 1)
}

func TestSinkFunc(t *testing.T) {
	var got Event
	SinkFunc(func(e Event) { got = e }).Emit(endEvent("x", OutcomeNoOp))
	assert.Equal(t, OutcomeNoOp, got.Outcome)
	Discard.Emit(got)
}

func TestMetricsSink(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetricsSink(reg)
	require.NoError(t, err)

	m.Emit(Event{Kind: KindCallStart, Operation: "addEngine"})
	assert.Equal(t, float64(1), testutil.ToFloat64(m.inFlight))

	m.Emit(endEvent("addEngine", OutcomeSuccess))
	m.Emit(Event{Kind: KindCallStart, Operation: "addEngine"})
	m.Emit(endEvent("addEngine", OutcomeNoOp))

	assert.Equal(t, float64(0), testutil.ToFloat64(m.inFlight))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.operations.WithLabelValues("addEngine", "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.operations.WithLabelValues("addEngine", "noop")))

	expected := `
# HELP serverconf_operations_total Configuration operations by outcome.
# TYPE serverconf_operations_total counter
serverconf_operations_total{operation="addEngine",outcome="noop"} 1
serverconf_operations_total{operation="addEngine",outcome="success"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "serverconf_operations_total"))
}

func TestMetricsSinkDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewMetricsSink(reg)
	require.NoError(t, err)
	_, err = NewMetricsSink(reg)
	assert.Error(t, err)
}

func TestFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace", "events.jsonl")
	s, err := NewFileSink(path)
	require.NoError(t, err)

	s.Emit(Event{Kind: KindCallStart, Operation: "setServerType", ServerName: "s"})
	s.Emit(endEvent("setServerType", OutcomeSuccess))
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	s.Emit(endEvent("ignored", OutcomeSuccess))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var got []Event
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var e Event
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &e))
		got = append(got, e)
	}
	require.Len(t, got, 2)
	assert.Equal(t, KindCallStart, got[0].Kind)
	assert.Equal(t, OutcomeSuccess, got[1].Outcome)
}
