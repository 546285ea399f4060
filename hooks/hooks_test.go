package hooks_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/charmingruby/decor/decor"
	"github.com/charmingruby/decor/hooks"
)

type operands struct {
	A, B int
}

func add(o operands) (int, error) {
	return o.A + o.B, nil
}

var errDivByZero = errors.New("division by zero")

func divide(o operands) (int, error) {
	if o.B == 0 {
		return 0, errDivByZero
	}
	return o.A / o.B, nil
}

func TestAnnounceStartEnd(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	var buf bytes.Buffer
	fn := decor.Chain[operands, int](decor.Func[operands, int](add),
		hooks.Announce[operands, int](&buf, "start", "end {result}"),
	)
	got, err := fn.Call(operands{A: 2, B: 3})

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(got).To(Equal(5))
	g.Expect(buf.String()).To(Equal("start\nend 5\n"))
}

func TestAnnounceNameAndError(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	var buf bytes.Buffer
	fn := decor.Chain[operands, int](decor.Func[operands, int](divide),
		hooks.Announce[operands, int](&buf, "", "{name}: {result}"),
	)
	_, err := fn.Call(operands{A: 1})

	g.Expect(err).To(MatchError(errDivByZero))
	g.Expect(buf.String()).To(Equal("divide: division by zero\n"))
}

func TestTimerWithFixedClock(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	base := time.Unix(0, 0)
	ticks := 0
	clock := func() time.Time {
		ticks++
		return base.Add(time.Duration(ticks) * 1234500 * time.Microsecond)
	}

	var buf bytes.Buffer
	fn := decor.Chain[operands, int](decor.Func[operands, int](add),
		hooks.Timer[operands, int](&buf, hooks.WithClock(clock)),
	)
	_, err := fn.Call(operands{A: 1, B: 1})

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(buf.String()).To(Equal("Finished \"add\" in 1.2345 secs\n"))
}

func TestTimerCustomFormat(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	var buf bytes.Buffer
	fn := decor.Chain[operands, int](decor.Func[operands, int](add),
		hooks.Timer[operands, int](&buf, hooks.WithFormat("%s took %.0fs\n"), hooks.WithClock(func() time.Time { return time.Unix(5, 0) })),
	)
	_, _ = fn.Call(operands{})

	g.Expect(buf.String()).To(Equal("add took 0s\n"))
}

func TestLogEmitsStructuredEvents(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	fn := decor.Chain[operands, int](decor.Func[operands, int](divide), hooks.Log[operands, int](logger))

	_, _ = fn.Call(operands{A: 6, B: 3})
	_, _ = fn.Call(operands{A: 6, B: 0})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	g.Expect(lines).To(HaveLen(4))

	events := make([]map[string]any, len(lines))
	for i, line := range lines {
		g.Expect(json.Unmarshal([]byte(line), &events[i])).To(Succeed())
		g.Expect(events[i]).To(HaveKeyWithValue("func", HaveSuffix("hooks_test.divide")))
	}
	g.Expect(events[0]).To(HaveKeyWithValue("level", "debug"))
	g.Expect(events[0]).To(HaveKeyWithValue("args", map[string]any{"A": 6.0, "B": 3.0}))
	g.Expect(events[1]).To(HaveKeyWithValue("level", "info"))
	g.Expect(events[1]).To(HaveKeyWithValue("result", 2.0))
	g.Expect(events[3]).To(HaveKeyWithValue("level", "error"))
	g.Expect(events[3]).To(HaveKeyWithValue("error", "division by zero"))
}

func TestMetricsCountsByStatus(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	collector, err := hooks.NewCollector("decor_test", nil)
	g.Expect(err).NotTo(HaveOccurred())

	fn := decor.Chain[operands, int](decor.Func[operands, int](divide), hooks.Metrics[operands, int](collector))
	for _, b := range []int{1, 2, 0} {
		_, _ = fn.Call(operands{A: 4, B: b})
	}

	series, err := testutil.GatherAndCount(collector.Registry(), "decor_test_calls_total")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(series).To(Equal(2))

	rows, err := collector.Summary()
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(rows).To(HaveLen(1))
	g.Expect(rows[0].Func).To(Equal("divide"))
	g.Expect(rows[0].Calls).To(Equal(uint64(3)))
	g.Expect(rows[0].Errors).To(Equal(uint64(1)))
	g.Expect(rows[0].Seconds).To(BeNumerically(">=", 0))
}

func TestNewCollectorRejectsDuplicateRegistration(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	reg := prometheus.NewRegistry()
	_, err := hooks.NewCollector("dup", reg)
	g.Expect(err).NotTo(HaveOccurred())

	_, err = hooks.NewCollector("dup", reg)
	g.Expect(err).To(HaveOccurred())
	g.Expect(hooks.IsAlreadyRegistered(err)).To(BeTrue())
}

func TestSummaryOnSharedRegistry(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	reg := prometheus.NewRegistry()
	first, err := hooks.NewCollector("first", reg)
	g.Expect(err).NotTo(HaveOccurred())
	second, err := hooks.NewCollector("second", reg)
	g.Expect(err).NotTo(HaveOccurred())
	unrelated := prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "jobs_calls_total", Help: "Jobs"},
		[]string{"func"},
	)
	g.Expect(reg.Register(unrelated)).To(Succeed())
	unrelated.WithLabelValues("add").Add(7)

	target := decor.Func[operands, int](add)
	_, _ = decor.Chain[operands, int](target, hooks.Metrics[operands, int](first)).Call(operands{A: 1, B: 2})
	_, _ = decor.Chain[operands, int](target, hooks.Metrics[operands, int](second)).Call(operands{A: 3, B: 4})

	for _, c := range []*hooks.Collector{first, second} {
		rows, err := c.Summary()
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(rows).To(HaveLen(1))
		g.Expect(rows[0].Func).To(Equal("add"))
		g.Expect(rows[0].Calls).To(Equal(uint64(1)))
		g.Expect(rows[0].Errors).To(BeZero())
	}
}

func TestSummaryEmpty(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	collector, err := hooks.NewCollector("empty", nil)
	g.Expect(err).NotTo(HaveOccurred())
	rows, err := collector.Summary()
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(rows).To(BeEmpty())
}

func TestRetryEventuallySucceeds(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	attempts := 0
	flaky := decor.Func[string, string](func(s string) (string, error) {
		attempts++
		if attempts < 3 {
			return "", errors.New("not yet")
		}
		return "got " + s, nil
	})
	var retried []int
	fn := decor.Chain[string, string](flaky, hooks.Retry[string, string](hooks.RetryConfig{
		Attempts: 5,
		Delay:    time.Millisecond,
		OnRetry:  func(attempt int, _ error) { retried = append(retried, attempt) },
	}))

	got, err := fn.Call("x")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(got).To(Equal("got x"))
	g.Expect(attempts).To(Equal(3))
	g.Expect(retried).To(Equal([]int{1, 2}))
}

func TestRetryReturnsLastErrorUnchanged(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	calls := 0
	fn := decor.Chain[operands, int](decor.Func[operands, int](func(o operands) (int, error) {
		calls++
		return divide(o)
	}), hooks.Retry[operands, int](hooks.RetryConfig{Attempts: 3, Delay: -time.Second}))

	_, err := fn.Call(operands{A: 1})
	g.Expect(err).To(BeIdenticalTo(errDivByZero))
	g.Expect(calls).To(Equal(3))
}

func TestRetryShouldRetryStopsEarly(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	calls := 0
	fn := decor.Chain[operands, int](decor.Func[operands, int](func(o operands) (int, error) {
		calls++
		return divide(o)
	}), hooks.Retry[operands, int](hooks.RetryConfig{
		Attempts:    5,
		ShouldRetry: func(err error) bool { return !errors.Is(err, errDivByZero) },
	}))

	_, err := fn.Call(operands{A: 1})
	g.Expect(err).To(MatchError(errDivByZero))
	g.Expect(calls).To(Equal(1))
}

func TestRetryHonorsContext(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	fn := decor.Chain[operands, int](decor.Func[operands, int](func(o operands) (int, error) {
		calls++
		cancel()
		return divide(o)
	}), hooks.Retry[operands, int](hooks.RetryConfig{Context: ctx, Attempts: 5, Delay: time.Hour}))

	_, err := fn.Call(operands{A: 1})
	g.Expect(err).To(MatchError(context.Canceled))
	g.Expect(calls).To(Equal(1))
}

func TestRetryKeepsIdentity(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fn := decor.Chain[operands, int](decor.Func[operands, int](add), hooks.Retry[operands, int](hooks.RetryConfig{}))
	g.Expect(fn.Meta().Name).To(Equal("add"))
}

func TestExponentialBackoff(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	backoff := hooks.ExponentialBackoff(10*time.Millisecond, 50*time.Millisecond)
	g.Expect(backoff(1, nil)).To(Equal(10 * time.Millisecond))
	g.Expect(backoff(2, nil)).To(Equal(20 * time.Millisecond))
	g.Expect(backoff(3, nil)).To(Equal(40 * time.Millisecond))
	g.Expect(backoff(4, nil)).To(Equal(50 * time.Millisecond))

	unbounded := hooks.ExponentialBackoff(time.Second, 0)
	g.Expect(unbounded(4, nil)).To(Equal(8 * time.Second))
}
