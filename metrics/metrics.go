package metrics

import (
	"errors"
	"regexp"

	sdk "github.com/kvmod-project/sdk"
	proto "github.com/tarmac-project/protobuf-go/sdk/metrics"
	wapc "github.com/wapc/wapc-guest-tinygo"
)

const (
	capabilityName = "metrics"
	fnCounter      = "counter"
	fnGauge        = "gauge"
	fnHistogram    = "histogram"
	actionInc      = "inc"
	actionDec      = "dec"
)

var (
	// ErrInvalidMetricName indicates a metric name that does not match the supported format.
	ErrInvalidMetricName = errors.New("metric name is invalid")

	// isMetricNameValid validates metric names against the host's accepted pattern.
	isMetricNameValid = regexp.MustCompile(`^[a-zA-Z0-9_:][a-zA-Z0-9_:]*$`)
)

// HostCall defines the waPC host function signature used by metrics operations.
type HostCall func(string, string, string, []byte) ([]byte, error)

// Client defines the metrics capability interface.
type Client interface {
	// NewCounter creates a named counter metric handle.
	NewCounter(name string) (*Counter, error)

	// NewGauge creates a named gauge metric handle.
	NewGauge(name string) (*Gauge, error)

	// NewHistogram creates a named histogram metric handle.
	NewHistogram(name string) (*Histogram, error)
}

// Config controls how a Client instance interacts with the host runtime.
type Config struct {
	// SDKConfig provides the runtime namespace used for host calls.
	SDKConfig sdk.RuntimeConfig

	// HostCall overrides the waPC host function used for metrics operations.
	HostCall HostCall
}

// Metrics is the metrics capability client implementation.
type Metrics struct {
	runtime  sdk.RuntimeConfig
	hostCall HostCall
}

// Counter is a named counter metric handle.
type Counter struct {
	name string
	m    *Metrics
}

// Gauge is a named gauge metric handle.
type Gauge struct {
	name string
	m    *Metrics
}

// Histogram is a named histogram metric handle.
type Histogram struct {
	name string
	m    *Metrics
}

// Ensure Metrics satisfies the Client interface at compile time.
var _ Client = (*Metrics)(nil)

// New creates a metrics client with namespace defaults and optional host-call override.
func New(config Config) (*Metrics, error) {
	runtime := config.SDKConfig
	if runtime.Namespace == "" {
		runtime.Namespace = sdk.DefaultNamespace
	}

	hostCall := config.HostCall
	if hostCall == nil {
		hostCall = wapc.HostCall
	}

	return &Metrics{runtime: runtime, hostCall: hostCall}, nil
}

// NewCounter creates a named counter metric handle.
func (m *Metrics) NewCounter(name string) (*Counter, error) {
	if !isMetricNameValid.MatchString(name) {
		return nil, ErrInvalidMetricName
	}

	return &Counter{name: name, m: m}, nil
}

// NewGauge creates a named gauge metric handle.
func (m *Metrics) NewGauge(name string) (*Gauge, error) {
	if !isMetricNameValid.MatchString(name) {
		return nil, ErrInvalidMetricName
	}

	return &Gauge{name: name, m: m}, nil
}

// NewHistogram creates a named histogram metric handle.
func (m *Metrics) NewHistogram(name string) (*Histogram, error) {
	if !isMetricNameValid.MatchString(name) {
		return nil, ErrInvalidMetricName
	}

	return &Histogram{name: name, m: m}, nil
}

// emit sends a metric update to the host runtime as a best-effort call.
func (m *Metrics) emit(fn string, payload []byte, err error) {
	if err != nil {
		return
	}
	_, _ = m.hostCall(m.runtime.Namespace, capabilityName, fn, payload)
}

// Inc increments the counter by one.
func (c *Counter) Inc() {
	payload, err := (&proto.MetricsCounter{Name: c.name}).MarshalVT()
	c.m.emit(fnCounter, payload, err)
}

// Inc increments the gauge by one.
func (g *Gauge) Inc() {
	payload, err := (&proto.MetricsGauge{Name: g.name, Action: actionInc}).MarshalVT()
	g.m.emit(fnGauge, payload, err)
}

// Dec decrements the gauge by one.
func (g *Gauge) Dec() {
	payload, err := (&proto.MetricsGauge{Name: g.name, Action: actionDec}).MarshalVT()
	g.m.emit(fnGauge, payload, err)
}

// Observe records a value for the histogram.
func (h *Histogram) Observe(value float64) {
	payload, err := (&proto.MetricsHistogram{Name: h.name, Value: value}).MarshalVT()
	h.m.emit(fnHistogram, payload, err)
}
