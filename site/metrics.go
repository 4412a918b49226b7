package site

import (
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/hhhapz/mdsite/htmlnode"
	"github.com/hhhapz/mdsite/inline"
	"github.com/hhhapz/mdsite/markdown"
)

// Metrics counts what a build did. A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	Pages         prometheus.Counter
	OutputBytes   prometheus.Counter
	StaticFiles   prometheus.Counter
	Errors        *prometheus.CounterVec
	BuildDuration prometheus.Gauge
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Pages: factory.NewCounter(prometheus.CounterOpts{
			Name: "mdsite_pages_generated_total",
			Help: "Number of html pages written",
		}),
		OutputBytes: factory.NewCounter(prometheus.CounterOpts{
			Name: "mdsite_output_bytes_total",
			Help: "Bytes of html written",
		}),
		StaticFiles: factory.NewCounter(prometheus.CounterOpts{
			Name: "mdsite_static_files_copied_total",
			Help: "Number of static files copied to the public directory",
		}),
		Errors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mdsite_build_errors_total",
				Help: "Failed builds by cause",
			},
			[]string{"kind"},
		),
		BuildDuration: factory.NewGauge(prometheus.GaugeOpts{
			Name: "mdsite_build_duration_seconds",
			Help: "Duration of the last build",
		}),
	}
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteFile writes the metrics in the text exposition format, for the node
// exporter's textfile collector.
func (m *Metrics) WriteFile(path string) error {
	return errors.Wrap(prometheus.WriteToTextfile(path, m.registry), "could not write metrics")
}

// ErrorKind names the cause of a build error for the errors metric.
func ErrorKind(err error) string {
	var (
		derr *inline.DelimiterError
		serr *htmlnode.StructuralError
		nerr *markdown.NotFoundError
	)
	switch {
	case errors.As(err, &derr):
		return "delimiter"
	case errors.As(err, &serr):
		return "structural"
	case errors.As(err, &nerr):
		return "no_title"
	}
	return "io"
}

func (m *Metrics) pageGenerated(size int) {
	if m == nil {
		return
	}
	m.Pages.Inc()
	m.OutputBytes.Add(float64(size))
}

func (m *Metrics) staticCopied() {
	if m == nil {
		return
	}
	m.StaticFiles.Inc()
}

func (m *Metrics) buildFinished(d time.Duration, err error) {
	if m == nil {
		return
	}
	m.BuildDuration.Set(d.Seconds())
	if err != nil {
		m.Errors.WithLabelValues(ErrorKind(err)).Inc()
	}
}
