// Package logger provides a zap-based stats collector. It is meant for
// debugging and development; cache operations are frequent, so every
// metric is logged at Debug and the calls are skipped entirely when the
// level is disabled.
package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/fetchwise/hoard/internal/stats"
)

// Collector implements stats.Collector by logging metric changes via zap,
// carrying the running counter totals so a single line is meaningful on
// its own.
type Collector struct {
	logger *zap.Logger

	mu     sync.Mutex
	totals map[string]int64
}

// Compile-time check that Collector implements stats.Collector.
var _ stats.Collector = (*Collector)(nil)

// New creates a new logger-based collector.
// If logger is nil, a no-op logger is used.
func New(logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collector{
		logger: logger,
		totals: make(map[string]int64),
	}
}

// IncCounter logs a counter increment together with its running total.
func (c *Collector) IncCounter(name string, delta int64) {
	if !c.logger.Core().Enabled(zapcore.DebugLevel) {
		return
	}

	c.mu.Lock()
	c.totals[name] += delta
	total := c.totals[name]
	c.mu.Unlock()

	c.logger.Debug("counter",
		zap.String("metric", name),
		zap.Int64("delta", delta),
		zap.Int64("total", total),
	)
}

// SetGauge logs a gauge value.
func (c *Collector) SetGauge(name string, value int64) {
	c.logger.Debug("gauge",
		zap.String("metric", name),
		zap.Int64("value", value),
	)
}

// ObserveHistogram logs a histogram observation.
func (c *Collector) ObserveHistogram(name string, value float64) {
	c.logger.Debug("histogram",
		zap.String("metric", name),
		zap.Float64("value", value),
	)
}
