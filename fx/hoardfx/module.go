// Package hoardfx provides an fx module for an in-process hoard cache.
package hoardfx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/fetchwise/hoard"
	"github.com/fetchwise/hoard/internal/stats"
	"github.com/fetchwise/hoard/internal/stats/logger"
	promstats "github.com/fetchwise/hoard/internal/stats/prometheus"
)

// Config holds configuration for the cache.
type Config struct {
	// CapacityBytes is the byte budget. Default is hoard.DefaultCapacity.
	CapacityBytes int64

	// Compression selects the payload codec: "zstd", "gzip", or "" for
	// none.
	Compression string

	// SizeHint pre-sizes the key index for the expected entry count.
	SizeHint int
}

// Module provides a *hoard.Cache with stats reported through the
// application logger.
// Requires a *zap.Logger to be provided.
var Module = fx.Module("hoard",
	fx.Provide(
		newStatsCollector,
		newCache,
	),
)

// PrometheusModule provides a *hoard.Cache with stats exported as
// prometheus metrics on the default registerer.
// Requires a *zap.Logger to be provided.
var PrometheusModule = fx.Module("hoard",
	fx.Provide(
		newPrometheusCollector,
		newCache,
	),
)

func newStatsCollector(log *zap.Logger) stats.Collector {
	return logger.New(log.Named("hoard.stats"))
}

func newPrometheusCollector() stats.Collector {
	return promstats.New(nil)
}

// Params holds dependencies for creating the cache.
type Params struct {
	fx.In

	Config    Config
	Logger    *zap.Logger
	Collector stats.Collector
	Origin    hoard.Origin `optional:"true"`
	Lifecycle fx.Lifecycle
}

// Result holds the provided cache.
type Result struct {
	fx.Out

	Cache *hoard.Cache
}

func newCache(p Params) (Result, error) {
	capacity := p.Config.CapacityBytes
	if capacity <= 0 {
		capacity = hoard.DefaultCapacity
	}

	compression, err := hoard.WithCompression(p.Config.Compression)
	if err != nil {
		return Result{}, err
	}

	opts := []hoard.Option{
		hoard.WithCapacity(capacity),
		hoard.WithSizeHint(p.Config.SizeHint),
		hoard.WithStats(p.Collector),
		hoard.WithLogger(p.Logger.Named("hoard")),
		compression,
	}
	if p.Origin != nil {
		opts = append(opts, hoard.WithOrigin(p.Origin))
	}

	cache, err := hoard.New(opts...)
	if err != nil {
		return Result{}, err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return cache.Close()
		},
	})

	return Result{Cache: cache}, nil
}
