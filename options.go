package hoard

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/fetchwise/hoard/internal/codec"
	"github.com/fetchwise/hoard/internal/codec/gzipcodec"
	"github.com/fetchwise/hoard/internal/codec/noopcodec"
	"github.com/fetchwise/hoard/internal/codec/zstdcodec"
	"github.com/fetchwise/hoard/internal/stats"
	"github.com/fetchwise/hoard/internal/strategy"
	"github.com/fetchwise/hoard/internal/strategy/bytelru"
	"github.com/fetchwise/hoard/internal/strategy/countlru"
)

// Option configures a Cache.
type Option interface {
	apply(*options)
}

// options holds the cache configuration.
type options struct {
	capacity   int64
	sizeHint   int
	countBound int
	strategy   strategy.Strategy
	codec      codec.Codec
	origin     Origin
	stats      stats.Collector
	logger     *zap.Logger
	onEvict    EvictionCallback
}

// defaultOptions returns the default configuration.
func defaultOptions() options {
	return options{
		capacity: DefaultCapacity,
		codec:    noopcodec.New(),
		stats:    stats.NewNoop(),
		logger:   zap.NewNop(),
	}
}

// buildStrategy resolves the eviction strategy from the configuration,
// chaining the cache's own eviction bookkeeping with any user callback.
// The returned capacity is the byte budget, or zero when the strategy is
// not byte-bounded.
func (o *options) buildStrategy(notify strategy.EvictFunc) (strategy.Strategy, int64, error) {
	onEvict := notify
	if o.onEvict != nil {
		user := o.onEvict
		onEvict = func(key string, size int64) {
			notify(key, size)
			user(key, size)
		}
	}

	if o.strategy != nil {
		return o.strategy, 0, nil
	}

	if o.countBound > 0 {
		st, err := countlru.NewWithEvict(o.countBound, onEvict)
		if err != nil {
			return nil, 0, fmt.Errorf("hoard: creating count-LRU strategy: %w", err)
		}
		return st, 0, nil
	}

	if o.capacity <= 0 {
		return nil, 0, ErrCapacity
	}
	st, err := bytelru.NewWithEvict(o.capacity, o.sizeHint, onEvict)
	if err != nil {
		return nil, 0, fmt.Errorf("hoard: creating byte-LRU strategy: %w", err)
	}
	return st, o.capacity, nil
}

// optionFunc wraps a function to implement Option.
type optionFunc func(*options)

// Compile-time check that optionFunc implements Option.
var _ Option = optionFunc(nil)

func (f optionFunc) apply(o *options) { f(o) }

// EvictionCallback is notified of each entry evicted under budget pressure,
// with its key and resident size in bytes. It runs inside the cache's
// critical section and must not call back into the cache.
type EvictionCallback func(key string, size int64)

// WithCapacity sets the byte budget for the default byte-LRU strategy.
// Default is 10 MiB. The budget is fixed for the cache's lifetime.
func WithCapacity(bytes int64) Option {
	return optionFunc(func(o *options) {
		o.capacity = bytes
	})
}

// WithSizeHint pre-sizes the key index for the expected number of entries.
func WithSizeHint(entries int) Option {
	return optionFunc(func(o *options) {
		o.sizeHint = entries
	})
}

// WithCountBound bounds the cache by number of entries instead of bytes,
// using an entry-count LRU strategy.
func WithCountBound(maxEntries int) Option {
	return optionFunc(func(o *options) {
		o.countBound = maxEntries
	})
}

// WithStrategy sets a custom eviction strategy, overriding WithCapacity and
// WithCountBound. Eviction accounting is then up to the strategy; the
// cache's eviction metrics and callback are bypassed.
func WithStrategy(s strategy.Strategy) Option {
	return optionFunc(func(o *options) {
		o.strategy = s
	})
}

// WithCodec sets the payload codec. If not set, payloads are stored
// uncompressed. The byte budget applies to encoded payloads, since that is
// what occupies memory.
func WithCodec(c codec.Codec) Option {
	return optionFunc(func(o *options) {
		o.codec = c
	})
}

// WithCompression selects a payload compression algorithm by name:
// "zstd", "gzip", or "" for none. This is the public way to enable
// compression; WithCodec accepts custom codecs.
func WithCompression(algorithm string) (Option, error) {
	var c codec.Codec
	switch algorithm {
	case "zstd":
		c = zstdcodec.New()
	case "gzip":
		c = gzipcodec.New()
	case "":
		c = noopcodec.New()
	default:
		return nil, fmt.Errorf("hoard: unknown compression algorithm %q", algorithm)
	}
	return WithCodec(c), nil
}

// WithOrigin sets the origin consulted by Fetch on a miss.
func WithOrigin(origin Origin) Option {
	return optionFunc(func(o *options) {
		o.origin = origin
	})
}

// WithStats sets the stats collector.
// If not set, a no-op collector is used.
func WithStats(c stats.Collector) Option {
	return optionFunc(func(o *options) {
		o.stats = c
	})
}

// WithLogger sets the logger.
// If not set, a no-op logger is used.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(o *options) {
		o.logger = l
	})
}

// WithEvictionCallback registers cb to observe evictions.
func WithEvictionCallback(cb EvictionCallback) Option {
	return optionFunc(func(o *options) {
		o.onEvict = cb
	})
}
