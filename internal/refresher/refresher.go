// Package refresher keeps the summary cache warm for the dashboard's date
// presets so landing views render without waiting on the warehouse.
package refresher

import (
	"context"
	"log"
	"time"

	"github.com/dbspend360/dbspend360/internal/cache"
	"github.com/dbspend360/dbspend360/internal/rollup"
	"github.com/dbspend360/dbspend360/internal/store"
	"github.com/dbspend360/dbspend360/pkg/types"
)

// Config holds refresher configuration
type Config struct {
	Interval     time.Duration
	QueryTimeout time.Duration
}

// DefaultConfig returns default refresher configuration
func DefaultConfig() *Config {
	return &Config{
		Interval:     15 * time.Minute,
		QueryTimeout: 30 * time.Second,
	}
}

// Refresher periodically recomputes preset summaries into the cache
type Refresher struct {
	config *Config
	store  *store.Store
	cache  *cache.Cache
	ctx    context.Context
	cancel context.CancelFunc
}

// NewRefresher creates a new refresher instance
func NewRefresher(config *Config, st *store.Store, c *cache.Cache) *Refresher {
	if config == nil {
		config = DefaultConfig()
	}

	return &Refresher{
		config: config,
		store:  st,
		cache:  c,
	}
}

// Start starts the refresh loop. It runs once immediately, then on every
// tick until the context is canceled.
func (r *Refresher) Start(ctx context.Context) error {
	r.ctx, r.cancel = context.WithCancel(ctx)

	log.Printf("Refresher starting (interval=%s)", r.config.Interval)

	r.run()

	ticker := time.NewTicker(r.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.ctx.Done():
			log.Printf("Refresher shutting down")
			return r.ctx.Err()

		case <-ticker.C:
			r.run()
		}
	}
}

// Stop stops the refresher gracefully
func (r *Refresher) Stop() {
	if r.cancel != nil {
		r.cancel()
	}
}

// run recomputes and caches the summary for every date preset. A failed
// preset is logged and skipped; the rest still refresh.
func (r *Refresher) run() {
	for name, preset := range types.DatePresets(time.Now()) {
		if err := r.refreshPreset(preset.DateRange); err != nil {
			log.Printf("Refresher: preset %s failed: %v", name, err)
		}
	}
}

func (r *Refresher) refreshPreset(dr types.DateRange) error {
	ctx, cancel := context.WithTimeout(r.ctx, r.config.QueryTimeout)
	defer cancel()

	runs, err := r.store.Spends.ListRange(ctx, dr)
	if err != nil {
		return err
	}

	summary, err := rollup.Summarize(runs, dr.Days())
	if err != nil {
		return err
	}

	return r.cache.Set(ctx, cache.SummaryKey(dr), summary)
}
