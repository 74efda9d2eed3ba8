// Package worker runs the background dataset refresher: it watches the
// CSV exports for new content and swaps a freshly fitted session in
// behind the serving path.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/puckline/stats-api/internal/dataset"
	"github.com/puckline/stats-api/internal/logic"
)

// Prometheus metrics
var (
	datasetReloads = promauto.NewCounter(prometheus.CounterOpts{
		Name: "statsapi_dataset_reloads_total",
		Help: "Total number of successful dataset reload+refit cycles",
	})

	datasetReloadFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "statsapi_dataset_reload_failures_total",
		Help: "Total number of failed dataset reload attempts",
	})

	fitDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "statsapi_session_fit_duration_seconds",
		Help:    "Duration of full session fits (load + encode + regress)",
		Buckets: prometheus.DefBuckets,
	})
)

// RefresherConfig configures the refresher.
type RefresherConfig struct {
	Interval time.Duration // <= 0 disables the refresher
	Paths    dataset.Paths
	Loader   *dataset.Loader
	Sessions *logic.SessionHolder
	Logger   *zap.Logger
}

// Refresher polls the dataset files' mtimes and refits on change.
// Serving is never blocked: predictions keep hitting the old session
// until the atomic swap.
type Refresher struct {
	cfg     RefresherConfig
	logger  *zap.SugaredLogger
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	lastMod time.Time
}

func NewRefresher(cfg RefresherConfig) *Refresher {
	ctx, cancel := context.WithCancel(context.Background())
	r := &Refresher{
		cfg:    cfg,
		logger: cfg.Logger.Sugar(),
		ctx:    ctx,
		cancel: cancel,
	}
	if mod, err := cfg.Paths.LatestModTime(); err == nil {
		r.lastMod = mod
	}
	return r
}

// Start launches the polling loop. A non-positive interval leaves the
// refresher off, which is the default deployment mode.
func (r *Refresher) Start() {
	if r.cfg.Interval <= 0 {
		r.logger.Info("Dataset refresher disabled")
		return
	}
	r.wg.Add(1)
	go r.loop()
	r.logger.Infow("Dataset refresher started", "interval", r.cfg.Interval)
}

// Stop halts the loop and waits for an in-flight refit to finish.
// Fits themselves are not cancelable; only the wait between polls is.
func (r *Refresher) Stop() {
	r.cancel()
	r.wg.Wait()
}

func (r *Refresher) loop() {
	defer r.wg.Done()
	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.ctx.Done():
			return
		case <-ticker.C:
			r.runOnce(r.ctx)
		}
	}
}

// runOnce checks for newer exports and, if found, reloads and refits.
func (r *Refresher) runOnce(ctx context.Context) {
	mod, err := r.cfg.Paths.LatestModTime()
	if err != nil {
		r.logger.Warnw("Dataset stat failed", "error", err)
		return
	}
	if !mod.After(r.lastMod) {
		return
	}

	start := time.Now()
	bundle, err := r.cfg.Loader.Load(ctx)
	if err != nil {
		datasetReloadFailures.Inc()
		r.logger.Errorw("Dataset reload failed", "error", err)
		return
	}
	sess, err := logic.BuildSession(ctx, bundle, r.logger.Desugar())
	if err != nil {
		datasetReloadFailures.Inc()
		r.logger.Errorw("Session refit failed", "error", err)
		return
	}

	r.cfg.Sessions.Swap(sess)
	r.lastMod = mod
	datasetReloads.Inc()
	fitDuration.Observe(time.Since(start).Seconds())
	r.logger.Infow("Session refreshed", "session_id", sess.ID, "duration", time.Since(start))
}
