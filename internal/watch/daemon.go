package watch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	prom "github.com/prometheus/client_golang/prometheus"
	promcollect "github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/smart24/kotlin-native/internal/config"
	"github.com/smart24/kotlin-native/internal/journal"
	"github.com/smart24/kotlin-native/internal/logfields"
	"github.com/smart24/kotlin-native/internal/metrics"
	"github.com/smart24/kotlin-native/internal/settings"
	"github.com/smart24/kotlin-native/internal/snapshot"
)

// Triggers for a re-resolution, used as log/metric labels.
const (
	TriggerStartup  = "startup"
	TriggerFsnotify = "fsnotify"
	TriggerSchedule = "schedule"
)

// Resolution is the daemon's record of its most recent resolution pass.
type Resolution struct {
	Outcome     journal.Outcome `json:"outcome"`
	Fingerprint string          `json:"fingerprint,omitempty"`
	ResolvedAt  time.Time       `json:"resolved_at"`
	Error       string          `json:"error,omitempty"`
}

// Daemon owns the watcher, the periodic refresh job, and the HTTP endpoint.
type Daemon struct {
	cfg      *config.Config
	resolver *settings.Resolver
	journal  journal.Store // nil when journalling is disabled
	recorder metrics.Recorder
	registry *prom.Registry

	watcher   *Watcher
	scheduler gocron.Scheduler
	server    *Server

	startTime time.Time
	mu        sync.RWMutex
	last      *Resolution
}

// NewDaemon wires a daemon from configuration. The resolver decides the
// provider variant on every pass, so a property-file edit that flips the
// opt-in flag takes effect on the next refresh without a restart.
func NewDaemon(cfg *config.Config, resolver *settings.Resolver, store journal.Store) (*Daemon, error) {
	registry := prom.NewRegistry()
	registry.MustRegister(promcollect.NewGoCollector(), promcollect.NewProcessCollector(promcollect.ProcessCollectorOpts{}))

	d := &Daemon{
		cfg:      cfg,
		resolver: resolver,
		journal:  store,
		recorder: metrics.NewPrometheusRecorder(registry),
		registry: registry,
	}

	// Watch the property files plus the env files the config loader reads;
	// both feed the next resolution.
	watchPaths := append([]string{}, cfg.Properties.Files...)
	watchPaths = append(watchPaths, ".env", ".env.local")

	watcher, err := NewWatcher(watchPaths, cfg.Watch.DebounceDuration(), func() {
		d.refresh(context.Background(), TriggerFsnotify)
	})
	if err != nil {
		return nil, err
	}
	d.watcher = watcher

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	d.scheduler = scheduler

	d.server = NewServer(cfg.Watch.Listen, d)

	return d, nil
}

// Start performs the initial resolution and brings up the watcher, the
// periodic refresh job, and the HTTP endpoint.
func (d *Daemon) Start(ctx context.Context) error {
	d.startTime = time.Now()

	d.refresh(ctx, TriggerStartup)

	if err := d.watcher.Start(ctx); err != nil {
		return err
	}

	_, err := d.scheduler.NewJob(
		gocron.DurationJob(d.cfg.Watch.RefreshDuration()),
		gocron.NewTask(func() { d.refresh(context.Background(), TriggerSchedule) }),
		gocron.WithName("snapshot-refresh"),
	)
	if err != nil {
		return fmt.Errorf("failed to create refresh job: %w", err)
	}
	d.scheduler.Start()

	if err := d.server.Start(ctx); err != nil {
		return err
	}

	slog.Info("Watch daemon started",
		"listen", d.cfg.Watch.Listen,
		"refresh_interval", d.cfg.Watch.RefreshInterval,
		"debounce", d.cfg.Watch.Debounce)
	return nil
}

// Stop shuts everything down in reverse start order.
func (d *Daemon) Stop(ctx context.Context) error {
	slog.Info("Stopping watch daemon")

	if err := d.server.Stop(ctx); err != nil {
		slog.Error("Error stopping HTTP server", "error", err)
	}
	if err := d.scheduler.Shutdown(); err != nil {
		slog.Error("Error stopping scheduler", "error", err)
	}
	if err := d.watcher.Stop(ctx); err != nil {
		slog.Error("Error stopping watcher", "error", err)
	}
	if d.journal != nil {
		if err := d.journal.Close(); err != nil {
			slog.Error("Error closing journal", "error", err)
		}
	}
	return nil
}

// refresh runs one resolve-export-journal pass. An invalid environment logs
// the error and leaves the previous snapshot in place; a half-updated
// hand-off file would be worse than a stale one.
func (d *Daemon) refresh(ctx context.Context, trigger string) {
	start := time.Now()
	d.recorder.IncWatchReload(trigger)

	resolved, err := d.resolver.Resolve(ctx)
	d.recorder.ObserveResolutionDuration(time.Since(start))

	if err != nil {
		d.recorder.IncResolution(metrics.OutcomeInvalid)
		d.journalAppend(ctx, journal.NewEntry(settings.BuildSettings{}, err))
		d.setLast(&Resolution{Outcome: journal.OutcomeInvalid, ResolvedAt: time.Now(), Error: err.Error()})
		slog.Error("Resolution failed, keeping previous snapshot",
			logfields.Trigger(trigger),
			logfields.Error(err))
		return
	}

	d.recorder.IncResolution(metrics.OutcomeOK)
	d.recorder.SetLastResolutionTime(resolved.ResolvedAt)

	if err := snapshot.Write(d.cfg.Export.Path, snapshot.Format(d.cfg.Export.Format), resolved); err != nil {
		d.recorder.IncExport("failed")
		slog.Error("Snapshot export failed",
			logfields.Trigger(trigger),
			logfields.Path(d.cfg.Export.Path),
			logfields.Error(err))
	} else {
		d.recorder.IncExport("success")
	}

	d.journalAppend(ctx, journal.NewEntry(resolved, nil))
	d.setLast(&Resolution{Outcome: journal.OutcomeOK, Fingerprint: resolved.Fingerprint, ResolvedAt: resolved.ResolvedAt})

	slog.Info("Snapshot refreshed",
		logfields.Trigger(trigger),
		logfields.Source(string(resolved.Source)),
		logfields.Fingerprint(resolved.Fingerprint),
		logfields.DurationMS(float64(time.Since(start).Milliseconds())))
}

// journalAppend is best-effort: a broken journal must never fail the build.
func (d *Daemon) journalAppend(ctx context.Context, entry journal.Entry) {
	if d.journal == nil {
		return
	}
	if err := d.journal.Append(ctx, entry); err != nil {
		slog.Warn("Journal append failed", logfields.Error(err))
	}
}

func (d *Daemon) setLast(r *Resolution) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.last = r
}

// LastResolution returns the most recent resolution record, or nil before
// the first pass completes.
func (d *Daemon) LastResolution() *Resolution {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.last
}

// Uptime reports how long the daemon has been running.
func (d *Daemon) Uptime() time.Duration {
	return time.Since(d.startTime)
}
