package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sony/gobreaker"
	"golang.org/x/sync/errgroup"

	"dcragent/internal/config"
	"dcragent/internal/constants"
	"dcragent/internal/decode"
	"dcragent/internal/dedup"
	"dcragent/internal/dispatch"
	"dcragent/internal/filter"
	"dcragent/internal/logger"
	"dcragent/internal/pipeline"
	"dcragent/internal/supervisor"
	"dcragent/pkg/circuitbreaker"
	"dcragent/pkg/health"
	"dcragent/pkg/metrics"
)

type App struct {
	cfg *config.Config
	log logger.Logger

	skipCacheLoad bool
	skipCacheDump bool

	frames   decode.FrameDecoder
	cache    *dedup.Cache
	sup      *supervisor.Supervisor
	fileSink *dispatch.FileSink
	server   *http.Server
}

func NewApp(cfg *config.Config, log logger.Logger, skipCacheLoad, skipCacheDump bool) *App {
	if sugared, ok := log.(*logger.SugaredLogger); ok {
		sugared.SetAgentName(constants.AgentName)
	}
	return &App{
		cfg:           cfg,
		log:           log,
		skipCacheLoad: skipCacheLoad,
		skipCacheDump: skipCacheDump,
	}
}

// SetFrameDecoder binds the satellite frame decoder used by the gpsmon
// source format. Builds that link one in call this before Initialize.
func (a *App) SetFrameDecoder(frames decode.FrameDecoder) {
	a.frames = frames
}

func (a *App) Initialize(ctx context.Context) error {
	metrics.RegisterPipelineMetrics()
	metrics.RegisterSourceMetrics()
	metrics.RegisterDispatchMetrics()
	if a.cfg.CircuitBreaker.Enabled {
		metrics.RegisterCircuitBreakerMetrics()
	}

	a.initCache()

	sinks, err := a.initSinks()
	if err != nil {
		return fmt.Errorf("failed to initialize notification channels: %w", err)
	}

	decoder, err := a.newDecoder()
	if err != nil {
		return err
	}

	pipe := pipeline.New(a.log, filter.NewEngine(a.cfg), a.cache, dispatch.NewDispatcher(a.log, sinks...))
	a.sup = supervisor.New(a.log, a.cfg.Source.Argv(), decoder, pipe.Handle, constants.DefaultRestartDelay)

	a.initHTTPServer()

	return nil
}

func (a *App) initCache() {
	a.cache = dedup.New(a.cfg.Cache.ValidPeriod())
	if a.skipCacheLoad {
		return
	}

	entries, err := dedup.Load(a.cfg.Cache.Path)
	if err != nil {
		// A broken snapshot costs duplicate suppression, not the agent.
		a.log.Warnw("failed to load dedup cache, starting empty",
			"path", a.cfg.Cache.Path,
			"error", err,
		)
		return
	}

	a.cache.Restore(entries)
	expired := a.cache.EvictExpired(time.Now())
	metrics.SetCacheSize(a.cache.Len())
	a.log.Infow("dedup cache restored",
		"path", a.cfg.Cache.Path,
		"entries", a.cache.Len(),
		"expired", expired,
	)
}

func (a *App) initSinks() ([]dispatch.Sink, error) {
	var sinks []dispatch.Sink
	includeRaw := a.cfg.General.ReportRawPacket

	if a.cfg.Report.Use {
		fs, err := dispatch.NewFileSink(a.cfg.Report, includeRaw)
		if err != nil {
			return nil, err
		}
		a.fileSink = fs
		sinks = append(sinks, fs)
	}

	if a.cfg.Mail.Use {
		var breaker *circuitbreaker.Wrapper
		if a.cfg.CircuitBreaker.Enabled {
			breaker = circuitbreaker.NewWrapper(circuitbreaker.Config{
				Name:         "mail",
				MaxRequests:  a.cfg.CircuitBreaker.MaxRequests,
				Interval:     a.cfg.CircuitBreaker.Interval,
				Timeout:      a.cfg.CircuitBreaker.Timeout,
				FailureRatio: a.cfg.CircuitBreaker.FailureRatio,
				MinRequests:  a.cfg.CircuitBreaker.MinRequests,
				OnStateChange: func(name string, from, to gobreaker.State) {
					a.log.Warnw("circuit breaker state changed",
						"name", name,
						"from", from.String(),
						"to", to.String(),
					)
				},
			})
		}
		sinks = append(sinks, dispatch.NewMailSink(a.cfg.Mail, dispatch.NewSMTPSender(a.cfg.Mail), breaker))
	}

	if a.cfg.Console.Use {
		sinks = append(sinks, dispatch.NewConsoleSink(a.cfg.Console, includeRaw))
	}

	if len(sinks) == 0 {
		a.log.Warnw("no notification channels enabled, reports will only be logged")
	}

	return sinks, nil
}

func (a *App) newDecoder() (decode.Decoder, error) {
	switch a.cfg.Source.Format {
	case constants.SourceFormatJSONL:
		return decode.NewJSONLDecoder(a.log), nil
	case constants.SourceFormatGpsmon:
		if a.frames == nil {
			return nil, fmt.Errorf("source format %q needs a frame decoder and this build has none; use format %q",
				constants.SourceFormatGpsmon, constants.SourceFormatJSONL)
		}
		return decode.NewGpsmonDecoder(a.log, a.frames, a.cfg.General.ReportRawPacket), nil
	default:
		return nil, fmt.Errorf("unknown source format %q", a.cfg.Source.Format)
	}
}

func (a *App) initHTTPServer() {
	if !a.cfg.Server.Use {
		return
	}

	registry := health.NewCheckerRegistry()
	registry.Register(health.NewSourceChecker(a.sup.IsRunning))
	registry.Register(health.NewCacheDirChecker(a.cfg.Cache.Path))

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		h := registry.Check(r.Context())
		statusCode := http.StatusOK
		if h.Status == health.StatusUnhealthy {
			statusCode = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		fmt.Fprintf(w, `{"status":"%s","timestamp":"%s"}`, h.Status, h.Timestamp.Format(time.RFC3339))
	})
	mux.Handle("/metrics", promhttp.Handler())

	a.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", a.cfg.Server.Port),
		Handler: mux,
	}
}

func (a *App) Run(ctx context.Context) error {
	g, gCtx := errgroup.WithContext(ctx)

	if a.server != nil {
		g.Go(func() error {
			a.log.Infow("observability server starting", "port", a.cfg.Server.Port)
			if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return fmt.Errorf("observability server error: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gCtx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
			defer cancel()
			if err := a.server.Shutdown(shutdownCtx); err != nil {
				a.log.Warnw("observability server shutdown error", "error", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		return a.sup.Run(gCtx)
	})

	return g.Wait()
}

func (a *App) Shutdown(ctx context.Context) {
	if a.fileSink != nil {
		if err := a.fileSink.Close(); err != nil {
			a.log.Warnw("failed to close report log", "error", err)
		}
	}

	if a.cache == nil || a.skipCacheDump {
		return
	}

	entries := a.cache.Snapshot()
	if err := dedup.Save(a.cfg.Cache.Path, entries, time.Now()); err != nil {
		a.log.Errorw("failed to save dedup cache",
			"path", a.cfg.Cache.Path,
			"error", err,
		)
		return
	}
	a.log.Infow("dedup cache saved",
		"path", a.cfg.Cache.Path,
		"entries", len(entries),
	)
}
