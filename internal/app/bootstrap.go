// Package app wires cartd together and runs it.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/Gunvolt24/cartsync/config"
	cachemem "github.com/Gunvolt24/cartsync/internal/cache/memory"
	cacheredis "github.com/Gunvolt24/cartsync/internal/cache/redis"
	gateway "github.com/Gunvolt24/cartsync/internal/gateway/rest"
	"github.com/Gunvolt24/cartsync/internal/kafka"
	"github.com/Gunvolt24/cartsync/internal/pipeline"
	"github.com/Gunvolt24/cartsync/internal/ports"
	"github.com/Gunvolt24/cartsync/internal/repo/postgres"
	httpapi "github.com/Gunvolt24/cartsync/internal/transport/http"
	"github.com/Gunvolt24/cartsync/pkg/logger"
	"github.com/Gunvolt24/cartsync/pkg/metrics"
	"github.com/Gunvolt24/cartsync/pkg/telemetry"
	"github.com/Gunvolt24/cartsync/pkg/validate"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

const (
	initialRefreshTimeout = 10 * time.Second
	shutdownFlushTimeout  = 5 * time.Second
	redisPingTimeout      = 3 * time.Second
)

// Pipeline is the part of the mutation pipeline the app drives directly.
type Pipeline interface {
	ports.CartRefresher
	Flush(ctx context.Context) error
	Close()
}

// App is the assembled service.
type App struct {
	Logger     ports.Logger
	HTTPServer *http.Server
	Pipeline   Pipeline
	// KafkaConsumer is nil when no brokers are configured.
	KafkaConsumer ports.MessageConsumer
	// Background jobs run until the pipeline closes or Run returns.
	Background []func(ctx context.Context)

	gracefulTimeout time.Duration
}

// Cleanup releases everything Bootstrap opened, in reverse order.
type Cleanup func()

// applyGinMode sets the gin mode; unknown values fall back to debug.
func applyGinMode(ctx context.Context, mode string, log ports.Logger) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	case "", "debug":
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.DebugMode)
		log.Warnf(ctx, "unknown GIN_MODE=%q, fallback to debug", mode)
	}
}

// Bootstrap builds every component from cfg. Optional backends (Postgres,
// Redis, Kafka) are only started when configured. On error everything
// already opened is released.
func Bootstrap(ctx context.Context, cfg *config.Config) (_ *App, _ Cleanup, err error) {
	logg, cleanupLogger, err := logger.NewZapLogger(cfg.Logger.IsProd, cfg.Logger.Level)
	if err != nil {
		return nil, func() {}, err
	}

	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
		_ = cleanupLogger()
	}
	defer func() {
		if err != nil {
			cleanup()
		}
	}()

	metrics.MustRegister()

	if cfg.Tracing.Enabled {
		shutdownTrace, tErr := telemetry.SetupTracing(ctx, telemetry.Config{
			ServiceName: cfg.Tracing.ServiceName,
			Endpoint:    cfg.Tracing.Endpoint,
			SampleRatio: cfg.Tracing.SampleRatio,
			UserID:      cfg.Gateway.UserID,
		})
		if tErr != nil {
			logg.Warnf(ctx, "failed to setup tracing: %v", tErr)
		} else {
			logg.Infof(ctx, "otel tracing enabled service=%s endpoint=%s sample=%.2f",
				cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
			closers = append(closers, func() {
				if err := shutdownTrace(context.Background()); err != nil {
					logg.Warnf(ctx, "shutdown tracing: %v", err)
				}
			})
		}
	}

	var clientOpts []gateway.Option
	if cfg.Gateway.Enrich {
		clientOpts = append(clientOpts, gateway.WithProductEnrichment(cachemem.NewProductCache(cfg.Cache.Capacity, cfg.Cache.TTL)))
	}
	client, err := gateway.NewClient(gateway.Config{
		BaseURL: cfg.Gateway.BaseURL,
		UserID:  cfg.Gateway.UserID,
		Timeout: cfg.Gateway.Timeout,
		Breaker: gateway.BreakerConfig{
			MaxFailures:      cfg.Gateway.Breaker.MaxFailures,
			OpenTimeout:      cfg.Gateway.Breaker.OpenTimeout,
			HalfOpenRequests: cfg.Gateway.Breaker.HalfOpenRequests,
		},
	}, validate.NewSnapshotValidator(), logg, clientOpts...)
	if err != nil {
		return nil, func() {}, err
	}

	policy, err := pipeline.ParseNegativePolicy(cfg.Pipeline.NegativeQuantity)
	if err != nil {
		return nil, func() {}, err
	}
	pipeOpts := []pipeline.Option{
		pipeline.WithDebounce(cfg.Pipeline.DebounceWindow),
		pipeline.WithNegativePolicy(policy),
	}
	handlerOpts := []httpapi.HandlerOption{httpapi.WithShopping(client)}

	if cfg.Postgres.DSN != "" {
		journal, closePool, jErr := openJournal(ctx, cfg, logg)
		if jErr != nil {
			return nil, func() {}, jErr
		}
		closers = append(closers, closePool)
		pipeOpts = append(pipeOpts, pipeline.WithJournal(journal))
		handlerOpts = append(handlerOpts, httpapi.WithFlushJournal(journal))
	}

	pipe := pipeline.New(client, logg, pipeOpts...)

	a := &App{
		Logger:          logg,
		Pipeline:        pipe,
		gracefulTimeout: cfg.HTTP.GracefulTimeout,
	}

	if cfg.Redis.Addr != "" {
		rdb := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		closers = append(closers, func() { _ = rdb.Close() })

		pctx, cancel := context.WithTimeout(ctx, redisPingTimeout)
		pErr := rdb.Ping(pctx).Err()
		cancel()
		if pErr != nil {
			return nil, func() {}, fmt.Errorf("redis ping %s: %w", cfg.Redis.Addr, pErr)
		}

		observer := cacheredis.NewObserver(cacheredis.NewMirror(rdb, cfg.Redis.TTL), cfg.Gateway.UserID, logg)
		a.Background = append(a.Background, func(ctx context.Context) { observer.Run(ctx, pipe) })
		logg.Infof(ctx, "snapshot mirror enabled addr=%s ttl=%s", cfg.Redis.Addr, cfg.Redis.TTL)
	}

	if len(cfg.Kafka.Brokers) > 0 {
		consumer := kafka.NewConsumer(&kafka.ConsumerConfig{
			Brokers:        cfg.Kafka.Brokers,
			Topic:          cfg.Kafka.Topic,
			GroupID:        cfg.KafkaGroupID(),
			StartOffset:    cfg.Kafka.StartOffset,
			UserID:         cfg.Gateway.UserID,
			ProcessTimeout: cfg.Kafka.ProcessTimeout,
			RetryInitial:   cfg.Kafka.RetryInitial,
			RetryMax:       cfg.Kafka.RetryMax,
		}, pipe, logg)
		closers = append(closers, func() {
			if err := consumer.Close(); err != nil {
				logg.Warnf(ctx, "kafka consumer close error: %v", err)
			}
		})
		a.KafkaConsumer = consumer
	}

	applyGinMode(ctx, cfg.HTTP.GinMode, logg)

	otelServiceName := ""
	if cfg.Tracing.Enabled {
		otelServiceName = cfg.Tracing.ServiceName
	}
	handler := httpapi.NewHandler(pipe, logg, cfg.HTTP.HandlerTimeout, handlerOpts...)

	// WriteTimeout stays zero: /cart/stream is long-lived.
	a.HTTPServer = &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           httpapi.NewRouter(handler, otelServiceName),
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	return a, cleanup, nil
}

func openJournal(ctx context.Context, cfg *config.Config, log ports.Logger) (*postgres.FlushJournal, func(), error) {
	pool, err := postgres.NewPool(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConns)
	if err != nil {
		return nil, nil, fmt.Errorf("postgres: %w", err)
	}
	applied, err := postgres.Migrate(ctx, pool)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}
	log.Infof(ctx, "flush journal enabled migrations_applied=%d", applied)
	return postgres.NewFlushJournal(pool, cfg.Gateway.UserID), pool.Close, nil
}

// Run loads the cart, starts the background jobs, the consumer and the HTTP
// server, and blocks until ctx is cancelled or a component fails. Pending
// intent is flushed before the pipeline is closed.
func (a *App) Run(ctx context.Context) error {
	rctx, cancel := context.WithTimeout(ctx, initialRefreshTimeout)
	if err := a.Pipeline.RefreshCart(rctx); err != nil {
		a.Logger.Warnf(ctx, "initial cart load failed, serving without a snapshot: %v", err)
	}
	cancel()

	bgCtx, stopBackground := context.WithCancel(ctx)
	defer stopBackground()

	var wg sync.WaitGroup
	for _, job := range a.Background {
		wg.Add(1)
		go func(job func(context.Context)) {
			defer wg.Done()
			job(bgCtx)
		}(job)
	}

	errCh := make(chan error, 2)

	if a.KafkaConsumer != nil {
		go func() {
			a.Logger.Infof(ctx, "kafka consumer starting")
			if err := a.KafkaConsumer.Run(bgCtx); err != nil {
				errCh <- err
			}
		}()
	}

	go func() {
		a.Logger.Infof(ctx, "http server starting (addr=%s)", a.HTTPServer.Addr)
		if err := a.HTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		a.Logger.Infof(ctx, "shutdown requested, starting graceful shutdown")
	case err := <-errCh:
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			a.Logger.Infof(ctx, "background component stopped: %v", err)
		} else {
			a.Logger.Warnf(ctx, "background error: %v", err)
		}
	}

	gt := a.gracefulTimeout
	if gt <= 0 {
		gt = 5 * time.Second
	}
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), gt)
	defer cancelShutdown()

	if err := a.HTTPServer.Shutdown(shutdownCtx); err != nil {
		a.Logger.Warnf(ctx, "http server shutdown failed: %v", err)
	} else {
		a.Logger.Infof(ctx, "http server stopped gracefully")
	}

	if a.KafkaConsumer != nil {
		if err := a.KafkaConsumer.Close(); err != nil {
			a.Logger.Warnf(ctx, "kafka consumer close error: %v", err)
		}
	}

	flushCtx, cancelFlush := context.WithTimeout(context.Background(), shutdownFlushTimeout)
	if err := a.Pipeline.Flush(flushCtx); err != nil {
		a.Logger.Warnf(ctx, "flushing pending cart intent failed: %v", err)
	}
	cancelFlush()
	a.Pipeline.Close()

	stopBackground()
	wg.Wait()

	a.Logger.Infof(ctx, "service stopped")
	return nil
}
