//go:build integration

package testutil

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/modules/redpanda"
	"github.com/testcontainers/testcontainers-go/wait"

	pgrepo "github.com/Gunvolt24/cartsync/internal/repo/postgres"
)

var tcLogger = log.New(os.Stdout, "[tc] ", log.LstdFlags)

func shortID(c tc.Container) string {
	id := c.GetContainerID()
	if len(id) > 12 {
		return id[:12]
	}
	return id
}

// lifecycleLog prints one line per container state change.
func lifecycleLog(l *log.Logger) tc.ContainerLifecycleHooks {
	step := func(name string) tc.ContainerHook {
		return func(_ context.Context, c tc.Container) error {
			l.Printf("%s id=%s", name, shortID(c))
			return nil
		}
	}
	return tc.ContainerLifecycleHooks{
		PreCreates: []tc.ContainerRequestHook{
			func(_ context.Context, req tc.ContainerRequest) error {
				l.Printf("creating image=%s", req.Image)
				return nil
			},
		},
		PostStarts:     []tc.ContainerHook{step("started")},
		PostReadies:    []tc.ContainerHook{step("ready")},
		PostTerminates: []tc.ContainerHook{step("terminated")},
	}
}

// PGContainer is a disposable Postgres with a pool opened through the
// production pool constructor.
type PGContainer struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	DSN       string
}

const (
	pgImage    = "postgres:16-alpine"
	pgName     = "cart"
	pgMaxConns = 5
)

// StartPostgresTC runs an empty Postgres 16. Migrations are up to the caller.
func StartPostgresTC(ctx context.Context) (*PGContainer, func(context.Context) error, error) {
	ready := wait.ForAll(
		wait.ForListeningPort("5432/tcp"),
		wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
	).WithDeadline(time.Minute)

	ctr, err := postgres.Run(ctx, pgImage,
		tc.WithLifecycleHooks(lifecycleLog(tcLogger)),
		postgres.WithDatabase(pgName),
		postgres.WithUsername(pgName),
		postgres.WithPassword(pgName),
		tc.WithWaitStrategy(ready),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("run postgres: %w", err)
	}
	abort := func(step string, cause error) error {
		_ = tc.TerminateContainer(ctr)
		return fmt.Errorf("%s: %w", step, cause)
	}

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, nil, abort("postgres dsn", err)
	}
	pool, err := pgrepo.NewPool(ctx, dsn, pgMaxConns)
	if err != nil {
		return nil, nil, abort("postgres pool", err)
	}

	env := &PGContainer{Container: ctr, Pool: pool, DSN: dsn}
	return env, env.stop, nil
}

func (p *PGContainer) stop(ctx context.Context) error {
	p.Pool.Close()
	return p.Container.Terminate(ctx)
}

// KafkaEnv is a single-node Redpanda reachable through Brokers.
type KafkaEnv struct {
	Container *redpanda.Container
	Brokers   []string
}

// StartKafkaTC runs a single Redpanda broker with topic auto-creation.
func StartKafkaTC(ctx context.Context) (*KafkaEnv, func(context.Context) error, error) {
	rp, err := redpanda.Run(
		ctx,
		"docker.redpanda.com/redpandadata/redpanda:v23.3.8",
		tc.WithLifecycleHooks(lifecycleLog(tcLogger)),
		redpanda.WithAutoCreateTopics(),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("run redpanda: %w", err)
	}

	seed, err := rp.KafkaSeedBroker(ctx)
	if err != nil {
		_ = tc.TerminateContainer(rp)
		return nil, nil, fmt.Errorf("seed broker: %w", err)
	}

	stop := func(_ context.Context) error { return tc.TerminateContainer(rp) }
	return &KafkaEnv{Container: rp, Brokers: []string{seed}}, stop, nil
}
