// Package kafka consumes cart invalidation events and refreshes the local
// snapshot when another system changed the cart.
package kafka

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/Gunvolt24/cartsync/internal/ports"
	"github.com/Gunvolt24/cartsync/pkg/metrics"
	"github.com/segmentio/kafka-go"
)

// Compile-time check.
var _ ports.MessageConsumer = (*Consumer)(nil)

// reader is the part of kafka.Reader the consumer uses.
type reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Config() kafka.ReaderConfig
	Close() error
}

// Consumer reads invalidation events with manual commits (at-least-once).
type Consumer struct {
	reader         reader
	refresher      ports.CartRefresher
	log            ports.Logger
	userID         string
	processTimeout time.Duration
	retryInitial   time.Duration
	retryMax       time.Duration
	jitterRand     *rand.Rand
	closeOnce      sync.Once
}

// NewConsumer builds a consumer over a kafka-go reader created from cfg.
func NewConsumer(cfg *ConsumerConfig, refresher ports.CartRefresher, log ports.Logger) *Consumer {
	return newConsumer(kafka.NewReader(cfg.ReaderConfig()), cfg, refresher, log)
}

func newConsumer(r reader, cfg *ConsumerConfig, refresher ports.CartRefresher, log ports.Logger) *Consumer {
	return &Consumer{
		reader:         r,
		refresher:      refresher,
		log:            log,
		userID:         cfg.UserID,
		processTimeout: orDefault(cfg.ProcessTimeout, 5*time.Second),
		retryInitial:   orDefault(cfg.RetryInitial, time.Second),
		retryMax:       orDefault(cfg.RetryMax, 30*time.Second),
		jitterRand:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run fetches until ctx is done:
//   - handled (or ignored) events are committed;
//   - malformed events are logged and committed;
//   - a failed refresh is not committed and will be redelivered.
//
// Fetch errors are retried with exponential backoff and equal jitter.
func (c *Consumer) Run(ctx context.Context) error {
	rc := c.reader.Config()
	c.log.Infof(ctx, "kafka consumer started topic=%s group_id=%s brokers=%v user=%q", rc.Topic, rc.GroupID, rc.Brokers, c.userID)

	retry := c.retryInitial
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			sleep := c.withJitterEqual(retry)
			c.log.Warnf(ctx, "kafka fetch failed err=%v retry_in=%s", err, sleep)
			if !sleepCtx(ctx, sleep) {
				return ctx.Err()
			}
			retry = c.nextBackoff(retry)
			continue
		}

		retry = c.retryInitial
		metrics.KafkaMessagesConsumed.WithLabelValues(rc.Topic).Inc()

		if c.handleMessage(ctx, rc.Topic, &msg) {
			c.commit(ctx, &msg)
			continue
		}
		// spread redeliveries of a failing refresh
		if !sleepCtx(ctx, c.withJitterEqual(min(c.retryInitial, 500*time.Millisecond))) {
			return ctx.Err()
		}
	}
}

// Close closes the reader once.
func (c *Consumer) Close() (err error) {
	c.closeOnce.Do(func() { err = c.reader.Close() })
	return err
}

func orDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}
