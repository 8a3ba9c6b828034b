package kafka

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Gunvolt24/cartsync/pkg/metrics"
	"github.com/segmentio/kafka-go"
)

var errInvalidEvent = errors.New("invalid cart invalidation event")

// InvalidationEvent says the cart of UserID was changed outside this process,
// e.g. emptied by checkout.
type InvalidationEvent struct {
	UserID string `json:"user_id"`
	Reason string `json:"reason"`
}

func decodeEvent(raw []byte) (InvalidationEvent, error) {
	var ev InvalidationEvent
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&ev); err != nil {
		return ev, fmt.Errorf("%w: %v", errInvalidEvent, err)
	}
	ev.UserID = strings.TrimSpace(ev.UserID)
	if ev.UserID == "" {
		return ev, fmt.Errorf("%w: user_id is required", errInvalidEvent)
	}
	return ev, nil
}

// handleMessage processes one message and reports whether its offset may be committed.
func (c *Consumer) handleMessage(ctx context.Context, topic string, msg *kafka.Message) bool {
	ev, err := decodeEvent(msg.Value)
	if err != nil {
		metrics.KafkaMessagesFailed.WithLabelValues(topic).Inc()
		c.log.Warnf(ctx, "kafka message skipped offset=%d err=%v", msg.Offset, err)
		return true
	}
	if c.userID != "" && ev.UserID != c.userID {
		metrics.KafkaMessagesProcessed.WithLabelValues(topic).Inc()
		return true
	}

	pctx, cancel := context.WithTimeout(ctx, c.processTimeout)
	err = c.refresher.RefreshCart(pctx)
	cancel()
	if err != nil {
		metrics.KafkaMessagesFailed.WithLabelValues(topic).Inc()
		c.log.Warnf(ctx, "cart refresh on invalidation failed offset=%d reason=%s err=%v (not committed)", msg.Offset, ev.Reason, err)
		return false
	}

	metrics.KafkaMessagesProcessed.WithLabelValues(topic).Inc()
	c.log.Infof(ctx, "cart refreshed on invalidation offset=%d reason=%s", msg.Offset, ev.Reason)
	return true
}

func (c *Consumer) commit(ctx context.Context, msg *kafka.Message) {
	if err := c.reader.CommitMessages(ctx, *msg); err != nil {
		c.log.Warnf(ctx, "kafka commit failed offset=%d err=%v", msg.Offset, err)
	}
}

// sleepCtx waits d and returns false if ctx ended first.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func (c *Consumer) nextBackoff(current time.Duration) time.Duration {
	return min(current*2, c.retryMax)
}

// withJitterEqual keeps half of d fixed and randomizes the other half.
func (c *Consumer) withJitterEqual(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	half := d / 2
	return half + time.Duration(c.jitterRand.Int63n(int64(d-half)+1))
}
