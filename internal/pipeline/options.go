package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/Gunvolt24/cartsync/internal/ports"
	"go.opentelemetry.io/otel/trace"
)

// DefaultDebounce is how long a mutation waits for a newer one before flushing.
const DefaultDebounce = 500 * time.Millisecond

// NegativePolicy decides what happens when a decrement goes below zero.
type NegativePolicy string

const (
	// NegativeForward sends the negative quantity to the server unchanged.
	NegativeForward NegativePolicy = "forward"
	// NegativeClamp floors every desired quantity at zero.
	NegativeClamp NegativePolicy = "clamp"
)

// ParseNegativePolicy accepts "forward" (or empty) and "clamp", case-insensitive.
func ParseNegativePolicy(s string) (NegativePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(NegativeForward):
		return NegativeForward, nil
	case string(NegativeClamp):
		return NegativeClamp, nil
	default:
		return "", fmt.Errorf("unknown negative quantity policy %q", s)
	}
}

// Option configures a Pipeline at construction time.
type Option func(*Pipeline)

// WithDebounce sets the debounce window. Negative values are treated as zero.
func WithDebounce(d time.Duration) Option {
	return func(p *Pipeline) {
		if d < 0 {
			d = 0
		}
		p.debounce = d
	}
}

// WithNegativePolicy selects how quantities below zero are handled.
// The default is NegativeForward.
func WithNegativePolicy(policy NegativePolicy) Option {
	return func(p *Pipeline) { p.negative = policy }
}

// WithJournal records every write attempt. Journal errors are only logged.
func WithJournal(j ports.FlushJournal) Option {
	return func(p *Pipeline) { p.journal = j }
}

// WithTracer replaces the global tracer used for flush spans.
func WithTracer(t trace.Tracer) Option {
	return func(p *Pipeline) { p.tracer = t }
}
