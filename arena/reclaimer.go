package arena

import (
	"time"

	"go.uber.org/zap"

	scriptbridge "github.com/wippyai/script-bridge"
)

const (
	// DefaultMaxPerPass is the per-pass item cap.
	DefaultMaxPerPass = 100

	// DefaultBudget is the per-pass wall-clock budget.
	DefaultBudget = 500 * time.Microsecond

	// budgetCheckStride is how many frees happen between clock reads.
	budgetCheckStride = 10
)

// Reclaimer drains a ledger under a fixed item cap and time budget.
//
// A pass frees at most MaxPerPass buffers and checks elapsed time every
// budgetCheckStride frees, stopping early once the budget is exceeded.
// Whatever remains stays queued for the next pass, so reclamation cost is
// amortized across calls instead of spiking after a burst of strings.
type Reclaimer struct {
	ledger *Ledger
	alloc  scriptbridge.Allocator
	max    int
	budget time.Duration
	now    func() time.Time
}

// Option configures a Reclaimer.
type Option func(*Reclaimer)

// WithMaxPerPass overrides the per-pass item cap (default 100).
func WithMaxPerPass(n int) Option {
	return func(r *Reclaimer) {
		if n > 0 {
			r.max = n
		}
	}
}

// WithBudget overrides the per-pass time budget (default 0.5 ms).
func WithBudget(d time.Duration) Option {
	return func(r *Reclaimer) {
		if d > 0 {
			r.budget = d
		}
	}
}

// NewReclaimer creates a reclaimer draining ledger into alloc.Free.
func NewReclaimer(ledger *Ledger, alloc scriptbridge.Allocator, opts ...Option) *Reclaimer {
	r := &Reclaimer{
		ledger: ledger,
		alloc:  alloc,
		max:    DefaultMaxPerPass,
		budget: DefaultBudget,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reclaim runs one bounded drain pass and returns the number of buffers
// freed. Safe to call from any goroutine.
func (r *Reclaimer) Reclaim() int {
	start := r.now()
	freed := 0

	for freed < r.max {
		buf, ok := r.ledger.TryDequeue()
		if !ok {
			break
		}
		r.alloc.Free(buf)
		freed++

		if freed%budgetCheckStride == 0 && r.now().Sub(start) >= r.budget {
			break
		}
	}

	if freed > 0 {
		Logger().Debug("reclaim pass",
			zap.Int("freed", freed),
			zap.Int64("remaining", r.ledger.Depth()),
		)
	}
	return freed
}
