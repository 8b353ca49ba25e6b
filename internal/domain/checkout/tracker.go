// internal/domain/checkout/tracker.go
package checkout

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/pkg/metrics"
)

// DefaultDelay is how long a simulated checkout takes
const DefaultDelay = 1500 * time.Millisecond

// Status describes the simulated checkout of a session
type Status struct {
	InProgress  bool       `json:"in_progress"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Tracker runs the simulated checkout of one session. No payment happens:
// Start arms a timer and the completion callback runs when it fires.
//
// Once Dismiss has been called the tracker is torn down for good and a timer
// that already fired will not run its callback.
type Tracker struct {
	mu         sync.Mutex
	delay      time.Duration
	timer      *time.Timer
	generation uint64
	dismissed  bool
	status     Status
	metrics    *metrics.Metrics
	logger     logrus.FieldLogger
}

// NewTracker creates a tracker whose checkouts complete after delay
func NewTracker(delay time.Duration, m *metrics.Metrics, logger logrus.FieldLogger) *Tracker {
	if delay < 0 {
		delay = DefaultDelay
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Tracker{
		delay:   delay,
		metrics: m,
		logger:  logger,
	}
}

// Start begins a checkout. It reports false when one is already pending or
// the tracker has been dismissed.
func (t *Tracker) Start(onComplete func()) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.dismissed || t.status.InProgress {
		return false
	}

	now := time.Now()
	t.generation++
	t.status = Status{InProgress: true, StartedAt: &now}

	gen := t.generation
	t.timer = time.AfterFunc(t.delay, func() { t.complete(gen, onComplete) })

	t.metrics.CheckoutStarted()
	t.logger.WithField("delay", t.delay.String()).Debug("Checkout started")
	return true
}

func (t *Tracker) complete(gen uint64, onComplete func()) {
	t.mu.Lock()
	if t.dismissed || gen != t.generation {
		t.mu.Unlock()
		return
	}
	now := time.Now()
	t.status.InProgress = false
	t.status.CompletedAt = &now
	t.timer = nil
	t.mu.Unlock()

	t.metrics.CheckoutCompleted()
	t.logger.Debug("Checkout completed")

	if onComplete != nil {
		onComplete()
	}
}

// Status returns the current checkout status
func (t *Tracker) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// Dismiss tears the tracker down. A pending checkout is abandoned without
// running its callback.
func (t *Tracker) Dismiss() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.dismissed {
		return
	}
	t.dismissed = true
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.status.InProgress = false
}
