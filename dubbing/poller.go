// Package dubbing orchestrates Speechlab dubbing jobs: it polls projects
// for completion, resolves result download URLs, and runs the full
// dub-a-file workflow as a linear pipeline over the speechlab client.
package dubbing

import (
	"context"
	"log"
	"time"

	"github.com/speechlab/speechlab-mcp/speechlab"
)

// Poll defaults. A dub typically takes minutes, so the budget covers
// five minutes of waiting out of the box.
const (
	DefaultMaxAttempts = 20
	DefaultDelay       = 15 * time.Second
)

// StatusFetcher fetches the expanded detail of a project. It is
// implemented by *speechlab.Client and can be faked in tests.
type StatusFetcher interface {
	GetProject(ctx context.Context, projectID string) (*speechlab.ProjectDetail, error)
}

// Outcome is the result of a completed poll sequence.
type Outcome string

const (
	// OutcomeComplete means a COMPLETE status was observed.
	OutcomeComplete Outcome = "complete"

	// OutcomeFailed means the remote job reported FAILED.
	OutcomeFailed Outcome = "failed"

	// OutcomeTimeout means the attempt budget was exhausted without a
	// terminal status. The job may still complete later.
	OutcomeTimeout Outcome = "timeout"
)

// String returns the string representation of the outcome.
func (o Outcome) String() string {
	return string(o)
}

// PollResult describes how a poll sequence ended.
type PollResult struct {
	// Attempts is the number of status fetches performed.
	Attempts int

	// Outcome is the terminal poll outcome.
	Outcome Outcome

	// Status is the last status derived from a successful fetch.
	Status speechlab.Status

	// Detail is the last successfully fetched project payload, nil if
	// every fetch failed.
	Detail *speechlab.ProjectDetail
}

// Observer is a synchronous, side-effect-only hook invoked once per
// successful status fetch with the 1-based attempt index and the full
// payload. Observers cannot alter control flow; a panicking observer is
// recovered and logged, never propagated.
type Observer func(attempt int, detail *speechlab.ProjectDetail)

// Poller repeatedly queries a project's status at a fixed interval until
// a terminal state is observed or the attempt budget runs out.
type Poller struct {
	fetcher     StatusFetcher
	maxAttempts int
	delay       time.Duration
	observer    Observer
}

// PollerOption configures a Poller.
type PollerOption func(*Poller)

// WithMaxAttempts sets the attempt budget. Non-positive values keep the
// default.
func WithMaxAttempts(n int) PollerOption {
	return func(p *Poller) {
		if n > 0 {
			p.maxAttempts = n
		}
	}
}

// WithDelay sets the fixed delay between attempts. Negative values keep
// the default; zero is allowed and useful in tests.
func WithDelay(d time.Duration) PollerOption {
	return func(p *Poller) {
		if d >= 0 {
			p.delay = d
		}
	}
}

// WithObserver installs the per-attempt observer hook.
func WithObserver(fn Observer) PollerOption {
	return func(p *Poller) {
		p.observer = fn
	}
}

// NewPoller builds a Poller over the given status fetcher.
func NewPoller(fetcher StatusFetcher, opts ...PollerOption) *Poller {
	p := &Poller{
		fetcher:     fetcher,
		maxAttempts: DefaultMaxAttempts,
		delay:       DefaultDelay,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Wait polls the project until COMPLETE, FAILED, or budget exhaustion.
//
// A COMPLETE or FAILED status returns immediately on the attempt that
// observed it, without consuming the remaining budget. A transport error
// during a single attempt is logged and treated as a non-terminal
// status, consuming one attempt. The only error Wait itself returns is
// the context's, when it is cancelled between attempts.
func (p *Poller) Wait(ctx context.Context, projectID string) (*PollResult, error) {
	log.Printf("[speechlab] waiting for project %s to complete (max %d attempts, %s delay)",
		projectID, p.maxAttempts, p.delay)

	var last *speechlab.ProjectDetail
	status := speechlab.StatusUnknown

	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		detail, err := p.fetcher.GetProject(ctx, projectID)
		if err != nil {
			// Transient status-check failures must not abort the loop.
			log.Printf("[speechlab] poll %d/%d: status check failed: %v", attempt, p.maxAttempts, err)
			status = speechlab.StatusUnknown
		} else {
			last = detail
			status = detail.Status()
			p.observe(attempt, detail)

			switch status {
			case speechlab.StatusComplete:
				log.Printf("[speechlab] poll %d/%d: project complete", attempt, p.maxAttempts)
				return &PollResult{Attempts: attempt, Outcome: OutcomeComplete, Status: status, Detail: detail}, nil
			case speechlab.StatusFailed:
				log.Printf("[speechlab] poll %d/%d: project failed", attempt, p.maxAttempts)
				return &PollResult{Attempts: attempt, Outcome: OutcomeFailed, Status: status, Detail: detail}, nil
			}
			log.Printf("[speechlab] poll %d/%d: project status %s", attempt, p.maxAttempts, status)
		}

		if attempt == p.maxAttempts {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(p.delay):
		}
	}

	log.Printf("[speechlab] maximum attempts (%d) reached without completion", p.maxAttempts)
	return &PollResult{Attempts: p.maxAttempts, Outcome: OutcomeTimeout, Status: status, Detail: last}, nil
}

func (p *Poller) observe(attempt int, detail *speechlab.ProjectDetail) {
	if p.observer == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[speechlab] poll observer panicked on attempt %d: %v", attempt, r)
		}
	}()
	p.observer(attempt, detail)
}
