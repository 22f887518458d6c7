package loots

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/osse101/FerretBot_Go/internal/domain"
	"github.com/osse101/FerretBot_Go/internal/logger"
	"github.com/osse101/FerretBot_Go/internal/metrics"
)

// Authenticator owns the Loots session
type Authenticator interface {
	Login(ctx context.Context) (SessionState, error)
	State() SessionState
	Invalidate()
}

// TipFetcher performs one tips request
type TipFetcher interface {
	FetchOnce(ctx context.Context, session SessionState) ([]byte, error)
}

// TipAdmitter stores new tips
type TipAdmitter interface {
	Admit(ctx context.Context, candidates []domain.Loots) ([]domain.Loots, error)
}

// UnpaidCrediter pays points for stored tips
type UnpaidCrediter interface {
	CreditUnpaid(ctx context.Context) (*CreditResult, error)
}

// Processor is the polling worker. One goroutine runs cycles back to back,
// sleeping for the backoff interval in between.
type Processor struct {
	session  Authenticator
	fetcher  TipFetcher
	gate     TipAdmitter
	crediter UnpaidCrediter
	backoff  *Backoff

	stopped  atomic.Bool
	stopOnce sync.Once
	wake     chan struct{}
	done     chan struct{}
	started  atomic.Bool
}

// NewProcessor wires the worker. A nil crediter only ingests.
func NewProcessor(session Authenticator, fetcher TipFetcher, gate TipAdmitter, crediter UnpaidCrediter, backoff *Backoff) *Processor {
	return &Processor{
		session:  session,
		fetcher:  fetcher,
		gate:     gate,
		crediter: crediter,
		backoff:  backoff,
		wake:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the polling goroutine. Calling it twice is a no-op.
func (p *Processor) Start(ctx context.Context) {
	if !p.started.CompareAndSwap(false, true) {
		return
	}
	go p.run(ctx)
}

// Stop asks the worker to exit after its current cycle.
// A pending backoff sleep is cut short.
func (p *Processor) Stop() {
	p.stopped.Store(true)
	p.stopOnce.Do(func() { close(p.wake) })
}

// Done is closed once the worker has exited
func (p *Processor) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the worker exits or ctx ends
func (p *Processor) Wait(ctx context.Context) error {
	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Interval returns the current wait between polls
func (p *Processor) Interval() time.Duration {
	return p.backoff.Interval()
}

func (p *Processor) run(ctx context.Context) {
	defer close(p.done)
	log := logger.FromContext(ctx)
	log.Info(LogMsgProcessorStarted, "interval", p.backoff.Interval())
	defer log.Info(LogMsgProcessorStopped)

	for {
		if p.stopped.Load() || ctx.Err() != nil {
			return
		}

		_ = p.RunCycle(ctx)

		if p.stopped.Load() {
			return
		}
		interval := p.backoff.Interval()
		metrics.LootsRetryInterval.Set(interval.Seconds())

		timer := time.NewTimer(interval)
		select {
		case <-timer.C:
		case <-p.wake:
			timer.Stop()
			return
		case <-ctx.Done():
			timer.Stop()
			return
		}
	}
}

// RunCycle performs one poll: ensure a session, fetch, parse, admit and
// credit. The returned error is informational; the worker never exits on it.
func (p *Processor) RunCycle(ctx context.Context) error {
	log := logger.FromContext(ctx)

	session := p.session.State()
	if !session.Valid() {
		var err error
		session, err = p.session.Login(ctx)
		if err != nil {
			p.increase(ctx)
			metrics.LootsPollsTotal.WithLabelValues(metrics.OutcomeFailure).Inc()
			return err
		}
	}

	body, err := p.fetcher.FetchOnce(ctx, session)
	if errors.Is(err, ErrSessionExpired) {
		log.Info(LogMsgSessionExpired, "reason", err)
		metrics.LootsPollsTotal.WithLabelValues(metrics.OutcomeSessionExpired).Inc()
		p.session.Invalidate()
		if _, loginErr := p.session.Login(ctx); loginErr != nil {
			p.increase(ctx)
			return errors.Join(err, loginErr)
		}
		return err
	}
	if err != nil {
		log.Warn(LogMsgFetchFailed, "error", err)
		metrics.LootsPollsTotal.WithLabelValues(metrics.OutcomeFetchError).Inc()
		p.increase(ctx)
		return err
	}

	batch, err := Parse(body)
	if err != nil {
		log.Warn(LogMsgParseFailed, "error", err)
		metrics.LootsPollsTotal.WithLabelValues(metrics.OutcomeParseError).Inc()
		p.increase(ctx)
		return err
	}
	p.reset(ctx)
	for _, w := range batch.Warnings {
		log.Warn(LogMsgParseWarning, "error", w)
	}

	if _, err := p.gate.Admit(ctx, batch.Candidates()); err != nil {
		log.Error(LogMsgAdmitFailed, "error", err)
		metrics.LootsPollsTotal.WithLabelValues(metrics.OutcomeStoreError).Inc()
		return err
	}
	metrics.LootsPollsTotal.WithLabelValues(metrics.OutcomeOK).Inc()

	if p.crediter != nil {
		if _, err := p.crediter.CreditUnpaid(ctx); err != nil {
			log.Error(LogMsgCreditFailed, "error", err)
			return err
		}
	}
	return nil
}

func (p *Processor) increase(ctx context.Context) {
	before := p.backoff.Interval()
	after := p.backoff.Increase()
	if after != before {
		logger.FromContext(ctx).Info(LogMsgRetryIntervalChange, "interval", after)
	}
}

func (p *Processor) reset(ctx context.Context) {
	before := p.backoff.Interval()
	after := p.backoff.Reset()
	if after != before {
		logger.FromContext(ctx).Info(LogMsgRetryIntervalChange, "interval", after)
	}
}
