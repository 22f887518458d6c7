package event

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/FerretBot_Go/internal/logger"
)

// ResilientPublisher wraps a Bus and retries failed publishes in the background.
// Events that still fail after MaxRetries go to the dead-letter writer.
type ResilientPublisher struct {
	inner      Bus
	deadLetter *DeadLetterWriter
	maxRetries int
	baseDelay  time.Duration

	stop chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

// NewResilientPublisher creates a new ResilientPublisher.
// An empty deadLetterPath disables dead-lettering.
func NewResilientPublisher(inner Bus, maxRetries int, baseDelay time.Duration, deadLetterPath string) (*ResilientPublisher, error) {
	var deadLetter *DeadLetterWriter
	if deadLetterPath != "" {
		dlw, err := NewDeadLetterWriter(deadLetterPath)
		if err != nil {
			return nil, err
		}
		deadLetter = dlw
	}
	if maxRetries <= 0 {
		maxRetries = RetryMaxAttempts
	}
	if baseDelay <= 0 {
		baseDelay = RetryInitialDelaySeconds * time.Second
	}
	return &ResilientPublisher{
		inner:      inner,
		deadLetter: deadLetter,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		stop:       make(chan struct{}),
	}, nil
}

// Publish delivers the event once synchronously. On failure it schedules
// retries and returns nil; the caller never sees handler errors.
func (p *ResilientPublisher) Publish(ctx context.Context, event Event) error {
	err := p.inner.Publish(ctx, event)
	if err == nil {
		return nil
	}

	logger.FromContext(ctx).Warn(LogMsgEventPublishFailed,
		"event_type", event.Type,
		"event_id", event.ID,
		"error", err)

	p.wg.Add(1)
	go p.retryLoop(event, err)
	return nil
}

func (p *ResilientPublisher) retryLoop(event Event, lastErr error) {
	defer p.wg.Done()
	log := logger.FromContext(context.Background())

	for attempt := 1; attempt <= p.maxRetries; attempt++ {
		timer := time.NewTimer(CalculateRetryDelay(p.baseDelay, attempt))
		select {
		case <-p.stop:
			timer.Stop()
			log.Warn(LogMsgEventDroppedStop, "event_type", event.Type, "attempt", attempt)
			p.writeDeadLetter(event, attempt-1, lastErr)
			return
		case <-timer.C:
		}

		lastErr = p.inner.Publish(context.Background(), event)
		if lastErr == nil {
			log.Info(LogMsgEventRetrySucceeded, "event_type", event.Type, "attempt", attempt)
			return
		}
		log.Warn(LogMsgEventRetryFailed, "event_type", event.Type, "attempt", attempt, "error", lastErr)
	}

	log.Error(LogMsgEventRetryExhausted, "event_type", event.Type, "attempts", p.maxRetries)
	p.writeDeadLetter(event, p.maxRetries, lastErr)
}

func (p *ResilientPublisher) writeDeadLetter(event Event, attempts int, lastErr error) {
	if p.deadLetter == nil {
		return
	}
	if err := p.deadLetter.Write(event, attempts, lastErr); err != nil {
		logger.FromContext(context.Background()).Error(LogMsgDeadLetterFailed, "error", err)
	}
}

// Subscribe delegates to the inner bus
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.inner.Subscribe(eventType, handler)
}

// Shutdown stops pending retries and waits for them to flush to the dead letter
func (p *ResilientPublisher) Shutdown(ctx context.Context) error {
	p.once.Do(func() { close(p.stop) })

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		if p.deadLetter != nil {
			return p.deadLetter.Close()
		}
		return nil
	case <-ctx.Done():
		logger.FromContext(ctx).Warn(LogMsgShutdownTimeout)
		return ctx.Err()
	}
}
