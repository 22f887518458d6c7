package metrics

import (
	"context"
	"strconv"

	"github.com/osse101/FerretBot_Go/internal/event"
	"github.com/osse101/FerretBot_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	for _, eventType := range []event.Type{event.LootsAdmitted, event.LootsCredited, event.PrizeWon} {
		bus.Subscribe(eventType, e.HandleEvent)
	}
	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.LootsAdmitted:
		p, err := event.DecodePayload[event.LootsAdmittedPayloadV1](evt.Payload)
		if err != nil {
			logger.FromContext(ctx).Debug(LogMsgUnexpectedPayload, "type", evt.Type, "error", err)
			return nil
		}
		LootsAdmittedTotal.Add(float64(p.Count))
	case event.LootsCredited:
		p, err := event.DecodePayload[event.LootsCreditedPayloadV1](evt.Payload)
		if err != nil {
			logger.FromContext(ctx).Debug(LogMsgUnexpectedPayload, "type", evt.Type, "error", err)
			return nil
		}
		LootsCreditedTotal.Inc()
		LootsPointsCredited.Add(float64(p.Points))
	case event.PrizeWon:
		p, err := event.DecodePayload[event.PrizeWonPayloadV1](evt.Payload)
		if err != nil {
			logger.FromContext(ctx).Debug(LogMsgUnexpectedPayload, "type", evt.Type, "error", err)
			return nil
		}
		PrizesWonTotal.WithLabelValues(strconv.Itoa(p.PoolType)).Inc()
	}
	return nil
}
