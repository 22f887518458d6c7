package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/FerretBot_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata map[string]interface{}

// Event represents a generic event in the system
type Event struct {
	ID       string    `json:"id"`
	Version  string    `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type      `json:"type"`
	Payload  any       `json:"payload"`
	Metadata Metadata  `json:"metadata,omitempty"`
	Time     time.Time `json:"time"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}
	return e.Metadata[key]
}

// Event types
const (
	LootsAdmitted Type = domain.EventTypeLootsAdmitted
	LootsCredited Type = domain.EventTypeLootsCredited
	PrizeWon      Type = domain.EventTypePrizeWon
)

// LootsAdmittedPayloadV1 is the typed payload for admitted tip batches
type LootsAdmittedPayloadV1 struct {
	IDs   []string `json:"ids"`
	Count int      `json:"count"`
}

// LootsCreditedPayloadV1 is the typed payload for a credited tip
type LootsCreditedPayloadV1 struct {
	LootsID     string `json:"loots_id"`
	ViewerLogin string `json:"viewer_login"`
	Points      int64  `json:"points"`
	Timestamp   int64  `json:"timestamp"`
}

// PrizeWonPayloadV1 is the typed payload for a prize draw win
type PrizeWonPayloadV1 struct {
	PoolType  int    `json:"pool_type"`
	PrizeName string `json:"prize_name"`
	Source    string `json:"source,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

func newEvent(t Type, payload any, metadata Metadata) Event {
	now := time.Now()
	return Event{
		ID:       uuid.NewString(),
		Version:  EventSchemaVersion,
		Type:     t,
		Payload:  payload,
		Metadata: metadata,
		Time:     now,
	}
}

// NewLootsAdmittedEvent creates an event for a batch of newly stored tips
func NewLootsAdmittedEvent(ids []string) Event {
	return newEvent(LootsAdmitted, LootsAdmittedPayloadV1{
		IDs:   ids,
		Count: len(ids),
	}, nil)
}

// NewLootsCreditedEvent creates a new loots credited event
func NewLootsCreditedEvent(lootsID, viewerLogin string, points int64) Event {
	return newEvent(LootsCredited, LootsCreditedPayloadV1{
		LootsID:     lootsID,
		ViewerLogin: viewerLogin,
		Points:      points,
		Timestamp:   time.Now().Unix(),
	}, nil)
}

// NewPrizeWonEvent creates a new prize won event. Source names the caller
// that triggered the draw (chat, api).
func NewPrizeWonEvent(poolType int, prizeName, source string) Event {
	return newEvent(PrizeWon, PrizeWonPayloadV1{
		PoolType:  poolType,
		PrizeName: prizeName,
		Source:    source,
		Timestamp: time.Now().Unix(),
	}, Metadata{"source": source})
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers.
// Handlers run synchronously in subscription order.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[event.Type]...)
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
