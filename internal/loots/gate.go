package loots

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/FerretBot_Go/internal/domain"
	"github.com/osse101/FerretBot_Go/internal/event"
	"github.com/osse101/FerretBot_Go/internal/logger"
	"github.com/osse101/FerretBot_Go/internal/repository"
)

// ViewerCache maps normalized Loots names to viewer logins.
// An empty login records a known-unlinked name.
type ViewerCache = expirable.LRU[string, string]

// NewViewerCache creates the name lookup cache shared by Gate and Linker
func NewViewerCache(size int, ttl time.Duration) *ViewerCache {
	return expirable.NewLRU[string, string](size, nil, ttl)
}

// NameKey is the normalized lookup key of a Loots name
func NameKey(lootsName string) string {
	return strings.ToLower(strings.TrimSpace(lootsName))
}

// Gate admits parsed tips into storage, at most once per id
type Gate struct {
	loots   repository.Loots
	viewers repository.Viewer
	bus     event.Bus
	cache   *ViewerCache
	loc     *time.Location
	now     func() time.Time
}

// NewGate creates a Gate. A nil cache disables caching; a nil location means UTC.
func NewGate(loots repository.Loots, viewers repository.Viewer, bus event.Bus, cache *ViewerCache, loc *time.Location) *Gate {
	if loc == nil {
		loc = time.UTC
	}
	return &Gate{
		loots:   loots,
		viewers: viewers,
		bus:     bus,
		cache:   cache,
		loc:     loc,
		now:     time.Now,
	}
}

// Admit stores each candidate whose id is new and returns only those rows.
// Duplicate ids inside the batch collapse to the first occurrence.
func (g *Gate) Admit(ctx context.Context, candidates []domain.Loots) ([]domain.Loots, error) {
	log := logger.FromContext(ctx)

	seen := make(map[string]struct{}, len(candidates))
	var admitted []domain.Loots
	for _, candidate := range candidates {
		if candidate.ID == "" {
			continue
		}
		if _, dup := seen[candidate.ID]; dup {
			continue
		}
		seen[candidate.ID] = struct{}{}

		tip := candidate
		tip.Credited = false
		receivedAt := g.now().In(g.loc)
		tip.ReceivedAt = &receivedAt

		login, err := g.resolveViewer(ctx, tip.LootsName)
		if err != nil {
			return admitted, err
		}
		tip.ViewerLogin = login

		inserted, err := g.loots.InsertLoots(ctx, &tip)
		if errors.Is(err, domain.ErrViewerNotFound) {
			log.Warn(LogMsgViewerLinkRaced, "loots_id", tip.ID, "viewer", tip.ViewerLogin)
			g.forget(tip.LootsName)
			tip.ViewerLogin = ""
			inserted, err = g.loots.InsertLoots(ctx, &tip)
		}
		if err != nil {
			return admitted, fmt.Errorf("admit %s: %w", tip.ID, err)
		}
		if inserted {
			admitted = append(admitted, tip)
		}
	}

	if len(admitted) > 0 {
		ids := make([]string, len(admitted))
		for i, tip := range admitted {
			ids[i] = tip.ID
			log.Info(LogMsgTipsAdmitted, "tip", tip.String())
		}
		if g.bus != nil {
			if err := g.bus.Publish(ctx, event.NewLootsAdmittedEvent(ids)); err != nil {
				log.Warn(LogMsgPublishFailed, "type", event.LootsAdmitted, "error", err)
			}
		}
	}
	return admitted, nil
}

func (g *Gate) resolveViewer(ctx context.Context, lootsName string) (string, error) {
	key := NameKey(lootsName)
	if key == "" {
		return "", nil
	}
	if g.cache != nil {
		if login, ok := g.cache.Get(key); ok {
			return login, nil
		}
	}
	login, err := g.viewers.GetLoginByLootsName(ctx, key)
	if err != nil {
		return "", fmt.Errorf("resolve viewer for %q: %w", lootsName, err)
	}
	if g.cache != nil {
		g.cache.Add(key, login)
	}
	return login, nil
}

func (g *Gate) forget(lootsName string) {
	if g.cache != nil {
		g.cache.Remove(NameKey(lootsName))
	}
}
