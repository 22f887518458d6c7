package loots

import (
	"context"
	"fmt"
	"strings"

	"github.com/osse101/FerretBot_Go/internal/domain"
	"github.com/osse101/FerretBot_Go/internal/logger"
	"github.com/osse101/FerretBot_Go/internal/repository"
)

// Linker maps Loots names to viewer logins
type Linker struct {
	viewers repository.Viewer
	cache   *ViewerCache
}

// NewLinker creates a Linker. The cache must be the one given to the Gate.
func NewLinker(viewers repository.Viewer, cache *ViewerCache) *Linker {
	return &Linker{viewers: viewers, cache: cache}
}

// Link maps lootsName to login and attaches the viewer to that name's
// unlinked tips. Returns the number of tips attached.
func (l *Linker) Link(ctx context.Context, lootsName, login string) (int64, error) {
	key := NameKey(lootsName)
	login = strings.ToLower(strings.TrimSpace(login))
	if key == "" || login == "" {
		return 0, fmt.Errorf("%w: loots name and login are required", domain.ErrInvalidInput)
	}

	attached, err := l.viewers.LinkLootsName(ctx, key, login)
	if err != nil {
		return 0, err
	}
	if l.cache != nil {
		l.cache.Add(key, login)
	}

	logger.FromContext(ctx).Info(LogMsgLootsLinked, "loots_name", key, "viewer", login, "attached", attached)
	return attached, nil
}
