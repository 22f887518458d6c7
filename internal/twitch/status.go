package twitch

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/osse101/FerretBot_Go/internal/logger"
)

// StreamLister lists the live streams of a channel
type StreamLister interface {
	GetStreams(ctx context.Context, login string) ([]Stream, error)
}

// StreamStatus reports whether a channel is live, remembering the answer for ttl
type StreamStatus struct {
	streams StreamLister
	channel string
	ttl     time.Duration
	now     func() time.Time

	mu      sync.Mutex
	checked time.Time
	live    bool
}

// NewStreamStatus creates a StreamStatus for channel
func NewStreamStatus(streams StreamLister, channel string, ttl time.Duration) *StreamStatus {
	return &StreamStatus{
		streams: streams,
		channel: strings.ToLower(strings.TrimPrefix(channel, "#")),
		ttl:     ttl,
		now:     time.Now,
	}
}

// IsLive reports whether the channel is streaming. Errors are not cached.
func (s *StreamStatus) IsLive(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if !s.checked.IsZero() && now.Sub(s.checked) < s.ttl {
		return s.live, nil
	}

	streams, err := s.streams.GetStreams(ctx, s.channel)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgStreamStatusFailed, "channel", s.channel, "error", err)
		return false, err
	}

	live := false
	for _, st := range streams {
		if st.Type == "" || st.Type == StreamTypeLive {
			live = true
			break
		}
	}
	s.live = live
	s.checked = now
	logger.FromContext(ctx).Debug(LogMsgStreamStatus, "channel", s.channel, "live", live)
	return live, nil
}
