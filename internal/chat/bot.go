// Package chat connects the bot to the channel's Twitch chat. It relays
// points credits to the channel's points bot, announces prizes and serves
// the moderator prize draw command.
package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	twitch "github.com/gempir/go-twitch-irc/v4"

	"github.com/osse101/FerretBot_Go/internal/event"
	"github.com/osse101/FerretBot_Go/internal/logger"
	"github.com/osse101/FerretBot_Go/internal/prizepool"
)

// IRC is the subset of *twitch.Client the bot drives
type IRC interface {
	Say(channel, text string)
	Join(channels ...string)
	Connect() error
	Disconnect() error
	OnPrivateMessage(callback func(message twitch.PrivateMessage))
}

// Roller runs a prize draw
type Roller interface {
	RollPrize(ctx context.Context, source string) (*prizepool.DrawResult, error)
}

// Bot relays bus events to chat and answers chat commands
type Bot struct {
	irc     IRC
	channel string
	roller  Roller

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// NewBot creates a bot for channel. roller may be nil to disable !roll.
func NewBot(irc IRC, channel string, roller Roller) *Bot {
	return &Bot{
		irc:     irc,
		channel: strings.ToLower(strings.TrimPrefix(channel, "#")),
		roller:  roller,
		ctx:     context.Background(),
	}
}

// NewTwitchClient creates an IRC client authenticated as username
func NewTwitchClient(username, oauthToken string) *twitch.Client {
	return twitch.NewClient(username, oauthToken)
}

// Register subscribes the bot to the events it relays
func (b *Bot) Register(bus event.Bus) {
	bus.Subscribe(event.LootsCredited, b.handleLootsCredited)
	bus.Subscribe(event.PrizeWon, b.handlePrizeWon)
}

// Start joins the channel and connects in the background.
// The connection is closed when ctx ends or Stop is called.
func (b *Bot) Start(ctx context.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.done != nil {
		return
	}

	b.ctx, b.cancel = context.WithCancel(ctx)
	b.done = make(chan struct{})
	b.irc.OnPrivateMessage(b.handleMessage)
	b.irc.Join(b.channel)

	runCtx := b.ctx
	done := b.done
	go func() {
		defer close(done)
		slog.Info(LogMsgConnecting, "channel", b.channel)
		// Connect blocks until Disconnect
		errCh := make(chan error, 1)
		go func() { errCh <- b.irc.Connect() }()

		select {
		case <-runCtx.Done():
			_ = b.irc.Disconnect()
		case err := <-errCh:
			if err != nil && !errors.Is(err, twitch.ErrClientDisconnected) {
				slog.Error(LogMsgConnectFailed, "error", err)
			}
		}
		slog.Info(LogMsgDisconnected, "channel", b.channel)
	}()
}

// Stop disconnects and waits for the connection goroutine to exit
func (b *Bot) Stop() {
	b.mu.Lock()
	cancel, done := b.cancel, b.done
	b.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// BonusMessage is the chat line that credits points through the points bot
func BonusMessage(login string, points int64) string {
	return fmt.Sprintf(BonusFormat, login, points)
}

func (b *Bot) handleLootsCredited(ctx context.Context, evt event.Event) error {
	p, err := event.DecodePayload[event.LootsCreditedPayloadV1](evt.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgBadPayload, "type", evt.Type, "error", err)
		return nil
	}
	b.irc.Say(b.channel, BonusMessage(p.ViewerLogin, p.Points))
	logger.FromContext(ctx).Info(LogMsgBonusSent, "login", p.ViewerLogin, "points", p.Points, "loots_id", p.LootsID)
	return nil
}

// handlePrizeWon announces draws made outside chat; chat draws reply directly
func (b *Bot) handlePrizeWon(ctx context.Context, evt event.Event) error {
	p, err := event.DecodePayload[event.PrizeWonPayloadV1](evt.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgBadPayload, "type", evt.Type, "error", err)
		return nil
	}
	if p.Source == prizepool.SourceChat {
		return nil
	}
	b.irc.Say(b.channel, fmt.Sprintf(PrizeWonFormat, p.PrizeName, p.PoolType))
	logger.FromContext(ctx).Info(LogMsgPrizeAnnounced, "prize", p.PrizeName, "pool_type", p.PoolType)
	return nil
}

func (b *Bot) handleMessage(msg twitch.PrivateMessage) {
	fields := strings.Fields(msg.Message)
	if len(fields) == 0 {
		return
	}

	switch strings.ToLower(fields[0]) {
	case CommandRoll:
		if !isPrivileged(msg.User) {
			slog.Debug(LogMsgCommandDenied, "command", CommandRoll, "user", msg.User.Name)
			return
		}
		target := msg.User.Name
		if len(fields) > 1 {
			target = strings.TrimPrefix(fields[1], "@")
		}
		b.roll(msg.Channel, target)
	}
}

func (b *Bot) roll(channel, target string) {
	if b.roller == nil {
		return
	}
	b.mu.Lock()
	parent := b.ctx
	b.mu.Unlock()

	ctx, cancel := context.WithTimeout(parent, CommandTimeout)
	defer cancel()

	result, err := b.roller.RollPrize(ctx, prizepool.SourceChat)
	if err != nil {
		slog.Error(LogMsgRollFailed, "error", err, "target", target)
		b.irc.Say(channel, fmt.Sprintf(RollFailedFormat, target))
		return
	}
	if !result.Won() {
		b.irc.Say(channel, fmt.Sprintf(RollLostFormat, target))
		return
	}
	b.irc.Say(channel, fmt.Sprintf(RollWonFormat, target, result.Prize.Name))
}

func isPrivileged(u twitch.User) bool {
	return u.Badges[BadgeBroadcaster] > 0 || u.Badges[BadgeModerator] > 0
}
