package chat

import "time"

// Chat commands
const (
	CommandRoll = "!roll"
)

// Message formats
const (
	// BonusFormat is read by the channel's points bot
	BonusFormat      = "!bonus %s %d"
	PrizeWonFormat   = "Prize draw: %s (tier %d)!"
	RollWonFormat    = "@%s won %s!"
	RollLostFormat   = "@%s no prize this time, the odds just went up."
	RollFailedFormat = "@%s the prize draw is unavailable right now."
)

// Twitch badge names allowed to run privileged commands
const (
	BadgeBroadcaster = "broadcaster"
	BadgeModerator   = "moderator"
)

// CommandTimeout bounds work triggered by a single chat command
const CommandTimeout = 10 * time.Second

// Log messages
const (
	LogMsgConnecting      = "Connecting to Twitch chat"
	LogMsgConnectFailed   = "Twitch chat connection ended with error"
	LogMsgDisconnected    = "Disconnected from Twitch chat"
	LogMsgCommandDenied   = "Chat command denied"
	LogMsgRollFailed      = "Chat prize roll failed"
	LogMsgBadPayload      = "Ignoring event with unexpected payload"
	LogMsgBonusSent       = "Bonus message sent"
	LogMsgPrizeAnnounced  = "Prize announced"
	LogMsgDisabledNoCreds = "Twitch chat credentials not set; chat disabled"
)
