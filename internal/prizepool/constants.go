package prizepool

// Draw sources recorded on prize.won events
const (
	SourceAPI  = "api"
	SourceChat = "chat"
)

// MaxChance is the upper bound of a base chance, in percent
const MaxChance = 100.0

// Log messages
const (
	LogMsgRolling          = "Rolling prize draw"
	LogMsgRolled           = "Rolled prize pool"
	LogMsgPrizeWon         = "Prize won"
	LogMsgNoPrize          = "No prize this draw"
	LogMsgPoolRestored     = "Restoring prize pool from defaults"
	LogMsgDefaultTableUsed = "Prize table file not found, using built-in defaults"
	LogMsgPublishFailed    = "Failed to publish prize event"
)
