package domain

// Event type constants published on the event bus.
//
// Event types follow the pattern: <entity>.<action>
const (
	// EventTypeLootsAdmitted is published when new tips were stored by a poll cycle
	EventTypeLootsAdmitted = "loots.admitted"

	// EventTypeLootsCredited is published once per tip when its points were added to a viewer
	EventTypeLootsCredited = "loots.credited"

	// EventTypePrizeWon is published when a prize draw awarded a prize
	EventTypePrizeWon = "prize.won"
)
