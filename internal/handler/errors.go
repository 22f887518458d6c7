package handler

// Generic HTTP error messages for client responses.
// These never carry internal error details.
const (
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgMissingQueryParam     = "Missing %s query parameter"

	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgInvalidRequestError = "Invalid request. Please check your inputs."

	ErrMsgViewerNotFoundError    = "Viewer not found"
	ErrMsgLootsNotFoundError     = "Tip not found"
	ErrMsgPoolNotConfiguredError = "Prize pool is not configured"
	ErrMsgPrizeNotFoundError     = "Prize not found"
)

// Success messages for API responses
const (
	MsgNoPrize      = "No prize this time"
	MsgPrizeWon     = "Prize won"
	MsgLootsLinked  = "Loots name linked"
	MsgTipsCredited = "Uncredited tips processed"
)

// Operation names used in logs
const (
	OpRollPrize   = "Roll prize"
	OpListPrizes  = "List prizes"
	OpSetChance   = "Set prize chance"
	OpConsume     = "Consume prize"
	OpCreditLoots = "Credit loots"
	OpListUnpaid  = "List unpaid loots"
	OpLinkLoots   = "Link loots name"
)
