package loots

import "time"

// Site paths, relative to the configured base URL
const (
	LoginPath      = "/pub/auth/login"
	AccountPath    = "/en/account"
	TipsPath       = "/api/v1/me/transactions/tips/broadcaster"
	LoginPageMark  = "/auth/login"
	TipsReferer    = "/en/account/tips/condensed/completed"
	AccountReferer = "/en/auth/login"
)

// Request headers the tips endpoint expects
const (
	HeaderAccessToken    = "loots-Access-Token"
	HeaderClientKey      = "loots-Client-Key"
	HeaderNonce          = "loots-Nonce"
	HeaderReferer        = "Referer"
	HeaderAccept         = "Accept"
	HeaderContentType    = "Content-Type"
	HeaderAcceptLanguage = "Accept-Language"
	HeaderCookie         = "Cookie"

	NonceValue          = "1"
	ContentTypeJSON     = "application/json"
	ContentTypeHTML     = "text/html"
	AcceptLanguageValue = "en-US,en;q=0.9"
)

// Account page markers
const (
	AttrDataEnv     = "data-env"
	AttrDataGlobals = "data-globals"
)

// Author normalization.
// Guest handles are wrapped by the site in a fixed-width prefix and suffix.
const (
	GuestPrefix      = "guest_"
	GuestTrimLeading = 6
	GuestTrimTrail   = 10
)

// TipTypeAuto marks automated tips that never earn points
const TipTypeAuto = "tip_auto"

// MaxResponseBytes bounds how much of a response body is read
const MaxResponseBytes = 4 << 20

// CreditLockKey names the lock shared by every caller of CreditUnpaid
const CreditLockKey = "loots:credit"

// DefaultHTTPTimeout applies when a nil client is supplied
const DefaultHTTPTimeout = 15 * time.Second

// Log messages
const (
	LogMsgLoginStarted        = "Logging into Loots"
	LogMsgLoginSucceeded      = "Loots session ready"
	LogMsgLoginFailed         = "Loots login failed"
	LogMsgSessionExpired      = "Loots session expired, logging in again"
	LogMsgFetchFailed         = "Could not request Loots tips"
	LogMsgParseFailed         = "Could not parse Loots response"
	LogMsgParseWarning        = "Skipped part of Loots response"
	LogMsgAdmitFailed         = "Could not store Loots tips"
	LogMsgTipsAdmitted        = "New Loots tips stored"
	LogMsgCreditFailed        = "Could not credit Loots tips"
	LogMsgTipCredited         = "Loots tip credited"
	LogMsgSelfTipSkipped      = "Skipping tip from channel owner"
	LogMsgChannelOffline      = "Channel offline, crediting postponed"
	LogMsgPublishFailed       = "Failed to publish Loots event"
	LogMsgProcessorStarted    = "Loots processor started"
	LogMsgProcessorStopped    = "Loots processor stopped"
	LogMsgRetryIntervalChange = "Loots retry interval changed"
	LogMsgLootsLinked         = "Loots name linked to viewer"
	LogMsgViewerLinkRaced     = "Viewer link vanished, storing tip unlinked"
)
