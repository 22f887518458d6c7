package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished = "events_published_total"
)

// Loots pipeline metric names
const (
	MetricNameLootsPollsTotal       = "loots_polls_total"
	MetricNameLootsPollDuration     = "loots_poll_duration_seconds"
	MetricNameLootsLoginsTotal      = "loots_logins_total"
	MetricNameLootsRetryInterval    = "loots_retry_interval_seconds"
	MetricNameLootsAdmittedTotal    = "loots_admitted_total"
	MetricNameLootsCreditedTotal    = "loots_credited_total"
	MetricNameLootsPointsCredited   = "loots_points_credited_total"
	MetricNameLootsCreditSkipsTotal = "loots_credit_skips_total"
)

// Prize draw metric names
const (
	MetricNamePrizeDrawsTotal = "prize_draws_total"
	MetricNamePrizesWonTotal  = "prizes_won_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"

	HelpTextEventsPublished = "Total number of events published"

	HelpTextLootsPollsTotal       = "Loots poll cycles by outcome"
	HelpTextLootsPollDuration     = "Loots poll request latency in seconds"
	HelpTextLootsLoginsTotal      = "Loots login attempts by outcome"
	HelpTextLootsRetryInterval    = "Current Loots poll interval in seconds"
	HelpTextLootsAdmittedTotal    = "Tips stored for the first time"
	HelpTextLootsCreditedTotal    = "Tips credited to a viewer balance"
	HelpTextLootsPointsCredited   = "Points added to viewer balances from tips"
	HelpTextLootsCreditSkipsTotal = "Uncredited tips skipped by reason"

	HelpTextPrizeDrawsTotal = "Prize draws by outcome"
	HelpTextPrizesWonTotal  = "Prizes awarded by pool type"
)

// ============================================================================
// Labels
// ============================================================================

const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelType    = "type"
	LabelOutcome = "outcome"
	LabelReason  = "reason"
	LabelPool    = "pool"
)

// Poll outcomes
const (
	OutcomeOK             = "ok"
	OutcomeSessionExpired = "session_expired"
	OutcomeFetchError     = "fetch_error"
	OutcomeParseError     = "parse_error"
	OutcomeStoreError     = "store_error"
	OutcomeSuccess        = "success"
	OutcomeFailure        = "failure"
	OutcomeWin            = "win"
	OutcomeNone           = "none"
	OutcomeError          = "error"
)

// Credit skip reasons
const (
	ReasonUnlinked        = "unlinked"
	ReasonSelf            = "self"
	ReasonAlreadyCredited = "already_credited"
	ReasonOffline         = "offline"
)

// HTTPLatencyBuckets are the histogram buckets for request latency in seconds
var HTTPLatencyBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 15}

// Log messages
const (
	LogMsgUnexpectedPayload = "Unexpected event payload for metrics"
)
