package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeForeignKeyViolation is raised when a referenced viewer does not exist
	PgErrorCodeForeignKeyViolation = "23503"
)

// =============================================================================
// Advisory Locks
// =============================================================================

const (
	// PrizePoolLockName is hashed into the advisory lock key that serializes draws
	PrizePoolLockName = "prize_pools:draw"

	// HashMaskPositiveInt64 masks the MSB so advisory lock keys stay positive
	HashMaskPositiveInt64 = 0x7FFFFFFFFFFFFFFF

	// SQLAdvisoryLock acquires a PostgreSQL advisory transaction lock
	SQLAdvisoryLock = "SELECT pg_advisory_xact_lock($1)"
)

// =============================================================================
// Loots Queries
// =============================================================================

const (
	SQLInsertLoots = `
		INSERT INTO loots (id, message, loots_name, received_at, credited, viewer_login)
		VALUES ($1, $2, $3, $4, FALSE, $5)
		ON CONFLICT (id) DO NOTHING
	`

	SQLSelectLoots = `
		SELECT id, message, loots_name, received_at, credited, viewer_login
		FROM loots
		WHERE id = $1
	`

	SQLSelectUncreditedLoots = `
		SELECT id, message, loots_name, received_at, credited, viewer_login
		FROM loots
		WHERE credited = FALSE
		ORDER BY received_at NULLS FIRST, id
	`

	// SQLMarkLootsCredited only matches while the row is still uncredited,
	// so at most one transaction ever gets a row back
	SQLMarkLootsCredited = `
		UPDATE loots
		SET credited = TRUE
		WHERE id = $1 AND credited = FALSE
		RETURNING id
	`

	SQLAttachViewerToLoots = `
		UPDATE loots
		SET viewer_login = $2
		WHERE lower(loots_name) = $1 AND viewer_login IS NULL
	`
)

// =============================================================================
// Viewer Queries
// =============================================================================

const (
	SQLSelectViewer = `
		SELECT login, points, updated_at
		FROM viewers
		WHERE login = $1
	`

	SQLUpsertViewer = `
		INSERT INTO viewers (login)
		VALUES ($1)
		ON CONFLICT (login) DO UPDATE SET login = EXCLUDED.login
		RETURNING login, points, updated_at
	`

	SQLAddViewerPoints = `
		UPDATE viewers
		SET points = points + $2, updated_at = NOW()
		WHERE login = $1
		RETURNING points
	`

	SQLSelectLoginByLootsName = `
		SELECT viewer_login
		FROM viewer_loots_map
		WHERE loots_name = $1
	`

	SQLUpsertLootsLink = `
		INSERT INTO viewer_loots_map (loots_name, viewer_login)
		VALUES ($1, $2)
		ON CONFLICT (loots_name) DO UPDATE SET viewer_login = EXCLUDED.viewer_login
	`
)

// =============================================================================
// Prize Pool Queries
// =============================================================================

const (
	SQLSelectPrizePools = `
		SELECT type, chance, current_chance, prizes
		FROM prize_pools
		ORDER BY type
	`

	SQLSelectPrizePoolForUpdate = `
		SELECT type, chance, current_chance, prizes
		FROM prize_pools
		WHERE type = $1
		FOR UPDATE
	`

	SQLUpsertPrizePool = `
		INSERT INTO prize_pools (type, chance, current_chance, prizes)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (type) DO UPDATE
		SET chance = EXCLUDED.chance,
			current_chance = EXCLUDED.current_chance,
			prizes = EXCLUDED.prizes,
			updated_at = NOW()
	`
)

// Error Messages
const (
	ErrMsgFailedToBeginTransaction = "failed to begin transaction"
	ErrMsgFailedToAcquireLock      = "failed to acquire advisory lock"
	ErrMsgFailedToInsertLoots      = "failed to insert loots"
	ErrMsgFailedToGetLoots         = "failed to get loots"
	ErrMsgFailedToListLoots        = "failed to list uncredited loots"
	ErrMsgFailedToMarkCredited     = "failed to mark loots credited"
	ErrMsgFailedToGetViewer        = "failed to get viewer"
	ErrMsgFailedToUpsertViewer     = "failed to upsert viewer"
	ErrMsgFailedToAddPoints        = "failed to add points"
	ErrMsgFailedToGetLootsLink     = "failed to get loots link"
	ErrMsgFailedToLinkLoots        = "failed to link loots name"
	ErrMsgFailedToListPrizePools   = "failed to list prize pools"
	ErrMsgFailedToGetPrizePool     = "failed to get prize pool"
	ErrMsgFailedToSavePrizePool    = "failed to save prize pool"
	ErrMsgFailedToDecodePrizes     = "failed to decode prizes"
	ErrMsgFailedToCommit           = "failed to commit transaction"
)
