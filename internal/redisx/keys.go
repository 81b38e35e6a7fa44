package redisx

import "time"

const (
	// Rendered-page cache: page:{path} -> cached body.
	// The revalidator deletes these when a mutation marks the path stale.
	KeyPage = "page:%s"

	// Session token -> user id.
	KeySession = "session:%s"

	// Password reset token -> user id.
	KeyResetToken = "reset:%s"

	// Dashboard stats snapshot for the admin overview.
	KeyDashboardStats = "stats:dashboard"

	// Dedup processed event ids per consumer: dedup:{service}:{event_id}.
	KeyDedup = "dedup:%s:%s"
)

var (
	TTLPage       = 10 * time.Minute
	TTLResetToken = 30 * time.Minute
	TTLStats      = 2 * time.Minute
	TTLDedup      = 48 * time.Hour
)
