package recovery

import "context"

type RecoveryDayRepository interface {
	// Create persists a recovery day entry. Runs inside the conversion
	// transaction so the entry and the record flips commit together.
	Create(ctx context.Context, entry RecoveryDay) (RecoveryDay, error)
}
