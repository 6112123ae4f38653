package postgresql

import (
	"context"

	"github.com/workpulse/attendance-backend-go/internal/pkg/database"
)

// GetQuerier returns the ambient transaction when one is running, the pool
// otherwise. Repositories call this so the same method works inside and
// outside WithinTransaction.
func GetQuerier(ctx context.Context, db *database.DB) database.Querier {
	if tx, ok := database.TxFromContext(ctx); ok {
		return tx
	}
	return db.Pool
}
