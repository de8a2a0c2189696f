package sales

import (
	"context"

	"github.com/vpalhares/gamestock-backend/internal/modules/catalog"
)

// Repository is the sale ledger plus the storage half of the sale
// transaction.
type Repository interface {
	// RecordSale executes the sale as one atomic unit: lock the game,
	// check stock sufficiency, decrement, append the ledger entry.
	// Returns apperr.ErrNotFound for an unknown game and
	// apperr.ErrInsufficientStock when stock would go negative; on any
	// failure no state changes and no ledger entry exists.
	RecordSale(ctx context.Context, gameID int64, quantity int) (*catalog.Game, *Sale, error)

	// List returns all sales in insertion order.
	List(ctx context.Context) ([]*Sale, error)
}
