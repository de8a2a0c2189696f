package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale is a ledger entry for one completed sale. Entries are
// append-only: never mutated, never deleted. SaleValue is captured at
// the moment of sale from the price observed inside the sale
// transaction; it is never recomputed from the game's current price.
type Sale struct {
	ID           uuid.UUID       `json:"id"`
	GameID       int64           `json:"game_id"`
	QuantitySold int             `json:"quantity_sold"`
	SaleValue    decimal.Decimal `json:"sale_value"`
	SoldAt       time.Time       `json:"sold_at"`
}
