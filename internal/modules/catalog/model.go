package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// Game is a sellable catalog entry with a stock count and unit price.
type Game struct {
	ID        int64           `json:"id"`
	Title     string          `json:"title"`
	Developer string          `json:"developer"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Seed returns the fixed default games restored by a catalog reset and
// used as the demo fixture state.
func Seed() []Game {
	return []Game{
		{Title: "The Legend of Zelda™: Echoes of Wisdom", Developer: "Nintendo", Quantity: 20, Price: decimal.NewFromFloat(299.0)},
		{Title: "ASTRO BOT", Developer: "Team Asobi", Quantity: 15, Price: decimal.NewFromFloat(299.9)},
		{Title: "SILENT HILL 2", Developer: "Konami", Quantity: 10, Price: decimal.NewFromFloat(349.9)},
	}
}
