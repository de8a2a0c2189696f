package catalog

import "context"

// Repository defines game catalog storage. It is the sole writer of
// game records; all mutations of a single game are mutually exclusive
// with each other, and Reset is exclusive with every in-flight
// mutation.
type Repository interface {
	// Insert stores a new game, assigning the next id. Returns
	// apperr.ErrDuplicate when (title, developer) collides with a live
	// record under case-insensitive comparison.
	Insert(ctx context.Context, g *Game) error

	// GetByID returns apperr.ErrNotFound for unknown ids.
	GetByID(ctx context.Context, id int64) (*Game, error)

	// List returns all games in insertion order.
	List(ctx context.Context) ([]*Game, error)

	// Update applies fn to the current record while it is exclusively
	// locked, then commits the result. If fn returns an error nothing
	// is applied.
	Update(ctx context.Context, id int64, fn func(*Game) error) (*Game, error)

	// Delete removes a game. Prior sale records keep referencing its id.
	Delete(ctx context.Context, id int64) error

	// Reset atomically clears the catalog and restores the seed set,
	// blocking until no other mutation is in flight.
	Reset(ctx context.Context) ([]*Game, error)
}
