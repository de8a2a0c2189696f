// Package memory implements the catalog and sale-ledger repositories on
// shared in-process state. It backs the console front-end and the unit
// tests.
//
// Locking model: every game lives in its own slot with its own mutex,
// so sells on different games proceed in parallel. Structural mutations
// (insert, delete, update, reset) take the store-wide write lock;
// reads and sells take the read lock plus the slot mutex. Reset
// therefore acts as a global barrier: it waits for every in-flight
// mutation and blocks new ones until the seed set is restored.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vpalhares/gamestock-backend/internal/apperr"
	"github.com/vpalhares/gamestock-backend/internal/modules/catalog"
	"github.com/vpalhares/gamestock-backend/internal/modules/sales"
	"github.com/vpalhares/gamestock-backend/internal/validate"
)

type slot struct {
	mu sync.Mutex
	g  catalog.Game
}

// Store owns all mutable state shared by the two repository views.
type Store struct {
	mu     sync.RWMutex
	games  map[int64]*slot
	order  []int64
	nextID int64

	salesMu sync.Mutex
	sales   []*sales.Sale
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{games: make(map[int64]*slot)}
}

// NewSeededStore returns a store holding the default catalog.
func NewSeededStore() *Store {
	s := NewStore()
	for _, g := range catalog.Seed() {
		item := g
		s.insert(&item)
	}
	return s
}

// Games returns the catalog repository view of the store.
func (s *Store) Games() catalog.Repository { return gamesRepo{s} }

// Sales returns the sale-ledger repository view of the store.
func (s *Store) Sales() sales.Repository { return salesRepo{s} }

func cloneGame(g catalog.Game) *catalog.Game {
	c := g
	return &c
}

// insert assumes s.mu is not held by the caller.
func (s *Store) insert(g *catalog.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.order {
		other := &s.games[id].g
		if validate.SameGame(g.Title, g.Developer, other.Title, other.Developer) {
			return apperr.ErrDuplicate
		}
	}

	s.nextID++
	now := time.Now().UTC()
	g.ID = s.nextID
	g.CreatedAt = now
	g.UpdatedAt = now
	s.games[g.ID] = &slot{g: *g}
	s.order = append(s.order, g.ID)
	return nil
}

func (s *Store) getByID(id int64) (*catalog.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sl, ok := s.games[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	sl.mu.Lock()
	defer sl.mu.Unlock()
	return cloneGame(sl.g), nil
}

func (s *Store) list() []*catalog.Game {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*catalog.Game, 0, len(s.order))
	for _, id := range s.order {
		sl := s.games[id]
		sl.mu.Lock()
		out = append(out, cloneGame(sl.g))
		sl.mu.Unlock()
	}
	return out
}

func (s *Store) update(id int64, fn func(*catalog.Game) error) (*catalog.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sl, ok := s.games[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}

	next := sl.g
	if err := fn(&next); err != nil {
		return nil, err
	}
	next.ID = sl.g.ID
	next.CreatedAt = sl.g.CreatedAt

	for _, otherID := range s.order {
		if otherID == id {
			continue
		}
		other := &s.games[otherID].g
		if validate.SameGame(next.Title, next.Developer, other.Title, other.Developer) {
			return nil, apperr.ErrDuplicate
		}
	}

	next.UpdatedAt = time.Now().UTC()
	sl.g = next
	return cloneGame(next), nil
}

func (s *Store) delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.games[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(s.games, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Store) reset() []*catalog.Game {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.games = make(map[int64]*slot)
	s.order = nil
	s.nextID = 0

	seeded := make([]*catalog.Game, 0, len(catalog.Seed()))
	now := time.Now().UTC()
	for _, g := range catalog.Seed() {
		s.nextID++
		g.ID = s.nextID
		g.CreatedAt = now
		g.UpdatedAt = now
		s.games[g.ID] = &slot{g: g}
		s.order = append(s.order, g.ID)
		seeded = append(seeded, cloneGame(g))
	}
	return seeded
}

// recordSale holds the slot mutex across check, decrement and ledger
// append, making the sale atomic with respect to any other sell or
// update on the same game.
func (s *Store) recordSale(gameID int64, quantity int) (*catalog.Game, *sales.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sl, ok := s.games[gameID]
	if !ok {
		return nil, nil, apperr.ErrNotFound
	}

	sl.mu.Lock()
	defer sl.mu.Unlock()

	if sl.g.Quantity < quantity {
		return nil, nil, apperr.ErrInsufficientStock
	}

	sl.g.Quantity -= quantity
	sl.g.UpdatedAt = time.Now().UTC()

	sale := &sales.Sale{
		ID:           uuid.New(),
		GameID:       gameID,
		QuantitySold: quantity,
		SaleValue:    sl.g.Price.Mul(decimal.NewFromInt(int64(quantity))),
		SoldAt:       time.Now().UTC(),
	}

	s.salesMu.Lock()
	s.sales = append(s.sales, sale)
	s.salesMu.Unlock()

	return cloneGame(sl.g), sale, nil
}

func (s *Store) listSales() []*sales.Sale {
	s.salesMu.Lock()
	defer s.salesMu.Unlock()

	out := make([]*sales.Sale, 0, len(s.sales))
	for _, sale := range s.sales {
		c := *sale
		out = append(out, &c)
	}
	return out
}

type gamesRepo struct{ s *Store }

var _ catalog.Repository = gamesRepo{}

func (r gamesRepo) Insert(ctx context.Context, g *catalog.Game) error {
	_ = ctx
	return r.s.insert(g)
}

func (r gamesRepo) GetByID(ctx context.Context, id int64) (*catalog.Game, error) {
	_ = ctx
	return r.s.getByID(id)
}

func (r gamesRepo) List(ctx context.Context) ([]*catalog.Game, error) {
	_ = ctx
	return r.s.list(), nil
}

func (r gamesRepo) Update(ctx context.Context, id int64, fn func(*catalog.Game) error) (*catalog.Game, error) {
	_ = ctx
	return r.s.update(id, fn)
}

func (r gamesRepo) Delete(ctx context.Context, id int64) error {
	_ = ctx
	return r.s.delete(id)
}

func (r gamesRepo) Reset(ctx context.Context) ([]*catalog.Game, error) {
	_ = ctx
	return r.s.reset(), nil
}

type salesRepo struct{ s *Store }

var _ sales.Repository = salesRepo{}

func (r salesRepo) RecordSale(ctx context.Context, gameID int64, quantity int) (*catalog.Game, *sales.Sale, error) {
	_ = ctx
	return r.s.recordSale(gameID, quantity)
}

func (r salesRepo) List(ctx context.Context) ([]*sales.Sale, error) {
	_ = ctx
	return r.s.listSales(), nil
}
