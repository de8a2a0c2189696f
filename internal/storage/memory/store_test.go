package memory

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/vpalhares/gamestock-backend/internal/apperr"
	"github.com/vpalhares/gamestock-backend/internal/modules/catalog"
)

func newGame(title, developer string, quantity int, price float64) *catalog.Game {
	return &catalog.Game{
		Title:     title,
		Developer: developer,
		Quantity:  quantity,
		Price:     decimal.NewFromFloat(price),
	}
}

func TestInsertAssignsMonotonicIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Games()

	a := newGame("Echoes", "N", 20, 299.0)
	b := newGame("ASTRO BOT", "Team Asobi", 15, 299.9)
	require.NoError(t, repo.Insert(ctx, a))
	require.NoError(t, repo.Insert(ctx, b))

	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, int64(2), b.ID)

	games, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.Equal(t, "Echoes", games[0].Title)
	assert.Equal(t, "ASTRO BOT", games[1].Title)
}

func TestInsertRejectsCaseInsensitiveDuplicate(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Games()

	require.NoError(t, repo.Insert(ctx, newGame("Silent Hill 2", "Konami", 10, 349.9)))
	err := repo.Insert(ctx, newGame("SILENT HILL 2", "konami", 5, 100.0))
	assert.ErrorIs(t, err, apperr.ErrDuplicate)

	games, _ := repo.List(ctx)
	assert.Len(t, games, 1)
}

func TestDeleteThenGetNotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Games()

	g := newGame("Echoes", "N", 20, 299.0)
	require.NoError(t, repo.Insert(ctx, g))
	require.NoError(t, repo.Delete(ctx, g.ID))

	_, err := repo.GetByID(ctx, g.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, g.ID), apperr.ErrNotFound)
}

func TestResetRestoresSeedAndKeepsLedger(t *testing.T) {
	ctx := context.Background()
	store := NewSeededStore()

	_, _, err := store.Sales().RecordSale(ctx, 1, 5)
	require.NoError(t, err)
	require.NoError(t, store.Games().Insert(ctx, newGame("Extra", "Someone", 1, 10.0)))

	seeded, err := store.Games().Reset(ctx)
	require.NoError(t, err)

	want := catalog.Seed()
	require.Len(t, seeded, len(want))
	for i, g := range seeded {
		assert.Equal(t, int64(i+1), g.ID)
		assert.Equal(t, want[i].Title, g.Title)
		assert.Equal(t, want[i].Quantity, g.Quantity)
		assert.True(t, want[i].Price.Equal(g.Price))
	}

	games, _ := store.Games().List(ctx)
	assert.Len(t, games, len(want))

	// The ledger records history; reset does not erase it.
	salesList, err := store.Sales().List(ctx)
	require.NoError(t, err)
	assert.Len(t, salesList, 1)
}

func TestConcurrentSellsNeverOversell(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	g := newGame("Echoes", "N", 20, 299.0)
	require.NoError(t, store.Games().Insert(ctx, g))

	const attempts = 50
	var succeeded, failed atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := store.Sales().RecordSale(ctx, g.ID, 1)
			if err == nil {
				succeeded.Add(1)
			} else {
				assert.ErrorIs(t, err, apperr.ErrInsufficientStock)
				failed.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(20), succeeded.Load())
	assert.Equal(t, int32(attempts-20), failed.Load())

	got, err := store.Games().GetByID(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Quantity)

	salesList, _ := store.Sales().List(ctx)
	assert.Len(t, salesList, 20)
}

func TestStockNeverNegative(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ctx := context.Background()
		store := NewSeededStore()

		steps := rapid.IntRange(1, 50).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			id := int64(rapid.IntRange(1, 4).Draw(t, "id"))
			qty := rapid.IntRange(1, 25).Draw(t, "qty")
			_, _, err := store.Sales().RecordSale(ctx, id, qty)
			if err != nil && !errors.Is(err, apperr.ErrInsufficientStock) && !errors.Is(err, apperr.ErrNotFound) {
				t.Fatalf("unexpected sell error: %v", err)
			}

			games, listErr := store.Games().List(ctx)
			if listErr != nil {
				t.Fatalf("list: %v", listErr)
			}
			for _, g := range games {
				if g.Quantity < 0 {
					t.Fatalf("game %d has negative stock %d", g.ID, g.Quantity)
				}
			}
		}
	})
}
