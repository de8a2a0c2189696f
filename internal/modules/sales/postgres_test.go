package sales_test

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"testing"

	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vpalhares/gamestock-backend/internal/apperr"
	"github.com/vpalhares/gamestock-backend/internal/modules/catalog"
	"github.com/vpalhares/gamestock-backend/internal/modules/sales"
)

func setupTestDB(t testing.TB) *sql.DB {
	t.Helper()

	get := func(key, fallback string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return fallback
	}

	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		get("PGHOST", "localhost"), get("PGPORT", "5432"),
		get("PGUSER", "postgres"), get("PGPASSWORD", "postgres"),
		get("PGDATABASE", "gamestock_test"))

	db, err := sql.Open("postgres", connStr)
	require.NoError(t, err)

	if err := db.Ping(); err != nil {
		t.Skipf("skipping: could not connect to postgres: %v", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS games (
			id         BIGSERIAL PRIMARY KEY,
			title      TEXT NOT NULL,
			developer  TEXT NOT NULL,
			quantity   INTEGER NOT NULL CHECK (quantity >= 0),
			price      NUMERIC(12,2) NOT NULL CHECK (price >= 0),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE UNIQUE INDEX IF NOT EXISTS games_title_developer_key
			ON games (LOWER(title), LOWER(developer));
		CREATE TABLE IF NOT EXISTS sales (
			id            UUID PRIMARY KEY,
			game_id       BIGINT NOT NULL,
			quantity_sold INTEGER NOT NULL CHECK (quantity_sold > 0),
			sale_value    NUMERIC(14,2) NOT NULL CHECK (sale_value >= 0),
			sold_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`)
	require.NoError(t, err)

	_, err = db.Exec(`TRUNCATE games RESTART IDENTITY; TRUNCATE sales`)
	require.NoError(t, err)

	return db
}

func insertTestGame(t *testing.T, db *sql.DB, title string, quantity int, price string) int64 {
	t.Helper()
	p, err := decimal.NewFromString(price)
	require.NoError(t, err)

	g := &catalog.Game{Title: title, Developer: "N", Quantity: quantity, Price: p}
	require.NoError(t, catalog.NewPostgresRepository(db).Insert(context.Background(), g))
	return g.ID
}

func TestPostgresRecordSale(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	repo := sales.NewPostgresRepository(db)
	ctx := context.Background()

	id := insertTestGame(t, db, "Echoes", 20, "299.00")

	g, sale, err := repo.RecordSale(ctx, id, 5)
	require.NoError(t, err)
	assert.Equal(t, 15, g.Quantity)
	assert.Equal(t, 5, sale.QuantitySold)
	assert.True(t, sale.SaleValue.Equal(decimal.RequireFromString("1495")), "got %s", sale.SaleValue)

	_, _, err = repo.RecordSale(ctx, id, 20)
	assert.ErrorIs(t, err, apperr.ErrInsufficientStock)

	_, _, err = repo.RecordSale(ctx, 999, 1)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1, "failed sells must not append ledger entries")
	assert.Equal(t, id, list[0].GameID)
}

func TestPostgresConcurrentSells(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	repo := sales.NewPostgresRepository(db)
	ctx := context.Background()

	id := insertTestGame(t, db, "Echoes", 20, "299.00")

	const attempts = 40
	var succeeded atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, _, err := repo.RecordSale(ctx, id, 1); err == nil {
				succeeded.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(20), succeeded.Load())

	var remaining int
	require.NoError(t, db.QueryRow(`SELECT quantity FROM games WHERE id=$1`, id).Scan(&remaining))
	assert.Equal(t, 0, remaining)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 20)
}

func TestPostgresSalesSurviveDeletionAndReset(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	salesRepo := sales.NewPostgresRepository(db)
	gamesRepo := catalog.NewPostgresRepository(db)
	ctx := context.Background()

	id := insertTestGame(t, db, "Echoes", 20, "299.00")
	_, _, err := salesRepo.RecordSale(ctx, id, 3)
	require.NoError(t, err)

	require.NoError(t, gamesRepo.Delete(ctx, id))
	list, err := salesRepo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = gamesRepo.Reset(ctx)
	require.NoError(t, err)

	list, err = salesRepo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1, "reset keeps the sale ledger")
}
