package sales

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vpalhares/gamestock-backend/internal/apperr"
	"github.com/vpalhares/gamestock-backend/internal/modules/catalog"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository returns a Repository backed by Postgres.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

// RecordSale runs the whole sale inside one transaction. SELECT ... FOR
// UPDATE serializes sells and updates on the same game row, so two
// concurrent sells can never both pass the stock check; sells on
// different games don't contend.
func (r *postgresRepo) RecordSale(ctx context.Context, gameID int64, quantity int) (*catalog.Game, *Sale, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, apperr.Storage("begin tx", err)
	}
	defer tx.Rollback()

	g := &catalog.Game{}
	err = tx.QueryRowContext(ctx, `
		SELECT id, title, developer, quantity, price, created_at, updated_at
		FROM games WHERE id=$1 FOR UPDATE`, gameID).
		Scan(&g.ID, &g.Title, &g.Developer, &g.Quantity, &g.Price, &g.CreatedAt, &g.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, nil, apperr.Storage("lock game", err)
	}

	if g.Quantity < quantity {
		return nil, nil, apperr.ErrInsufficientStock
	}

	err = tx.QueryRowContext(ctx, `
		UPDATE games SET quantity = quantity - $1, updated_at = NOW()
		WHERE id=$2
		RETURNING quantity, updated_at`,
		quantity, gameID).
		Scan(&g.Quantity, &g.UpdatedAt)
	if err != nil {
		return nil, nil, apperr.Storage("decrement stock", err)
	}

	sale := &Sale{
		ID:           uuid.New(),
		GameID:       gameID,
		QuantitySold: quantity,
		SaleValue:    g.Price.Mul(decimal.NewFromInt(int64(quantity))),
		SoldAt:       time.Now().UTC(),
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO sales (id, game_id, quantity_sold, sale_value, sold_at)
		VALUES ($1,$2,$3,$4,$5)`,
		sale.ID, sale.GameID, sale.QuantitySold, sale.SaleValue, sale.SoldAt)
	if err != nil {
		return nil, nil, apperr.Storage("append sale", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, apperr.Storage("commit sale", err)
	}
	return g, sale, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]*Sale, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, game_id, quantity_sold, sale_value, sold_at
		FROM sales ORDER BY sold_at, id`)
	if err != nil {
		return nil, apperr.Storage("list sales", err)
	}
	defer rows.Close()

	var out []*Sale
	for rows.Next() {
		s := &Sale{}
		if err := rows.Scan(&s.ID, &s.GameID, &s.QuantitySold, &s.SaleValue, &s.SoldAt); err != nil {
			return nil, apperr.Storage("scan sale", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Storage("list sales", err)
	}
	return out, nil
}
