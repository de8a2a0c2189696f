package catalog

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/vpalhares/gamestock-backend/internal/apperr"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository returns a Repository backed by Postgres. The
// games table carries a unique index on (lower(title),
// lower(developer)), which is what enforces duplicate detection, and a
// CHECK (quantity >= 0) as a last line of defense for the stock
// invariant.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func (r *postgresRepo) Insert(ctx context.Context, g *Game) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO games (title, developer, quantity, price)
		VALUES ($1,$2,$3,$4)
		RETURNING id, created_at, updated_at`,
		g.Title, g.Developer, g.Quantity, g.Price).
		Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt)
	if isUniqueViolation(err) {
		return apperr.ErrDuplicate
	}
	if err != nil {
		return apperr.Storage("insert game", err)
	}
	return nil
}

func scanGame(scan func(...interface{}) error) (*Game, error) {
	g := &Game{}
	err := scan(&g.ID, &g.Title, &g.Developer, &g.Quantity, &g.Price, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*Game, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, developer, quantity, price, created_at, updated_at
		FROM games WHERE id=$1`, id)
	g, err := scanGame(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, apperr.Storage("get game", err)
	}
	return g, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]*Game, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, developer, quantity, price, created_at, updated_at
		FROM games ORDER BY id`)
	if err != nil {
		return nil, apperr.Storage("list games", err)
	}
	defer rows.Close()

	var games []*Game
	for rows.Next() {
		g, err := scanGame(rows.Scan)
		if err != nil {
			return nil, apperr.Storage("scan game", err)
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Storage("list games", err)
	}
	return games, nil
}

// Update row-locks the record for the duration of fn, so concurrent
// sells and updates on the same game serialize.
func (r *postgresRepo) Update(ctx context.Context, id int64, fn func(*Game) error) (*Game, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, apperr.Storage("begin tx", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, `
		SELECT id, title, developer, quantity, price, created_at, updated_at
		FROM games WHERE id=$1 FOR UPDATE`, id)
	g, err := scanGame(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, apperr.Storage("lock game", err)
	}

	if err := fn(g); err != nil {
		return nil, err
	}

	err = tx.QueryRowContext(ctx, `
		UPDATE games
		SET title=$1, developer=$2, quantity=$3, price=$4, updated_at=NOW()
		WHERE id=$5
		RETURNING updated_at`,
		g.Title, g.Developer, g.Quantity, g.Price, id).
		Scan(&g.UpdatedAt)
	if isUniqueViolation(err) {
		return nil, apperr.ErrDuplicate
	}
	if err != nil {
		return nil, apperr.Storage("update game", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, apperr.Storage("commit update", err)
	}
	return g, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM games WHERE id=$1`, id)
	if err != nil {
		return apperr.Storage("delete game", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// Reset truncates the catalog and reseeds it in one transaction.
// TRUNCATE takes an ACCESS EXCLUSIVE lock, so it waits for every
// in-flight row-locked mutation and blocks new ones until commit. Sale
// history is left untouched.
func (r *postgresRepo) Reset(ctx context.Context) ([]*Game, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, apperr.Storage("begin tx", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `TRUNCATE games RESTART IDENTITY`); err != nil {
		return nil, apperr.Storage("truncate games", err)
	}

	seeded := make([]*Game, 0, len(Seed()))
	for _, s := range Seed() {
		g := s
		err := tx.QueryRowContext(ctx, `
			INSERT INTO games (title, developer, quantity, price)
			VALUES ($1,$2,$3,$4)
			RETURNING id, created_at, updated_at`,
			g.Title, g.Developer, g.Quantity, g.Price).
			Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt)
		if err != nil {
			return nil, apperr.Storage("seed game", err)
		}
		seeded = append(seeded, &g)
	}

	if err := tx.Commit(); err != nil {
		return nil, apperr.Storage("commit reset", err)
	}
	return seeded, nil
}
