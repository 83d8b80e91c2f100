package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"birds-api/internal/domain/birds"
)

type BirdsRepo struct {
	db *sql.DB
}

func NewBirdsRepo(db *sql.DB) *BirdsRepo {
	return &BirdsRepo{db: db}
}

// querier lo cumplen *sql.DB y *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (r *BirdsRepo) List(ctx context.Context) ([]birds.Bird, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, species, created_at, updated_at
		FROM birds
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]birds.Bird, 0)
	for rows.Next() {
		var b birds.Bird
		if err := rows.Scan(
			&b.ID,
			&b.Name,
			&b.Species,
			&b.CreatedAt,
			&b.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, b)
	}

	return out, rows.Err()
}

func (r *BirdsRepo) Insert(ctx context.Context, b birds.Bird) (birds.Bird, error) {
	return insertBird(ctx, r.db, b)
}

// InsertAll corre el lote en una transacción; ante cualquier error hace rollback.
func (r *BirdsRepo) InsertAll(ctx context.Context, items []birds.Bird) ([]birds.Bird, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	out := make([]birds.Bird, 0, len(items))
	for _, b := range items {
		inserted, err := insertBird(ctx, tx, b)
		if err != nil {
			return nil, err
		}
		out = append(out, inserted)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit seed tx: %w", err)
	}
	return out, nil
}

func insertBird(ctx context.Context, q querier, b birds.Bird) (birds.Bird, error) {
	if b.ID != 0 {
		_, err := q.ExecContext(ctx, `
			INSERT INTO birds (id, name, species, created_at, updated_at)
			VALUES ($1,$2,$3,$4,$5)
		`, b.ID, b.Name, b.Species, b.CreatedAt, b.UpdatedAt)
		if err != nil {
			return birds.Bird{}, fmt.Errorf("insert bird %d: %w", b.ID, err)
		}
		return b, nil
	}

	row := q.QueryRowContext(ctx, `
		INSERT INTO birds (name, species, created_at, updated_at)
		VALUES ($1,$2,$3,$4)
		RETURNING id
	`, b.Name, b.Species, b.CreatedAt, b.UpdatedAt)
	if err := row.Scan(&b.ID); err != nil {
		return birds.Bird{}, fmt.Errorf("insert bird: %w", err)
	}
	return b, nil
}
