package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

var baseFields = []string{"id", "name", "description", "type", "color", "item_count", "created_at", "updated_at"}

// baseRepo implements BaseRepo.
type baseRepo struct {
	db *sql.DB
}

func (r *baseRepo) Save(ctx context.Context, b *BaseRecord) error {
	now := time.Now()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	if b.UpdatedAt.IsZero() {
		b.UpdatedAt = now
	}
	query, args := builder().Insert(tableKnowledgeBases).
		Columns(baseFields...).
		Values(b.ID, b.Name, b.Description, b.Type, b.Color, b.ItemCount,
			b.CreatedAt.UnixMilli(), b.UpdatedAt.UnixMilli()).
		OnConflict(
			entsql.ConflictColumns("id"),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save knowledge base: %w", err)
	}
	return nil
}

func (r *baseRepo) List(ctx context.Context) ([]BaseRecord, error) {
	b := builder()
	query, args := b.Select(baseFields...).
		From(b.Table(tableKnowledgeBases)).
		OrderBy("created_at", "id").
		Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list knowledge bases: %w", err)
	}
	defer rows.Close()

	var out []BaseRecord
	for rows.Next() {
		rec, err := scanBase(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

func (r *baseRepo) Get(ctx context.Context, id string) (*BaseRecord, error) {
	b := builder()
	query, args := b.Select(baseFields...).
		From(b.Table(tableKnowledgeBases)).
		Where(entsql.EQ("id", id)).
		Query()
	rec, err := scanBase(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return rec, err
}

func (r *baseRepo) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete: %w", err)
	}
	for _, stmt := range []struct {
		table, column string
	}{
		{tableWorkspaces, "base_id"},
		{tableKnowledgeBases, "id"},
	} {
		query, args := builder().Delete(stmt.table).Where(entsql.EQ(stmt.column, id)).Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			tx.Rollback()
			return fmt.Errorf("delete from %s: %w", stmt.table, err)
		}
	}
	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBase(s rowScanner) (*BaseRecord, error) {
	var (
		rec              BaseRecord
		created, updated int64
	)
	err := s.Scan(&rec.ID, &rec.Name, &rec.Description, &rec.Type, &rec.Color, &rec.ItemCount, &created, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan knowledge base: %w", err)
	}
	rec.CreatedAt = time.UnixMilli(created)
	rec.UpdatedAt = time.UnixMilli(updated)
	return &rec, nil
}
