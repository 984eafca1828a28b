package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

var questionFields = []string{"id", "title", "description", "difficulty", "category", "tags", "solution", "hints", "created_at"}

// questionRepo implements QuestionRepo.
type questionRepo struct {
	db *sql.DB
}

func (r *questionRepo) Save(ctx context.Context, q *QuestionRecord) error {
	tags, err := marshalStrings(q.Tags)
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}
	hints, err := marshalStrings(q.Hints)
	if err != nil {
		return fmt.Errorf("marshal hints: %w", err)
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now()
	}

	query, args := builder().Insert(tableQuestions).
		Columns(questionFields...).
		Values(q.ID, q.Title, q.Description, q.Difficulty, q.Category, tags, q.Solution, hints, q.CreatedAt.UnixMilli()).
		OnConflict(
			entsql.ConflictColumns("id"),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save question: %w", err)
	}
	return nil
}

func (r *questionRepo) List(ctx context.Context) ([]QuestionRecord, error) {
	b := builder()
	query, args := b.Select(questionFields...).
		From(b.Table(tableQuestions)).
		OrderBy(entsql.Desc("created_at"), entsql.Desc("id")).
		Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	var out []QuestionRecord
	for rows.Next() {
		var (
			q           QuestionRecord
			tags, hints string
			created     int64
		)
		if err := rows.Scan(&q.ID, &q.Title, &q.Description, &q.Difficulty, &q.Category, &tags, &q.Solution, &hints, &created); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		if err := json.Unmarshal([]byte(tags), &q.Tags); err != nil {
			return nil, fmt.Errorf("unmarshal tags of %s: %w", q.ID, err)
		}
		if err := json.Unmarshal([]byte(hints), &q.Hints); err != nil {
			return nil, fmt.Errorf("unmarshal hints of %s: %w", q.ID, err)
		}
		q.CreatedAt = time.UnixMilli(created)
		out = append(out, q)
	}
	return out, rows.Err()
}

func (r *questionRepo) Delete(ctx context.Context, id string) error {
	query, args := builder().Delete(tableQuestions).Where(entsql.EQ("id", id)).Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	return nil
}

func marshalStrings(v []string) (string, error) {
	if v == nil {
		v = []string{}
	}
	b, err := json.Marshal(v)
	return string(b), err
}
