package repository

import (
	"context"

	"github.com/segyhp/fintrack/internal/domain"

	"github.com/jmoiron/sqlx"
)

type dictionaryRepository struct {
	db *sqlx.DB
}

func NewDictionaryRepository(db *sqlx.DB) DictionaryRepository {
	return &dictionaryRepository{db: db}
}

func (r *dictionaryRepository) List(ctx context.Context) ([]domain.DictionaryEntry, error) {
	query := `
		SELECT id, name
		FROM dictionary
		ORDER BY id
	`

	entries := []domain.DictionaryEntry{}
	err := r.db.SelectContext(ctx, &entries, query)
	if err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *dictionaryRepository) CategoryIDByName(ctx context.Context, name string) (int64, error) {
	return categoryIDByName(ctx, r.db, name)
}

func categoryIDByName(ctx context.Context, q sqlx.QueryerContext, name string) (int64, error) {
	query := `
		SELECT id
		FROM dictionary
		WHERE name = $1
		ORDER BY id
		LIMIT 1
	`

	var id int64
	if err := sqlx.GetContext(ctx, q, &id, query, name); err != nil {
		return 0, err
	}

	return id, nil
}
