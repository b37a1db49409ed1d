package repository

import (
	"context"
	"database/sql"
	"fmt"

	"nowpad/src/database"
	"nowpad/src/domain"

	"github.com/sirupsen/logrus"
)

// CategoryRepository represents the life category repository
type CategoryRepository struct {
	db     *database.DB
	logger *logrus.Logger
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *database.DB, logger *logrus.Logger) *CategoryRepository {
	return &CategoryRepository{
		db:     db,
		logger: logger,
	}
}

// GetOrCreate returns the category with the given name, creating it if absent.
// name のユニーク制約に対するupsertなので、並行リクエストでも重複は生じない。
func (r *CategoryRepository) GetOrCreate(ctx context.Context, name string) (*domain.LifeCategory, error) {
	query := `
		INSERT INTO life_categories (name) VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name`

	category := &domain.LifeCategory{}
	err := r.db.QueryRowContext(ctx, query, name).Scan(&category.ID, &category.Name)
	if err != nil {
		r.logger.WithError(err).WithField("name", name).Error("カテゴリの取得または作成に失敗")
		return nil, fmt.Errorf("failed to get or create category: %w", err)
	}

	return category, nil
}

// GetByID retrieves a category by ID
func (r *CategoryRepository) GetByID(ctx context.Context, id int) (*domain.LifeCategory, error) {
	query := `SELECT id, name FROM life_categories WHERE id = $1`

	category := &domain.LifeCategory{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&category.ID, &category.Name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrCategoryNotFound
		}
		r.logger.WithError(err).WithField("category_id", id).Error("カテゴリの取得に失敗")
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return category, nil
}

// List retrieves all categories ordered by name
func (r *CategoryRepository) List(ctx context.Context) ([]domain.LifeCategory, error) {
	query := `SELECT id, name FROM life_categories ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.WithError(err).Error("カテゴリリストの取得に失敗")
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.LifeCategory
	for rows.Next() {
		var category domain.LifeCategory
		if err := rows.Scan(&category.ID, &category.Name); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return categories, nil
}
