package domain

import (
	"context"
	"errors"
)

var (
	// ErrItemNotFound 指定されたIDのアイテムが存在しない
	ErrItemNotFound = errors.New("item not found")
	// ErrCategoryNotFound 指定されたIDのカテゴリが存在しない
	ErrCategoryNotFound = errors.New("life category not found")
)

// ItemRepository defines the interface for item data operations
type ItemRepository interface {
	Create(ctx context.Context, item *Item) (*Item, error)
	GetByID(ctx context.Context, id int) (*Item, error)
	List(ctx context.Context, filter ItemFilter) ([]Item, error)
	Update(ctx context.Context, item *Item) (*Item, error)
	CountOpen(ctx context.Context, filter RouletteFilter) (int, error)
	PickOpenAt(ctx context.Context, filter RouletteFilter, offset int) (*Item, error)
}

// CategoryRepository defines the interface for life category operations
type CategoryRepository interface {
	GetOrCreate(ctx context.Context, name string) (*LifeCategory, error)
	GetByID(ctx context.Context, id int) (*LifeCategory, error)
	List(ctx context.Context) ([]LifeCategory, error)
}
