package usecase_test

import (
	"context"

	"nowpad/src/domain"

	"github.com/stretchr/testify/mock"
)

// MockItemRepository は domain.ItemRepository のモック実装
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) Create(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	args := m.Called(ctx, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MockItemRepository) GetByID(ctx context.Context, id int) (*domain.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MockItemRepository) List(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *MockItemRepository) Update(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	args := m.Called(ctx, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MockItemRepository) CountOpen(ctx context.Context, filter domain.RouletteFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *MockItemRepository) PickOpenAt(ctx context.Context, filter domain.RouletteFilter, offset int) (*domain.Item, error) {
	args := m.Called(ctx, filter, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

// MockCategoryRepository は domain.CategoryRepository のモック実装
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) GetOrCreate(ctx context.Context, name string) (*domain.LifeCategory, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LifeCategory), args.Error(1)
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id int) (*domain.LifeCategory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LifeCategory), args.Error(1)
}

func (m *MockCategoryRepository) List(ctx context.Context) ([]domain.LifeCategory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LifeCategory), args.Error(1)
}
