package usecase

import (
	"context"
	"math/rand"

	"nowpad/src/domain"
)

// RouletteUsecase defines the interface for the random selection logic
type RouletteUsecase interface {
	// Spin はフィルターにマッチする Open アイテムの件数を返す。
	// roll が true の場合はその中から一様ランダムに1件を選ぶ。
	Spin(ctx context.Context, filter domain.RouletteFilter, roll bool) (int, *domain.Item, error)
}

type rouletteUsecase struct {
	itemRepo domain.ItemRepository
	intn     func(n int) int
}

// NewRouletteUsecase creates a new roulette usecase
func NewRouletteUsecase(itemRepo domain.ItemRepository) RouletteUsecase {
	return &rouletteUsecase{
		itemRepo: itemRepo,
		intn:     rand.Intn,
	}
}

// Spin counts the matching open items and optionally draws one at random
func (u *rouletteUsecase) Spin(ctx context.Context, filter domain.RouletteFilter, roll bool) (int, *domain.Item, error) {
	count, err := u.itemRepo.CountOpen(ctx, filter)
	if err != nil {
		return 0, nil, err
	}

	// マッチなし、またはロール要求なしの場合は件数のみ返す
	if count == 0 || !roll {
		return count, nil, nil
	}

	// 毎回新しく一様ランダムに選ぶ（シードや重み付けはしない）
	item, err := u.itemRepo.PickOpenAt(ctx, filter, u.intn(count))
	if err != nil {
		return count, nil, err
	}

	return count, item, nil
}
