package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"nowpad/src/domain"
)

var (
	ErrItemNotFound     = errors.New("item not found")
	ErrInvalidField     = errors.New("field not allowed")
	ErrInvalidValue     = errors.New("value must be an integer between 1 and 5")
	ErrInvalidCategory  = errors.New("invalid category")
	ErrInvalidNote      = errors.New("note is required")
	ErrInvalidType      = errors.New("type must be Idea, Journey, Project, or Action")
	ErrInvalidTimeFrame = errors.New("time_frame must be Now, Today, This Week, This Month, or Future")
	ErrInvalidLength    = errors.New("action_length must be 5 minutes, 15 minutes, 1 hour, or 3 hours")
)

// EditableFields インライン編集を許可するフィールド名
var EditableFields = []string{
	"note", "type", "action_length", "time_frame", "value", "difficulty", "status", "life_category",
}

// CreateItemRequest represents input for capturing a new item
type CreateItemRequest struct {
	Note           string
	Type           string
	ActionLength   string
	TimeFrame      string
	Value          *int
	Difficulty     *int
	LifeCategoryID *int
	NewCategory    string
}

// ItemUsecase defines the interface for item business logic
type ItemUsecase interface {
	CreateItem(ctx context.Context, req CreateItemRequest) (*domain.Item, error)
	GetItem(ctx context.Context, id int) (*domain.Item, error)
	ListItems(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error)
	UpdateItemField(ctx context.Context, id int, field string, value interface{}) (*domain.Item, error)
	ListCategories(ctx context.Context) ([]domain.LifeCategory, error)
}

type itemUsecase struct {
	itemRepo     domain.ItemRepository
	categoryRepo domain.CategoryRepository
	now          func() time.Time
}

// NewItemUsecase creates a new item usecase
func NewItemUsecase(itemRepo domain.ItemRepository, categoryRepo domain.CategoryRepository) ItemUsecase {
	return &itemUsecase{
		itemRepo:     itemRepo,
		categoryRepo: categoryRepo,
		now:          time.Now,
	}
}

// CreateItem captures a new item and applies the save-time rules
func (u *itemUsecase) CreateItem(ctx context.Context, req CreateItemRequest) (*domain.Item, error) {
	if err := u.validateCreateRequest(req); err != nil {
		return nil, err
	}

	item := &domain.Item{
		Note:         req.Note,
		Type:         domain.ItemType(req.Type),
		ActionLength: domain.ActionLength(req.ActionLength),
		TimeFrame:    domain.TimeFrame(req.TimeFrame),
		Value:        req.Value,
		Difficulty:   req.Difficulty,
		Status:       domain.StatusOpen,
	}

	// 新カテゴリ名は既存カテゴリIDの指定より優先される
	if name := strings.TrimSpace(req.NewCategory); name != "" {
		category, err := u.categoryRepo.GetOrCreate(ctx, name)
		if err != nil {
			return nil, err
		}
		item.LifeCategoryID = &category.ID
	} else if req.LifeCategoryID != nil {
		category, err := u.categoryRepo.GetByID(ctx, *req.LifeCategoryID)
		if err != nil {
			if errors.Is(err, domain.ErrCategoryNotFound) {
				return nil, ErrInvalidCategory
			}
			return nil, err
		}
		item.LifeCategoryID = &category.ID
	}

	item.ApplyRules(u.now())

	return u.itemRepo.Create(ctx, item)
}

// GetItem retrieves an item by ID
func (u *itemUsecase) GetItem(ctx context.Context, id int) (*domain.Item, error) {
	item, err := u.itemRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}

// ListItems retrieves items matching the filter.
// 空のフィルターは「絞り込みなし」を意味する（デフォルトは呼び出し側の責務）。
func (u *itemUsecase) ListItems(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error) {
	return u.itemRepo.List(ctx, filter)
}

// UpdateItemField applies a single-field inline edit to an item.
// フィールドごとの値変換を行い、保存時ルールを再適用した結果を返す。
func (u *itemUsecase) UpdateItemField(ctx context.Context, id int, field string, value interface{}) (*domain.Item, error) {
	item, err := u.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}

	// "category" は "life_category" の別名として受け付ける
	if field == "category" {
		field = "life_category"
	}

	switch field {
	case "note":
		item.Note = asString(value)
	case "type":
		item.Type = domain.ItemType(asString(value))
	case "action_length":
		item.ActionLength = domain.ActionLength(asString(value))
	case "time_frame":
		item.TimeFrame = domain.TimeFrame(asString(value))
	case "status":
		item.Status = domain.Status(asString(value))
	case "value", "difficulty":
		rating, err := coerceRating(value)
		if err != nil {
			return nil, err
		}
		if field == "value" {
			item.Value = rating
		} else {
			item.Difficulty = rating
		}
	case "life_category":
		if err := u.applyCategoryEdit(ctx, item, value); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %s (allowed: %s)", ErrInvalidField, field, strings.Join(EditableFields, ", "))
	}

	item.ApplyRules(u.now())

	updated, err := u.itemRepo.Update(ctx, item)
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return updated, nil
}

// ListCategories retrieves all life categories ordered by name
func (u *itemUsecase) ListCategories(ctx context.Context) ([]domain.LifeCategory, error) {
	return u.categoryRepo.List(ctx)
}

// applyCategoryEdit handles the life_category special cases of an inline edit
func (u *itemUsecase) applyCategoryEdit(ctx context.Context, item *domain.Item, value interface{}) error {
	raw := asString(value)

	// 空はカテゴリの解除
	if raw == "" {
		item.LifeCategoryID = nil
		item.LifeCategoryName = ""
		return nil
	}

	// "new:" プレフィックスは名前による作成または再利用
	if strings.HasPrefix(raw, "new:") {
		name := strings.TrimSpace(raw[4:])
		if name == "" {
			// 空の名前は何もしない（カテゴリは変更されない）
			return nil
		}
		category, err := u.categoryRepo.GetOrCreate(ctx, name)
		if err != nil {
			return err
		}
		item.LifeCategoryID = &category.ID
		item.LifeCategoryName = category.Name
		return nil
	}

	// それ以外はカテゴリIDとして解決する
	id, err := strconv.Atoi(raw)
	if err != nil {
		return ErrInvalidCategory
	}
	category, err := u.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return ErrInvalidCategory
		}
		return err
	}
	item.LifeCategoryID = &category.ID
	item.LifeCategoryName = category.Name
	return nil
}

// validateCreateRequest validates a capture request
func (u *itemUsecase) validateCreateRequest(req CreateItemRequest) error {
	if strings.TrimSpace(req.Note) == "" {
		return ErrInvalidNote
	}
	if !domain.ItemType(req.Type).IsValid() {
		return ErrInvalidType
	}
	if !domain.ActionLength(req.ActionLength).IsValid() {
		return ErrInvalidLength
	}
	if !domain.TimeFrame(req.TimeFrame).IsValid() {
		return ErrInvalidTimeFrame
	}
	if req.Value != nil && !domain.IsValidRating(*req.Value) {
		return ErrInvalidValue
	}
	if req.Difficulty != nil && !domain.IsValidRating(*req.Difficulty) {
		return ErrInvalidValue
	}
	return nil
}

// asString JSON値を文字列として解釈する（nilは空文字列）
func asString(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		// JSONの数値はfloat64でデコードされる
		if v == float64(int(v)) {
			return strconv.Itoa(int(v))
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// coerceRating value / difficulty への編集値を解釈する。
// 空はクリア（nil）、それ以外は1〜5の整数でなければ ErrInvalidValue。
func coerceRating(value interface{}) (*int, error) {
	raw := asString(value)
	if raw == "" {
		return nil, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, ErrInvalidValue
	}
	if !domain.IsValidRating(n) {
		return nil, ErrInvalidValue
	}
	return &n, nil
}
