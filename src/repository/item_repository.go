package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"nowpad/src/database"
	"nowpad/src/domain"
	"nowpad/src/security"

	"github.com/sirupsen/logrus"
)

// selectColumns アイテム取得クエリの共通SELECT句（カテゴリ名をJOINで解決）
const selectColumns = `
	SELECT i.id, i.note, i.type, i.action_length, i.time_frame, i.value, i.difficulty,
	       i.status, i.life_category_id, COALESCE(c.name, ''), i.date_created, i.date_completed
	FROM items i
	LEFT JOIN life_categories c ON c.id = i.life_category_id`

// ItemRepository represents the item repository backed by Postgres
type ItemRepository struct {
	db     *database.DB
	logger *logrus.Logger
	sorter *security.SortSanitizer
}

// NewItemRepository creates a new item repository
func NewItemRepository(db *database.DB, logger *logrus.Logger) *ItemRepository {
	return &ItemRepository{
		db:     db,
		logger: logger,
		sorter: security.NewSortSanitizer(),
	}
}

// Create inserts a new item and returns it with the stored state
func (r *ItemRepository) Create(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	query := `
		INSERT INTO items (note, type, action_length, time_frame, value, difficulty, status, life_category_id, date_completed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	var id int
	err := r.db.QueryRowContext(ctx, query,
		item.Note, item.Type.String(), item.ActionLength.String(), item.TimeFrame.String(),
		item.Value, item.Difficulty, item.Status.String(), item.LifeCategoryID, item.DateCompleted,
	).Scan(&id)

	if err != nil {
		r.logger.WithError(err).Error("アイテムの作成に失敗")
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	r.logger.WithField("item_id", id).Info("アイテムを作成しました")
	return r.GetByID(ctx, id)
}

// GetByID retrieves an item by ID
func (r *ItemRepository) GetByID(ctx context.Context, id int) (*domain.Item, error) {
	query := selectColumns + ` WHERE i.id = $1`

	item, err := r.scanItem(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrItemNotFound
		}
		r.logger.WithError(err).WithField("item_id", id).Error("アイテムの取得に失敗")
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	return item, nil
}

// List retrieves items matching the filter, in the requested order.
// フィールド間はAND、同一フィールド内の値はOR（__empty__番兵を含む）で結合される。
func (r *ItemRepository) List(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error) {
	where, args := BuildFilterClause(filter, 1)
	query := selectColumns + where + " ORDER BY i." + r.sorter.OrderByClause(filter.Sort)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.WithError(err).Error("アイテムリストの取得に失敗")
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		item, err := r.scanItem(rows)
		if err != nil {
			r.logger.WithError(err).Error("アイテムのスキャンに失敗")
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, *item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return items, nil
}

// Update writes the full item state back and returns the stored item
func (r *ItemRepository) Update(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	query := `
		UPDATE items
		SET note = $1, type = $2, action_length = $3, time_frame = $4, value = $5,
		    difficulty = $6, status = $7, life_category_id = $8, date_completed = $9
		WHERE id = $10`

	result, err := r.db.ExecContext(ctx, query,
		item.Note, item.Type.String(), item.ActionLength.String(), item.TimeFrame.String(),
		item.Value, item.Difficulty, item.Status.String(), item.LifeCategoryID, item.DateCompleted,
		item.ID,
	)
	if err != nil {
		r.logger.WithError(err).WithField("item_id", item.ID).Error("アイテムの更新に失敗")
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, domain.ErrItemNotFound
	}

	r.logger.WithField("item_id", item.ID).Info("アイテムを更新しました")
	return r.GetByID(ctx, item.ID)
}

// CountOpen counts the open items matching the roulette filter
func (r *ItemRepository) CountOpen(ctx context.Context, filter domain.RouletteFilter) (int, error) {
	where, args := BuildRouletteClause(filter, 1)
	query := `SELECT COUNT(*) FROM items i` + where

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		r.logger.WithError(err).Error("マッチ件数の取得に失敗")
		return 0, fmt.Errorf("failed to count items: %w", err)
	}

	return count, nil
}

// PickOpenAt fetches the open item at the given offset within the matching set.
// カウントと取得の間に集合が変わってオフセットが範囲外になった場合は nil を返す。
func (r *ItemRepository) PickOpenAt(ctx context.Context, filter domain.RouletteFilter, offset int) (*domain.Item, error) {
	where, args := BuildRouletteClause(filter, 1)
	query := selectColumns + where + fmt.Sprintf(" ORDER BY i.id LIMIT 1 OFFSET $%d", len(args)+1)
	args = append(args, offset)

	item, err := r.scanItem(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			// オフセットが範囲外（並行削除など）。エラーではなく「選択なし」として扱う
			return nil, nil
		}
		r.logger.WithError(err).Error("ルーレット対象の取得に失敗")
		return nil, fmt.Errorf("failed to pick item: %w", err)
	}

	return item, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

// scanItem reads one item row from the shared column list
func (r *ItemRepository) scanItem(row scanner) (*domain.Item, error) {
	var (
		item       domain.Item
		itemType   string
		actionLen  string
		timeFrame  string
		status     string
		categoryID sql.NullInt64
	)

	err := row.Scan(
		&item.ID, &item.Note, &itemType, &actionLen, &timeFrame,
		&item.Value, &item.Difficulty, &status, &categoryID,
		&item.LifeCategoryName, &item.DateCreated, &item.DateCompleted,
	)
	if err != nil {
		return nil, err
	}

	item.Type = domain.ItemType(itemType)
	item.ActionLength = domain.ActionLength(actionLen)
	item.TimeFrame = domain.TimeFrame(timeFrame)
	item.Status = domain.Status(status)
	if categoryID.Valid {
		id := int(categoryID.Int64)
		item.LifeCategoryID = &id
	}

	return &item, nil
}

// BuildFilterClause compiles an ItemFilter into a WHERE clause with positional args.
// argIndex は最初のプレースホルダー番号（$1から始める場合は1）。
func BuildFilterClause(filter domain.ItemFilter, argIndex int) (string, []interface{}) {
	var clauses []string
	var args []interface{}

	appendClause := func(conditions []string) {
		if len(conditions) == 1 {
			clauses = append(clauses, conditions[0])
		} else if len(conditions) > 1 {
			clauses = append(clauses, "("+strings.Join(conditions, " OR ")+")")
		}
	}

	// 文字列enumフィールド: 同一フィールド内はOR、__empty__は空文字にマッチ
	stringField := func(column string, values []string) {
		var conditions []string
		for _, v := range values {
			if v == domain.FilterEmpty {
				conditions = append(conditions, fmt.Sprintf("i.%s = ''", column))
			} else {
				conditions = append(conditions, fmt.Sprintf("i.%s = $%d", column, argIndex))
				args = append(args, v)
				argIndex++
			}
		}
		appendClause(conditions)
	}

	// 整数フィールド: __empty__はNULLにマッチ、数値として解釈できない値は無視
	intField := func(column string, values []string) {
		var conditions []string
		for _, v := range values {
			if v == domain.FilterEmpty {
				conditions = append(conditions, fmt.Sprintf("i.%s IS NULL", column))
				continue
			}
			n, err := strconv.Atoi(v)
			if err != nil {
				continue
			}
			conditions = append(conditions, fmt.Sprintf("i.%s = $%d", column, argIndex))
			args = append(args, n)
			argIndex++
		}
		appendClause(conditions)
	}

	stringField("status", filter.Status)
	stringField("type", filter.Type)

	// time_frame のみ __all__ で絞り込みを解除できる（レガシー互換）
	if !containsValue(filter.TimeFrame, domain.FilterAll) {
		stringField("time_frame", filter.TimeFrame)
	}

	intField("life_category_id", filter.Category)
	intField("value", filter.Value)
	intField("difficulty", filter.Difficulty)

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// BuildRouletteClause compiles a RouletteFilter into a WHERE clause.
// status は常に Open に固定される（呼び出し側からは変更できない）。
func BuildRouletteClause(filter domain.RouletteFilter, argIndex int) (string, []interface{}) {
	clauses := []string{"i.status = 'Open'"}
	var args []interface{}

	stringField := func(column string, values []string) {
		var conditions []string
		for _, v := range values {
			if v == domain.FilterEmpty {
				conditions = append(conditions, fmt.Sprintf("i.%s = ''", column))
			} else {
				conditions = append(conditions, fmt.Sprintf("i.%s = $%d", column, argIndex))
				args = append(args, v)
				argIndex++
			}
		}
		if len(conditions) == 1 {
			clauses = append(clauses, conditions[0])
		} else if len(conditions) > 1 {
			clauses = append(clauses, "("+strings.Join(conditions, " OR ")+")")
		}
	}

	rangeBound := func(column, op string, bound *int) {
		if bound == nil {
			return
		}
		clauses = append(clauses, fmt.Sprintf("i.%s %s $%d", column, op, argIndex))
		args = append(args, *bound)
		argIndex++
	}

	stringField("type", filter.Type)
	stringField("time_frame", filter.TimeFrame)
	stringField("action_length", filter.ActionLength)

	rangeBound("value", ">=", filter.ValueMin)
	rangeBound("value", "<=", filter.ValueMax)
	rangeBound("difficulty", ">=", filter.DifficultyMin)
	rangeBound("difficulty", "<=", filter.DifficultyMax)

	return " WHERE " + strings.Join(clauses, " AND "), args
}

func containsValue(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
