package security

import (
	"fmt"
	"strings"
)

// SortSanitizer validates ORDER BY keys coming from query parameters.
// ソートキーはホワイトリスト方式で検証する（SQLインジェクション対策）
type SortSanitizer struct {
	allowedColumns map[string]bool
}

// DefaultSortKey 無効なソートキーの場合のフォールバック（新しい順）
const DefaultSortKey = "-date_created"

// NewSortSanitizer creates a new sort sanitizer
func NewSortSanitizer() *SortSanitizer {
	return &SortSanitizer{
		allowedColumns: map[string]bool{
			"date_created":   true,
			"note":           true,
			"type":           true,
			"time_frame":     true,
			"value":          true,
			"difficulty":     true,
			"status":         true,
			"date_completed": true,
		},
	}
}

// ValidateSortKey validates a sort key ("-" prefix means descending)
func (s *SortSanitizer) ValidateSortKey(sort string) error {
	if sort == "" {
		return fmt.Errorf("empty sort key")
	}

	column := strings.TrimPrefix(sort, "-")
	if !s.allowedColumns[column] {
		return fmt.Errorf("invalid column for sorting: %s", column)
	}

	return nil
}

// NormalizeSortKey returns the sort key if valid, otherwise the default.
// 無効なキーはエラーにせず、黙ってデフォルトにフォールバックする。
func (s *SortSanitizer) NormalizeSortKey(sort string) string {
	if err := s.ValidateSortKey(sort); err != nil {
		return DefaultSortKey
	}
	return sort
}

// OrderByClause converts a normalized sort key into a SQL ORDER BY expression
func (s *SortSanitizer) OrderByClause(sort string) string {
	sort = s.NormalizeSortKey(sort)

	column := sort
	direction := "ASC"
	if strings.HasPrefix(sort, "-") {
		column = strings.TrimPrefix(sort, "-")
		direction = "DESC"
	}

	return fmt.Sprintf("%s %s", column, direction)
}
