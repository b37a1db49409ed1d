package domain

// ItemFilter represents the multi-valued filter criteria for item queries.
// 各フィールドの値リストは OR で結合し、フィールド同士は AND で結合する。
// 空のリストは「このフィールドでは絞り込まない」を意味する。
type ItemFilter struct {
	Status     []string
	TimeFrame  []string
	Type       []string
	Category   []string // LifeCategory の ID（文字列）または FilterEmpty
	Value      []string
	Difficulty []string
	Sort       string
}

// RouletteFilter represents the constraints for the random draw.
// status は常に Open に固定されるため、ここには含まれない。
type RouletteFilter struct {
	Type          []string
	TimeFrame     []string
	ActionLength  []string
	ValueMin      *int
	ValueMax      *int
	DifficultyMin *int
	DifficultyMax *int
}

const (
	// FilterEmpty フィールドが空/NULLのアイテムにマッチする番兵値
	FilterEmpty = "__empty__"
	// FilterAll time_frame のみで使われるレガシーな「絞り込みなし」番兵値
	FilterAll = "__all__"
)
