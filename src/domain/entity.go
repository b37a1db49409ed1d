package domain

import (
	"time"
)

// LifeCategory represents a user-defined category for grouping items
type LifeCategory struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Item represents a captured note/task/idea
type Item struct {
	ID               int          `json:"id"`
	Note             string       `json:"note"`
	Type             ItemType     `json:"type"`
	ActionLength     ActionLength `json:"action_length"`
	TimeFrame        TimeFrame    `json:"time_frame"`
	Value            *int         `json:"value"`
	Difficulty       *int         `json:"difficulty"`
	Status           Status       `json:"status"`
	LifeCategoryID   *int         `json:"life_category_id"`
	LifeCategoryName string       `json:"life_category_name"`
	DateCreated      time.Time    `json:"date_created"`
	DateCompleted    *time.Time   `json:"date_completed"`
}

// ItemType represents the kind of item
type ItemType string

const (
	TypeNone    ItemType = ""
	TypeIdea    ItemType = "Idea"
	TypeJourney ItemType = "Journey"
	TypeProject ItemType = "Project"
	TypeAction  ItemType = "Action"
)

// ActionLength represents the estimated length of an action
// （type が Action の場合のみ意味を持つ）
type ActionLength string

const (
	ActionLengthNone ActionLength = ""
	ActionLength5Min ActionLength = "5 minutes"
	ActionLength15   ActionLength = "15 minutes"
	ActionLength1H   ActionLength = "1 hour"
	ActionLength3H   ActionLength = "3 hours"
)

// TimeFrame represents when the item should be acted on
type TimeFrame string

const (
	TimeFrameNone      TimeFrame = ""
	TimeFrameNow       TimeFrame = "Now"
	TimeFrameToday     TimeFrame = "Today"
	TimeFrameThisWeek  TimeFrame = "This Week"
	TimeFrameThisMonth TimeFrame = "This Month"
	TimeFrameFuture    TimeFrame = "Future"
)

// Status represents item status
type Status string

const (
	StatusOpen     Status = "Open"
	StatusComplete Status = "Complete"
	StatusArchive  Status = "Archive"
	StatusRemove   Status = "Remove"
)

// IsValid validates if the item type is valid
func (t ItemType) IsValid() bool {
	switch t {
	case TypeNone, TypeIdea, TypeJourney, TypeProject, TypeAction:
		return true
	default:
		return false
	}
}

// IsValid validates if the action length is valid
func (a ActionLength) IsValid() bool {
	switch a {
	case ActionLengthNone, ActionLength5Min, ActionLength15, ActionLength1H, ActionLength3H:
		return true
	default:
		return false
	}
}

// IsValid validates if the time frame is valid
func (tf TimeFrame) IsValid() bool {
	switch tf {
	case TimeFrameNone, TimeFrameNow, TimeFrameToday, TimeFrameThisWeek, TimeFrameThisMonth, TimeFrameFuture:
		return true
	default:
		return false
	}
}

// IsValid validates if the status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusOpen, StatusComplete, StatusArchive, StatusRemove:
		return true
	default:
		return false
	}
}

// String returns string representation of ItemType
func (t ItemType) String() string {
	return string(t)
}

// String returns string representation of ActionLength
func (a ActionLength) String() string {
	return string(a)
}

// String returns string representation of TimeFrame
func (tf TimeFrame) String() string {
	return string(tf)
}

// String returns string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsValidRating 評価値（value / difficulty）は1〜5の範囲
func IsValidRating(v int) bool {
	return v >= 1 && v <= 5
}

// Score computes the derived prioritization score.
// 計算式: score = value + (6 - difficulty)、範囲は2〜10（高いほど良い）。
// value または difficulty が未設定の場合は nil を返す。
func (i *Item) Score() *int {
	if i.Value == nil || i.Difficulty == nil {
		return nil
	}
	score := *i.Value + (6 - *i.Difficulty)
	return &score
}

// ApplyRules applies the save-time business rules to the item.
// 保存のたびに呼び出す。同じ入力に対して何度呼んでも結果は変わらない。
func (i *Item) ApplyRules(now time.Time) {
	// ルール1: type が Action 以外の場合、action_length をクリア
	if i.Type != TypeAction {
		i.ActionLength = ActionLengthNone
	}

	// ルール2: status が Complete の場合、date_completed が未設定なら現在時刻を設定
	// ルール3: status が Complete 以外の場合、date_completed をクリア
	if i.Status == StatusComplete {
		if i.DateCompleted == nil {
			completed := now
			i.DateCompleted = &completed
		}
	} else {
		i.DateCompleted = nil
	}
}
