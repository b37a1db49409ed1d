package handler

import (
	"time"
)

// CreateItemRequestDTO represents HTTP request for capturing an item
type CreateItemRequestDTO struct {
	Note           string `json:"note" binding:"required"`
	Type           string `json:"type" binding:"omitempty,item_type"`
	ActionLength   string `json:"action_length" binding:"omitempty,action_length"`
	TimeFrame      string `json:"time_frame" binding:"omitempty,time_frame"`
	Value          *int   `json:"value" binding:"omitempty,rating"`
	Difficulty     *int   `json:"difficulty" binding:"omitempty,rating"`
	LifeCategoryID *int   `json:"life_category_id"`
	NewCategory    string `json:"new_category" binding:"omitempty,max=100"`
}

// UpdateFieldRequestDTO represents HTTP request for a single-field inline edit
type UpdateFieldRequestDTO struct {
	Field string      `json:"field" binding:"required"`
	Value interface{} `json:"value"`
}

// ItemResponseDTO represents HTTP response for an item
type ItemResponseDTO struct {
	ID               int        `json:"id"`
	Note             string     `json:"note"`
	Type             string     `json:"type"`
	ActionLength     string     `json:"action_length"`
	TimeFrame        string     `json:"time_frame"`
	Value            *int       `json:"value"`
	Difficulty       *int       `json:"difficulty"`
	Status           string     `json:"status"`
	LifeCategoryID   *int       `json:"life_category_id"`
	LifeCategoryName string     `json:"life_category_name"`
	Score            *int       `json:"score"`
	DateCreated      time.Time  `json:"date_created"`
	DateCompleted    *time.Time `json:"date_completed"`
}

// UpdateItemResponseDTO represents the inline edit success payload
type UpdateItemResponseDTO struct {
	Success bool            `json:"success"`
	Item    ItemResponseDTO `json:"item"`
}

// UpdateErrorResponseDTO represents the inline edit failure payload
type UpdateErrorResponseDTO struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// CategoryResponseDTO represents HTTP response for a life category
type CategoryResponseDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CategoryListResponseDTO represents HTTP response for the category list
type CategoryListResponseDTO struct {
	Categories []CategoryResponseDTO `json:"categories"`
}

// OrganizeResponseDTO represents the filtered+sorted listing payload
type OrganizeResponseDTO struct {
	Items      []ItemResponseDTO     `json:"items"`
	Count      int                   `json:"count"`
	Sort       string                `json:"sort"`
	Categories []CategoryResponseDTO `json:"categories"`
}

// RouletteResponseDTO represents the random-selection payload.
// Item はロールしていない場合やマッチがない場合は null になる。
type RouletteResponseDTO struct {
	Count int              `json:"count"`
	Item  *ItemResponseDTO `json:"item"`
}

// ErrorResponseDTO represents HTTP error response
type ErrorResponseDTO struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
