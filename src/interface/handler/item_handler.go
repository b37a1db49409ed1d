package handler

import (
	"errors"
	"net/http"

	"nowpad/src/domain"
	"nowpad/src/usecase"
	"nowpad/src/validator"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ItemHandler handles HTTP requests for item operations
type ItemHandler struct {
	itemUsecase usecase.ItemUsecase
	validator   *validator.CustomValidator
	logger      *logrus.Logger
}

// NewItemHandler creates a new item handler
func NewItemHandler(itemUsecase usecase.ItemUsecase, cv *validator.CustomValidator, logger *logrus.Logger) *ItemHandler {
	return &ItemHandler{
		itemUsecase: itemUsecase,
		validator:   cv,
		logger:      logger,
	}
}

// CreateItem captures a new item
func (h *ItemHandler) CreateItem(c *gin.Context) {
	var req CreateItemRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("リクエストのバインドに失敗")
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{
			Error:   "Invalid request format",
			Message: err.Error(),
		})
		return
	}

	usecaseReq := usecase.CreateItemRequest{
		Note:           req.Note,
		Type:           req.Type,
		ActionLength:   req.ActionLength,
		TimeFrame:      req.TimeFrame,
		Value:          req.Value,
		Difficulty:     req.Difficulty,
		LifeCategoryID: req.LifeCategoryID,
		NewCategory:    req.NewCategory,
	}

	item, err := h.itemUsecase.CreateItem(c.Request.Context(), usecaseReq)
	if err != nil {
		h.logger.WithError(err).Error("アイテムの作成に失敗")

		status := http.StatusInternalServerError
		if isValidationError(err) {
			status = http.StatusBadRequest
		}

		c.JSON(status, ErrorResponseDTO{
			Error:   "Failed to create item",
			Message: err.Error(),
		})
		return
	}

	h.logger.WithField("item_id", item.ID).Info("アイテムを作成しました")
	c.JSON(http.StatusCreated, toItemResponseDTO(item))
}

// GetItem retrieves an item by ID
func (h *ItemHandler) GetItem(c *gin.Context) {
	id, err := h.validator.ValidateID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{
			Error:   "Invalid item ID",
			Message: "Item ID must be a number",
		})
		return
	}

	item, err := h.itemUsecase.GetItem(c.Request.Context(), id)
	if err != nil {
		h.logger.WithError(err).WithField("item_id", id).Error("アイテムの取得に失敗")

		status := http.StatusInternalServerError
		if errors.Is(err, usecase.ErrItemNotFound) {
			status = http.StatusNotFound
		}

		c.JSON(status, ErrorResponseDTO{
			Error: "Failed to get item",
		})
		return
	}

	c.JSON(http.StatusOK, toItemResponseDTO(item))
}

// UpdateItemField applies a single-field inline edit.
// 成功・失敗ともに {"success": bool, ...} の形で返す（インライン編集UIの契約）。
func (h *ItemHandler) UpdateItemField(c *gin.Context) {
	id, err := h.validator.ValidateID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, UpdateErrorResponseDTO{
			Success: false,
			Error:   "Invalid item ID",
		})
		return
	}

	var req UpdateFieldRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("リクエストのバインドに失敗")
		c.JSON(http.StatusBadRequest, UpdateErrorResponseDTO{
			Success: false,
			Error:   "Invalid JSON",
		})
		return
	}

	item, err := h.itemUsecase.UpdateItemField(c.Request.Context(), id, req.Field, req.Value)
	if err != nil {
		h.logger.WithError(err).WithFields(logrus.Fields{
			"item_id": id,
			"field":   req.Field,
		}).Warn("インライン編集に失敗")

		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, usecase.ErrItemNotFound):
			status = http.StatusNotFound
		case errors.Is(err, usecase.ErrInvalidField),
			errors.Is(err, usecase.ErrInvalidValue),
			errors.Is(err, usecase.ErrInvalidCategory):
			status = http.StatusBadRequest
		}

		c.JSON(status, UpdateErrorResponseDTO{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	h.logger.WithFields(logrus.Fields{
		"item_id": id,
		"field":   req.Field,
	}).Info("アイテムをインライン編集しました")

	c.JSON(http.StatusOK, UpdateItemResponseDTO{
		Success: true,
		Item:    toItemResponseDTO(item),
	})
}

// GetCategories returns all life categories ordered by name
func (h *ItemHandler) GetCategories(c *gin.Context) {
	categories, err := h.itemUsecase.ListCategories(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("カテゴリリストの取得に失敗")
		c.JSON(http.StatusInternalServerError, ErrorResponseDTO{
			Error: "Failed to get categories",
		})
		return
	}

	c.JSON(http.StatusOK, CategoryListResponseDTO{
		Categories: toCategoryResponseDTOs(categories),
	})
}

// Organize returns the filtered and sorted item listing.
// 繰り返しクエリパラメータがフィールドごとの複数選択になる。
// status / time_frame はパラメータが一切無い場合のみデフォルトが適用される。
func (h *ItemHandler) Organize(c *gin.Context) {
	query := c.Request.URL.Query()

	filter := domain.ItemFilter{
		Status:     nonEmptyValues(query["status"]),
		TimeFrame:  nonEmptyValues(query["time_frame"]),
		Type:       nonEmptyValues(query["type"]),
		Category:   nonEmptyValues(query["category"]),
		Value:      nonEmptyValues(query["value"]),
		Difficulty: nonEmptyValues(query["difficulty"]),
		Sort:       c.DefaultQuery("sort", "-date_created"),
	}

	// 呼び出し側デフォルト: status=Open, time_frame=Today（エンジン自体にデフォルトはない）
	if _, ok := query["status"]; !ok {
		filter.Status = []string{domain.StatusOpen.String()}
	}
	if _, ok := query["time_frame"]; !ok {
		filter.TimeFrame = []string{domain.TimeFrameToday.String()}
	}

	items, err := h.itemUsecase.ListItems(c.Request.Context(), filter)
	if err != nil {
		h.logger.WithError(err).Error("アイテムリストの取得に失敗")
		c.JSON(http.StatusInternalServerError, ErrorResponseDTO{
			Error:   "Failed to get items",
			Message: err.Error(),
		})
		return
	}

	categories, err := h.itemUsecase.ListCategories(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("カテゴリリストの取得に失敗")
		c.JSON(http.StatusInternalServerError, ErrorResponseDTO{
			Error: "Failed to get categories",
		})
		return
	}

	c.JSON(http.StatusOK, OrganizeResponseDTO{
		Items:      toItemResponseDTOs(items),
		Count:      len(items),
		Sort:       filter.Sort,
		Categories: toCategoryResponseDTOs(categories),
	})
}

// nonEmptyValues 値が空のパラメータ（?status= など）は「絞り込みなし」として除外する。
// 空欄にマッチさせたい場合は __empty__ 番兵を使う。
func nonEmptyValues(values []string) []string {
	var result []string
	for _, v := range values {
		if v != "" {
			result = append(result, v)
		}
	}
	return result
}

// isValidationError 400として返すべき入力エラーかどうか
func isValidationError(err error) bool {
	return errors.Is(err, usecase.ErrInvalidNote) ||
		errors.Is(err, usecase.ErrInvalidType) ||
		errors.Is(err, usecase.ErrInvalidLength) ||
		errors.Is(err, usecase.ErrInvalidTimeFrame) ||
		errors.Is(err, usecase.ErrInvalidValue) ||
		errors.Is(err, usecase.ErrInvalidCategory)
}

// Helper methods for conversion

func toItemResponseDTO(item *domain.Item) ItemResponseDTO {
	return ItemResponseDTO{
		ID:               item.ID,
		Note:             item.Note,
		Type:             item.Type.String(),
		ActionLength:     item.ActionLength.String(),
		TimeFrame:        item.TimeFrame.String(),
		Value:            item.Value,
		Difficulty:       item.Difficulty,
		Status:           item.Status.String(),
		LifeCategoryID:   item.LifeCategoryID,
		LifeCategoryName: item.LifeCategoryName,
		Score:            item.Score(),
		DateCreated:      item.DateCreated,
		DateCompleted:    item.DateCompleted,
	}
}

func toItemResponseDTOs(items []domain.Item) []ItemResponseDTO {
	result := make([]ItemResponseDTO, len(items))
	for i := range items {
		result[i] = toItemResponseDTO(&items[i])
	}
	return result
}

func toCategoryResponseDTOs(categories []domain.LifeCategory) []CategoryResponseDTO {
	result := make([]CategoryResponseDTO, len(categories))
	for i, category := range categories {
		result[i] = CategoryResponseDTO{ID: category.ID, Name: category.Name}
	}
	return result
}
