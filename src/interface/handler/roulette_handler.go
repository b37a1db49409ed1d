package handler

import (
	"net/http"
	"strconv"

	"nowpad/src/domain"
	"nowpad/src/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RouletteHandler handles HTTP requests for the random selection feature
type RouletteHandler struct {
	rouletteUsecase usecase.RouletteUsecase
	logger          *logrus.Logger
}

// NewRouletteHandler creates a new roulette handler
func NewRouletteHandler(rouletteUsecase usecase.RouletteUsecase, logger *logrus.Logger) *RouletteHandler {
	return &RouletteHandler{
		rouletteUsecase: rouletteUsecase,
		logger:          logger,
	}
}

// Roulette counts the matching open items and draws one when requested.
// roll パラメータが真の場合のみランダム抽選を行う。
func (h *RouletteHandler) Roulette(c *gin.Context) {
	query := c.Request.URL.Query()

	filter := domain.RouletteFilter{
		Type:          nonEmptyValues(query["type"]),
		TimeFrame:     nonEmptyValues(query["time_frame"]),
		ActionLength:  nonEmptyValues(query["action_length"]),
		ValueMin:      parseBound(c.Query("value_min")),
		ValueMax:      parseBound(c.Query("value_max")),
		DifficultyMin: parseBound(c.Query("difficulty_min")),
		DifficultyMax: parseBound(c.Query("difficulty_max")),
	}

	count, item, err := h.rouletteUsecase.Spin(c.Request.Context(), filter, isRollRequested(c))
	if err != nil {
		h.logger.WithError(err).Error("ルーレットの実行に失敗")
		c.JSON(http.StatusInternalServerError, ErrorResponseDTO{
			Error:   "Failed to spin roulette",
			Message: err.Error(),
		})
		return
	}

	response := RouletteResponseDTO{Count: count}
	if item != nil {
		dto := toItemResponseDTO(item)
		response.Item = &dto

		h.logger.WithFields(logrus.Fields{
			"item_id": item.ID,
			"count":   count,
		}).Info("ルーレットでアイテムを選択しました")
	}

	c.JSON(http.StatusOK, response)
}

// parseBound 数値として解釈できない境界値はエラーにせず「制約なし」として扱う
func parseBound(raw string) *int {
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}

// isRollRequested roll パラメータの有無と真偽を判定する
func isRollRequested(c *gin.Context) bool {
	raw, exists := c.GetQuery("roll")
	if !exists {
		return false
	}
	return raw != "" && raw != "0" && raw != "false"
}
