package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"nowpad/src/domain"
	"nowpad/src/interface/handler"
	"nowpad/src/routes"
	"nowpad/src/usecase"
	appvalidator "nowpad/src/validator"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	govalidator "github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const secretPrefix = "test-secret"

// MockItemUsecase は usecase.ItemUsecase のモック実装
type MockItemUsecase struct {
	mock.Mock
}

func (m *MockItemUsecase) CreateItem(ctx context.Context, req usecase.CreateItemRequest) (*domain.Item, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MockItemUsecase) GetItem(ctx context.Context, id int) (*domain.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MockItemUsecase) ListItems(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *MockItemUsecase) UpdateItemField(ctx context.Context, id int, field string, value interface{}) (*domain.Item, error) {
	args := m.Called(ctx, id, field, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MockItemUsecase) ListCategories(ctx context.Context) ([]domain.LifeCategory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LifeCategory), args.Error(1)
}

// MockRouletteUsecase は usecase.RouletteUsecase のモック実装
type MockRouletteUsecase struct {
	mock.Mock
}

func (m *MockRouletteUsecase) Spin(ctx context.Context, filter domain.RouletteFilter, roll bool) (int, *domain.Item, error) {
	args := m.Called(ctx, filter, roll)
	var item *domain.Item
	if args.Get(1) != nil {
		item = args.Get(1).(*domain.Item)
	}
	return args.Int(0), item, args.Error(2)
}

func setupRouter(itemUsecase usecase.ItemUsecase, rouletteUsecase usecase.RouletteUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)

	// ginのbindingエンジンにカスタムバリデーションを登録
	if v, ok := binding.Validator.Engine().(*govalidator.Validate); ok {
		appvalidator.RegisterItemRules(v)
	}

	log := logrus.New()
	cv := appvalidator.NewCustomValidator()
	itemHandler := handler.NewItemHandler(itemUsecase, cv, log)
	rouletteHandler := handler.NewRouletteHandler(rouletteUsecase, log)

	r := gin.New()
	routes.SetupRoutes(r, secretPrefix, itemHandler, rouletteHandler)
	return r
}

func intPtr(v int) *int {
	return &v
}

func sampleItem() *domain.Item {
	categoryID := 3
	return &domain.Item{
		ID:               1,
		Note:             "write the report",
		Type:             domain.TypeAction,
		ActionLength:     domain.ActionLength1H,
		TimeFrame:        domain.TimeFrameToday,
		Value:            intPtr(4),
		Difficulty:       intPtr(2),
		Status:           domain.StatusOpen,
		LifeCategoryID:   &categoryID,
		LifeCategoryName: "Work",
		DateCreated:      time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestUpdateItemField_Success(t *testing.T) {
	itemUsecase := new(MockItemUsecase)
	rouletteUsecase := new(MockRouletteUsecase)

	itemUsecase.On("UpdateItemField", mock.Anything, 1, "value", "4").Return(sampleItem(), nil)

	router := setupRouter(itemUsecase, rouletteUsecase)

	body, _ := json.Marshal(map[string]interface{}{"field": "value", "value": "4"})
	req := httptest.NewRequest(http.MethodPost, "/"+secretPrefix+"/api/item/1/update/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])

	item := resp["item"].(map[string]interface{})
	assert.Equal(t, float64(1), item["id"])
	assert.Equal(t, "write the report", item["note"])
	assert.Equal(t, float64(3), item["life_category_id"])
	assert.Equal(t, "Work", item["life_category_name"])
	// score = 4 + (6 - 2)
	assert.Equal(t, float64(8), item["score"])
	assert.Nil(t, item["date_completed"])
}

func TestUpdateItemField_InvalidValue(t *testing.T) {
	itemUsecase := new(MockItemUsecase)
	rouletteUsecase := new(MockRouletteUsecase)

	itemUsecase.On("UpdateItemField", mock.Anything, 1, "value", "6").Return(nil, usecase.ErrInvalidValue)

	router := setupRouter(itemUsecase, rouletteUsecase)

	body, _ := json.Marshal(map[string]interface{}{"field": "value", "value": "6"})
	req := httptest.NewRequest(http.MethodPost, "/"+secretPrefix+"/api/item/1/update/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["success"])
	assert.NotEmpty(t, resp["error"])
}

func TestUpdateItemField_NotFound(t *testing.T) {
	itemUsecase := new(MockItemUsecase)
	rouletteUsecase := new(MockRouletteUsecase)

	itemUsecase.On("UpdateItemField", mock.Anything, 42, "note", "hello").Return(nil, usecase.ErrItemNotFound)

	router := setupRouter(itemUsecase, rouletteUsecase)

	body, _ := json.Marshal(map[string]interface{}{"field": "note", "value": "hello"})
	req := httptest.NewRequest(http.MethodPost, "/"+secretPrefix+"/api/item/42/update/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateItemField_MalformedJSON(t *testing.T) {
	itemUsecase := new(MockItemUsecase)
	rouletteUsecase := new(MockRouletteUsecase)

	router := setupRouter(itemUsecase, rouletteUsecase)

	req := httptest.NewRequest(http.MethodPost, "/"+secretPrefix+"/api/item/1/update/", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	itemUsecase.AssertNotCalled(t, "UpdateItemField", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateItemField_InvalidID(t *testing.T) {
	itemUsecase := new(MockItemUsecase)
	rouletteUsecase := new(MockRouletteUsecase)

	router := setupRouter(itemUsecase, rouletteUsecase)

	body, _ := json.Marshal(map[string]interface{}{"field": "note", "value": "x"})
	req := httptest.NewRequest(http.MethodPost, "/"+secretPrefix+"/api/item/abc/update/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateItem_Success(t *testing.T) {
	itemUsecase := new(MockItemUsecase)
	rouletteUsecase := new(MockRouletteUsecase)

	itemUsecase.On("CreateItem", mock.Anything, mock.MatchedBy(func(req usecase.CreateItemRequest) bool {
		return req.Note == "write the report" && req.NewCategory == "Work"
	})).Return(sampleItem(), nil)

	router := setupRouter(itemUsecase, rouletteUsecase)

	body, _ := json.Marshal(map[string]interface{}{
		"note":         "write the report",
		"type":         "Action",
		"time_frame":   "Today",
		"new_category": "Work",
	})
	req := httptest.NewRequest(http.MethodPost, "/"+secretPrefix+"/api/items/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	itemUsecase.AssertExpectations(t)
}

func TestCreateItem_MissingNote(t *testing.T) {
	itemUsecase := new(MockItemUsecase)
	rouletteUsecase := new(MockRouletteUsecase)

	router := setupRouter(itemUsecase, rouletteUsecase)

	body, _ := json.Marshal(map[string]interface{}{"type": "Idea"})
	req := httptest.NewRequest(http.MethodPost, "/"+secretPrefix+"/api/items/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	itemUsecase.AssertNotCalled(t, "CreateItem", mock.Anything, mock.Anything)
}

func TestGetCategories(t *testing.T) {
	itemUsecase := new(MockItemUsecase)
	rouletteUsecase := new(MockRouletteUsecase)

	itemUsecase.On("ListCategories", mock.Anything).Return([]domain.LifeCategory{
		{ID: 1, Name: "Health"},
		{ID: 2, Name: "Work"},
	}, nil)

	router := setupRouter(itemUsecase, rouletteUsecase)

	req := httptest.NewRequest(http.MethodGet, "/"+secretPrefix+"/api/categories/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string][]map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp["categories"], 2)
	assert.Equal(t, "Health", resp["categories"][0]["name"])
}

func TestOrganize_Defaults(t *testing.T) {
	itemUsecase := new(MockItemUsecase)
	rouletteUsecase := new(MockRouletteUsecase)

	// パラメータが無い場合のデフォルト: status=Open, time_frame=Today
	itemUsecase.On("ListItems", mock.Anything, mock.MatchedBy(func(filter domain.ItemFilter) bool {
		return len(filter.Status) == 1 && filter.Status[0] == "Open" &&
			len(filter.TimeFrame) == 1 && filter.TimeFrame[0] == "Today" &&
			filter.Sort == "-date_created"
	})).Return([]domain.Item{*sampleItem()}, nil)
	itemUsecase.On("ListCategories", mock.Anything).Return([]domain.LifeCategory{}, nil)

	router := setupRouter(itemUsecase, rouletteUsecase)

	req := httptest.NewRequest(http.MethodGet, "/"+secretPrefix+"/organize/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	itemUsecase.AssertExpectations(t)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(1), resp["count"])
}

func TestOrganize_EmptyValueMeansNoFilter(t *testing.T) {
	itemUsecase := new(MockItemUsecase)
	rouletteUsecase := new(MockRouletteUsecase)

	// ?status= のような空の値は「絞り込みなし」になる（空欄マッチは__empty__番兵の役割）。
	// キー自体は存在するのでデフォルトも適用されない。time_frameはキーが無いのでデフォルトが入る。
	itemUsecase.On("ListItems", mock.Anything, mock.MatchedBy(func(filter domain.ItemFilter) bool {
		return len(filter.Status) == 0 &&
			len(filter.TimeFrame) == 1 && filter.TimeFrame[0] == "Today"
	})).Return([]domain.Item{}, nil)
	itemUsecase.On("ListCategories", mock.Anything).Return([]domain.LifeCategory{}, nil)

	router := setupRouter(itemUsecase, rouletteUsecase)

	req := httptest.NewRequest(http.MethodGet, "/"+secretPrefix+"/organize/?status=&value=", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	itemUsecase.AssertExpectations(t)
}

func TestOrganize_RepeatedParams(t *testing.T) {
	itemUsecase := new(MockItemUsecase)
	rouletteUsecase := new(MockRouletteUsecase)

	// 繰り返しパラメータはフィールドごとの複数選択になる
	itemUsecase.On("ListItems", mock.Anything, mock.MatchedBy(func(filter domain.ItemFilter) bool {
		return len(filter.Status) == 2 && filter.Status[0] == "__empty__" && filter.Status[1] == "Open" &&
			len(filter.TimeFrame) == 1 && filter.TimeFrame[0] == "__all__"
	})).Return([]domain.Item{}, nil)
	itemUsecase.On("ListCategories", mock.Anything).Return([]domain.LifeCategory{}, nil)

	router := setupRouter(itemUsecase, rouletteUsecase)

	req := httptest.NewRequest(http.MethodGet,
		"/"+secretPrefix+"/organize/?status=__empty__&status=Open&time_frame=__all__&sort=note", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	itemUsecase.AssertExpectations(t)
}
