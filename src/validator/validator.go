package validator

import (
	"fmt"
	"regexp"

	"nowpad/src/domain"

	"github.com/go-playground/validator/v10"
)

// CustomValidator はアイテムフィールド向けの拡張バリデーション機能を提供
type CustomValidator struct {
	validator *validator.Validate
}

// ValidationError はバリデーションエラーの詳細情報
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
	Value   any    `json:"value,omitempty"`
}

// ValidationErrors は複数のバリデーションエラー
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (ve ValidationErrors) Error() string {
	return fmt.Sprintf("validation failed: %d errors", len(ve.Errors))
}

// NewCustomValidator creates a new custom validator instance
func NewCustomValidator() *CustomValidator {
	v := validator.New()
	cv := &CustomValidator{validator: v}

	// カスタムバリデーションルールを登録
	RegisterItemRules(v)

	return cv
}

// RegisterItemRules registers the item enum rules on a validator instance.
// ginのbindingエンジンにも同じルールを登録できるよう公開している。
func RegisterItemRules(v *validator.Validate) {
	v.RegisterValidation("item_type", validateItemType)
	v.RegisterValidation("action_length", validateActionLength)
	v.RegisterValidation("time_frame", validateTimeFrame)
	v.RegisterValidation("item_status", validateItemStatus)
	v.RegisterValidation("rating", validateRating)
}

// Validate validates a struct and returns detailed error information
func (cv *CustomValidator) Validate(s interface{}) error {
	if err := cv.validator.Struct(s); err != nil {
		var validationErrors []ValidationError

		for _, err := range err.(validator.ValidationErrors) {
			ve := ValidationError{
				Field: err.Field(),
				Tag:   err.Tag(),
				Value: err.Value(),
			}

			// カスタムエラーメッセージを生成
			ve.Message = generateErrorMessage(err)
			validationErrors = append(validationErrors, ve)
		}

		return ValidationErrors{Errors: validationErrors}
	}
	return nil
}

// カスタムバリデーション関数

func validateItemType(fl validator.FieldLevel) bool {
	return domain.ItemType(fl.Field().String()).IsValid()
}

func validateActionLength(fl validator.FieldLevel) bool {
	return domain.ActionLength(fl.Field().String()).IsValid()
}

func validateTimeFrame(fl validator.FieldLevel) bool {
	return domain.TimeFrame(fl.Field().String()).IsValid()
}

func validateItemStatus(fl validator.FieldLevel) bool {
	return domain.Status(fl.Field().String()).IsValid()
}

func validateRating(fl validator.FieldLevel) bool {
	return domain.IsValidRating(int(fl.Field().Int()))
}

// generateErrorMessage generates user-friendly error messages
func generateErrorMessage(err validator.FieldError) string {
	field := err.Field()
	tag := err.Tag()
	value := err.Value()

	switch tag {
	case "required":
		return fmt.Sprintf("%s は必須項目です", field)
	case "max":
		return fmt.Sprintf("%s は %s 文字以下で入力してください", field, err.Param())
	case "item_type":
		return fmt.Sprintf("%s は Idea / Journey / Project / Action のいずれかを指定してください", field)
	case "action_length":
		return fmt.Sprintf("%s は 5 minutes / 15 minutes / 1 hour / 3 hours のいずれかを指定してください", field)
	case "time_frame":
		return fmt.Sprintf("%s は Now / Today / This Week / This Month / Future のいずれかを指定してください", field)
	case "item_status":
		return fmt.Sprintf("%s は Open / Complete / Archive / Remove のいずれかを指定してください", field)
	case "rating":
		return fmt.Sprintf("%s は 1〜5 の整数で指定してください", field)
	default:
		return fmt.Sprintf("%s が無効です (値: %v)", field, value)
	}
}

// ValidateID validates ID parameters coming from the URL path
func (cv *CustomValidator) ValidateID(idStr string) (int, error) {
	// 数値以外の文字をチェック
	if !regexp.MustCompile(`^\d+$`).MatchString(idStr) {
		return 0, fmt.Errorf("ID must be a positive integer")
	}

	// 長さチェック（異常に長いIDを防ぐ）
	if len(idStr) > 10 {
		return 0, fmt.Errorf("ID is too long")
	}

	// パースを試行
	var id int
	if _, err := fmt.Sscanf(idStr, "%d", &id); err != nil {
		return 0, fmt.Errorf("invalid ID format")
	}

	// 正の値チェック
	if id <= 0 {
		return 0, fmt.Errorf("ID must be positive")
	}

	return id, nil
}
