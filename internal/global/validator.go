package global

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// Validate là validator dùng chung cho toàn bộ DTO
var Validate *validator.Validate

func init() {
	InitValidator()
}

// InitValidator khởi tạo và đăng ký các custom validator
func InitValidator() {
	Validate = validator.New(validator.WithRequiredStructEnabled())

	// Lỗi trả về theo tên JSON của field thay vì tên Go
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// notblank: chuỗi không rỗng sau khi trim
	_ = Validate.RegisterValidation("notblank", validators.NotBlank)
	// positive_id: chuỗi số nguyên dương hệ thập phân (id của file dashboard)
	_ = Validate.RegisterValidation("positive_id", validatePositiveID)
}

// validatePositiveID kiểm tra chuỗi chỉ gồm chữ số và khác 0
func validatePositiveID(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" || len(value) > 18 {
		return false
	}
	allZero := true
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
		if r != '0' {
			allZero = false
		}
	}
	return !allZero
}
