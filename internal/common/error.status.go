// Package common chứa các hằng số HTTP, mã lỗi và kiểu lỗi dùng chung cho toàn bộ API.
package common

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// HTTP Status Code Constants
const (
	StatusOK                  = 200 // Thành công
	StatusBadRequest          = 400 // Yêu cầu không hợp lệ
	StatusNotFound            = 404 // Không tìm thấy tài nguyên
	StatusTooManyRequests     = 429 // Quá nhiều yêu cầu
	StatusInternalServerError = 500 // Lỗi server
	StatusServiceUnavailable  = 503 // Dịch vụ không khả dụng
)

// ErrorCode định nghĩa mã lỗi chi tiết
type ErrorCode struct {
	Code        string // Mã lỗi (ví dụ: VAL_001)
	Category    string // Phân loại lỗi (ví dụ: Validation)
	SubCategory string // Phân loại con (ví dụ: Input)
	Description string // Mô tả chi tiết
}

// Định nghĩa các mã lỗi theo hệ thống phân cấp
var (
	// System Errors (SYS_xxx)
	ErrCodeInternalServer = ErrorCode{
		Code:        "SYS_001",
		Category:    "System",
		SubCategory: "Internal",
		Description: "Lỗi hệ thống nội bộ",
	}

	ErrCodeRateLimit = ErrorCode{
		Code:        "SYS_002",
		Category:    "System",
		SubCategory: "RateLimit",
		Description: "Vượt quá giới hạn số request",
	}

	// Validation Errors (VAL_xxx)
	ErrCodeValidationInput = ErrorCode{
		Code:        "VAL_001",
		Category:    "Validation",
		SubCategory: "Input",
		Description: "Thiếu hoặc sai dữ liệu đầu vào bắt buộc",
	}

	ErrCodeValidationFormat = ErrorCode{
		Code:        "VAL_002",
		Category:    "Validation",
		SubCategory: "Format",
		Description: "Lỗi định dạng dữ liệu",
	}

	// Business Logic Errors (BIZ_xxx)
	ErrCodeDuplicateName = ErrorCode{
		Code:        "BIZ_001",
		Category:    "Business",
		SubCategory: "Duplicate",
		Description: "Tên dashboard đã tồn tại trong các bản ghi chưa xoá",
	}

	ErrCodeReferenceNotFound = ErrorCode{
		Code:        "BIZ_002",
		Category:    "Business",
		SubCategory: "Reference",
		Description: "Bản ghi tham chiếu (ESD) không tồn tại",
	}

	// Database / Storage Errors (DB_xxx, FS_xxx)
	ErrCodeDatabaseConnection = ErrorCode{
		Code:        "DB_001",
		Category:    "Database",
		SubCategory: "Connection",
		Description: "Lỗi kết nối cơ sở dữ liệu",
	}

	ErrCodeDatabaseQuery = ErrorCode{
		Code:        "DB_002",
		Category:    "Database",
		SubCategory: "Query",
		Description: "Lỗi truy vấn dữ liệu",
	}

	ErrCodeNotFound = ErrorCode{
		Code:        "DB_003",
		Category:    "Database",
		SubCategory: "NotFound",
		Description: "Không tìm thấy bản ghi",
	}

	ErrCodeFileStorage = ErrorCode{
		Code:        "FS_001",
		Category:    "Storage",
		SubCategory: "File",
		Description: "Lỗi đọc/ghi file",
	}
)

// Error định nghĩa cấu trúc lỗi chi tiết
type Error struct {
	Code       ErrorCode // Mã lỗi chi tiết
	Message    string    // Thông báo lỗi trả về cho client
	StatusCode int       // HTTP status code
	Details    any       // Thông tin chi tiết thêm về lỗi (được trả về client)
	Cause      error     // Lỗi gốc, chỉ dùng để log
}

// Error trả về message của lỗi
func (e *Error) Error() string {
	return e.Message
}

// Unwrap trả về lỗi gốc (hỗ trợ errors.As / errors.Is qua chuỗi wrap)
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is so sánh theo loại lỗi: hai *Error cùng Code.Code được coi là cùng loại.
// Nhờ vậy errors.Is(err, common.ErrNotFound) đúng với mọi lỗi NotFound bất kể message.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code.Code == t.Code.Code
}

// NewError tạo một error mới với đầy đủ thông tin
func NewError(code ErrorCode, message string, statusCode int, details any) error {
	return &Error{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    details,
	}
}

// Các loại lỗi (dùng làm target cho errors.Is)
var (
	ErrValidation        = NewError(ErrCodeValidationInput, "Dữ liệu đầu vào không hợp lệ", StatusBadRequest, nil)
	ErrInvalidFormat     = NewError(ErrCodeValidationFormat, "Định dạng dữ liệu không hợp lệ", StatusBadRequest, nil)
	ErrDuplicateName     = NewError(ErrCodeDuplicateName, "Tên dashboard đã tồn tại", StatusBadRequest, nil)
	ErrReferenceNotFound = NewError(ErrCodeReferenceNotFound, "Không tìm thấy bản ghi tham chiếu", StatusBadRequest, nil)
	ErrNotFound          = NewError(ErrCodeNotFound, "Không tìm thấy dữ liệu", StatusNotFound, nil)
	ErrStore             = NewError(ErrCodeDatabaseQuery, "Lỗi tương tác với kho dữ liệu", StatusInternalServerError, nil)
	ErrFileStore         = NewError(ErrCodeFileStorage, "Lỗi đọc/ghi file", StatusInternalServerError, nil)
)

// NewValidationError lỗi thiếu/sai dữ liệu bắt buộc (400)
func NewValidationError(message string) error {
	return NewError(ErrCodeValidationInput, message, StatusBadRequest, nil)
}

// NewFormatError lỗi định dạng (ví dụ: id không hợp lệ) (400)
func NewFormatError(message string) error {
	return NewError(ErrCodeValidationFormat, message, StatusBadRequest, nil)
}

// NewDuplicateNameError lỗi trùng tên dashboard (400)
func NewDuplicateNameError(message string) error {
	return NewError(ErrCodeDuplicateName, message, StatusBadRequest, nil)
}

// NewReferenceNotFoundError lỗi bản ghi tham chiếu không tồn tại (400)
func NewReferenceNotFoundError(message string) error {
	return NewError(ErrCodeReferenceNotFound, message, StatusBadRequest, nil)
}

// NewNotFoundError lỗi không tìm thấy bản ghi/file đích (404)
func NewNotFoundError(message string) error {
	return NewError(ErrCodeNotFound, message, StatusNotFound, nil)
}

// NewFileStoreError lỗi I/O của file store (500). cause chỉ được log, không trả về client.
func NewFileStoreError(message string, cause error) error {
	return &Error{
		Code:       ErrCodeFileStorage,
		Message:    message,
		StatusCode: StatusInternalServerError,
		Cause:      cause,
	}
}

// ConvertMongoError chuyển đổi lỗi MongoDB sang lỗi hệ thống (StoreError, 500).
// message là thông báo hiển thị cho client tương ứng với thao tác đang thực hiện.
func ConvertMongoError(err error, message string) error {
	if err == nil {
		return nil
	}

	// Lỗi đã được chuẩn hoá thì giữ nguyên
	var customErr *Error
	if errors.As(err, &customErr) {
		return err
	}

	code := ErrCodeDatabaseQuery
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		code = ErrCodeDatabaseConnection
	}

	return &Error{
		Code:       code,
		Message:    message,
		StatusCode: StatusInternalServerError,
		Cause:      err,
	}
}

// StatusCodeOf trả về HTTP status tương ứng với err (500 nếu không phải *Error)
func StatusCodeOf(err error) int {
	var customErr *Error
	if errors.As(err, &customErr) && customErr.StatusCode != 0 {
		return customErr.StatusCode
	}
	return StatusInternalServerError
}
