// Package basehdl chứa các helper dùng chung cho HTTP handler: response JSON, xử lý lỗi, recover.
package basehdl

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/heynokimush/dashboard-backend/internal/common"
	"github.com/heynokimush/dashboard-backend/internal/logger"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// JSONResponse trả về JSON response với Content-Type: application/json; charset=utf-8
func JSONResponse(c fiber.Ctx, statusCode int, data interface{}) error {
	c.Set("Content-Type", "application/json; charset=utf-8")
	return c.Status(statusCode).JSON(data)
}

// ErrorBody là format lỗi thống nhất trả về cho client
func ErrorBody(code, message string) fiber.Map {
	return fiber.Map{
		"code":    code,
		"message": message,
		"status":  "error",
	}
}

// HandleError log lỗi kèm tên thao tác và khoá định danh, rồi trả về JSON lỗi.
// Lỗi không phải *common.Error được trả về 500 với message chung.
func HandleError(c fiber.Ctx, err error, operation string, fields logrus.Fields) error {
	entry := logger.WithRequest(c).WithField("operation", operation).WithFields(fields)

	var customErr *common.Error
	if !errors.As(err, &customErr) {
		entry.WithError(err).Error("Unexpected error")
		return JSONResponse(c, common.StatusInternalServerError,
			ErrorBody(common.ErrCodeInternalServer.Code, common.ErrCodeInternalServer.Description))
	}

	if customErr.StatusCode >= common.StatusInternalServerError {
		if customErr.Cause != nil {
			entry = entry.WithField("cause", customErr.Cause.Error())
		}
		entry.WithField("code", customErr.Code.Code).Error(customErr.Message)
		logger.GetErrorLogger().WithFields(entry.Data).Error(customErr.Message)
	} else {
		entry.WithField("code", customErr.Code.Code).Warn(customErr.Message)
	}

	body := ErrorBody(customErr.Code.Code, customErr.Message)
	if customErr.Details != nil {
		body["details"] = customErr.Details
	}
	return JSONResponse(c, common.StatusCodeOf(customErr), body)
}

// SafeHandlerWrapper chạy fn và chuyển panic thành response 500 để server luôn trả lời client
func SafeHandlerWrapper(c fiber.Ctx, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.WithRequest(c).WithFields(logrus.Fields{
				"panic": fmt.Sprintf("%v", r),
				"stack": string(debug.Stack()),
			}).Error("Panic recovered in handler")

			err = JSONResponse(c, common.StatusInternalServerError,
				ErrorBody(common.ErrCodeInternalServer.Code, common.ErrCodeInternalServer.Description))
		}
	}()
	return fn()
}
