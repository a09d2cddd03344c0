package logger

import (
	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// RequestIDHeader là header mang request ID (do middleware requestid gán)
const RequestIDHeader = "X-Request-ID"

// RequestID lấy request ID của request hiện tại.
// Middleware requestid ghi ID vào response header; nếu chưa có thì dùng header client gửi lên.
func RequestID(c fiber.Ctx) string {
	if rid := c.GetRespHeader(RequestIDHeader); rid != "" {
		return rid
	}
	return c.Get(RequestIDHeader)
}

// WithRequest trả về logger entry với request context từ Fiber
func WithRequest(c fiber.Ctx) *logrus.Entry {
	entry := GetAppLogger().WithContext(c.Context())

	if requestID := RequestID(c); requestID != "" {
		entry = entry.WithField("request_id", requestID)
	}

	return entry.WithFields(logrus.Fields{
		"method": c.Method(),
		"path":   c.Path(),
		"ip":     c.IP(),
	})
}

// WithFields trả về logger entry với các fields bổ sung
func WithFields(fields map[string]interface{}) *logrus.Entry {
	return GetAppLogger().WithFields(logrus.Fields(fields))
}

// WithModule trả về logger entry với module name (ví dụ: "dashboard.mongo", "dashboard.file")
func WithModule(module string) *logrus.Entry {
	return GetAppLogger().WithField("module", module)
}
