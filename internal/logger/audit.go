package logger

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// Các thao tác thay đổi dữ liệu được ghi audit
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// LogMutation ghi lại một thao tác thay đổi dashboard đã thành công.
// store: tên kho dữ liệu ("setting" hoặc "file"), resourceID: id dashboard.
func LogMutation(c fiber.Ctx, action, store string, resourceID interface{}) {
	fields := logrus.Fields{
		"action":      action,
		"store":       store,
		"resource_id": fmt.Sprint(resourceID),
		"ip":          c.IP(),
		"user_agent":  c.Get("User-Agent"),
	}
	if requestID := RequestID(c); requestID != "" {
		fields["request_id"] = requestID
	}

	GetAuditLogger().WithFields(fields).Info("Dashboard mutation")
}
