// Package statisticshdl chứa HTTP handler cho danh sách statistics (ESD).
package statisticshdl

import (
	"context"

	basehdl "github.com/heynokimush/dashboard-backend/internal/api/base/handler"
	statisticssvc "github.com/heynokimush/dashboard-backend/internal/api/statistics/service"
	"github.com/heynokimush/dashboard-backend/internal/common"

	"github.com/gofiber/fiber/v3"
)

// StatisticsLister là năng lực đọc danh sách statistics
type StatisticsLister interface {
	List(ctx context.Context) (*statisticssvc.StatisticsListResult, error)
}

// StatisticsHandler xử lý GET /api/statistics/list
type StatisticsHandler struct {
	Service StatisticsLister
}

// NewStatisticsHandler tạo StatisticsHandler
func NewStatisticsHandler(service StatisticsLister) *StatisticsHandler {
	return &StatisticsHandler{Service: service}
}

// HandleList trả về {statistics: [...]}
func (h *StatisticsHandler) HandleList(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		result, err := h.Service.List(c.Context())
		if err != nil {
			return basehdl.HandleError(c, err, "statistics.list", nil)
		}
		return basehdl.JSONResponse(c, common.StatusOK, result)
	})
}
