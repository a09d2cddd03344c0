// Package router đăng ký route của domain Statistics.
package router

import (
	"github.com/gofiber/fiber/v3"

	statisticshdl "github.com/heynokimush/dashboard-backend/internal/api/statistics/handler"
	apirouter "github.com/heynokimush/dashboard-backend/internal/api/router"
)

// Register trả về hàm đăng ký GET /api/statistics/list
func Register(service statisticshdl.StatisticsLister) apirouter.RegisterFunc {
	return func(api fiber.Router, r *apirouter.Router) error {
		h := statisticshdl.NewStatisticsHandler(service)
		apirouter.RegisterRouteWithMiddleware(api, r.Prefix.Statistics, "GET", "/list", nil, h.HandleList)
		return nil
	}
}
