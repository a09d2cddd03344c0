// Package router đăng ký các route của domain Dashboard cho cả hai store.
package router

import (
	"github.com/gofiber/fiber/v3"

	dashboardhdl "github.com/heynokimush/dashboard-backend/internal/api/dashboard/handler"
	dashboardsvc "github.com/heynokimush/dashboard-backend/internal/api/dashboard/service"
	apirouter "github.com/heynokimush/dashboard-backend/internal/api/router"
)

// Register đăng ký create/list/read/update/delete:
//   - /api/setting/* → store "setting" (MongoDB)
//   - /api/*         → store "file" (file JSON)
func Register(api fiber.Router, r *apirouter.Router) error {
	groups := []struct {
		storeName string
		prefix    string
	}{
		{storeName: dashboardsvc.StoreSetting, prefix: r.Prefix.Setting},
		{storeName: dashboardsvc.StoreFile, prefix: r.Prefix.File},
	}

	for _, g := range groups {
		store, err := r.Store(g.storeName)
		if err != nil {
			return err
		}
		h := dashboardhdl.NewDashboardHandler(g.storeName, store)

		apirouter.RegisterRouteWithMiddleware(api, g.prefix, fiber.MethodPost, "/create", nil, h.HandleCreate)
		apirouter.RegisterRouteWithMiddleware(api, g.prefix, fiber.MethodGet, "/list", nil, h.HandleList)
		apirouter.RegisterRouteWithMiddleware(api, g.prefix, fiber.MethodGet, "/read", nil, h.HandleRead)
		apirouter.RegisterRouteWithMiddleware(api, g.prefix, fiber.MethodPatch, "/update", nil, h.HandleUpdate)
		apirouter.RegisterRouteWithMiddleware(api, g.prefix, fiber.MethodDelete, "/delete", nil, h.HandleDelete)
	}
	return nil
}
