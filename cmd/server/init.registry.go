package main

import (
	"fmt"

	dashboardsvc "github.com/heynokimush/dashboard-backend/internal/api/dashboard/service"
	"github.com/heynokimush/dashboard-backend/internal/logger"
	"github.com/heynokimush/dashboard-backend/internal/registry"
)

// InitStores tạo registry các DashboardStore theo nhóm route:
// "setting" → MongoDB, "file" → thư mục DASHBOARD_DIR
func InitStores(app *Application) (*registry.Registry[dashboardsvc.DashboardStore], error) {
	loc, err := app.Config.Location()
	if err != nil {
		return nil, err
	}
	lifecycle := dashboardsvc.NewLifecycle(loc)

	stores := registry.NewRegistry[dashboardsvc.DashboardStore]()
	items := map[string]dashboardsvc.DashboardStore{
		dashboardsvc.StoreSetting: dashboardsvc.NewDashboardMongoService(app.Collections, lifecycle),
		dashboardsvc.StoreFile:    dashboardsvc.NewDashboardFileService(app.Config.DashboardDir, lifecycle),
	}

	log := logger.GetAppLogger()
	for name, store := range items {
		if _, err := stores.Register(name, store); err != nil {
			return nil, fmt.Errorf("failed to register dashboard store %s: %w", name, err)
		}
		log.Infof("Dashboard store %s registered successfully", name)
	}
	log.WithField("stores", stores.Names()).Info("Dashboard stores ready")
	return stores, nil
}
