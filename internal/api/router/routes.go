// Package apirouter thiết lập nhóm route /api và cung cấp helper đăng ký route cho các domain.
package apirouter

import (
	"fmt"

	dashboardsvc "github.com/heynokimush/dashboard-backend/internal/api/dashboard/service"
	"github.com/heynokimush/dashboard-backend/internal/registry"

	"github.com/gofiber/fiber/v3"
)

// RoutePrefix chứa các prefix của API (tương đối so với Base)
type RoutePrefix struct {
	Base       string // /api
	Setting    string // /api/setting → Mongo store
	Statistics string // /api/statistics
	File       string // /api → file store
}

// NewRoutePrefix tạo RoutePrefix với các giá trị mặc định
func NewRoutePrefix() RoutePrefix {
	return RoutePrefix{
		Base:       "/api",
		Setting:    "/setting",
		Statistics: "/statistics",
		File:       "",
	}
}

// Router giữ các thành phần dùng chung khi đăng ký route
type Router struct {
	app    *fiber.App
	Prefix RoutePrefix
	// Stores ánh xạ tên nhóm route → DashboardStore
	Stores *registry.Registry[dashboardsvc.DashboardStore]
}

// NewRouter tạo mới Router
func NewRouter(app *fiber.App, stores *registry.Registry[dashboardsvc.DashboardStore]) *Router {
	if stores == nil {
		stores = registry.NewRegistry[dashboardsvc.DashboardStore]()
	}
	return &Router{
		app:    app,
		Prefix: NewRoutePrefix(),
		Stores: stores,
	}
}

// Store lấy DashboardStore đã đăng ký theo tên
func (r *Router) Store(name string) (dashboardsvc.DashboardStore, error) {
	store, ok := r.Stores.Get(name)
	if !ok {
		return nil, fmt.Errorf("dashboard store %q is not registered (registered: %v)", name, r.Stores.Names())
	}
	return store, nil
}

// RegisterRouteWithMiddleware đăng ký route trong group prefix; middleware gắn bằng .Use() của group
// nên chỉ áp dụng cho route trong group đó.
func RegisterRouteWithMiddleware(router fiber.Router, prefix string, method string, path string, middlewares []fiber.Handler, handler fiber.Handler) {
	routeGroup := router
	if prefix != "" || len(middlewares) > 0 {
		routeGroup = router.Group(prefix)
	}
	for _, mw := range middlewares {
		routeGroup.Use(mw)
	}

	switch method {
	case fiber.MethodGet:
		routeGroup.Get(path, handler)
	case fiber.MethodPost:
		routeGroup.Post(path, handler)
	case fiber.MethodPut:
		routeGroup.Put(path, handler)
	case fiber.MethodPatch:
		routeGroup.Patch(path, handler)
	case fiber.MethodDelete:
		routeGroup.Delete(path, handler)
	default:
		panic(fmt.Sprintf("unsupported method %s for %s%s", method, prefix, path))
	}
}

// RegisterFunc là hàm đăng ký route của một domain (do domain/router export)
type RegisterFunc func(api fiber.Router, r *Router) error

// SetupRoutes tạo nhóm /api và gọi lần lượt Register của từng domain
func SetupRoutes(app *fiber.App, stores *registry.Registry[dashboardsvc.DashboardStore], regs ...RegisterFunc) error {
	r := NewRouter(app, stores)
	api := app.Group(r.Prefix.Base)
	for _, reg := range regs {
		if err := reg(api, r); err != nil {
			return err
		}
	}
	return nil
}
