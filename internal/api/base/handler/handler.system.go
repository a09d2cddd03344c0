package basehdl

import (
	"context"
	"os"
	"time"

	"github.com/heynokimush/dashboard-backend/internal/common"

	"github.com/gofiber/fiber/v3"
)

// Pinger kiểm tra kết nối tới kho dữ liệu
type Pinger func(ctx context.Context) error

// SystemHandler xử lý các route liên quan đến system operations
type SystemHandler struct {
	ping         Pinger
	dashboardDir string
}

// NewSystemHandler tạo một instance mới của SystemHandler.
// ping có thể nil khi chưa có kết nối database.
func NewSystemHandler(ping Pinger, dashboardDir string) *SystemHandler {
	return &SystemHandler{ping: ping, dashboardDir: dashboardDir}
}

// HandleHealth kiểm tra tình trạng hệ thống: API, MongoDB và thư mục dashboard
func (h *SystemHandler) HandleHealth(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	services := fiber.Map{"api": "ok"}
	healthData := fiber.Map{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"services":  services,
	}
	statusCode := common.StatusOK

	if h.ping == nil {
		healthData["status"] = "degraded"
		services["database"] = "not_initialized"
		statusCode = common.StatusServiceUnavailable
	} else if err := h.ping(ctx); err != nil {
		healthData["status"] = "degraded"
		services["database"] = "error"
		healthData["database_error"] = err.Error()
		statusCode = common.StatusServiceUnavailable
	} else {
		services["database"] = "ok"
	}

	// Thư mục chưa tồn tại vẫn ổn: file store tạo khi create lần đầu
	services["dashboardDir"] = dirState(h.dashboardDir)

	return JSONResponse(c, statusCode, healthData)
}

func dirState(dir string) string {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return "missing"
	}
	if err != nil || !info.IsDir() {
		return "error"
	}
	f, err := os.CreateTemp(dir, ".health-*")
	if err != nil {
		return "read_only"
	}
	name := f.Name()
	f.Close()
	_ = os.Remove(name)
	return "ok"
}
