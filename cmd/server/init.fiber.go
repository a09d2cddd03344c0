package main

import (
	"errors"
	"fmt"
	"time"

	basehdl "github.com/heynokimush/dashboard-backend/internal/api/base/handler"
	dashboardrouter "github.com/heynokimush/dashboard-backend/internal/api/dashboard/router"
	dashboardsvc "github.com/heynokimush/dashboard-backend/internal/api/dashboard/service"
	apirouter "github.com/heynokimush/dashboard-backend/internal/api/router"
	statisticsrouter "github.com/heynokimush/dashboard-backend/internal/api/statistics/router"
	statisticssvc "github.com/heynokimush/dashboard-backend/internal/api/statistics/service"
	"github.com/heynokimush/dashboard-backend/internal/common"
	"github.com/heynokimush/dashboard-backend/internal/logger"
	"github.com/heynokimush/dashboard-backend/internal/registry"
	"github.com/heynokimush/dashboard-backend/internal/utility"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/google/uuid"
)

// errorCodeForStatus map HTTP status của fiber.Error sang mã lỗi hệ thống
func errorCodeForStatus(status int) string {
	switch status {
	case fiber.StatusBadRequest, fiber.StatusRequestEntityTooLarge:
		return common.ErrCodeValidationInput.Code
	case fiber.StatusNotFound, fiber.StatusMethodNotAllowed:
		return common.ErrCodeNotFound.Code
	case fiber.StatusTooManyRequests:
		return common.ErrCodeRateLimit.Code
	default:
		return common.ErrCodeInternalServer.Code
	}
}

// errorHandler trả lỗi framework (route không tồn tại, body quá lớn...) cùng format với handler
func errorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"
	errorCode := common.ErrCodeInternalServer.Code

	var fiberErr *fiber.Error
	var appErr *common.Error
	switch {
	case errors.As(err, &appErr):
		code = appErr.StatusCode
		message = appErr.Message
		errorCode = appErr.Code.Code
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
		message = fiberErr.Message
		errorCode = errorCodeForStatus(code)
	}

	entry := logger.WithRequest(c).WithFields(map[string]interface{}{
		"code":      code,
		"errorCode": errorCode,
		"message":   message,
	})
	if code >= fiber.StatusInternalServerError {
		entry.WithError(err).Error("Request error")
	} else {
		entry.Debug("Request error")
	}

	return c.Status(code).JSON(basehdl.ErrorBody(errorCode, message))
}

// InitFiberApp khởi tạo ứng dụng Fiber với middleware và toàn bộ route
func InitFiberApp(a *Application, stores *registry.Registry[dashboardsvc.DashboardStore]) (*fiber.App, error) {
	cfg := a.Config
	app := fiber.New(fiber.Config{
		AppName:       "Dashboard Settings API",
		ServerHeader:  "Dashboard Settings API",
		StrictRouting: true,
		CaseSensitive: true,

		BodyLimit:       10 * 1024 * 1024, // 10MB
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,

		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,

		// số trong body giữ dạng json.Number khi bind
		JSONDecoder:  utility.UnmarshalJSON,
		ErrorHandler: errorHandler,
	})

	// 1. Request ID
	app.Use(requestid.New(requestid.Config{
		Header:    logger.RequestIDHeader,
		Generator: uuid.NewString,
	}))

	// 2. CORS - đặt trước các middleware khác để xử lý preflight
	allowOrigins := cfg.CORSOrigins()
	allowCredentials := cfg.CORS_AllowCredentials
	for _, o := range allowOrigins {
		if o == "*" {
			// fiber cors không cho phép wildcard kèm credentials
			allowCredentials = false
			break
		}
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", logger.RequestIDHeader, "X-Requested-With"},
		AllowCredentials: allowCredentials,
		ExposeHeaders:    []string{"Content-Length", logger.RequestIDHeader},
		MaxAge:           24 * 60 * 60,
	}))

	// 3. Security headers
	app.Use(func(c fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		return c.Next()
	})

	// 4. Rate limit
	log := logger.GetAppLogger()
	if cfg.RateLimit_Enabled && cfg.RateLimit_Max > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.RateLimit_Max,
			Expiration: time.Duration(cfg.RateLimit_Window) * time.Second,
			KeyGenerator: func(c fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(
					basehdl.ErrorBody(common.ErrCodeRateLimit.Code, "요청이 너무 많습니다. 잠시 후 다시 시도해 주세요."))
			},
			Next: func(c fiber.Ctx) bool {
				return c.Path() == "/health" || c.Method() == fiber.MethodOptions
			},
		}))
		log.Infof("Rate limiting enabled: %d requests per %d seconds", cfg.RateLimit_Max, cfg.RateLimit_Window)
	} else {
		log.Info("Rate limiting disabled")
	}

	// 5. Recover
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c fiber.Ctx, e interface{}) {
			logger.WithRequest(c).WithField("panic", fmt.Sprintf("%v", e)).Error("Panic recovered")
		},
	}))

	system := basehdl.NewSystemHandler(a.Ping, cfg.DashboardDir)
	app.Get("/health", system.HandleHealth)

	statistics := statisticssvc.NewStatisticsService(a.Collections)
	if err := apirouter.SetupRoutes(app, stores,
		dashboardrouter.Register,
		statisticsrouter.Register(statistics),
	); err != nil {
		return nil, err
	}

	return app, nil
}
