package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Configuration chứa thông tin tĩnh cần thiết để chạy ứng dụng
type Configuration struct {
	Address string `env:"ADDRESS" envDefault:":8080"` // Địa chỉ server

	// MongoDB
	MongoDB_ConnectionURI      string `env:"MONGODB_CONNECTION_URI,required"`                      // URL kết nối cơ sở dữ liệu
	MongoDB_DBName_Setting     string `env:"MONGODB_DBNAME_SETTING" envDefault:"setting"`          // Database chứa dashboard
	MongoDB_ColName_Dashboard  string `env:"MONGODB_COLNAME_DASHBOARD" envDefault:"dashboardInfo"` // Collection dashboard
	MongoDB_DBName_Statistics  string `env:"MONGODB_DBNAME_STATISTICS" envDefault:"statistics"`    // Database chứa ESD
	MongoDB_ColName_Statistics string `env:"MONGODB_COLNAME_STATISTICS" envDefault:"statisticsData"`
	MongoDB_ConnectTimeout     int    `env:"MONGODB_CONNECT_TIMEOUT" envDefault:"10"` // Giây

	// File store
	DashboardDir string `env:"DASHBOARD_DIR" envDefault:"dashboards"` // Thư mục chứa dashboard{id}.json
	TimeZone     string `env:"TIMEZONE" envDefault:"Asia/Seoul"`      // Múi giờ dùng cho createdAt/updatedAt

	// HTTP
	CORS_Origins          string `env:"CORS_ORIGINS" envDefault:"*"`               // Các origins được phép (phân cách bởi dấu phẩy, * = tất cả)
	CORS_AllowCredentials bool   `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"` // Cho phép gửi credentials
	RateLimit_Max         int    `env:"RATE_LIMIT_MAX" envDefault:"100"`           // Số request tối đa trong window (0 = disable rate limit)
	RateLimit_Window      int    `env:"RATE_LIMIT_WINDOW" envDefault:"60"`         // Thời gian window (giây)
	RateLimit_Enabled     bool   `env:"RATE_LIMIT_ENABLED" envDefault:"true"`      // Bật/tắt rate limiting
	ShutdownTimeout       int    `env:"SHUTDOWN_TIMEOUT" envDefault:"10"`          // Giây chờ khi tắt server
}

// Location trả về múi giờ đã cấu hình
func (c *Configuration) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

// CORSOrigins tách CORS_ORIGINS thành danh sách
func (c *Configuration) CORSOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORS_Origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// getEnvPath trả về đường dẫn đến file env dựa trên môi trường
func getEnvPath() string {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	// Tìm thư mục config/env, đi lên thư mục cha nếu chưa thấy
	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			return filepath.Join(envDir, fmt.Sprintf("%s.env", env))
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// LoadEnvFiles nạp các file env vào biến môi trường của process.
// Không truyền files thì dùng config/env/{GO_ENV}.env nếu tồn tại. File không tồn tại được bỏ qua.
// Biến môi trường đã có sẵn trong process không bị ghi đè.
func LoadEnvFiles(files ...string) error {
	if len(files) == 0 {
		if envPath := getEnvPath(); envPath != "" {
			files = append(files, envPath)
		}
	}

	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load env file %s: %w", f, err)
		}
	}
	return nil
}

// NewConfig nạp file env (xem LoadEnvFiles) rồi đọc cấu hình từ biến môi trường
func NewConfig(files ...string) (*Configuration, error) {
	if err := LoadEnvFiles(files...); err != nil {
		return nil, err
	}

	cfg := Configuration{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if _, err := cfg.Location(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
