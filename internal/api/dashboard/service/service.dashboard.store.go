package dashboardsvc

import (
	"context"

	dashboarddto "github.com/heynokimush/dashboard-backend/internal/api/dashboard/dto"
)

// Tên các store trong registry, trùng với nhóm route
const (
	StoreSetting = "setting" // /api/setting/* → MongoDB
	StoreFile    = "file"    // /api/* → file JSON
)

// DashboardStore là năng lực CRUD chung của một kho dashboard.
// Lỗi nghiệp vụ là *common.Error với message hiển thị cho người dùng.
type DashboardStore interface {
	// Create tạo dashboard mới, trả về id
	Create(ctx context.Context, input *dashboarddto.DashboardCreateInput) (*dashboarddto.DashboardCreateResult, error)
	// List trả về các dashboard chưa xoá, lọc theo status nếu status != ""
	List(ctx context.Context, status string) (interface{}, error)
	// Read trả về toàn bộ bản ghi theo id
	Read(ctx context.Context, id string) (interface{}, error)
	// Update cập nhật dashboardInfo/detailInfo, làm mới updatedAt
	Update(ctx context.Context, input *dashboarddto.DashboardUpdateInput) error
	// Delete xoá dashboard (soft delete hoặc xoá file tuỳ store)
	Delete(ctx context.Context, id string) error
}
