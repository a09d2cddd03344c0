// Package dashboardsvc chứa business logic của domain Dashboard: vòng đời dùng chung
// và hai kho lưu trữ (MongoDB, file JSON).
package dashboardsvc

import (
	"time"

	dashboardmodels "github.com/heynokimush/dashboard-backend/internal/api/dashboard/models"
	"github.com/heynokimush/dashboard-backend/internal/utility"
)

// Lifecycle giữ đồng hồ và múi giờ dùng để đóng dấu createdAt/updatedAt
type Lifecycle struct {
	loc *time.Location
	now func() time.Time
}

// NewLifecycle tạo Lifecycle với múi giờ loc (nil = UTC)
func NewLifecycle(loc *time.Location) *Lifecycle {
	if loc == nil {
		loc = time.UTC
	}
	return &Lifecycle{loc: loc, now: time.Now}
}

// WithClock thay đồng hồ (dùng trong test)
func (l *Lifecycle) WithClock(now func() time.Time) *Lifecycle {
	return &Lifecycle{loc: l.loc, now: now}
}

// Timestamp trả về thời điểm hiện tại dạng YYYY-MM-DD HH:mm:ss
func (l *Lifecycle) Timestamp() string {
	return utility.FormatDateTime(l.now(), l.loc)
}

// CompletionRule quyết định khi nào detailInfo đủ để dashboard chuyển sang COMPLETED
type CompletionRule struct {
	GroupKey     string
	AggregateKey string
	// RequireFirstItem: phần tử đầu tiên của mỗi danh sách phải là object có ít nhất một key
	RequireFirstItem bool
}

var (
	// MongoCompletionRule: groupData và aggregateData đều là mảng không rỗng
	MongoCompletionRule = CompletionRule{
		GroupKey:     dashboardmodels.KeyGroupData,
		AggregateKey: dashboardmodels.KeyAggregateData,
	}

	// FileCompletionRule: groupData và aggregatedData không rỗng, phần tử đầu không rỗng
	FileCompletionRule = CompletionRule{
		GroupKey:         dashboardmodels.KeyGroupData,
		AggregateKey:     dashboardmodels.KeyAggregatedData,
		RequireFirstItem: true,
	}
)

// IsComplete kiểm tra detailInfo theo rule
func (r CompletionRule) IsComplete(detailInfo map[string]interface{}) bool {
	if detailInfo == nil {
		return false
	}
	return r.hasItems(detailInfo[r.GroupKey]) && r.hasItems(detailInfo[r.AggregateKey])
}

// Evaluate trả về COMPLETED nếu detailInfo đủ, ngược lại CREATED
func (r CompletionRule) Evaluate(detailInfo map[string]interface{}) dashboardmodels.Status {
	if r.IsComplete(detailInfo) {
		return dashboardmodels.StatusCompleted
	}
	return dashboardmodels.StatusCreated
}

func (r CompletionRule) hasItems(v interface{}) bool {
	items, ok := utility.AsSlice(v)
	if !ok || len(items) == 0 {
		return false
	}
	if !r.RequireFirstItem {
		return true
	}
	first, ok := utility.AsMap(items[0])
	return ok && len(first) > 0
}
