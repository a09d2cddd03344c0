package models

import (
	"encoding/json"
	"strconv"
)

// FileDocument là nội dung một file dashboard{id}.json.
// Payload người dùng gửi lên được giữ nguyên, chỉ thêm id, createdAt, status (và updatedAt, detailInfo khi update).
type FileDocument map[string]interface{}

// DashboardInfo trả về dashboardInfo nếu là object
func (d FileDocument) DashboardInfo() map[string]interface{} {
	info, _ := d[KeyDashboardInfo].(map[string]interface{})
	return info
}

// DashboardName trả về dashboardInfo.dashboardName, "" nếu không có
func (d FileDocument) DashboardName() string {
	name, _ := d.DashboardInfo()[KeyDashboardName].(string)
	return name
}

// NumericID trả về id dạng số, false nếu không có hoặc không phải số nguyên
func (d FileDocument) NumericID() (int64, bool) {
	switch v := d["id"].(type) {
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	case float64:
		return int64(v), v == float64(int64(v))
	case int:
		return int64(v), true
	case int64:
		return v, true
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		return n, err == nil
	default:
		return 0, false
	}
}

// FileSummary là một dòng trong kết quả list của file store
type FileSummary struct {
	ID            interface{} `json:"id"`            // "" nếu file không có id
	DashboardName interface{} `json:"dashboardName"` // "" nếu không có
	CreatedAt     interface{} `json:"createdAt"`     // "" nếu không có
	UpdatedAt     interface{} `json:"updatedAt"`     // "-" nếu chưa từng update
	Status        interface{} `json:"status"`        // "" nếu không có
}

// Summarize tạo FileSummary từ document. Giá trị rỗng (nil, "", 0, false) được thay bằng giá trị mặc định.
func (d FileDocument) Summarize() FileSummary {
	return FileSummary{
		ID:            orDefault(d["id"], ""),
		DashboardName: orDefault(d.DashboardInfo()[KeyDashboardName], ""),
		CreatedAt:     orDefault(d["createdAt"], ""),
		UpdatedAt:     orDefault(d["updatedAt"], "-"),
		Status:        orDefault(d["status"], ""),
	}
}

// StatusString trả về status dạng string ("" nếu không phải string)
func (s FileSummary) StatusString() string {
	str, _ := s.Status.(string)
	return str
}

func orDefault(v interface{}, def string) interface{} {
	switch t := v.(type) {
	case nil:
		return def
	case string:
		if t == "" {
			return def
		}
	case bool:
		if !t {
			return def
		}
	case json.Number:
		if f, err := t.Float64(); err == nil && f == 0 {
			return def
		}
	case float64:
		if t == 0 {
			return def
		}
	case int:
		if t == 0 {
			return def
		}
	case int64:
		if t == 0 {
			return def
		}
	}
	return v
}
