// Package dashboarddto chứa các struct dữ liệu vào/ra của domain Dashboard.
package dashboarddto

import (
	"bytes"
	"encoding/json"

	dashboardmodels "github.com/heynokimush/dashboard-backend/internal/api/dashboard/models"
)

// DashboardQueryParams là query string của list/read/update/delete
type DashboardQueryParams struct {
	ID     string `query:"id"`
	Status string `query:"status"`
}

// DashboardCreateInput là body của request tạo dashboard.
// Mongo store chỉ dùng dashboardInfo, file store lưu nguyên payload.
type DashboardCreateInput struct {
	Payload map[string]interface{} `json:"-"`
}

// DashboardInfo trả về payload.dashboardInfo nếu là object
func (in *DashboardCreateInput) DashboardInfo() map[string]interface{} {
	if in == nil || in.Payload == nil {
		return nil
	}
	info, _ := in.Payload[dashboardmodels.KeyDashboardInfo].(map[string]interface{})
	return info
}

// DashboardIdentity là các trường bắt buộc của dashboardInfo khi tạo ở Mongo store
type DashboardIdentity struct {
	DashboardName string `json:"dashboardName" validate:"notblank"`
	EsdName       string `json:"esdName" validate:"notblank"`
}

// FileDashboardIdentity là trường bắt buộc của dashboardInfo khi tạo ở file store
type FileDashboardIdentity struct {
	DashboardName string `json:"dashboardName" validate:"notblank"`
}

// DashboardID là id gửi trong body, chấp nhận cả string và số
type DashboardID string

// UnmarshalJSON nhận "7", 7 hoặc null
func (id *DashboardID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = DashboardID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = DashboardID(n.String())
	return nil
}

// DashboardUpdateInput là dữ liệu cập nhật dashboard. Map nil nghĩa là không gửi.
// ID là id đã chọn (query ?id= trước, sau đó tới BodyID).
type DashboardUpdateInput struct {
	ID            string                 `json:"-"`
	BodyID        DashboardID            `json:"id"`
	DashboardInfo map[string]interface{} `json:"dashboardInfo"`
	DetailInfo    map[string]interface{} `json:"detailInfo"`
}

// DashboardIDInput dùng để validate id của file store
type DashboardIDInput struct {
	ID string `json:"id" validate:"positive_id"`
}

// DashboardCreateResult là response của create
type DashboardCreateResult struct {
	ID interface{} `json:"id"`
}

// DashboardMessageResult là response của update/delete
type DashboardMessageResult struct {
	Message string `json:"message"`
}

// FileDashboardListResult là response list của file store
type FileDashboardListResult struct {
	Dashboards []dashboardmodels.FileSummary `json:"dashboards"`
}
