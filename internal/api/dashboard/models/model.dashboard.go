// Package models chứa các model thuộc domain Dashboard.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Status là trạng thái vòng đời của dashboard
type Status string

const (
	StatusCreated   Status = "CREATED"   // Vừa tạo, chưa cấu hình detailInfo
	StatusCompleted Status = "COMPLETED" // Đã có groupData và dữ liệu tổng hợp
	StatusDeleted   Status = "DELETED"   // Đã xoá (soft delete, chỉ Mongo store)
)

// Các key cố định trong dashboardInfo / detailInfo
const (
	KeyDashboardInfo  = "dashboardInfo"
	KeyDetailInfo     = "detailInfo"
	KeyDashboardName  = "dashboardName"
	KeyEsdName        = "esdName"
	KeyGroupData      = "groupData"
	KeyAggregateData  = "aggregateData"  // Tên field ở Mongo store
	KeyAggregatedData = "aggregatedData" // Tên field ở file store
)

// Dashboard là document lưu trong collection setting.dashboardInfo
type Dashboard struct {
	ID            primitive.ObjectID     `json:"_id" bson:"_id,omitempty"`                         // MongoDB _id
	DashboardInfo map[string]interface{} `json:"dashboardInfo" bson:"dashboardInfo"`               // dashboardName, esdName và các key tuỳ ý
	DetailInfo    map[string]interface{} `json:"detailInfo,omitempty" bson:"detailInfo,omitempty"` // groupData, aggregateData
	Status        Status                 `json:"status" bson:"status"`                             // CREATED | COMPLETED | DELETED
	CreatedAt     string                 `json:"createdAt" bson:"createdAt"`                       // YYYY-MM-DD HH:mm:ss
	UpdatedAt     string                 `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`   // Không có ngay sau khi tạo
}
