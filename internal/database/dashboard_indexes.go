package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes tạo các index phục vụ truy vấn dashboard và tra cứu ESD.
// Index không unique: tính duy nhất của dashboardName chỉ áp dụng cho bản ghi chưa DELETED
// và được kiểm tra ở tầng service.
func EnsureIndexes(ctx context.Context, cols *Collections) error {
	// dashboardInfo: (dashboardInfo.dashboardName, status): kiểm tra trùng tên
	if _, err := cols.Dashboards.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "dashboardInfo.dashboardName", Value: 1},
			{Key: "status", Value: 1},
		},
		Options: options.Index().SetName("dashboard_name_status"),
	}); err != nil && !isIndexExistsError(err) {
		return fmt.Errorf("create index dashboard_name_status: %w", err)
	}

	// dashboardInfo: status: list theo trạng thái
	if _, err := cols.Dashboards.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "status", Value: 1}},
		Options: options.Index().SetName("dashboard_status"),
	}); err != nil && !isIndexExistsError(err) {
		return fmt.Errorf("create index dashboard_status: %w", err)
	}

	// statisticsData: esdName: kiểm tra ESD khi tạo dashboard
	if _, err := cols.Statistics.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "esdName", Value: 1}},
		Options: options.Index().SetName("statistics_esd_name"),
	}); err != nil && !isIndexExistsError(err) {
		return fmt.Errorf("create index statistics_esd_name: %w", err)
	}

	return nil
}

func isIndexExistsError(err error) bool {
	if err == nil {
		return false
	}
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && (cmdErr.Code == 85 || cmdErr.Code == 86) {
		return true
	}
	s := err.Error()
	return strings.Contains(s, "already exists")
}
