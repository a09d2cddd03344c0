// Package statisticssvc đọc dữ liệu ESD (statistics) do hệ thống khác tạo ra.
package statisticssvc

import (
	"context"

	"github.com/heynokimush/dashboard-backend/internal/common"
	"github.com/heynokimush/dashboard-backend/internal/database"
	"github.com/heynokimush/dashboard-backend/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const msgStatisticsFailed = "서버 오류"

// StatisticsListResult là response của GET /api/statistics/list
type StatisticsListResult struct {
	Statistics []bson.M `json:"statistics"`
}

// StatisticsService chỉ đọc collection statistics
type StatisticsService struct {
	collection *mongo.Collection
}

// NewStatisticsService tạo mới StatisticsService
func NewStatisticsService(cols *database.Collections) *StatisticsService {
	return &StatisticsService{collection: cols.Statistics}
}

// List trả về toàn bộ bản ghi statistics, không lọc, không phân trang
func (s *StatisticsService) List(ctx context.Context) (*StatisticsListResult, error) {
	cursor, err := s.collection.Find(ctx, bson.M{})
	if err != nil {
		logger.WithModule("statistics").WithError(err).Error("Failed to query statistics")
		return nil, common.ConvertMongoError(err, msgStatisticsFailed)
	}
	defer cursor.Close(ctx)

	result := &StatisticsListResult{Statistics: make([]bson.M, 0)}
	if err := cursor.All(ctx, &result.Statistics); err != nil {
		logger.WithModule("statistics").WithError(err).Error("Failed to decode statistics")
		return nil, common.ConvertMongoError(err, msgStatisticsFailed)
	}
	return result, nil
}
