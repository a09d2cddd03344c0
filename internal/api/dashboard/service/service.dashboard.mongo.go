package dashboardsvc

import (
	"context"
	"errors"

	dashboarddto "github.com/heynokimush/dashboard-backend/internal/api/dashboard/dto"
	dashboardmodels "github.com/heynokimush/dashboard-backend/internal/api/dashboard/models"
	"github.com/heynokimush/dashboard-backend/internal/common"
	"github.com/heynokimush/dashboard-backend/internal/database"
	"github.com/heynokimush/dashboard-backend/internal/global"
	"github.com/heynokimush/dashboard-backend/internal/logger"
	"github.com/heynokimush/dashboard-backend/internal/utility"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Message trả về cho client (giữ nguyên tiếng Hàn của hệ thống cũ)
const (
	msgRequiredNameAndEsd = "대시보드 이름 및 ESD 이름은 필수입니다."
	msgDuplicateName      = "이미 존재하는 대시보드 이름입니다."
	msgEsdNotFound        = "해당 이름을 가진 ESD가 존재하지 않습니다."
	msgCreateFailed       = "대시보드 생성 실패"
	msgListFailed         = "대시보드 리스트 조회 실패"
	msgIDRequired         = "id 값이 필요합니다"
	msgInvalidID          = "올바르지 않은 id 형식입니다."
	msgDashboardNotFound  = "대시보드를 찾을 수 없습니다"
	msgReadFailed         = "대시보드 조회 실패"
	msgUpdateFailed       = "대시보드 업데이트 실패"
	msgDeleteFailed       = "대시보드 삭제 실패"

	// MsgUpdateSuccess, MsgDeleteSuccess dùng chung cho response thành công của cả hai store
	MsgUpdateSuccess = "대시보드 업데이트 성공"
	MsgDeleteSuccess = "대시보드 삭제 성공"
)

// DashboardMongoService là DashboardStore lưu dashboard trong MongoDB (soft delete)
type DashboardMongoService struct {
	dashboards *mongo.Collection
	statistics *mongo.Collection
	lifecycle  *Lifecycle
	rule       CompletionRule
	log        *logrus.Entry
}

// NewDashboardMongoService tạo mới DashboardMongoService
func NewDashboardMongoService(cols *database.Collections, lifecycle *Lifecycle) *DashboardMongoService {
	return &DashboardMongoService{
		dashboards: cols.Dashboards,
		statistics: cols.Statistics,
		lifecycle:  lifecycle,
		rule:       MongoCompletionRule,
		log:        logger.WithModule("dashboard.mongo"),
	}
}

// notDeleted là điều kiện loại bỏ bản ghi đã xoá, áp dụng cho mọi truy vấn
func notDeleted() bson.M {
	return bson.M{"status": bson.M{"$ne": dashboardmodels.StatusDeleted}}
}

// Create tạo dashboard với status CREATED sau khi kiểm tra tên trùng và ESD tồn tại
func (s *DashboardMongoService) Create(ctx context.Context, input *dashboarddto.DashboardCreateInput) (*dashboarddto.DashboardCreateResult, error) {
	info := input.DashboardInfo()
	if info == nil {
		return nil, common.NewValidationError(msgRequiredNameAndEsd)
	}
	identity := dashboarddto.DashboardIdentity{
		DashboardName: utility.StringValue(info, dashboardmodels.KeyDashboardName),
		EsdName:       utility.StringValue(info, dashboardmodels.KeyEsdName),
	}
	if err := global.Validate.Struct(identity); err != nil {
		return nil, common.NewValidationError(msgRequiredNameAndEsd)
	}

	if err := s.ensureNameAvailable(ctx, identity.DashboardName, primitive.NilObjectID, msgCreateFailed); err != nil {
		return nil, err
	}

	err := s.statistics.FindOne(ctx, bson.M{dashboardmodels.KeyEsdName: identity.EsdName},
		options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, common.NewReferenceNotFoundError(msgEsdNotFound)
	}
	if err != nil {
		s.log.WithError(err).WithField("esdName", identity.EsdName).Error("Failed to look up ESD")
		return nil, common.ConvertMongoError(err, msgCreateFailed)
	}

	doc := dashboardmodels.Dashboard{
		DashboardInfo: info,
		Status:        dashboardmodels.StatusCreated,
		CreatedAt:     s.lifecycle.Timestamp(),
	}
	result, err := s.dashboards.InsertOne(ctx, doc)
	if err != nil {
		s.log.WithError(err).WithField("dashboardName", identity.DashboardName).Error("Failed to insert dashboard")
		return nil, common.ConvertMongoError(err, msgCreateFailed)
	}

	return &dashboarddto.DashboardCreateResult{ID: result.InsertedID}, nil
}

// ensureNameAvailable trả về DuplicateNameError nếu một bản ghi chưa xoá khác (khác exclude) đã dùng name
func (s *DashboardMongoService) ensureNameAvailable(ctx context.Context, name string, exclude primitive.ObjectID, failMsg string) error {
	filter := bson.M{
		dashboardmodels.KeyDashboardInfo + "." + dashboardmodels.KeyDashboardName: name,
		"status": bson.M{"$ne": dashboardmodels.StatusDeleted},
	}
	if !exclude.IsZero() {
		filter["_id"] = bson.M{"$ne": exclude}
	}

	err := s.dashboards.FindOne(ctx, filter, options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	switch {
	case err == nil:
		return common.NewDuplicateNameError(msgDuplicateName)
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil
	default:
		s.log.WithError(err).WithField("dashboardName", name).Error("Failed to check duplicate dashboard name")
		return common.ConvertMongoError(err, failMsg)
	}
}

// ensureExists trả về NotFoundError nếu không có bản ghi chưa xoá với _id = oid
func (s *DashboardMongoService) ensureExists(ctx context.Context, oid primitive.ObjectID, failMsg string) error {
	filter := notDeleted()
	filter["_id"] = oid

	err := s.dashboards.FindOne(ctx, filter, options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return common.NewNotFoundError(msgDashboardNotFound)
	default:
		s.log.WithError(err).WithField("id", oid.Hex()).Error("Failed to look up dashboard")
		return common.ConvertMongoError(err, failMsg)
	}
}

// List trả về các dashboard chưa xoá; status != "" lọc thêm theo status
func (s *DashboardMongoService) List(ctx context.Context, status string) (interface{}, error) {
	filter := notDeleted()
	if status != "" {
		filter = bson.M{"$and": bson.A{notDeleted(), bson.M{"status": status}}}
	}

	cursor, err := s.dashboards.Find(ctx, filter)
	if err != nil {
		s.log.WithError(err).WithField("status", status).Error("Failed to list dashboards")
		return nil, common.ConvertMongoError(err, msgListFailed)
	}
	defer cursor.Close(ctx)

	dashboards := make([]dashboardmodels.Dashboard, 0)
	if err := cursor.All(ctx, &dashboards); err != nil {
		s.log.WithError(err).Error("Failed to decode dashboards")
		return nil, common.ConvertMongoError(err, msgListFailed)
	}
	return dashboards, nil
}

// parseObjectID kiểm tra id bắt buộc và đúng định dạng ObjectID
func parseObjectID(id string) (primitive.ObjectID, error) {
	if id == "" {
		return primitive.NilObjectID, common.NewValidationError(msgIDRequired)
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, common.NewFormatError(msgInvalidID)
	}
	return oid, nil
}

// Read trả về dashboard chưa xoá theo id
func (s *DashboardMongoService) Read(ctx context.Context, id string) (interface{}, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	filter := notDeleted()
	filter["_id"] = oid

	var dashboard dashboardmodels.Dashboard
	err = s.dashboards.FindOne(ctx, filter).Decode(&dashboard)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, common.NewNotFoundError(msgDashboardNotFound)
	}
	if err != nil {
		s.log.WithError(err).WithField("id", id).Error("Failed to read dashboard")
		return nil, common.ConvertMongoError(err, msgReadFailed)
	}
	return &dashboard, nil
}

// Update thay dashboardInfo/detailInfo nếu được gửi. detailInfo đủ điều kiện thì chuyển COMPLETED;
// không gửi detailInfo thì giữ nguyên status.
func (s *DashboardMongoService) Update(ctx context.Context, input *dashboarddto.DashboardUpdateInput) error {
	oid, err := parseObjectID(input.ID)
	if err != nil {
		return err
	}

	set := bson.M{"updatedAt": s.lifecycle.Timestamp()}

	if input.DashboardInfo != nil {
		if name := utility.StringValue(input.DashboardInfo, dashboardmodels.KeyDashboardName); name != "" {
			// bản ghi không tồn tại thì trả 404 trước khi xét trùng tên
			if err := s.ensureExists(ctx, oid, msgUpdateFailed); err != nil {
				return err
			}
			if err := s.ensureNameAvailable(ctx, name, oid, msgUpdateFailed); err != nil {
				return err
			}
		}
		set[dashboardmodels.KeyDashboardInfo] = input.DashboardInfo
	}

	if input.DetailInfo != nil {
		set[dashboardmodels.KeyDetailInfo] = input.DetailInfo
		if s.rule.IsComplete(input.DetailInfo) {
			set["status"] = dashboardmodels.StatusCompleted
		}
	}

	filter := notDeleted()
	filter["_id"] = oid

	result, err := s.dashboards.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		s.log.WithError(err).WithField("id", input.ID).Error("Failed to update dashboard")
		return common.ConvertMongoError(err, msgUpdateFailed)
	}
	if result.MatchedCount == 0 {
		return common.NewNotFoundError(msgDashboardNotFound)
	}
	return nil
}

// Delete chuyển dashboard sang DELETED (không xoá vật lý)
func (s *DashboardMongoService) Delete(ctx context.Context, id string) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}

	filter := notDeleted()
	filter["_id"] = oid
	update := bson.M{"$set": bson.M{
		"status":    dashboardmodels.StatusDeleted,
		"updatedAt": s.lifecycle.Timestamp(),
	}}

	result, err := s.dashboards.UpdateOne(ctx, filter, update)
	if err != nil {
		s.log.WithError(err).WithField("id", id).Error("Failed to delete dashboard")
		return common.ConvertMongoError(err, msgDeleteFailed)
	}
	if result.MatchedCount == 0 {
		return common.NewNotFoundError(msgDashboardNotFound)
	}
	return nil
}
