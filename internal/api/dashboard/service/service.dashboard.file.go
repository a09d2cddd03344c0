package dashboardsvc

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	dashboarddto "github.com/heynokimush/dashboard-backend/internal/api/dashboard/dto"
	dashboardmodels "github.com/heynokimush/dashboard-backend/internal/api/dashboard/models"
	"github.com/heynokimush/dashboard-backend/internal/common"
	"github.com/heynokimush/dashboard-backend/internal/global"
	"github.com/heynokimush/dashboard-backend/internal/logger"
	"github.com/heynokimush/dashboard-backend/internal/utility"

	"github.com/sirupsen/logrus"
)

// Message trả về cho client của file store
const (
	msgFileIDRequired      = "id 값이 필요합니다."
	msgFileNameRequired    = "대시보드 이름은 필수입니다."
	msgFileNotFound        = "해당 ID의 JSON 파일을 찾을 수 없습니다."
	msgFileReadFailed      = "파일을 읽는 중 오류 발생"
	msgFileListFailed      = "파일 목록을 가져오는 중 오류 발생"
	msgFileSaveFailed      = "파일 저장 중 오류 발생"
	msgFileUpdateRequired  = "필수 정보값이 입력되지 않았습니다."
	msgFileUpdateNotFound  = "해당 ID의 JSON 파일이 없습니다."
	msgFileUpdateFailed    = "파일 수정 중 오류 발생"
	msgFileDeleteFailed    = "파일 삭제 중 오류 발생"
	msgFileMissingItemInfo = "%s에 필수 정보값이 누락되었습니다."
)

const (
	fileExt = ".json"
	// maxCreateAttempts giới hạn số lần thử id kế tiếp khi file đích đã tồn tại
	maxCreateAttempts = 100
)

// itemCollectionNames là tên hiển thị (tiếng Hàn) của các danh sách trong detailInfo
var itemCollectionNames = []struct {
	Key  string
	Name string
}{
	{Key: dashboardmodels.KeyGroupData, Name: "그룹항목"},
	{Key: dashboardmodels.KeyAggregatedData, Name: "집계항목"},
}

// fileIDPattern lấy dãy số đầu tiên trong tên file
var fileIDPattern = regexp.MustCompile(`\d+`)

// DashboardFileService là DashboardStore lưu mỗi dashboard thành một file dashboard{id}.json (hard delete)
type DashboardFileService struct {
	dir       string
	lifecycle *Lifecycle
	rule      CompletionRule
	log       *logrus.Entry

	// mu tuần tự hoá các thao tác ghi (create, update, delete) trong process
	mu sync.Mutex
}

// NewDashboardFileService tạo mới DashboardFileService trên thư mục dir
func NewDashboardFileService(dir string, lifecycle *Lifecycle) *DashboardFileService {
	return &DashboardFileService{
		dir:       dir,
		lifecycle: lifecycle,
		rule:      FileCompletionRule,
		log:       logger.WithModule("dashboard.file").WithField("dir", dir),
	}
}

func (s *DashboardFileService) path(id int64) string {
	return filepath.Join(s.dir, fmt.Sprintf("dashboard%d%s", id, fileExt))
}

// parseFileID kiểm tra id là số nguyên dương, tránh truy cập file ngoài thư mục
func parseFileID(raw, missingMsg string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, common.NewValidationError(missingMsg)
	}
	if err := global.Validate.Struct(dashboarddto.DashboardIDInput{ID: raw}); err != nil {
		return 0, common.NewFormatError(msgInvalidID)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, common.NewFormatError(msgInvalidID)
	}
	return id, nil
}

// jsonFiles trả về danh sách file .json trong thư mục (đã sắp xếp theo tên).
// Thư mục chưa tồn tại trả về fs.ErrNotExist.
func (s *DashboardFileService) jsonFiles() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() && strings.HasSuffix(e.Name(), fileExt) {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

func (s *DashboardFileService) readDocument(path string) (dashboardmodels.FileDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := utility.DecodeObject(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return dashboardmodels.FileDocument(doc), nil
}

// writeDocument ghi doc vào file tạm rồi rename vào path
func (s *DashboardFileService) writeDocument(path string, doc dashboardmodels.FileDocument) error {
	tmp, err := s.writeTemp(doc)
	if err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// writeTemp ghi doc (JSON thụt lề 2 khoảng trắng) vào một file tạm trong cùng thư mục
func (s *DashboardFileService) writeTemp(doc dashboardmodels.FileDocument) (string, error) {
	data, err := utility.MarshalIndent(doc)
	if err != nil {
		return "", err
	}

	f, err := os.CreateTemp(s.dir, ".dashboard-*.tmp")
	if err != nil {
		return "", err
	}
	tmp := f.Name()

	if _, err := f.Write(data); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return "", err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return "", err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return "", err
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		_ = os.Remove(tmp)
		return "", err
	}
	return tmp, nil
}

// Create ghi payload thành file mới với id = max(id trong tên file) + 1
func (s *DashboardFileService) Create(ctx context.Context, input *dashboarddto.DashboardCreateInput) (*dashboarddto.DashboardCreateResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	identity := dashboarddto.FileDashboardIdentity{
		DashboardName: utility.StringValue(input.DashboardInfo(), dashboardmodels.KeyDashboardName),
	}
	if err := global.Validate.Struct(identity); err != nil {
		return nil, common.NewValidationError(msgFileNameRequired)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		s.log.WithError(err).Error("Failed to create dashboards directory")
		return nil, common.NewFileStoreError(msgFileSaveFailed, err)
	}

	files, err := s.jsonFiles()
	if err != nil {
		s.log.WithError(err).Error("Failed to list dashboard files")
		return nil, common.NewFileStoreError(msgFileSaveFailed, err)
	}

	var maxID int64
	for _, name := range files {
		if m := fileIDPattern.FindString(name); m != "" {
			if n, err := strconv.ParseInt(m, 10, 64); err == nil && n > maxID {
				maxID = n
			}
		}

		doc, err := s.readDocument(filepath.Join(s.dir, name))
		if err != nil {
			s.log.WithError(err).WithField("file", name).Warn("Skipping unreadable dashboard file")
			continue
		}
		if doc.DashboardName() == identity.DashboardName {
			return nil, common.NewDuplicateNameError(msgDuplicateName)
		}
	}

	doc := dashboardmodels.FileDocument(utility.CloneMap(input.Payload))
	doc["createdAt"] = s.lifecycle.Timestamp()
	doc["status"] = dashboardmodels.StatusCreated

	// File tạm được link vào tên đích; link thất bại nếu file đích đã tồn tại nên không ghi đè file khác
	for attempt, id := 0, maxID+1; attempt < maxCreateAttempts; attempt, id = attempt+1, id+1 {
		doc["id"] = id
		tmp, err := s.writeTemp(doc)
		if err != nil {
			s.log.WithError(err).Error("Failed to write dashboard file")
			return nil, common.NewFileStoreError(msgFileSaveFailed, err)
		}

		err = os.Link(tmp, s.path(id))
		_ = os.Remove(tmp)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			s.log.WithError(err).WithField("id", id).Error("Failed to save dashboard file")
			return nil, common.NewFileStoreError(msgFileSaveFailed, err)
		}

		s.log.WithFields(logrus.Fields{"id": id, "dashboardName": identity.DashboardName}).Info("Dashboard file created")
		return &dashboarddto.DashboardCreateResult{ID: id}, nil
	}

	return nil, common.NewFileStoreError(msgFileSaveFailed, fmt.Errorf("no free dashboard id after %d attempts", maxCreateAttempts))
}

// List đọc mọi file .json và trả về bản tóm tắt, bỏ qua file lỗi
func (s *DashboardFileService) List(ctx context.Context, status string) (interface{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &dashboarddto.FileDashboardListResult{Dashboards: make([]dashboardmodels.FileSummary, 0)}

	files, err := s.jsonFiles()
	if errors.Is(err, fs.ErrNotExist) {
		return result, nil
	}
	if err != nil {
		s.log.WithError(err).Error("Failed to list dashboard files")
		return nil, common.NewFileStoreError(msgFileListFailed, err)
	}

	type entry struct {
		summary dashboardmodels.FileSummary
		id      int64
		hasID   bool
	}
	entries := make([]entry, 0, len(files))

	for _, name := range files {
		doc, err := s.readDocument(filepath.Join(s.dir, name))
		if err != nil {
			s.log.WithError(err).WithField("file", name).Warn("Skipping unreadable dashboard file")
			continue
		}
		summary := doc.Summarize()
		if status != "" && summary.StatusString() != status {
			continue
		}
		id, ok := doc.NumericID()
		entries = append(entries, entry{summary: summary, id: id, hasID: ok})
	}

	// Sắp xếp theo id số; file không có id nằm cuối
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].hasID != entries[j].hasID {
			return entries[i].hasID
		}
		return entries[i].id < entries[j].id
	})

	for _, e := range entries {
		result.Dashboards = append(result.Dashboards, e.summary)
	}
	return result, nil
}

// Read trả về toàn bộ nội dung file dashboard{id}.json
func (s *DashboardFileService) Read(ctx context.Context, id string) (interface{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	n, err := parseFileID(id, msgFileIDRequired)
	if err != nil {
		return nil, err
	}

	doc, err := s.readDocument(s.path(n))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, common.NewNotFoundError(msgFileNotFound)
	}
	if err != nil {
		s.log.WithError(err).WithField("id", n).Error("Failed to read dashboard file")
		return nil, common.NewFileStoreError(msgFileReadFailed, err)
	}
	return doc, nil
}

// sanitizeItems bỏ item rỗng hoàn toàn, từ chối item thiếu giá trị và đánh lại id từ 1
func sanitizeItems(items []interface{}, collectionName string) ([]interface{}, error) {
	out := make([]interface{}, 0, len(items))
	for _, raw := range items {
		item, ok := utility.AsMap(raw)
		if !ok {
			return nil, common.NewValidationError(fmt.Sprintf(msgFileMissingItemInfo, collectionName))
		}

		empty, missing := 0, false
		for _, v := range item {
			if s, isStr := v.(string); isStr && s == "" {
				empty++
				missing = true
			}
		}
		if empty == len(item) {
			continue
		}
		if missing {
			return nil, common.NewValidationError(fmt.Sprintf(msgFileMissingItemInfo, collectionName))
		}

		clean := utility.CloneMap(item)
		clean["id"] = len(out) + 1
		out = append(out, clean)
	}
	return out, nil
}

// Update thay detailInfo (sau khi làm sạch groupData/aggregatedData), làm mới updatedAt và tính lại status
func (s *DashboardFileService) Update(ctx context.Context, input *dashboarddto.DashboardUpdateInput) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if strings.TrimSpace(input.ID) == "" || input.DetailInfo == nil {
		return common.NewValidationError(msgFileUpdateRequired)
	}
	n, err := parseFileID(input.ID, msgFileUpdateRequired)
	if err != nil {
		return err
	}

	detail := utility.CloneMap(input.DetailInfo)
	for _, c := range itemCollectionNames {
		items, ok := utility.AsSlice(detail[c.Key])
		if !ok {
			continue
		}
		clean, err := sanitizeItems(items, c.Name)
		if err != nil {
			return err
		}
		detail[c.Key] = clean
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.path(n)
	doc, err := s.readDocument(path)
	if errors.Is(err, fs.ErrNotExist) {
		return common.NewNotFoundError(msgFileUpdateNotFound)
	}
	if err != nil {
		s.log.WithError(err).WithField("id", n).Error("Failed to read dashboard file for update")
		return common.NewFileStoreError(msgFileUpdateFailed, err)
	}

	doc[dashboardmodels.KeyDetailInfo] = detail
	doc["updatedAt"] = s.lifecycle.Timestamp()
	doc["status"] = s.rule.Evaluate(detail)

	if err := s.writeDocument(path, doc); err != nil {
		s.log.WithError(err).WithField("id", n).Error("Failed to write dashboard file")
		return common.NewFileStoreError(msgFileUpdateFailed, err)
	}
	return nil
}

// Delete xoá file dashboard{id}.json
func (s *DashboardFileService) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	n, err := parseFileID(id, msgFileIDRequired)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err = os.Remove(s.path(n))
	if errors.Is(err, fs.ErrNotExist) {
		return common.NewNotFoundError(msgFileNotFound)
	}
	if err != nil {
		s.log.WithError(err).WithField("id", n).Error("Failed to delete dashboard file")
		return common.NewFileStoreError(msgFileDeleteFailed, err)
	}
	return nil
}
