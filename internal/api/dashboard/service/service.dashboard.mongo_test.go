package dashboardsvc

import (
	"context"
	"testing"

	dashboarddto "github.com/heynokimush/dashboard-backend/internal/api/dashboard/dto"
	dashboardmodels "github.com/heynokimush/dashboard-backend/internal/api/dashboard/models"
	"github.com/heynokimush/dashboard-backend/internal/common"
	"github.com/heynokimush/dashboard-backend/internal/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

const (
	dashboardNS  = "setting.dashboardInfo"
	statisticsNS = "statistics.statisticsData"
)

func newMongoService(mt *mtest.T) *DashboardMongoService {
	cols := &database.Collections{
		Dashboards: mt.Client.Database("setting").Collection("dashboardInfo"),
		Statistics: mt.Client.Database("statistics").Collection("statisticsData"),
	}
	return NewDashboardMongoService(cols, NewLifecycle(nil).WithClock(fixedClock()))
}

func emptyCursor(ns string) bson.D {
	return mtest.CreateCursorResponse(0, ns, mtest.FirstBatch)
}

func updateResponse(matched int) bson.D {
	return mtest.CreateSuccessResponse(bson.E{Key: "n", Value: matched}, bson.E{Key: "nModified", Value: matched})
}

func dashboardDoc(id primitive.ObjectID, name, status string) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "dashboardInfo", Value: bson.D{{Key: "dashboardName", Value: name}, {Key: "esdName", Value: "sales"}}},
		{Key: "status", Value: status},
		{Key: "createdAt", Value: "2024-03-09 23:30:05"},
	}
}

func mongoCreateInput(name, esd string) *dashboarddto.DashboardCreateInput {
	return &dashboarddto.DashboardCreateInput{Payload: map[string]interface{}{
		"dashboardInfo": map[string]interface{}{"dashboardName": name, "esdName": esd, "period": "monthly"},
	}}
}

func TestMongoCreate(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("inserts with CREATED status", func(mt *mtest.T) {
		s := newMongoService(mt)
		mt.AddMockResponses(
			emptyCursor(dashboardNS),
			mtest.CreateCursorResponse(0, statisticsNS, mtest.FirstBatch, bson.D{{Key: "_id", Value: primitive.NewObjectID()}}),
			mtest.CreateSuccessResponse(),
		)

		res, err := s.Create(context.Background(), mongoCreateInput("A", "sales"))
		require.NoError(mt, err)
		oid, ok := res.ID.(primitive.ObjectID)
		require.True(mt, ok)
		assert.False(mt, oid.IsZero())

		insert := mt.GetStartedEvent()
		for insert != nil && insert.CommandName != "insert" {
			insert = mt.GetStartedEvent()
		}
		require.NotNil(mt, insert)
		doc := insert.Command.Lookup("documents").Array().Index(0).Value().Document()
		assert.Equal(mt, "CREATED", doc.Lookup("status").StringValue())
		assert.Equal(mt, "2024-03-09 23:30:05", doc.Lookup("createdAt").StringValue())
		assert.Equal(mt, "monthly", doc.Lookup("dashboardInfo", "period").StringValue())
	})

	mt.Run("rejects missing name or esd", func(mt *mtest.T) {
		s := newMongoService(mt)
		for _, in := range []*dashboarddto.DashboardCreateInput{
			mongoCreateInput("", "sales"),
			mongoCreateInput("A", "  "),
			{Payload: map[string]interface{}{}},
		} {
			_, err := s.Create(context.Background(), in)
			assert.ErrorIs(mt, err, common.ErrValidation)
			assert.Equal(mt, "대시보드 이름 및 ESD 이름은 필수입니다.", err.Error())
		}
	})

	mt.Run("rejects duplicate name", func(mt *mtest.T) {
		s := newMongoService(mt)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, dashboardNS, mtest.FirstBatch, bson.D{{Key: "_id", Value: primitive.NewObjectID()}}),
		)

		_, err := s.Create(context.Background(), mongoCreateInput("A", "sales"))
		assert.ErrorIs(mt, err, common.ErrDuplicateName)
		assert.Equal(mt, "이미 존재하는 대시보드 이름입니다.", err.Error())
	})

	mt.Run("rejects unknown esd", func(mt *mtest.T) {
		s := newMongoService(mt)
		mt.AddMockResponses(emptyCursor(dashboardNS), emptyCursor(statisticsNS))

		_, err := s.Create(context.Background(), mongoCreateInput("A", "missing"))
		assert.ErrorIs(mt, err, common.ErrReferenceNotFound)
		assert.Equal(mt, "해당 이름을 가진 ESD가 존재하지 않습니다.", err.Error())
	})

	mt.Run("maps insert failure to store error", func(mt *mtest.T) {
		s := newMongoService(mt)
		mt.AddMockResponses(
			emptyCursor(dashboardNS),
			mtest.CreateCursorResponse(0, statisticsNS, mtest.FirstBatch, bson.D{{Key: "_id", Value: primitive.NewObjectID()}}),
			mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Name: "BadValue", Message: "bad"}),
		)

		_, err := s.Create(context.Background(), mongoCreateInput("A", "sales"))
		assert.ErrorIs(mt, err, common.ErrStore)
		assert.Equal(mt, "대시보드 생성 실패", err.Error())
		assert.Equal(mt, common.StatusInternalServerError, common.StatusCodeOf(err))
	})
}

func TestMongoList(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("returns non deleted dashboards", func(mt *mtest.T) {
		s := newMongoService(mt)
		id1, id2 := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, dashboardNS, mtest.FirstBatch,
			dashboardDoc(id1, "A", "CREATED"),
			dashboardDoc(id2, "B", "COMPLETED"),
		))

		v, err := s.List(context.Background(), "")
		require.NoError(mt, err)
		list := v.([]dashboardmodels.Dashboard)
		require.Len(mt, list, 2)
		assert.Equal(mt, id1, list[0].ID)
		assert.Equal(mt, "A", list[0].DashboardInfo["dashboardName"])
		assert.Equal(mt, dashboardmodels.StatusCompleted, list[1].Status)

		filter := mt.GetStartedEvent().Command.Lookup("filter").Document()
		assert.Equal(mt, "DELETED", filter.Lookup("status", "$ne").StringValue())
	})

	mt.Run("combines status filter with not deleted", func(mt *mtest.T) {
		s := newMongoService(mt)
		mt.AddMockResponses(emptyCursor(dashboardNS))

		v, err := s.List(context.Background(), "COMPLETED")
		require.NoError(mt, err)
		assert.NotNil(mt, v)
		assert.Empty(mt, v)

		filter := mt.GetStartedEvent().Command.Lookup("filter").Document()
		clauses, err := filter.Lookup("$and").Array().Values()
		require.NoError(mt, err)
		require.Len(mt, clauses, 2)
		assert.Equal(mt, "DELETED", clauses[0].Document().Lookup("status", "$ne").StringValue())
		assert.Equal(mt, "COMPLETED", clauses[1].Document().Lookup("status").StringValue())
	})

	mt.Run("maps query failure", func(mt *mtest.T) {
		s := newMongoService(mt)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Name: "BadValue", Message: "bad"}))

		_, err := s.List(context.Background(), "")
		assert.ErrorIs(mt, err, common.ErrStore)
		assert.Equal(mt, "대시보드 리스트 조회 실패", err.Error())
	})
}

func TestMongoRead(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("returns dashboard", func(mt *mtest.T) {
		s := newMongoService(mt)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, dashboardNS, mtest.FirstBatch, dashboardDoc(id, "A", "CREATED")))

		v, err := s.Read(context.Background(), id.Hex())
		require.NoError(mt, err)
		d := v.(*dashboardmodels.Dashboard)
		assert.Equal(mt, id, d.ID)
		assert.Equal(mt, "2024-03-09 23:30:05", d.CreatedAt)
	})

	mt.Run("not found", func(mt *mtest.T) {
		s := newMongoService(mt)
		mt.AddMockResponses(emptyCursor(dashboardNS))

		_, err := s.Read(context.Background(), primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, common.ErrNotFound)
		assert.Equal(mt, "대시보드를 찾을 수 없습니다", err.Error())
	})

	mt.Run("validates id", func(mt *mtest.T) {
		s := newMongoService(mt)

		_, err := s.Read(context.Background(), "")
		assert.ErrorIs(mt, err, common.ErrValidation)
		assert.Equal(mt, "id 값이 필요합니다", err.Error())

		_, err = s.Read(context.Background(), "not-an-object-id")
		assert.ErrorIs(mt, err, common.ErrInvalidFormat)
		assert.Equal(mt, common.StatusBadRequest, common.StatusCodeOf(err))
	})
}

func TestMongoUpdate(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	id := primitive.NewObjectID()

	mt.Run("complete detail info sets COMPLETED", func(mt *mtest.T) {
		s := newMongoService(mt)
		mt.AddMockResponses(updateResponse(1))

		err := s.Update(context.Background(), &dashboarddto.DashboardUpdateInput{
			ID: id.Hex(),
			DetailInfo: map[string]interface{}{
				"groupData":     []interface{}{"region"},
				"aggregateData": []interface{}{"amount"},
			},
		})
		require.NoError(mt, err)

		set := mt.GetStartedEvent().Command.Lookup("updates").Array().Index(0).Value().Document().Lookup("u", "$set").Document()
		assert.Equal(mt, "COMPLETED", set.Lookup("status").StringValue())
		assert.Equal(mt, "2024-03-09 23:30:05", set.Lookup("updatedAt").StringValue())
		_, err = set.LookupErr("dashboardInfo")
		assert.Error(mt, err)
	})

	mt.Run("incomplete detail info keeps status", func(mt *mtest.T) {
		s := newMongoService(mt)
		mt.AddMockResponses(updateResponse(1))

		err := s.Update(context.Background(), &dashboarddto.DashboardUpdateInput{
			ID:         id.Hex(),
			DetailInfo: map[string]interface{}{"groupData": []interface{}{"region"}},
		})
		require.NoError(mt, err)

		set := mt.GetStartedEvent().Command.Lookup("updates").Array().Index(0).Value().Document().Lookup("u", "$set").Document()
		_, err = set.LookupErr("status")
		assert.Error(mt, err)
		_, err = set.LookupErr("detailInfo")
		assert.NoError(mt, err)
	})

	mt.Run("renaming checks duplicates", func(mt *mtest.T) {
		s := newMongoService(mt)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, dashboardNS, mtest.FirstBatch, bson.D{{Key: "_id", Value: id}}),
			mtest.CreateCursorResponse(0, dashboardNS, mtest.FirstBatch, bson.D{{Key: "_id", Value: primitive.NewObjectID()}}),
		)

		err := s.Update(context.Background(), &dashboarddto.DashboardUpdateInput{
			ID:            id.Hex(),
			DashboardInfo: map[string]interface{}{"dashboardName": "taken"},
		})
		assert.ErrorIs(mt, err, common.ErrDuplicateName)

		exists := mt.GetStartedEvent().Command.Lookup("filter").Document()
		assert.Equal(mt, id, exists.Lookup("_id").ObjectID())
		assert.Equal(mt, "DELETED", exists.Lookup("status", "$ne").StringValue())

		dup := mt.GetStartedEvent().Command.Lookup("filter").Document()
		assert.Equal(mt, id, dup.Lookup("_id", "$ne").ObjectID())
	})

	mt.Run("unknown id with taken name is not found", func(mt *mtest.T) {
		s := newMongoService(mt)
		mt.AddMockResponses(
			emptyCursor(dashboardNS),
			mtest.CreateCursorResponse(0, dashboardNS, mtest.FirstBatch, bson.D{{Key: "_id", Value: primitive.NewObjectID()}}),
			updateResponse(0),
		)

		err := s.Update(context.Background(), &dashboarddto.DashboardUpdateInput{
			ID:            id.Hex(),
			DashboardInfo: map[string]interface{}{"dashboardName": "taken"},
		})
		assert.ErrorIs(mt, err, common.ErrNotFound)
		assert.Equal(mt, "대시보드를 찾을 수 없습니다", err.Error())
		assert.Equal(mt, common.StatusNotFound, common.StatusCodeOf(err))
	})

	mt.Run("rename of existing dashboard updates", func(mt *mtest.T) {
		s := newMongoService(mt)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, dashboardNS, mtest.FirstBatch, bson.D{{Key: "_id", Value: id}}),
			emptyCursor(dashboardNS),
			updateResponse(1),
		)

		err := s.Update(context.Background(), &dashboarddto.DashboardUpdateInput{
			ID:            id.Hex(),
			DashboardInfo: map[string]interface{}{"dashboardName": "fresh"},
		})
		require.NoError(mt, err)
	})

	mt.Run("not found", func(mt *mtest.T) {
		s := newMongoService(mt)
		mt.AddMockResponses(updateResponse(0))

		err := s.Update(context.Background(), &dashboarddto.DashboardUpdateInput{ID: id.Hex()})
		assert.ErrorIs(mt, err, common.ErrNotFound)
	})

	mt.Run("invalid id", func(mt *mtest.T) {
		s := newMongoService(mt)
		err := s.Update(context.Background(), &dashboarddto.DashboardUpdateInput{ID: "zzz"})
		assert.ErrorIs(mt, err, common.ErrInvalidFormat)
	})
}

func TestMongoDelete(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	id := primitive.NewObjectID()

	mt.Run("marks DELETED", func(mt *mtest.T) {
		s := newMongoService(mt)
		mt.AddMockResponses(updateResponse(1))

		require.NoError(mt, s.Delete(context.Background(), id.Hex()))

		update := mt.GetStartedEvent().Command.Lookup("updates").Array().Index(0).Value().Document()
		assert.Equal(mt, "DELETED", update.Lookup("u", "$set", "status").StringValue())
		assert.Equal(mt, "2024-03-09 23:30:05", update.Lookup("u", "$set", "updatedAt").StringValue())
		assert.Equal(mt, id, update.Lookup("q", "_id").ObjectID())
		assert.Equal(mt, "DELETED", update.Lookup("q", "status", "$ne").StringValue())
	})

	mt.Run("already deleted is not found", func(mt *mtest.T) {
		s := newMongoService(mt)
		mt.AddMockResponses(updateResponse(0))

		err := s.Delete(context.Background(), id.Hex())
		assert.ErrorIs(mt, err, common.ErrNotFound)
		assert.Equal(mt, "대시보드를 찾을 수 없습니다", err.Error())
	})

	mt.Run("store failure", func(mt *mtest.T) {
		s := newMongoService(mt)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Name: "BadValue", Message: "bad"}))

		err := s.Delete(context.Background(), id.Hex())
		assert.ErrorIs(mt, err, common.ErrStore)
		assert.Equal(mt, "대시보드 삭제 실패", err.Error())
	})
}
