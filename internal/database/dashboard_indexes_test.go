package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestEnsureIndexes(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("creates all indexes", func(mt *mtest.T) {
		cols := &Collections{
			Dashboards: mt.Client.Database("setting").Collection("dashboardInfo"),
			Statistics: mt.Client.Database("statistics").Collection("statisticsData"),
		}
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(),
		)

		assert.NoError(t, EnsureIndexes(context.Background(), cols))
	})

	mt.Run("tolerates existing index conflict", func(mt *mtest.T) {
		cols := &Collections{
			Dashboards: mt.Client.Database("setting").Collection("dashboardInfo"),
			Statistics: mt.Client.Database("statistics").Collection("statisticsData"),
		}
		mt.AddMockResponses(
			mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 85, Name: "IndexOptionsConflict", Message: "index already exists with different name"}),
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(),
		)

		assert.NoError(t, EnsureIndexes(context.Background(), cols))
	})

	mt.Run("returns other errors", func(mt *mtest.T) {
		cols := &Collections{
			Dashboards: mt.Client.Database("setting").Collection("dashboardInfo"),
			Statistics: mt.Client.Database("statistics").Collection("statisticsData"),
		}
		mt.AddMockResponses(
			mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 13, Name: "Unauthorized", Message: "not authorized"}),
		)

		assert.Error(t, EnsureIndexes(context.Background(), cols))
	})
}

func TestIsIndexExistsError(t *testing.T) {
	assert.False(t, isIndexExistsError(nil))
	assert.True(t, isIndexExistsError(mongo.CommandError{Code: 86, Message: "conflict"}))
	assert.False(t, isIndexExistsError(mongo.CommandError{Code: 11000, Message: "E11000 duplicate key"}))
}
