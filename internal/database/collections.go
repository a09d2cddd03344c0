package database

import (
	"github.com/heynokimush/dashboard-backend/config"

	"go.mongodb.org/mongo-driver/mongo"
)

// Collections groups the collections used by the dashboard API.
type Collections struct {
	Dashboards *mongo.Collection // setting.dashboardInfo
	Statistics *mongo.Collection // statistics.statisticsData (ESD records)
}

// NewCollections resolves the configured database and collection names on client.
func NewCollections(client *mongo.Client, c *config.Configuration) *Collections {
	return &Collections{
		Dashboards: client.Database(c.MongoDB_DBName_Setting).Collection(c.MongoDB_ColName_Dashboard),
		Statistics: client.Database(c.MongoDB_DBName_Statistics).Collection(c.MongoDB_ColName_Statistics),
	}
}
