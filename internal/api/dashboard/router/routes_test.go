package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	dashboarddto "github.com/heynokimush/dashboard-backend/internal/api/dashboard/dto"
	dashboardsvc "github.com/heynokimush/dashboard-backend/internal/api/dashboard/service"
	apirouter "github.com/heynokimush/dashboard-backend/internal/api/router"
	"github.com/heynokimush/dashboard-backend/internal/registry"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingStore đếm số lần mỗi thao tác được gọi
type countingStore struct {
	calls map[string]int
}

func newCountingStore() *countingStore {
	return &countingStore{calls: map[string]int{}}
}

func (s *countingStore) Create(ctx context.Context, in *dashboarddto.DashboardCreateInput) (*dashboarddto.DashboardCreateResult, error) {
	s.calls["create"]++
	return &dashboarddto.DashboardCreateResult{ID: 1}, nil
}

func (s *countingStore) List(ctx context.Context, status string) (interface{}, error) {
	s.calls["list"]++
	return []int{}, nil
}

func (s *countingStore) Read(ctx context.Context, id string) (interface{}, error) {
	s.calls["read"]++
	return map[string]string{}, nil
}

func (s *countingStore) Update(ctx context.Context, in *dashboarddto.DashboardUpdateInput) error {
	s.calls["update"]++
	return nil
}

func (s *countingStore) Delete(ctx context.Context, id string) error {
	s.calls["delete"]++
	return nil
}

func TestRegisterRoutesBothStores(t *testing.T) {
	setting, file := newCountingStore(), newCountingStore()
	stores := registry.NewRegistry[dashboardsvc.DashboardStore]()
	_, err := stores.Register(dashboardsvc.StoreSetting, setting)
	require.NoError(t, err)
	_, err = stores.Register(dashboardsvc.StoreFile, file)
	require.NoError(t, err)

	app := fiber.New()
	require.NoError(t, apirouter.SetupRoutes(app, stores, Register))

	requests := []struct {
		method string
		path   string
		op     string
	}{
		{http.MethodPost, "/create", "create"},
		{http.MethodGet, "/list", "list"},
		{http.MethodGet, "/read?id=1", "read"},
		{http.MethodPatch, "/update", "update"},
		{http.MethodDelete, "/delete?id=1", "delete"},
	}
	for _, r := range requests {
		resp, err := app.Test(httptest.NewRequest(r.method, "/api/setting"+r.path, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode, "setting %s", r.op)

		resp, err = app.Test(httptest.NewRequest(r.method, "/api"+r.path, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode, "file %s", r.op)

		assert.Equal(t, 1, setting.calls[r.op], r.op)
		assert.Equal(t, 1, file.calls[r.op], r.op)
	}

	// update chỉ nhận PATCH
	resp, err := app.Test(httptest.NewRequest(http.MethodPut, "/api/setting/update", nil))
	require.NoError(t, err)
	assert.NotEqual(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, setting.calls["update"])
}

func TestRegisterFailsWithoutStore(t *testing.T) {
	stores := registry.NewRegistry[dashboardsvc.DashboardStore]()
	_, err := stores.Register(dashboardsvc.StoreSetting, newCountingStore())
	require.NoError(t, err)

	err = apirouter.SetupRoutes(fiber.New(), stores, Register)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"file" is not registered`)
	assert.Contains(t, err.Error(), "[setting]")
}
