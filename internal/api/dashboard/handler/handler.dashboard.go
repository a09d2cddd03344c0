// Package dashboardhdl chứa HTTP handler cho domain Dashboard.
// Cùng một handler phục vụ cả hai store; store cụ thể được chọn theo nhóm route.
package dashboardhdl

import (
	"bytes"

	basehdl "github.com/heynokimush/dashboard-backend/internal/api/base/handler"
	dashboarddto "github.com/heynokimush/dashboard-backend/internal/api/dashboard/dto"
	dashboardmodels "github.com/heynokimush/dashboard-backend/internal/api/dashboard/models"
	dashboardsvc "github.com/heynokimush/dashboard-backend/internal/api/dashboard/service"
	"github.com/heynokimush/dashboard-backend/internal/common"
	"github.com/heynokimush/dashboard-backend/internal/logger"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

const msgInvalidBody = "요청 본문이 올바른 JSON 형식이 아닙니다."

// DashboardHandler xử lý create/list/read/update/delete trên một DashboardStore
type DashboardHandler struct {
	Store     dashboardsvc.DashboardStore
	StoreName string // "setting" | "file", dùng cho log và audit
}

// NewDashboardHandler tạo DashboardHandler cho store
func NewDashboardHandler(storeName string, store dashboardsvc.DashboardStore) *DashboardHandler {
	return &DashboardHandler{Store: store, StoreName: storeName}
}

func (h *DashboardHandler) fields(extra logrus.Fields) logrus.Fields {
	f := logrus.Fields{"store": h.StoreName}
	for k, v := range extra {
		f[k] = v
	}
	return f
}

// bindBody bind body JSON vào out. Body rỗng được bỏ qua.
func bindBody(c fiber.Ctx, out interface{}) error {
	if len(bytes.TrimSpace(c.Body())) == 0 {
		return nil
	}
	if err := c.Bind().Body(out); err != nil {
		return common.NewFormatError(msgInvalidBody)
	}
	return nil
}

// bindQuery đọc id/status từ query string
func bindQuery(c fiber.Ctx) (dashboarddto.DashboardQueryParams, error) {
	var params dashboarddto.DashboardQueryParams
	if err := c.Bind().Query(&params); err != nil {
		return params, common.NewFormatError(err.Error())
	}
	return params, nil
}

// HandleCreate xử lý POST /create
func (h *DashboardHandler) HandleCreate(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		input := &dashboarddto.DashboardCreateInput{}
		if err := bindBody(c, &input.Payload); err != nil {
			return basehdl.HandleError(c, err, "create", h.fields(nil))
		}
		if input.Payload == nil {
			input.Payload = map[string]interface{}{}
		}

		result, err := h.Store.Create(c.Context(), input)
		if err != nil {
			var name interface{}
			if info := input.DashboardInfo(); info != nil {
				name = info[dashboardmodels.KeyDashboardName]
			}
			return basehdl.HandleError(c, err, "create", h.fields(logrus.Fields{"dashboardName": name}))
		}

		logger.LogMutation(c, logger.ActionCreate, h.StoreName, result.ID)
		return basehdl.JSONResponse(c, common.StatusOK, result)
	})
}

// HandleList xử lý GET /list?status=
func (h *DashboardHandler) HandleList(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		params, err := bindQuery(c)
		if err != nil {
			return basehdl.HandleError(c, err, "list", h.fields(nil))
		}
		result, err := h.Store.List(c.Context(), params.Status)
		if err != nil {
			return basehdl.HandleError(c, err, "list", h.fields(logrus.Fields{"status": params.Status}))
		}
		return basehdl.JSONResponse(c, common.StatusOK, result)
	})
}

// HandleRead xử lý GET /read?id=
func (h *DashboardHandler) HandleRead(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		params, err := bindQuery(c)
		if err != nil {
			return basehdl.HandleError(c, err, "read", h.fields(nil))
		}
		result, err := h.Store.Read(c.Context(), params.ID)
		if err != nil {
			return basehdl.HandleError(c, err, "read", h.fields(logrus.Fields{"id": params.ID}))
		}
		return basehdl.JSONResponse(c, common.StatusOK, result)
	})
}

// HandleUpdate xử lý PATCH /update. id lấy từ query ?id=, nếu không có thì từ body.
func (h *DashboardHandler) HandleUpdate(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		params, err := bindQuery(c)
		if err != nil {
			return basehdl.HandleError(c, err, "update", h.fields(nil))
		}
		input := &dashboarddto.DashboardUpdateInput{}
		if err := bindBody(c, input); err != nil {
			return basehdl.HandleError(c, err, "update", h.fields(nil))
		}

		input.ID = params.ID
		if input.ID == "" {
			input.ID = string(input.BodyID)
		}
		id := input.ID

		if err := h.Store.Update(c.Context(), input); err != nil {
			return basehdl.HandleError(c, err, "update", h.fields(logrus.Fields{"id": id}))
		}

		logger.LogMutation(c, logger.ActionUpdate, h.StoreName, id)
		return basehdl.JSONResponse(c, common.StatusOK, dashboarddto.DashboardMessageResult{Message: dashboardsvc.MsgUpdateSuccess})
	})
}

// HandleDelete xử lý DELETE /delete?id=
func (h *DashboardHandler) HandleDelete(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		params, err := bindQuery(c)
		if err != nil {
			return basehdl.HandleError(c, err, "delete", h.fields(nil))
		}
		if err := h.Store.Delete(c.Context(), params.ID); err != nil {
			return basehdl.HandleError(c, err, "delete", h.fields(logrus.Fields{"id": params.ID}))
		}

		logger.LogMutation(c, logger.ActionDelete, h.StoreName, params.ID)
		return basehdl.JSONResponse(c, common.StatusOK, dashboarddto.DashboardMessageResult{Message: dashboardsvc.MsgDeleteSuccess})
	})
}
