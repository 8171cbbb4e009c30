package handler

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/candela-labs/vesting-ledger/backend/internal/domain"
)

// InitializeManager 为调用者创建归属管理器，每个地址只能初始化一次，
// 第二次调用必定失败
func (h *Handler) InitializeManager(w http.ResponseWriter, r *http.Request) {
	caller := r.Context().Value(AddressCtxKey).(string)

	manager, err := h.repository.CreateManager(caller)
	if err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "managers_owner_key":
				h.errorResponse(w, r, "归属管理器已经初始化过")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "初始化归属管理器成功", manager)
}

func (h *Handler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	manager := r.Context().Value(ManagerCtx).(*domain.Manager)

	h.successResponse(w, r, "获取归属计划列表成功", manager.Schedules)
}
