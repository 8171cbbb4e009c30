package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/candela-labs/vesting-ledger/backend/internal/domain"
	"github.com/candela-labs/vesting-ledger/backend/internal/utils"
	"github.com/candela-labs/vesting-ledger/backend/internal/vesting"
)

func (h *Handler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	caller := r.Context().Value(AddressCtxKey).(string)
	manager := r.Context().Value(ManagerCtx).(*domain.Manager)

	var req struct {
		Beneficiary   string `json:"beneficiary" validate:"required"`
		TotalAmount   uint64 `json:"totalAmount"`
		StartTime     uint64 `json:"startTime"`
		CliffDuration uint64 `json:"cliffDuration"`
		TotalDuration uint64 `json:"totalDuration"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// 归属参数按固定顺序检查：时长关系、总额、受益人地址
	if err := utils.ValidateScheduleParams(req.Beneficiary, req.TotalAmount, req.CliffDuration, req.TotalDuration); err != nil {
		h.domainError(w, r, err)
		return
	}

	// 只有管理器的所有者才能创建归属计划
	if caller != manager.Owner {
		h.domainError(w, r, vesting.ErrNotOwner)
		return
	}

	schedule := &domain.Schedule{
		Beneficiary:   req.Beneficiary,
		TotalAmount:   req.TotalAmount,
		StartTime:     req.StartTime,
		CliffDuration: req.CliffDuration,
		TotalDuration: req.TotalDuration,
	}

	if err := h.repository.CreateSchedule(manager, schedule); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.invalidateClaimableCache(manager.Owner, schedule.Beneficiary)

	if err := h.publishEvent("schedule_created", domain.ScheduleCreatedEventData{
		Owner:       manager.Owner,
		Beneficiary: schedule.Beneficiary,
		TotalAmount: schedule.TotalAmount,
		StartTime:   schedule.StartTime,
	}); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "创建归属计划成功", schedule)
}

func (h *Handler) GetClaimableAmount(w http.ResponseWriter, r *http.Request) {
	caller := r.Context().Value(AddressCtxKey).(string)
	manager := r.Context().Value(ManagerCtx).(*domain.Manager)

	// 不带参数时查询调用者自己的可领取数额
	beneficiary := r.URL.Query().Get("beneficiary")
	if beneficiary == "" {
		beneficiary = caller
	}

	if !utils.IsValidAddress(beneficiary) {
		h.domainError(w, r, vesting.ErrInvalidBeneficiary)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationTimeout)*time.Second)
	defer cancel()

	// 只读查询优先走缓存
	key := claimableCacheKey(manager.Owner, beneficiary)
	if cached, err := h.redisClient.Get(ctx, key).Result(); err == nil {
		if amount, parseErr := strconv.ParseUint(cached, 10, 64); parseErr == nil {
			h.successResponse(w, r, "获取可领取数额成功", amount)
			return
		}
	}

	amount := vesting.ClaimableAmount(manager, beneficiary, h.clock.Now())

	expiration := time.Duration(h.config.Redis.ClaimableExpiration) * time.Second
	if err := h.redisClient.Set(ctx, key, strconv.FormatUint(amount, 10), expiration).Err(); err != nil {
		slog.Warn("写入查询缓存失败", "owner", manager.Owner, "beneficiary", beneficiary, "error", err)
	}

	h.successResponse(w, r, "获取可领取数额成功", amount)
}

// 暂停和恢复使用同一套前置检查：管理器存在、调用者是所有者、
// 序号在范围内、受益人与该计划一致
func (h *Handler) toggleSchedule(w http.ResponseWriter, r *http.Request, transition func(*domain.Schedule) bool, successMsg string) {
	caller := r.Context().Value(AddressCtxKey).(string)
	manager := r.Context().Value(ManagerCtx).(*domain.Manager)

	var req struct {
		Beneficiary string `json:"beneficiary" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if caller != manager.Owner {
		h.domainError(w, r, vesting.ErrNotOwner)
		return
	}

	indexParam := chi.URLParam(r, "index")
	index, err := strconv.Atoi(indexParam)
	if err != nil || index < 0 || index >= len(manager.Schedules) {
		h.domainError(w, r, vesting.ErrScheduleNotFound)
		return
	}

	schedule := manager.Schedules[index]
	if schedule.Beneficiary != req.Beneficiary {
		h.domainError(w, r, vesting.ErrInvalidBeneficiary)
		return
	}

	// 已领完的计划是终态，状态不变时无需落库
	if transition(schedule) {
		if err := h.repository.UpdateScheduleState(schedule); err != nil {
			h.internalServerError(w, r, err)
			return
		}
		h.invalidateClaimableCache(manager.Owner, schedule.Beneficiary)
	}

	h.successResponse(w, r, successMsg, schedule)
}

func (h *Handler) PauseSchedule(w http.ResponseWriter, r *http.Request) {
	h.toggleSchedule(w, r, vesting.Pause, "暂停归属计划成功")
}

func (h *Handler) ResumeSchedule(w http.ResponseWriter, r *http.Request) {
	h.toggleSchedule(w, r, vesting.Resume, "恢复归属计划成功")
}
