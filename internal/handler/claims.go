package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/candela-labs/vesting-ledger/backend/internal/domain"
	"github.com/candela-labs/vesting-ledger/backend/internal/vesting"
)

// Claim 结算调用者名下所有可领取的归属计划并从金库转账。
// 整个结算在一个事务里完成，失败时调用者观察不到任何部分写入
func (h *Handler) Claim(w http.ResponseWriter, r *http.Request) {
	caller := r.Context().Value(AddressCtxKey).(string)

	result, err := h.repository.SettleClaim(caller)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "归属管理器不存在")
		case errors.Is(err, vesting.ErrNoClaimableAmount):
			h.domainError(w, r, err)
		case errors.Is(err, vesting.ErrInsufficientBalance):
			h.domainError(w, r, err)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.invalidateClaimableCache(caller, caller)

	if err := h.publishEvent("claim_settled", domain.ClaimSettledEventData{
		Beneficiary: result.Beneficiary,
		Amount:      result.Total,
		ClaimedAt:   result.SettledAt,
	}); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "领取成功", result)
}
