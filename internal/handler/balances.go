package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/candela-labs/vesting-ledger/backend/internal/domain"
)

func (h *Handler) GetMyBalance(w http.ResponseWriter, r *http.Request) {
	account := r.Context().Value(MyAccountCtx).(*domain.Account)

	balance, err := h.repository.GetBalanceByAddress(account.Address)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			// 还没有任何入账的地址余额视为 0
			h.successResponse(w, r, "获取余额成功", &domain.Balance{Address: account.Address, Amount: 0})
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "获取余额成功", balance)
}
