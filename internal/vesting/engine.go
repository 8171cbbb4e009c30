package vesting

import (
	"github.com/candela-labs/vesting-ledger/backend/internal/domain"
)

// SettlementEntry 描述一次结算中单个计划的变动
type SettlementEntry struct {
	ScheduleID       int64
	Seq              int32
	Amount           uint64
	NewClaimedAmount uint64
	NewState         domain.ScheduleState
}

// SettlementResult 是一次结算的全部产物，由调用方在同一个事务中落库
type SettlementResult struct {
	Beneficiary string
	Total       uint64
	SettledAt   uint64
	Entries     []SettlementEntry
}

// Settle 在 manager 的快照上按序结算 beneficiary 名下所有生效中的计划。
// 纯函数：不修改传入的 manager，所有变动通过返回的 entries 描述，
// 要么全部提交要么全部丢弃由调用方的事务保证。
// 如果没有任何计划产生可领取数额，返回 ErrNoClaimableAmount
func Settle(m *domain.Manager, beneficiary string, now uint64) (*SettlementResult, error) {
	if m == nil {
		return nil, ErrManagerNotFound
	}

	result := &SettlementResult{
		Beneficiary: beneficiary,
		SettledAt:   now,
	}

	for _, s := range m.Schedules {
		if s.Beneficiary != beneficiary || s.State != domain.ScheduleStateActive {
			continue
		}

		claimable := VestedAmount(s, now)
		if claimable == 0 {
			continue
		}

		// 每个计划各自钳制在 TotalAmount 以内，与扫描顺序无关
		newClaimed := s.ClaimedAmount + claimable
		newState := domain.ScheduleStateActive
		if newClaimed == s.TotalAmount {
			newState = domain.ScheduleStateCompleted
		}

		result.Total += claimable
		result.Entries = append(result.Entries, SettlementEntry{
			ScheduleID:       s.ID,
			Seq:              s.Seq,
			Amount:           claimable,
			NewClaimedAmount: newClaimed,
			NewState:         newState,
		})
	}

	if result.Total == 0 {
		return nil, ErrNoClaimableAmount
	}

	return result, nil
}

// ClaimableAmount 汇总 beneficiary 在该 manager 下所有生效中计划的可领取数额，只读
func ClaimableAmount(m *domain.Manager, beneficiary string, now uint64) uint64 {
	var total uint64
	for _, s := range m.Schedules {
		if s.Beneficiary != beneficiary {
			continue
		}
		total += VestedAmount(s, now)
	}

	return total
}

// Pause 把生效中的计划置为已暂停。已暂停或已领完的计划保持原状，
// 返回值表示状态是否发生了变化
func Pause(s *domain.Schedule) bool {
	if s.State != domain.ScheduleStateActive {
		return false
	}
	s.State = domain.ScheduleStatePaused
	return true
}

// Resume 把已暂停的计划恢复为生效中。已领完的计划是终态，恢复是无操作
func Resume(s *domain.Schedule) bool {
	if s.State != domain.ScheduleStatePaused {
		return false
	}
	s.State = domain.ScheduleStateActive
	return true
}
