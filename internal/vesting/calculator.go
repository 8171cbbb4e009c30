package vesting

import (
	"math/bits"

	"github.com/candela-labs/vesting-ledger/backend/internal/domain"
)

// VestedAmount 计算 now 时刻该计划还可以领取的数额，纯函数，不修改 schedule。
// 悬崖期内返回 0，归属期满后返回全部未领取的部分，否则按线性曲线计算
func VestedAmount(s *domain.Schedule, now uint64) uint64 {
	if s.State != domain.ScheduleStateActive {
		return 0
	}

	if s.ClaimedAmount >= s.TotalAmount {
		return 0
	}

	// 不把 StartTime 和 CliffDuration 相加，极端取值下求和会回绕
	if now < s.StartTime {
		return 0
	}

	elapsed := now - s.StartTime
	if elapsed < s.CliffDuration {
		return 0
	}

	if elapsed >= s.TotalDuration {
		return s.TotalAmount - s.ClaimedAmount
	}

	vested := mulDiv(elapsed, s.TotalAmount, s.TotalDuration)
	if vested <= s.ClaimedAmount {
		// 正常时序下 vested 不会小于 claimed，这里防止无符号回绕
		return 0
	}

	return vested - s.ClaimedAmount
}

// mulDiv 返回 floor(a*b/d)，中间结果保存在 128 位中，必须先乘后除以免损失精度。
// 调用前提是 a < d，此时商必定能放回 64 位
func mulDiv(a, b, d uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	q, _ := bits.Div64(hi, lo, d)
	return q
}
