package vesting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/candela-labs/vesting-ledger/backend/internal/domain"
)

func newTestSchedule() *domain.Schedule {
	return &domain.Schedule{
		Owner:         "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		Beneficiary:   "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
		TotalAmount:   1000,
		StartTime:     10000,
		CliffDuration: 100,
		TotalDuration: 1000,
		State:         domain.ScheduleStateActive,
	}
}

func TestVestedAmountBeforeCliff(t *testing.T) {
	s := newTestSchedule()

	assert.Zero(t, VestedAmount(s, 0))
	assert.Zero(t, VestedAmount(s, s.StartTime))
	assert.Zero(t, VestedAmount(s, s.StartTime+s.CliffDuration-1))
}

func TestVestedAmountAtCliff(t *testing.T) {
	s := newTestSchedule()

	// 悬崖期刚过，立刻释放从起始时间起线性累积的部分
	assert.Equal(t, uint64(100), VestedAmount(s, s.StartTime+100))
}

func TestVestedAmountLinearPhase(t *testing.T) {
	s := newTestSchedule()

	assert.Equal(t, uint64(150), VestedAmount(s, s.StartTime+150))
	assert.Equal(t, uint64(500), VestedAmount(s, s.StartTime+500))
	assert.Equal(t, uint64(999), VestedAmount(s, s.StartTime+999))
}

func TestVestedAmountFloorDivision(t *testing.T) {
	s := newTestSchedule()
	s.TotalAmount = 10
	s.TotalDuration = 3000

	// floor(150*10/3000) = 0，floor(299*10/3000) = 0，floor(300*10/3000) = 1
	assert.Zero(t, VestedAmount(s, s.StartTime+150))
	assert.Zero(t, VestedAmount(s, s.StartTime+299))
	assert.Equal(t, uint64(1), VestedAmount(s, s.StartTime+300))
}

func TestVestedAmountFullyVested(t *testing.T) {
	s := newTestSchedule()

	assert.Equal(t, uint64(1000), VestedAmount(s, s.StartTime+s.TotalDuration))
	assert.Equal(t, uint64(1000), VestedAmount(s, s.StartTime+s.TotalDuration*10))

	s.ClaimedAmount = 150
	assert.Equal(t, uint64(850), VestedAmount(s, s.StartTime+s.TotalDuration))
}

func TestVestedAmountSubtractsClaimed(t *testing.T) {
	s := newTestSchedule()
	s.ClaimedAmount = 150

	assert.Zero(t, VestedAmount(s, s.StartTime+150))
	assert.Equal(t, uint64(350), VestedAmount(s, s.StartTime+500))
}

func TestVestedAmountClampsInsteadOfWrapping(t *testing.T) {
	s := newTestSchedule()
	// 已领取数额超过当前线性归属值时必须钳制在 0，不能回绕
	s.ClaimedAmount = 600

	assert.Zero(t, VestedAmount(s, s.StartTime+500))
}

func TestVestedAmountExtremeCliffDoesNotWrap(t *testing.T) {
	s := newTestSchedule()
	// StartTime+CliffDuration 的求和会回绕到 0，悬崖判断不能因此被绕过
	s.StartTime = 1 << 63
	s.CliffDuration = 1 << 63
	s.TotalDuration = 1<<63 + 100

	assert.Zero(t, VestedAmount(s, 0))
	assert.Zero(t, VestedAmount(s, s.StartTime+100))

	before := newTestSchedule()
	before.StartTime = 1<<64 - 10
	assert.Zero(t, VestedAmount(before, 100))
}

func TestVestedAmountInactiveStates(t *testing.T) {
	now := newTestSchedule().StartTime + 500

	paused := newTestSchedule()
	paused.State = domain.ScheduleStatePaused
	assert.Zero(t, VestedAmount(paused, now))

	completed := newTestSchedule()
	completed.ClaimedAmount = completed.TotalAmount
	completed.State = domain.ScheduleStateCompleted
	assert.Zero(t, VestedAmount(completed, now))
}

func TestVestedAmountFullyClaimed(t *testing.T) {
	s := newTestSchedule()
	s.ClaimedAmount = s.TotalAmount

	assert.Zero(t, VestedAmount(s, s.StartTime+s.TotalDuration*2))
}

func TestVestedAmountZeroTotalDuration(t *testing.T) {
	s := newTestSchedule()
	s.CliffDuration = 0
	s.TotalDuration = 0

	// 总时长为 0 等价于在起始时间一次性全部归属
	assert.Equal(t, s.TotalAmount, VestedAmount(s, s.StartTime))
}

func TestVestedAmountMonotonic(t *testing.T) {
	s := newTestSchedule()
	s.TotalAmount = 777
	s.TotalDuration = 3600

	var prev uint64
	for now := s.StartTime; now <= s.StartTime+s.TotalDuration+100; now += 7 {
		got := VestedAmount(s, now)
		require.GreaterOrEqual(t, got, prev, "now=%d", now)
		prev = got
	}
}

func TestVestedAmountLargeValuesKeepPrecision(t *testing.T) {
	s := newTestSchedule()
	s.TotalAmount = 1 << 62
	s.CliffDuration = 0
	s.TotalDuration = 3

	// 先乘后除：中间结果超出 64 位也不能损失精度
	assert.Equal(t, s.TotalAmount/3, VestedAmount(s, s.StartTime+1))
	assert.Equal(t, s.TotalAmount/3*2, VestedAmount(s, s.StartTime+2))
}

func TestMulDiv(t *testing.T) {
	assert.Equal(t, uint64(150), mulDiv(150, 1000, 1000))
	assert.Equal(t, uint64(0), mulDiv(299, 10, 3000))
	assert.Equal(t, uint64(1), mulDiv(300, 10, 3000))

	// a*b 溢出 64 位的情况
	big := uint64(1) << 63
	assert.Equal(t, big/4, mulDiv(1, big, 4))
	assert.Equal(t, big/4*3, mulDiv(3, big, 4))
}
