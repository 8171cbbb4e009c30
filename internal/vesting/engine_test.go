package vesting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/candela-labs/vesting-ledger/backend/internal/domain"
)

const (
	testOwner       = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	testOther       = "cccccccccccccccccccccccccccccccccccccccc"
	testTreasury    = "0000000000000000000000000000000000000001"
	testStart       = uint64(100000)
	testCliff       = uint64(100)
	testDuration    = uint64(1000)
	testTotalAmount = uint64(1000)
)

func newTestManager() *domain.Manager {
	return &domain.Manager{
		ID:        1,
		Owner:     testOwner,
		Schedules: make([]*domain.Schedule, 0),
	}
}

func addSchedule(m *domain.Manager, beneficiary string, totalAmount uint64) *domain.Schedule {
	s := &domain.Schedule{
		ID:            int64(len(m.Schedules) + 1),
		Owner:         m.Owner,
		Seq:           int32(len(m.Schedules)),
		Beneficiary:   beneficiary,
		TotalAmount:   totalAmount,
		StartTime:     testStart,
		CliffDuration: testCliff,
		TotalDuration: testDuration,
		State:         domain.ScheduleStateActive,
	}
	m.Schedules = append(m.Schedules, s)
	return s
}

// 模拟仓库在同一个事务里做的事情：把结算结果套用到计划上
func applyResult(m *domain.Manager, result *SettlementResult) {
	for _, entry := range result.Entries {
		s := m.Schedules[entry.Seq]
		s.ClaimedAmount = entry.NewClaimedAmount
		s.State = entry.NewState
	}
}

func TestSettleNilManager(t *testing.T) {
	_, err := Settle(nil, testOwner, testStart)
	assert.ErrorIs(t, err, ErrManagerNotFound)
}

func TestSettleNoClaimableBeforeCliff(t *testing.T) {
	m := newTestManager()
	addSchedule(m, testOwner, testTotalAmount)

	_, err := Settle(m, testOwner, testStart+50)
	assert.ErrorIs(t, err, ErrNoClaimableAmount)
}

func TestSettleNoClaimableWhenNoMatchingBeneficiary(t *testing.T) {
	m := newTestManager()
	addSchedule(m, testOther, testTotalAmount)

	_, err := Settle(m, testOwner, testStart+500)
	assert.ErrorIs(t, err, ErrNoClaimableAmount)
}

func TestSettleDoesNotMutateManager(t *testing.T) {
	m := newTestManager()
	s := addSchedule(m, testOwner, testTotalAmount)

	result, err := Settle(m, testOwner, testStart+500)
	require.NoError(t, err)
	require.Equal(t, uint64(500), result.Total)

	// 变动只存在于 entries 里，快照本身保持原样
	assert.Zero(t, s.ClaimedAmount)
	assert.Equal(t, domain.ScheduleStateActive, s.State)
}

func TestSettleAggregatesAcrossSchedules(t *testing.T) {
	m := newTestManager()
	addSchedule(m, testOwner, 1000)
	addSchedule(m, testOther, 1000) // 不属于领取方
	addSchedule(m, testOwner, 2000)

	result, err := Settle(m, testOwner, testStart+500)
	require.NoError(t, err)

	assert.Equal(t, uint64(500+1000), result.Total)
	require.Len(t, result.Entries, 2)
	assert.Equal(t, int32(0), result.Entries[0].Seq)
	assert.Equal(t, int32(2), result.Entries[1].Seq)
}

func TestSettleSkipsPausedSchedules(t *testing.T) {
	m := newTestManager()
	addSchedule(m, testOwner, 1000)
	paused := addSchedule(m, testOwner, 1000)
	paused.State = domain.ScheduleStatePaused

	result, err := Settle(m, testOwner, testStart+500)
	require.NoError(t, err)

	assert.Equal(t, uint64(500), result.Total)
	require.Len(t, result.Entries, 1)
}

func TestSettleCompletesFullyVestedSchedule(t *testing.T) {
	m := newTestManager()
	addSchedule(m, testOwner, testTotalAmount)

	result, err := Settle(m, testOwner, testStart+testDuration)
	require.NoError(t, err)

	require.Len(t, result.Entries, 1)
	assert.Equal(t, testTotalAmount, result.Entries[0].NewClaimedAmount)
	assert.Equal(t, domain.ScheduleStateCompleted, result.Entries[0].NewState)
}

func TestRepeatedClaimsNeverExceedTotal(t *testing.T) {
	m := newTestManager()
	addSchedule(m, testOwner, 777)

	var claimed uint64
	for now := testStart; now <= testStart+testDuration+500; now += 37 {
		result, err := Settle(m, testOwner, now)
		if err != nil {
			require.ErrorIs(t, err, ErrNoClaimableAmount)
			continue
		}
		applyResult(m, result)
		claimed += result.Total
	}

	assert.Equal(t, uint64(777), claimed)
	assert.Equal(t, domain.ScheduleStateCompleted, m.Schedules[0].State)
}

// 用内存中的记账簿模拟外部资产账本，验证反复领取之下总量守恒
func TestSettlementConservesTotalSupply(t *testing.T) {
	m := newTestManager()
	addSchedule(m, testOwner, 600)
	addSchedule(m, testOwner, 400)

	book := map[string]uint64{
		testTreasury: 1000,
		testOwner:    0,
	}
	supply := uint64(1000)

	for now := testStart; now <= testStart+testDuration; now += 113 {
		result, err := Settle(m, testOwner, now)
		if err != nil {
			continue
		}
		applyResult(m, result)

		require.GreaterOrEqual(t, book[testTreasury], result.Total)
		book[testTreasury] -= result.Total
		book[testOwner] += result.Total

		assert.Equal(t, supply, book[testTreasury]+book[testOwner])
	}

	// 期满后余额全部落到受益人手里
	result, err := Settle(m, testOwner, testStart+testDuration*2)
	if err == nil {
		applyResult(m, result)
		book[testTreasury] -= result.Total
		book[testOwner] += result.Total
	}
	assert.Equal(t, supply, book[testOwner])
}

func TestClaimableAmountSumsActiveSchedules(t *testing.T) {
	m := newTestManager()
	addSchedule(m, testOwner, 1000)
	addSchedule(m, testOwner, 2000)
	addSchedule(m, testOther, 4000)

	assert.Equal(t, uint64(1500), ClaimableAmount(m, testOwner, testStart+500))
	assert.Equal(t, uint64(2000), ClaimableAmount(m, testOther, testStart+500))
	assert.Zero(t, ClaimableAmount(m, "dddddddddddddddddddddddddddddddddddddddd", testStart+500))
}

func TestPauseAndResumeTransitions(t *testing.T) {
	m := newTestManager()
	s := addSchedule(m, testOwner, testTotalAmount)

	require.True(t, Pause(s))
	assert.Equal(t, domain.ScheduleStatePaused, s.State)

	// 重复暂停是无操作
	assert.False(t, Pause(s))

	require.True(t, Resume(s))
	assert.Equal(t, domain.ScheduleStateActive, s.State)
	assert.False(t, Resume(s))
}

func TestPauseResumePreservesClaimTrajectory(t *testing.T) {
	m := newTestManager()
	s := addSchedule(m, testOwner, testTotalAmount)

	before := VestedAmount(s, testStart+500)

	require.True(t, Pause(s))
	assert.Zero(t, VestedAmount(s, testStart+500))
	require.True(t, Resume(s))

	// 暂停再恢复之后，既有数额和未来的释放轨迹都不受影响
	assert.Equal(t, s.TotalAmount, uint64(1000))
	assert.Zero(t, s.ClaimedAmount)
	assert.Equal(t, before, VestedAmount(s, testStart+500))
	assert.Equal(t, s.TotalAmount, VestedAmount(s, testStart+testDuration))
}

func TestCompletedScheduleIsTerminal(t *testing.T) {
	m := newTestManager()
	s := addSchedule(m, testOwner, testTotalAmount)

	result, err := Settle(m, testOwner, testStart+testDuration)
	require.NoError(t, err)
	applyResult(m, result)
	require.Equal(t, domain.ScheduleStateCompleted, s.State)

	// 已领完是终态，暂停和恢复都不会改变它
	assert.False(t, Pause(s))
	assert.Equal(t, domain.ScheduleStateCompleted, s.State)
	assert.False(t, Resume(s))
	assert.Equal(t, domain.ScheduleStateCompleted, s.State)
	assert.Zero(t, VestedAmount(s, testStart+testDuration*10))
}

// 对照验收场景：total=1000, cliff=100, duration=1000
func TestEndToEndClaimScenario(t *testing.T) {
	m := newTestManager()
	s := addSchedule(m, testOwner, 1000)

	// T+50：悬崖期内
	assert.Zero(t, ClaimableAmount(m, testOwner, testStart+50))
	_, err := Settle(m, testOwner, testStart+50)
	assert.ErrorIs(t, err, ErrNoClaimableAmount)

	// T+150：floor(150*1000/1000) == 150
	assert.Equal(t, uint64(150), ClaimableAmount(m, testOwner, testStart+150))

	result, err := Settle(m, testOwner, testStart+150)
	require.NoError(t, err)
	assert.Equal(t, uint64(150), result.Total)
	applyResult(m, result)
	assert.Equal(t, uint64(150), s.ClaimedAmount)

	// 紧接着的第二次领取必须失败
	_, err = Settle(m, testOwner, testStart+150)
	assert.ErrorIs(t, err, ErrNoClaimableAmount)

	// T+1000：剩余 850 全部可领
	assert.Equal(t, uint64(850), ClaimableAmount(m, testOwner, testStart+1000))

	result, err = Settle(m, testOwner, testStart+1000)
	require.NoError(t, err)
	assert.Equal(t, uint64(850), result.Total)
	applyResult(m, result)

	assert.Equal(t, uint64(1000), s.ClaimedAmount)
	assert.Equal(t, domain.ScheduleStateCompleted, s.State)
}
