package utils

import (
	"regexp"

	"github.com/candela-labs/vesting-ledger/backend/internal/vesting"
)

// 账户地址是 40 位十六进制字符串
var hexAddressRegexp = regexp.MustCompile(`^[0-9a-fA-F]{40}$`)

func IsValidAddress(address string) bool {
	return hexAddressRegexp.MatchString(address)
}

// ValidateScheduleParams 检查创建归属计划的参数。
// 检查顺序是固定的：先时长关系，再总额，最后受益人地址，
// 每一项失败对应一种独立的错误
func ValidateScheduleParams(beneficiary string, totalAmount uint64, cliffDuration uint64, totalDuration uint64) error {
	if cliffDuration > totalDuration {
		return vesting.ErrInvalidVestingParams
	}

	if totalAmount == 0 {
		return vesting.ErrInvalidVestingParams
	}

	if !IsValidAddress(beneficiary) {
		return vesting.ErrInvalidBeneficiary
	}

	return nil
}
