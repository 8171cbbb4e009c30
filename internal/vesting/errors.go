package vesting

import "errors"

// 每种失败情形对应一个哨兵错误，任何一种都会使所在的操作整体中止
var (
	ErrManagerNotFound      = errors.New("归属管理器不存在")
	ErrAlreadyInitialized   = errors.New("归属管理器已经初始化过")
	ErrInvalidVestingParams = errors.New("归属参数无效")
	ErrInvalidBeneficiary   = errors.New("受益人地址无效")
	ErrNotOwner             = errors.New("调用者不是管理器的所有者")
	ErrScheduleNotFound     = errors.New("归属计划不存在")
	ErrNoClaimableAmount    = errors.New("没有可领取的数额")
	ErrInsufficientBalance  = errors.New("金库余额不足")
)
