package vesting

import "time"

// Clock 是外部时间源，返回距 Unix 纪元的秒数。
// 一次操作内只取一次时间，并在整个操作中使用同一个值
type Clock interface {
	Now() uint64
}

type SystemClock struct{}

func (SystemClock) Now() uint64 {
	return uint64(time.Now().Unix())
}
