package handler

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

func claimableCacheKey(owner string, beneficiary string) string {
	return fmt.Sprintf("claimable_%s_%s", owner, beneficiary)
}

// invalidateClaimableCache 在任何可能改变可领取数额的写操作成功之后调用。
// 缓存删除失败只记日志，不影响主流程
func (h *Handler) invalidateClaimableCache(owner string, beneficiary string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.Redis.OperationTimeout)*time.Second)
	defer cancel()

	if err := h.redisClient.Del(ctx, claimableCacheKey(owner, beneficiary)).Err(); err != nil {
		slog.Warn("删除查询缓存失败", "owner", owner, "beneficiary", beneficiary, "error", err)
	}
}
