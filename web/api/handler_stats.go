package api

import (
	"time"

	"github.com/afumu/studydesk/internal/stats"
	"github.com/afumu/studydesk/store/repo"
	"github.com/afumu/studydesk/web/transport"
	"github.com/gin-gonic/gin"
)

// GetStats 计算当前用户的统计快照。
// timeframe 控制小时分布的统计范围（all/today/week/month），
// startOfToday/endOfToday 允许调用方按自己时区覆盖“今日”边界，
// 覆盖值对 pending/overdue/dueToday 全部生效。
func (a *API) GetStats(c *gin.Context) {
	ctx := c.Request.Context()

	user, err := a.Store.GetUserByID(ctx, userID(c))
	if err == repo.ErrNotFound {
		transport.NotFound(c, "用户档案不存在")
		return
	}
	if err != nil {
		transport.InternalServerError(c, "查询用户失败", err)
		return
	}

	tf := stats.ParseTimeframe(c.Query("timeframe"))

	var startOverride, endOverride time.Time
	if v := c.Query("startOfToday"); v != "" {
		startOverride, err = time.Parse(time.RFC3339, v)
		if err != nil {
			transport.BadRequest(c, "startOfToday 不是合法的 RFC3339 时间")
			return
		}
	}
	if v := c.Query("endOfToday"); v != "" {
		endOverride, err = time.Parse(time.RFC3339, v)
		if err != nil {
			transport.BadRequest(c, "endOfToday 不是合法的 RFC3339 时间")
			return
		}
	}
	// 覆盖边界必须成对出现且区间有效，否则直接拒绝，
	// 不能让调用方以为覆盖生效了、实际拿到的是服务器日历的统计。
	if startOverride.IsZero() != endOverride.IsZero() {
		transport.BadRequest(c, "startOfToday 与 endOfToday 必须成对提供")
		return
	}
	if !startOverride.IsZero() && !endOverride.After(startOverride) {
		transport.BadRequest(c, "endOfToday 必须晚于 startOfToday")
		return
	}

	win := stats.ResolveWindow(time.Now(), startOverride, endOverride)
	snapshot := a.Engine.Snapshot(ctx, user, win, tf)

	transport.NoStore(c)
	transport.SendSuccess(c, snapshot)
}
