package stats

import "time"

// Timeframe 选择小时分布的统计范围
type Timeframe string

const (
	TimeframeAll   Timeframe = "all"
	TimeframeToday Timeframe = "today"
	TimeframeWeek  Timeframe = "week"
	TimeframeMonth Timeframe = "month"
)

// ParseTimeframe 解析查询参数，无法识别时回退到 all
func ParseTimeframe(s string) Timeframe {
	switch Timeframe(s) {
	case TimeframeToday, TimeframeWeek, TimeframeMonth:
		return Timeframe(s)
	default:
		return TimeframeAll
	}
}

// Window 是一次快照计算的时间窗口。
// 所有下游查询共用同一个 Window，任何组件都不得自行推算边界，
// 否则同一响应里的 pending/overdue 就可能对“今天”意见不一。
type Window struct {
	Now          time.Time
	StartOfToday time.Time // 生效的今日起点（UTC 午夜或调用方覆盖值）
	EndOfToday   time.Time
	StartOfWeek  time.Time // 滚动 7 天窗口的起点，截断到 UTC 午夜
	StartOfMonth time.Time // UTC 当月 1 日午夜
}

// ResolveWindow 根据参考时刻和可选的“今日”覆盖边界计算时间窗口。
// 覆盖边界用于调用方所在时区的“今天”与 UTC 日不一致的场景；
// 覆盖后的边界对 pending/overdue/dueToday 全部生效，不存在
// 一部分字段用 UTC、另一部分用本地边界的混用。
// 覆盖必须成对且 end 晚于 start 才生效，残缺或倒置的覆盖
// 回退到 UTC 边界；HTTP 层在调用前就拒绝这类参数，这里的
// 回退只兜底直接调用方。
func ResolveWindow(now time.Time, startOverride, endOverride time.Time) Window {
	now = now.UTC()

	start := truncateDay(now)
	end := start.AddDate(0, 0, 1)
	if !startOverride.IsZero() && !endOverride.IsZero() && endOverride.After(startOverride) {
		start = startOverride.UTC()
		end = endOverride.UTC()
	}

	return Window{
		Now:          now,
		StartOfToday: start,
		EndOfToday:   end,
		StartOfWeek:  truncateDay(now.AddDate(0, 0, -6)),
		StartOfMonth: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC),
	}
}

// Today 返回规范日历（UTC）下的今日日期，时间部分为零。
// 日期标签始终使用 UTC 日历；覆盖边界只影响边界比较，不改变标签。
func (w Window) Today() time.Time {
	return truncateDay(w.Now)
}

// HourlyRange 返回小时分布所用的查询区间
func (w Window) HourlyRange(tf Timeframe) (time.Time, time.Time) {
	switch tf {
	case TimeframeToday:
		return w.StartOfToday, w.EndOfToday
	case TimeframeWeek:
		return w.StartOfWeek, w.EndOfToday
	case TimeframeMonth:
		return w.StartOfMonth, w.EndOfToday
	default:
		return time.Unix(0, 0).UTC(), w.EndOfToday
	}
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
