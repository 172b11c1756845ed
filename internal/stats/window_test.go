package stats

import (
	"testing"
	"time"
)

func TestResolveWindow_Default(t *testing.T) {
	now := time.Date(2025, 6, 10, 15, 30, 0, 0, time.UTC)
	win := ResolveWindow(now, time.Time{}, time.Time{})

	if !win.StartOfToday.Equal(date("2025-06-10")) {
		t.Errorf("今日起点错误: %v", win.StartOfToday)
	}
	if !win.EndOfToday.Equal(date("2025-06-11")) {
		t.Errorf("今日终点错误: %v", win.EndOfToday)
	}
	if !win.StartOfWeek.Equal(date("2025-06-04")) {
		t.Errorf("周起点应是 6 天前的午夜: %v", win.StartOfWeek)
	}
	if !win.StartOfMonth.Equal(date("2025-06-01")) {
		t.Errorf("月起点错误: %v", win.StartOfMonth)
	}
}

func TestResolveWindow_Override(t *testing.T) {
	now := time.Date(2025, 6, 10, 1, 0, 0, 0, time.UTC)
	// 东八区的“今天”：UTC 前一天 16 点开始
	start := time.Date(2025, 6, 9, 16, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 10, 16, 0, 0, 0, time.UTC)

	win := ResolveWindow(now, start, end)
	if !win.StartOfToday.Equal(start) || !win.EndOfToday.Equal(end) {
		t.Errorf("覆盖边界未生效: [%v, %v)", win.StartOfToday, win.EndOfToday)
	}

	// 日期标签仍然走 UTC 日历
	if !win.Today().Equal(date("2025-06-10")) {
		t.Errorf("覆盖边界不应改变日期标签: %v", win.Today())
	}
}

func TestResolveWindow_InvalidOverride(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	start := time.Date(2025, 6, 10, 16, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, -1) // end 在 start 之前

	win := ResolveWindow(now, start, end)
	if !win.StartOfToday.Equal(date("2025-06-10")) {
		t.Errorf("非法覆盖应回退到 UTC 边界: %v", win.StartOfToday)
	}

	// 只给一半覆盖同样无效
	win = ResolveWindow(now, start, time.Time{})
	if !win.StartOfToday.Equal(date("2025-06-10")) {
		t.Errorf("只覆盖起点应回退到 UTC 边界: %v", win.StartOfToday)
	}
}

func TestHourlyRange(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	win := ResolveWindow(now, time.Time{}, time.Time{})

	start, end := win.HourlyRange(TimeframeToday)
	if !start.Equal(win.StartOfToday) || !end.Equal(win.EndOfToday) {
		t.Errorf("today 范围错误: [%v, %v)", start, end)
	}

	start, _ = win.HourlyRange(TimeframeWeek)
	if !start.Equal(win.StartOfWeek) {
		t.Errorf("week 范围错误: %v", start)
	}

	start, _ = win.HourlyRange(TimeframeAll)
	if !start.Equal(time.Unix(0, 0).UTC()) {
		t.Errorf("all 应从 epoch 开始: %v", start)
	}
}

func TestParseTimeframe(t *testing.T) {
	if ParseTimeframe("week") != TimeframeWeek {
		t.Error("week 解析失败")
	}
	if ParseTimeframe("") != TimeframeAll {
		t.Error("空值应回退到 all")
	}
	if ParseTimeframe("bogus") != TimeframeAll {
		t.Error("未知值应回退到 all")
	}
}
