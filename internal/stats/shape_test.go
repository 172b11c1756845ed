package stats

import (
	"testing"
	"time"

	"github.com/afumu/studydesk/internal/model"
)

func TestWeeklyProgress(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	win := ResolveWindow(now, time.Time{}, time.Time{})

	taskDaily := []*model.DateCount{
		{Date: "2025-06-08", Count: 2},
		{Date: "2025-06-10", Count: 1},
	}
	studyDaily := []*model.DailyStudy{
		{Date: "2025-06-09", Minutes: 90, Sessions: 2},
	}

	points := WeeklyProgress(win, taskDaily, studyDaily)
	if len(points) != 7 {
		t.Fatalf("期望固定 7 条记录, 实际得到 %d", len(points))
	}

	// 日期升序，最后一条是今天
	if points[0].Date != "2025-06-04" || points[6].Date != "2025-06-10" {
		t.Errorf("日期区间错误: %s .. %s", points[0].Date, points[6].Date)
	}
	for i := 1; i < 7; i++ {
		if points[i].Date <= points[i-1].Date {
			t.Errorf("日期必须严格升序: %s <= %s", points[i].Date, points[i-1].Date)
		}
	}

	// 稀疏结果补零
	if points[6].Tasks != 1 {
		t.Errorf("今天任务数期望 1, 实际 %d", points[6].Tasks)
	}
	if points[5].Minutes != 90 || points[5].Sessions != 2 || points[5].Hours != 1.5 {
		t.Errorf("昨天学习量错误: %+v", points[5])
	}
	if points[1].Tasks != 0 || points[1].Minutes != 0 {
		t.Errorf("缺失日期应补零: %+v", points[1])
	}

	// 星期缩写
	if points[6].Day != "Tue" {
		t.Errorf("2025-06-10 是周二, 实际 %s", points[6].Day)
	}
}

func TestHourlyStats(t *testing.T) {
	study := []*model.HourStat{
		{Hour: 14, Minutes: 90},
		{Hour: 14, Minutes: 10}, // 同一小时出现两条要累加
		{Hour: 0, Minutes: 5},
	}
	tasks := []*model.HourStat{
		{Hour: 14, Tasks: 3},
	}

	points := HourlyStats(study, tasks)
	if len(points) != 24 {
		t.Fatalf("期望固定 24 条记录, 实际得到 %d", len(points))
	}

	if points[14].Time != "2 PM" {
		t.Errorf("14 点标签期望 '2 PM', 实际 '%s'", points[14].Time)
	}
	if points[14].Minutes != 100 || points[14].Value != 100 {
		t.Errorf("14 点学习分钟数期望 100, 实际 %d", points[14].Minutes)
	}
	if points[14].Secondary != 3 {
		t.Errorf("14 点任务数期望 3, 实际 %d", points[14].Secondary)
	}
	if points[0].Time != "12 AM" || points[12].Time != "12 PM" || points[23].Time != "11 PM" {
		t.Errorf("小时标签错误: %s / %s / %s", points[0].Time, points[12].Time, points[23].Time)
	}
	if points[1].Minutes != 0 {
		t.Errorf("无记录的小时应补零: %d", points[1].Minutes)
	}
}
