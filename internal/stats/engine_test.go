package stats

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/afumu/studydesk/internal/model"
	"github.com/afumu/studydesk/store/types"
)

// fakeSource 是可注入数据和故障的 Source 实现
type fakeSource struct {
	taskDaily     []*model.DateCount
	studyDaily    []*model.DailyStudy
	catTallies    []*model.CategoryTally
	monthSessions int
	totals        *model.SessionTotals
	tally         *model.TaskTally
	dates         []string
	pending       []*model.Task
	recentDone    []*model.Task
	moods         []*model.MoodLog
	goals         []*model.Goal
	timetable     []*model.TimetableEntry

	failTotals bool
	failTally  bool
	failMonth  bool
}

var errInjected = errors.New("injected failure")

func (f *fakeSource) GetDailyTaskCompletions(ctx context.Context, userID string, start, end time.Time) ([]*model.DateCount, error) {
	return f.taskDaily, nil
}

func (f *fakeSource) GetDailyStudyMinutes(ctx context.Context, userID string, start, end time.Time) ([]*model.DailyStudy, error) {
	return f.studyDaily, nil
}

func (f *fakeSource) GetCategoryTallies(ctx context.Context, userID string, since time.Time) ([]*model.CategoryTally, error) {
	return f.catTallies, nil
}

func (f *fakeSource) CountSessionsSince(ctx context.Context, userID string, since time.Time) (int, error) {
	if f.failMonth {
		return 0, errInjected
	}
	return f.monthSessions, nil
}

func (f *fakeSource) GetSessionTotals(ctx context.Context, userID string) (*model.SessionTotals, error) {
	if f.failTotals {
		return nil, errInjected
	}
	return f.totals, nil
}

func (f *fakeSource) GetTaskTally(ctx context.Context, userID string, startOfToday, endOfToday time.Time) (*model.TaskTally, error) {
	if f.failTally {
		return nil, errInjected
	}
	return f.tally, nil
}

func (f *fakeSource) GetActivityDates(ctx context.Context, userID string) ([]string, error) {
	return f.dates, nil
}

func (f *fakeSource) GetHourlyStudyMinutes(ctx context.Context, userID string, start, end time.Time) ([]*model.HourStat, error) {
	return nil, nil
}

func (f *fakeSource) GetHourlyTaskCompletions(ctx context.Context, userID string, start, end time.Time) ([]*model.HourStat, error) {
	return nil, nil
}

func (f *fakeSource) GetRecentCompletedTasks(ctx context.Context, userID string, limit int) ([]*model.Task, error) {
	return f.recentDone, nil
}

func (f *fakeSource) GetPendingTasks(ctx context.Context, userID string) ([]*model.Task, error) {
	return f.pending, nil
}

func (f *fakeSource) GetRecentMoods(ctx context.Context, userID string, q types.MoodQuery) ([]*model.MoodLog, error) {
	return f.moods, nil
}

func (f *fakeSource) GetGoals(ctx context.Context, userID string, q types.GoalQuery) ([]*model.Goal, error) {
	return f.goals, nil
}

func (f *fakeSource) GetTimetable(ctx context.Context, userID string) ([]*model.TimetableEntry, error) {
	return f.timetable, nil
}

func testUser() *model.User {
	return &model.User{ID: "u1", Name: "小明", XP: 120, Level: 2, Badges: []string{"early-bird"}}
}

func testWindow() Window {
	return ResolveWindow(time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC), time.Time{}, time.Time{})
}

func TestEngine_Snapshot_Empty(t *testing.T) {
	e := New(&fakeSource{})
	snap := e.Snapshot(context.Background(), testUser(), testWindow(), TimeframeAll)

	if snap.User.StudyStats.ProductivityScore != 0 {
		t.Errorf("空数据得分应为 0, 实际 %d", snap.User.StudyStats.ProductivityScore)
	}
	if snap.User.StudyStats.Streak != 0 {
		t.Errorf("空数据连续天数应为 0, 实际 %d", snap.User.StudyStats.Streak)
	}
	if snap.User.StudyStats.TotalHours != "0.0" {
		t.Errorf("空数据总时长应为 '0.0', 实际 %q", snap.User.StudyStats.TotalHours)
	}
	if snap.Analytics.AvgMood != "0.0" {
		t.Errorf("空数据平均心情应为 '0.0', 实际 %q", snap.Analytics.AvgMood)
	}

	// 数组必须是空数组，不能是 nil（序列化成 null 会破坏前端）
	if snap.User.TaskStats.UpcomingTasks == nil || snap.User.TaskStats.CompletedTasks == nil {
		t.Error("任务列表不能是 nil")
	}
	if snap.Analytics.RecentMoods == nil || snap.Analytics.Timetable == nil || snap.Analytics.MonthGoals == nil {
		t.Error("图表附属数组不能是 nil")
	}
	if len(snap.Analytics.WeeklyProgress) != 7 {
		t.Errorf("周视图必须是 7 条, 实际 %d", len(snap.Analytics.WeeklyProgress))
	}
	if len(snap.Analytics.HourlyStats) != 24 {
		t.Errorf("小时视图必须是 24 条, 实际 %d", len(snap.Analytics.HourlyStats))
	}
	if len(snap.Analytics.CategoricalProgress) != 4 {
		t.Errorf("分类进度必须是 4 条, 实际 %d", len(snap.Analytics.CategoricalProgress))
	}
}

func TestEngine_Snapshot_Assembly(t *testing.T) {
	src := &fakeSource{
		studyDaily: []*model.DailyStudy{
			{Date: "2025-06-09", Minutes: 120, Sessions: 2},
			{Date: "2025-06-10", Minutes: 60, Sessions: 1},
		},
		totals: &model.SessionTotals{Count: 10, Minutes: 600},
		tally:  &model.TaskTally{Total: 4, Completed: 2, Pending: 2},
		dates:  []string{"2025-06-10", "2025-06-09"},
		moods: []*model.MoodLog{
			{Mood: 4}, {Mood: 5},
		},
	}
	e := New(src)
	snap := e.Snapshot(context.Background(), testUser(), testWindow(), TimeframeAll)

	if snap.User.Name != "小明" || snap.User.Level != 2 {
		t.Errorf("用户概要错误: %+v", snap.User)
	}
	if snap.User.StudyStats.TotalHours != "10.0" {
		t.Errorf("总时长期望 '10.0', 实际 %q", snap.User.StudyStats.TotalHours)
	}
	if snap.User.StudyStats.Streak != 2 {
		t.Errorf("连续天数期望 2, 实际 %d", snap.User.StudyStats.Streak)
	}
	if snap.Analytics.AvgMood != "4.5" {
		t.Errorf("平均心情期望 '4.5', 实际 %q", snap.Analytics.AvgMood)
	}
	if snap.Analytics.MaxWeeklyHours != 2.0 {
		t.Errorf("周内单日最大时长期望 2.0, 实际 %v", snap.Analytics.MaxWeeklyHours)
	}

	// 0.4*(2/4) + 0.4*(3/28) + 0.2*(4.5/5) = 0.2 + 0.042857 + 0.18 = 0.422857 -> 42
	if snap.User.StudyStats.ProductivityScore != 42 {
		t.Errorf("得分期望 42, 实际 %d", snap.User.StudyStats.ProductivityScore)
	}
}

func TestEngine_Snapshot_DegradesOnFailure(t *testing.T) {
	src := &fakeSource{
		failTotals: true,
		failTally:  true,
		moods:      []*model.MoodLog{{Mood: 3}},
	}
	e := New(src)
	snap := e.Snapshot(context.Background(), testUser(), testWindow(), TimeframeAll)

	// 失败的查询降级为零值，不影响其余字段
	if snap.User.StudyStats.TotalMinutes != 0 || snap.User.TaskStats.Total != 0 {
		t.Errorf("失败查询应降级为零值: %+v", snap.User)
	}
	if snap.Analytics.AvgMood != "3.0" {
		t.Errorf("未失败的字段应正常计算, 实际 %q", snap.Analytics.AvgMood)
	}
	// 有心情记录，得分不再强制为零
	if snap.User.StudyStats.ProductivityScore != 12 {
		t.Errorf("得分期望 12, 实际 %d", snap.User.StudyStats.ProductivityScore)
	}
}

func TestFanOut_MonthSessions(t *testing.T) {
	win := testWindow()

	b := fanOut(context.Background(), &fakeSource{monthSessions: 8}, "u1", win, TimeframeAll)
	if b.monthSessions != 8 {
		t.Errorf("本月学习次数期望 8, 实际 %d", b.monthSessions)
	}

	// 失败时和其它槽位一样降级为零值
	b = fanOut(context.Background(), &fakeSource{monthSessions: 8, failMonth: true}, "u1", win, TimeframeAll)
	if b.monthSessions != 0 {
		t.Errorf("查询失败应降级为 0, 实际 %d", b.monthSessions)
	}
}

func TestEngine_Snapshot_Idempotent(t *testing.T) {
	src := &fakeSource{
		totals: &model.SessionTotals{Count: 3, Minutes: 90},
		dates:  []string{"2025-06-10"},
	}
	e := New(src)
	win := testWindow()

	first := e.Snapshot(context.Background(), testUser(), win, TimeframeAll)
	second := e.Snapshot(context.Background(), testUser(), win, TimeframeAll)

	if first.User.StudyStats != second.User.StudyStats {
		t.Errorf("相同输入必须产生相同快照: %+v vs %+v", first.User.StudyStats, second.User.StudyStats)
	}
}
