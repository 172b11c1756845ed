package stats

import (
	"context"
	"sync"
	"time"

	"github.com/afumu/studydesk/internal/model"
	"github.com/afumu/studydesk/store/types"
	"github.com/rs/zerolog/log"
)

// Source 是统计引擎消费的只读数据源，store.Store 满足该接口。
// 所有查询以 owner 和时间窗口参数化，可以安全并发执行。
type Source interface {
	GetDailyTaskCompletions(ctx context.Context, userID string, start, end time.Time) ([]*model.DateCount, error)
	GetDailyStudyMinutes(ctx context.Context, userID string, start, end time.Time) ([]*model.DailyStudy, error)
	GetCategoryTallies(ctx context.Context, userID string, since time.Time) ([]*model.CategoryTally, error)
	CountSessionsSince(ctx context.Context, userID string, since time.Time) (int, error)
	GetSessionTotals(ctx context.Context, userID string) (*model.SessionTotals, error)
	GetTaskTally(ctx context.Context, userID string, startOfToday, endOfToday time.Time) (*model.TaskTally, error)
	GetActivityDates(ctx context.Context, userID string) ([]string, error)
	GetHourlyStudyMinutes(ctx context.Context, userID string, start, end time.Time) ([]*model.HourStat, error)
	GetHourlyTaskCompletions(ctx context.Context, userID string, start, end time.Time) ([]*model.HourStat, error)
	GetRecentCompletedTasks(ctx context.Context, userID string, limit int) ([]*model.Task, error)
	GetPendingTasks(ctx context.Context, userID string) ([]*model.Task, error)
	GetRecentMoods(ctx context.Context, userID string, q types.MoodQuery) ([]*model.MoodLog, error)
	GetGoals(ctx context.Context, userID string, q types.GoalQuery) ([]*model.Goal, error)
	GetTimetable(ctx context.Context, userID string) ([]*model.TimetableEntry, error)
}

// bundle 汇集扇出查询的原始结果。每个字段只由一个 goroutine 写入，
// wg.Wait 之后才被读取，因此不需要额外加锁。
// 查询失败的字段保持零值——失败在这里被吸收，不中断快照。
type bundle struct {
	taskDaily     []*model.DateCount
	studyDaily    []*model.DailyStudy
	catTallies    []*model.CategoryTally
	monthSessions int
	totals        *model.SessionTotals
	tally         *model.TaskTally
	activityDates []string
	pending       []*model.Task
	hourlyStudy   []*model.HourStat
	hourlyTasks   []*model.HourStat
	recentDone    []*model.Task
	moods         []*model.MoodLog
	goals         []*model.Goal
	timetable     []*model.TimetableEntry
}

// fanOut 并发执行全部统计查询。底层是同一个可能被并发写入的库，
// 各查询之间没有快照隔离——轻微偏差是文档化的弱一致性契约，
// 不在这里修复。
func fanOut(ctx context.Context, src Source, userID string, win Window, tf Timeframe) *bundle {
	b := &bundle{}
	hourStart, hourEnd := win.HourlyRange(tf)

	var wg sync.WaitGroup
	run := func(name string, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				log.Warn().Err(err).Str("query", name).Msg("统计查询失败，该项使用零值")
			}
		}()
	}

	run("daily_task_completions", func() (err error) {
		b.taskDaily, err = src.GetDailyTaskCompletions(ctx, userID, win.StartOfWeek, win.EndOfToday)
		return
	})
	run("daily_study_minutes", func() (err error) {
		b.studyDaily, err = src.GetDailyStudyMinutes(ctx, userID, win.StartOfWeek, win.EndOfToday)
		return
	})
	run("category_tallies", func() (err error) {
		b.catTallies, err = src.GetCategoryTallies(ctx, userID, win.StartOfMonth)
		return
	})
	run("month_sessions", func() (err error) {
		b.monthSessions, err = src.CountSessionsSince(ctx, userID, win.StartOfMonth)
		return
	})
	run("session_totals", func() (err error) {
		b.totals, err = src.GetSessionTotals(ctx, userID)
		return
	})
	run("task_tally", func() (err error) {
		b.tally, err = src.GetTaskTally(ctx, userID, win.StartOfToday, win.EndOfToday)
		return
	})
	run("activity_dates", func() (err error) {
		b.activityDates, err = src.GetActivityDates(ctx, userID)
		return
	})
	run("pending_tasks", func() (err error) {
		b.pending, err = src.GetPendingTasks(ctx, userID)
		return
	})
	run("hourly_study", func() (err error) {
		b.hourlyStudy, err = src.GetHourlyStudyMinutes(ctx, userID, hourStart, hourEnd)
		return
	})
	run("hourly_tasks", func() (err error) {
		b.hourlyTasks, err = src.GetHourlyTaskCompletions(ctx, userID, hourStart, hourEnd)
		return
	})
	run("recent_completed", func() (err error) {
		b.recentDone, err = src.GetRecentCompletedTasks(ctx, userID, recentTaskLimit)
		return
	})
	run("recent_moods", func() (err error) {
		b.moods, err = src.GetRecentMoods(ctx, userID, types.MoodQuery{Limit: recentMoodLimit})
		return
	})
	run("month_goals", func() (err error) {
		b.goals, err = src.GetGoals(ctx, userID, types.GoalQuery{Type: "monthly"})
		return
	})
	run("timetable", func() (err error) {
		b.timetable, err = src.GetTimetable(ctx, userID)
		return
	})

	wg.Wait()
	return b
}
