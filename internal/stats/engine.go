// Package stats 实现学习统计聚合引擎：把互相独立记账的任务、
// 学习、心情、目标和课表数据合并为一份内部一致的产能快照。
// 快照是 (owner, 参考时刻, 可选边界覆盖) 的纯函数，每次请求
// 重新计算，从不落库。
package stats

import (
	"context"
	"fmt"

	"github.com/afumu/studydesk/internal/model"
)

const (
	recentTaskLimit = 20
	recentMoodLimit = 7
)

// Engine 持有数据源并负责快照装配
type Engine struct {
	src Source
}

// New 创建统计引擎
func New(src Source) *Engine {
	return &Engine{src: src}
}

// Snapshot 为给定用户计算一份完整的统计快照。
// 用户档案由调用方提前解析（档案缺失属于客户端错误，在这里之前
// 就已短路）；单个统计查询失败只影响对应字段，降级为零值。
func (e *Engine) Snapshot(ctx context.Context, user *model.User, win Window, tf Timeframe) *model.Snapshot {
	b := fanOut(ctx, e.src, user.ID, win, tf)

	// 查询失败的槽位在这里统一落到约定的零值形态：
	// 数字为 0，数组为 []，绝不输出 null。
	if b.totals == nil {
		b.totals = &model.SessionTotals{}
	}
	if b.tally == nil {
		b.tally = &model.TaskTally{}
	}

	weekly := WeeklyProgress(win, b.taskDaily, b.studyDaily)
	hourly := HourlyStats(b.hourlyStudy, b.hourlyTasks)
	categorical := CategoricalProgress(b.catTallies, b.totals.Minutes)
	streak := CurrentStreak(b.activityDates, win.Today())

	var weeklyHours, maxWeeklyHours float64
	for _, p := range weekly {
		weeklyHours += p.Hours
		if p.Hours > maxWeeklyHours {
			maxWeeklyHours = p.Hours
		}
	}

	var completionRate float64
	if b.tally.Total > 0 {
		completionRate = float64(b.tally.Completed) / float64(b.tally.Total)
	}
	avgMood := averageMood(b.moods)

	score := ProductivityScore(ScoreInputs{
		CompletionRate: completionRate,
		WeeklyHours:    weeklyHours,
		AvgMood:        avgMood,
		HasTasks:       b.tally.Total > 0,
		HasStudy:       b.totals.Count > 0,
		HasMoods:       len(b.moods) > 0,
	})

	return &model.Snapshot{
		User: model.UserSummary{
			Name:  user.Name,
			XP:    user.XP,
			Level: user.Level,
			StudyStats: model.StudyStats{
				TotalHours:        fmt.Sprintf("%.1f", float64(b.totals.Minutes)/60),
				TotalMinutes:      b.totals.Minutes,
				Streak:            streak,
				ProductivityScore: score,
			},
			TaskStats: model.TaskStats{
				Total:          b.tally.Total,
				Completed:      b.tally.Completed,
				Pending:        b.tally.Pending,
				Overdue:        b.tally.Overdue,
				DueToday:       b.tally.DueToday,
				UpcomingTasks:  nonNilTasks(b.pending),
				CompletedTasks: nonNilTasks(b.recentDone),
			},
			Badges: nonNilStrings(user.Badges),
		},
		Analytics: model.Analytics{
			TotalSessions:       b.totals.Count,
			TotalMinutes:        b.totals.Minutes,
			MaxWeeklyHours:      maxWeeklyHours,
			AvgMood:             fmt.Sprintf("%.1f", avgMood),
			RecentMoods:         nonNilMoods(b.moods),
			Timetable:           nonNilTimetable(b.timetable),
			WeeklyProgress:      weekly,
			CategoricalProgress: categorical,
			HourlyStats:         hourly,
			MonthGoals:          nonNilGoals(b.goals),
		},
	}
}

// averageMood 取最近若干条心情记录的平均值，无记录时为 0
func averageMood(moods []*model.MoodLog) float64 {
	if len(moods) == 0 {
		return 0
	}
	sum := 0
	for _, m := range moods {
		sum += m.Mood
	}
	return float64(sum) / float64(len(moods))
}

func nonNilTasks(v []*model.Task) []*model.Task {
	if v == nil {
		return []*model.Task{}
	}
	return v
}

func nonNilMoods(v []*model.MoodLog) []*model.MoodLog {
	if v == nil {
		return []*model.MoodLog{}
	}
	return v
}

func nonNilGoals(v []*model.Goal) []*model.Goal {
	if v == nil {
		return []*model.Goal{}
	}
	return v
}

func nonNilTimetable(v []*model.TimetableEntry) []*model.TimetableEntry {
	if v == nil {
		return []*model.TimetableEntry{}
	}
	return v
}

func nonNilStrings(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
