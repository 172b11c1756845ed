package export

import (
	"context"
	"time"

	"github.com/afumu/studydesk/internal/model"
	"github.com/afumu/studydesk/internal/stats"
	"github.com/afumu/studydesk/store"
	"github.com/afumu/studydesk/store/types"
)

// reportDays 是学习报告覆盖的天数（4 个完整周）
const reportDays = 28

// Service 负责把一个用户的学习数据装配成可下载的报告。
type Service struct {
	Store store.Store
}

// reportData 是各导出格式共享的报告数据。
type reportData struct {
	User        *model.User
	Tasks       []*model.Task
	Sessions    []*model.StudySession
	Totals      *model.SessionTotals
	DailyByDate map[string]*model.DailyStudy
	Days        []string // 报告区间内的日期，升序
	LongestRun  int      // 区间内最长连续学习天数
	GeneratedAt time.Time
}

// buildReport 汇集报告所需的全部数据。与统计快照不同，
// 导出是低频操作，这里顺序查询即可。
func (s *Service) buildReport(ctx context.Context, user *model.User) (*reportData, error) {
	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, -(reportDays - 1))

	tasks, err := s.Store.GetTasks(ctx, user.ID, types.TaskQuery{Limit: 10000})
	if err != nil {
		return nil, err
	}
	sessions, err := s.Store.GetSessions(ctx, user.ID, types.SessionQuery{Limit: 10000})
	if err != nil {
		return nil, err
	}
	totals, err := s.Store.GetSessionTotals(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	daily, err := s.Store.GetDailyStudyMinutes(ctx, user.ID, start, now)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]*model.DailyStudy, len(daily))
	for _, d := range daily {
		byDate[d.Date] = d
	}

	days := make([]string, 0, reportDays)
	minutes := make([]int, 0, reportDays)
	for i := 0; i < reportDays; i++ {
		date := start.AddDate(0, 0, i).Format("2006-01-02")
		days = append(days, date)
		m := 0
		if d, ok := byDate[date]; ok {
			m = d.Minutes
		}
		minutes = append(minutes, m)
	}

	return &reportData{
		User:        user,
		Tasks:       tasks,
		Sessions:    sessions,
		Totals:      totals,
		DailyByDate: byDate,
		Days:        days,
		LongestRun:  stats.LongestRun(minutes),
		GeneratedAt: now,
	}, nil
}

func boolLabel(v bool) string {
	if v {
		return "是"
	}
	return "否"
}
