package stats

import (
	"fmt"

	"github.com/afumu/studydesk/internal/model"
)

// WeeklyProgress 把稀疏的按日分组结果整形为固定 7 条记录，
// 最旧的在前，最后一条是规范日历下的今天。缺失日期补零，
// 下游图表依赖固定长度的数组。
func WeeklyProgress(win Window, taskDaily []*model.DateCount, studyDaily []*model.DailyStudy) []model.WeeklyPoint {
	tasksByDate := make(map[string]int, len(taskDaily))
	for _, d := range taskDaily {
		tasksByDate[d.Date] = d.Count
	}
	studyByDate := make(map[string]*model.DailyStudy, len(studyDaily))
	for _, d := range studyDaily {
		studyByDate[d.Date] = d
	}

	today := win.Today()
	points := make([]model.WeeklyPoint, 0, 7)
	for i := 6; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		date := day.Format(dateLayout)

		p := model.WeeklyPoint{
			Date: date,
			Day:  day.Weekday().String()[:3],
		}
		p.Tasks = tasksByDate[date]
		if s, ok := studyByDate[date]; ok {
			p.Minutes = s.Minutes
			p.Sessions = s.Sessions
			p.Hours = round1(float64(s.Minutes) / 60)
		}
		points = append(points, p)
	}
	return points
}

// HourlyStats 把按小时分组的学习量与任务完成数整形为固定 24 条记录
func HourlyStats(study, tasks []*model.HourStat) []model.HourlyPoint {
	minutesByHour := make(map[int]int, len(study))
	for _, s := range study {
		minutesByHour[s.Hour] += s.Minutes
	}
	tasksByHour := make(map[int]int, len(tasks))
	for _, t := range tasks {
		tasksByHour[t.Hour] += t.Tasks
	}

	points := make([]model.HourlyPoint, 0, 24)
	for h := 0; h < 24; h++ {
		points = append(points, model.HourlyPoint{
			Time:      hourLabel(h),
			Value:     minutesByHour[h],
			Secondary: tasksByHour[h],
			Minutes:   minutesByHour[h],
		})
	}
	return points
}

// hourLabel 返回 12 小时制标签：0 -> "12 AM"，12 -> "12 PM"，23 -> "11 PM"
func hourLabel(h int) string {
	suffix := "AM"
	if h >= 12 {
		suffix = "PM"
	}
	display := h % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d %s", display, suffix)
}
