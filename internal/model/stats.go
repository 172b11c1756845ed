package model

// DateCount 按日期分组的计数
type DateCount struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int    `json:"count"`
}

// DailyStudy 按日期分组的学习量
type DailyStudy struct {
	Date     string `json:"date"` // YYYY-MM-DD
	Minutes  int    `json:"minutes"`
	Sessions int    `json:"sessions"`
}

// HourStat 按小时分组的学习量与任务完成数
type HourStat struct {
	Hour    int `json:"hour"` // 0-23
	Minutes int `json:"minutes"`
	Tasks   int `json:"tasks"`
}

// CategoryTally 按原始任务类型分组的总数与完成数
type CategoryTally struct {
	Type      string `json:"type"`
	Total     int    `json:"total"`
	Completed int    `json:"completed"`
}

// TaskTally 任务状态汇总（单行）
type TaskTally struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
	Overdue   int `json:"overdue"`
	DueToday  int `json:"dueToday"`
}

// SessionTotals 学习记录全量汇总
type SessionTotals struct {
	Count   int `json:"count"`
	Minutes int `json:"minutes"`
}

// Snapshot 派生的统计快照。每次请求重新计算，从不落库。
type Snapshot struct {
	User      UserSummary `json:"user"`
	Analytics Analytics   `json:"analytics"`
}

// UserSummary 快照中的用户部分
type UserSummary struct {
	Name       string     `json:"name"`
	XP         int        `json:"xp"`
	Level      int        `json:"level"`
	StudyStats StudyStats `json:"studyStats"`
	TaskStats  TaskStats  `json:"taskStats"`
	Badges     []string   `json:"badges"`
}

// StudyStats 学习概览
type StudyStats struct {
	TotalHours        string `json:"totalHours"` // 1 位小数
	TotalMinutes      int    `json:"totalMinutes"`
	Streak            int    `json:"streak"`
	ProductivityScore int    `json:"productivityScore"` // 0-100
}

// TaskStats 任务概览
type TaskStats struct {
	Total          int     `json:"total"`
	Completed      int     `json:"completed"`
	Pending        int     `json:"pending"`
	Overdue        int     `json:"overdue"`
	DueToday       int     `json:"dueToday"`
	UpcomingTasks  []*Task `json:"upcomingTasks"`
	CompletedTasks []*Task `json:"completedTasks"`
}

// Analytics 图表数据
type Analytics struct {
	TotalSessions       int               `json:"totalSessions"`
	TotalMinutes        int               `json:"totalMinutes"`
	MaxWeeklyHours      float64           `json:"maxWeeklyHours"`
	AvgMood             string            `json:"avgMood"` // 1 位小数
	RecentMoods         []*MoodLog        `json:"recentMoods"`
	Timetable           []*TimetableEntry `json:"timetable"`
	WeeklyProgress      []WeeklyPoint     `json:"weeklyProgress"`      // 固定 7 条
	CategoricalProgress []CategoryPoint   `json:"categoricalProgress"` // 固定 4 条
	HourlyStats         []HourlyPoint     `json:"hourlyStats"`         // 固定 24 条
	MonthGoals          []*Goal           `json:"monthGoals"`
}

// WeeklyPoint 周视图中的一天，最旧的在前
type WeeklyPoint struct {
	Date     string  `json:"date"` // YYYY-MM-DD
	Day      string  `json:"day"`  // Mon..Sun
	Tasks    int     `json:"tasks"`
	Hours    float64 `json:"hours"` // 1 位小数
	Minutes  int     `json:"minutes"`
	Sessions int     `json:"sessions"`
}

// CategoryPoint 分类进度。Class/Exams/Tasks 的 Count 是整数百分比，
// Focus 的 Count 是累计学习小时数（1 位小数）——调用方按 Label 区分。
type CategoryPoint struct {
	Label string  `json:"label"`
	Count float64 `json:"count"`
}

// HourlyPoint 小时视图中的一格。Value/Minutes 为学习分钟数，
// Secondary 为该小时完成的任务数。
type HourlyPoint struct {
	Time      string `json:"time"` // 12 小时制，如 "2 PM"
	Value     int    `json:"value"`
	Secondary int    `json:"secondary"`
	Minutes   int    `json:"minutes"`
}
