package types

import "time"

// TaskQuery 封装了查询任务的参数
type TaskQuery struct {
	Completed *bool // nil 表示不限
	DueBefore time.Time
	DueAfter  time.Time
	Limit     int
	Offset    int
}

// SessionQuery 封装了查询学习记录的参数
type SessionQuery struct {
	StartTime time.Time
	EndTime   time.Time
	Limit     int
	Offset    int
}

// MoodQuery 封装了查询心情记录的参数
type MoodQuery struct {
	Limit  int
	Offset int
}

// GoalQuery 封装了查询目标的参数
type GoalQuery struct {
	Type  string // 如 "monthly"，空表示不限
	Limit int
}

// MessageQuery 封装了查询聊天消息的参数
type MessageQuery struct {
	Limit  int
	Offset int
}
