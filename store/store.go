package store

import (
	"context"
	"time"

	"github.com/afumu/studydesk/internal/model"
	"github.com/afumu/studydesk/store/types"
	"github.com/fsnotify/fsnotify"
)

// Store 定义了数据访问的统一接口。
// 统计引擎只消费其中的只读查询，写路径归 CRUD 处理器。
type Store interface {
	// 用户操作
	CreateUser(ctx context.Context, u *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	ListUsers(ctx context.Context) ([]*model.User, error)
	AddUserXP(ctx context.Context, id string, delta int) error

	// 任务操作
	CreateTask(ctx context.Context, t *model.Task) error
	GetTasks(ctx context.Context, userID string, q types.TaskQuery) ([]*model.Task, error)
	GetTaskByID(ctx context.Context, userID, id string) (*model.Task, error)
	UpdateTask(ctx context.Context, t *model.Task) error
	CompleteTask(ctx context.Context, userID, id string) error
	DeleteTask(ctx context.Context, userID, id string) error

	// 学习记录操作
	CreateSession(ctx context.Context, s *model.StudySession) error
	GetSessions(ctx context.Context, userID string, q types.SessionQuery) ([]*model.StudySession, error)
	DeleteSession(ctx context.Context, userID, id string) error

	// 心情操作
	CreateMood(ctx context.Context, m *model.MoodLog) error
	GetRecentMoods(ctx context.Context, userID string, q types.MoodQuery) ([]*model.MoodLog, error)

	// 目标操作
	CreateGoal(ctx context.Context, g *model.Goal) error
	GetGoals(ctx context.Context, userID string, q types.GoalQuery) ([]*model.Goal, error)
	UpdateGoal(ctx context.Context, g *model.Goal) error
	DeleteGoal(ctx context.Context, userID, id string) error

	// 课表操作
	CreateTimetableEntry(ctx context.Context, e *model.TimetableEntry) error
	GetTimetable(ctx context.Context, userID string) ([]*model.TimetableEntry, error)
	DeleteTimetableEntry(ctx context.Context, userID, id string) error

	// 消息操作
	CreateMessage(ctx context.Context, m *model.Message) error
	GetMessages(ctx context.Context, userID string, q types.MessageQuery) ([]*model.Message, error)

	// 统计操作（全部只读，按 owner + 时间窗口参数化）
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

	// Watch 注册文件系统事件的回调函数
	Watch(callback func(event fsnotify.Event) error) error

	// Reload 重新加载存储（刷新连接等）
	Reload() error

	// 生命周期管理
	Close() error
}
