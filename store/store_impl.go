package store

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/afumu/studydesk/internal/model"
	"github.com/afumu/studydesk/store/core"
	"github.com/afumu/studydesk/store/repo"
	"github.com/afumu/studydesk/store/types"
	"github.com/fsnotify/fsnotify"
)

// DBFileName 是数据目录下的数据库文件名
const DBFileName = "studydesk.db"

// DefaultStore 是 Store 接口的默认实现
type DefaultStore struct {
	pool    *core.ConnectionPool
	watcher *core.Watcher
	repo    *repo.Repository
	dbPath  string
}

// NewStore 初始化一个新的存储实例
func NewStore(baseDir string) (*DefaultStore, error) {
	dbPath := filepath.Join(baseDir, DBFileName)

	// 1. 初始化核心组件
	pool := core.NewConnectionPool(baseDir)
	watcher, err := core.NewWatcher(baseDir)
	if err != nil {
		pool.CloseAll()
		return nil, err
	}

	// 2. 打开数据库并执行迁移
	db, err := pool.GetConnection(dbPath)
	if err != nil {
		watcher.Stop()
		return nil, err
	}
	if err := core.Migrate(db); err != nil {
		pool.CloseAll()
		watcher.Stop()
		return nil, fmt.Errorf("初始化数据库结构失败: %w", err)
	}

	// 3. 初始化仓储
	r := repo.New(pool, dbPath)

	// 4. 启动文件监听：数据库文件被外部替换时刷新连接
	watcher.Start()

	s := &DefaultStore{
		pool:    pool,
		watcher: watcher,
		repo:    r,
		dbPath:  dbPath,
	}

	watcher.AddCallback(func(event fsnotify.Event) {
		if event.Op&fsnotify.Create == fsnotify.Create && event.Name == dbPath {
			_ = s.Reload()
		}
	})

	return s, nil
}

func (s *DefaultStore) Close() error {
	s.watcher.Stop()
	return s.pool.CloseAll()
}

// Reload 重新加载存储：关闭所有连接，下次查询时重建
func (s *DefaultStore) Reload() error {
	if err := s.pool.CloseAll(); err != nil {
		return fmt.Errorf("reload: close all connections failed: %w", err)
	}
	db, err := s.pool.GetConnection(s.dbPath)
	if err != nil {
		return fmt.Errorf("reload: reopen failed: %w", err)
	}
	return core.Migrate(db)
}

func (s *DefaultStore) Watch(callback func(event fsnotify.Event) error) error {
	s.watcher.AddCallback(func(event fsnotify.Event) {
		_ = callback(event)
	})
	return nil
}

// --- 下面是 Store 接口的代理实现 ---

func (s *DefaultStore) CreateUser(ctx context.Context, u *model.User) error {
	return s.repo.CreateUser(ctx, u)
}

func (s *DefaultStore) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	return s.repo.GetUserByID(ctx, id)
}

func (s *DefaultStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.repo.GetUserByEmail(ctx, email)
}

func (s *DefaultStore) ListUsers(ctx context.Context) ([]*model.User, error) {
	return s.repo.ListUsers(ctx)
}

func (s *DefaultStore) AddUserXP(ctx context.Context, id string, delta int) error {
	return s.repo.AddUserXP(ctx, id, delta)
}

func (s *DefaultStore) CreateTask(ctx context.Context, t *model.Task) error {
	return s.repo.CreateTask(ctx, t)
}

func (s *DefaultStore) GetTasks(ctx context.Context, userID string, q types.TaskQuery) ([]*model.Task, error) {
	return s.repo.GetTasks(ctx, userID, q)
}

func (s *DefaultStore) GetTaskByID(ctx context.Context, userID, id string) (*model.Task, error) {
	return s.repo.GetTaskByID(ctx, userID, id)
}

func (s *DefaultStore) UpdateTask(ctx context.Context, t *model.Task) error {
	return s.repo.UpdateTask(ctx, t)
}

func (s *DefaultStore) CompleteTask(ctx context.Context, userID, id string) error {
	return s.repo.CompleteTask(ctx, userID, id)
}

func (s *DefaultStore) DeleteTask(ctx context.Context, userID, id string) error {
	return s.repo.DeleteTask(ctx, userID, id)
}

func (s *DefaultStore) CreateSession(ctx context.Context, sess *model.StudySession) error {
	return s.repo.CreateSession(ctx, sess)
}

func (s *DefaultStore) GetSessions(ctx context.Context, userID string, q types.SessionQuery) ([]*model.StudySession, error) {
	return s.repo.GetSessions(ctx, userID, q)
}

func (s *DefaultStore) DeleteSession(ctx context.Context, userID, id string) error {
	return s.repo.DeleteSession(ctx, userID, id)
}

func (s *DefaultStore) CreateMood(ctx context.Context, m *model.MoodLog) error {
	return s.repo.CreateMood(ctx, m)
}

func (s *DefaultStore) GetRecentMoods(ctx context.Context, userID string, q types.MoodQuery) ([]*model.MoodLog, error) {
	return s.repo.GetRecentMoods(ctx, userID, q)
}

func (s *DefaultStore) CreateGoal(ctx context.Context, g *model.Goal) error {
	return s.repo.CreateGoal(ctx, g)
}

func (s *DefaultStore) GetGoals(ctx context.Context, userID string, q types.GoalQuery) ([]*model.Goal, error) {
	return s.repo.GetGoals(ctx, userID, q)
}

func (s *DefaultStore) UpdateGoal(ctx context.Context, g *model.Goal) error {
	return s.repo.UpdateGoal(ctx, g)
}

func (s *DefaultStore) DeleteGoal(ctx context.Context, userID, id string) error {
	return s.repo.DeleteGoal(ctx, userID, id)
}

func (s *DefaultStore) CreateTimetableEntry(ctx context.Context, e *model.TimetableEntry) error {
	return s.repo.CreateTimetableEntry(ctx, e)
}

func (s *DefaultStore) GetTimetable(ctx context.Context, userID string) ([]*model.TimetableEntry, error) {
	return s.repo.GetTimetable(ctx, userID)
}

func (s *DefaultStore) DeleteTimetableEntry(ctx context.Context, userID, id string) error {
	return s.repo.DeleteTimetableEntry(ctx, userID, id)
}

func (s *DefaultStore) CreateMessage(ctx context.Context, m *model.Message) error {
	return s.repo.CreateMessage(ctx, m)
}

func (s *DefaultStore) GetMessages(ctx context.Context, userID string, q types.MessageQuery) ([]*model.Message, error) {
	return s.repo.GetMessages(ctx, userID, q)
}

func (s *DefaultStore) GetDailyTaskCompletions(ctx context.Context, userID string, start, end time.Time) ([]*model.DateCount, error) {
	return s.repo.GetDailyTaskCompletions(ctx, userID, start, end)
}

func (s *DefaultStore) GetDailyStudyMinutes(ctx context.Context, userID string, start, end time.Time) ([]*model.DailyStudy, error) {
	return s.repo.GetDailyStudyMinutes(ctx, userID, start, end)
}

func (s *DefaultStore) GetCategoryTallies(ctx context.Context, userID string, since time.Time) ([]*model.CategoryTally, error) {
	return s.repo.GetCategoryTallies(ctx, userID, since)
}

func (s *DefaultStore) CountSessionsSince(ctx context.Context, userID string, since time.Time) (int, error) {
	return s.repo.CountSessionsSince(ctx, userID, since)
}

func (s *DefaultStore) GetSessionTotals(ctx context.Context, userID string) (*model.SessionTotals, error) {
	return s.repo.GetSessionTotals(ctx, userID)
}

func (s *DefaultStore) GetTaskTally(ctx context.Context, userID string, startOfToday, endOfToday time.Time) (*model.TaskTally, error) {
	return s.repo.GetTaskTally(ctx, userID, startOfToday, endOfToday)
}

func (s *DefaultStore) GetActivityDates(ctx context.Context, userID string) ([]string, error) {
	return s.repo.GetActivityDates(ctx, userID)
}

func (s *DefaultStore) GetHourlyStudyMinutes(ctx context.Context, userID string, start, end time.Time) ([]*model.HourStat, error) {
	return s.repo.GetHourlyStudyMinutes(ctx, userID, start, end)
}

func (s *DefaultStore) GetHourlyTaskCompletions(ctx context.Context, userID string, start, end time.Time) ([]*model.HourStat, error) {
	return s.repo.GetHourlyTaskCompletions(ctx, userID, start, end)
}

func (s *DefaultStore) GetRecentCompletedTasks(ctx context.Context, userID string, limit int) ([]*model.Task, error) {
	return s.repo.GetRecentCompletedTasks(ctx, userID, limit)
}

func (s *DefaultStore) GetPendingTasks(ctx context.Context, userID string) ([]*model.Task, error) {
	return s.repo.GetPendingTasks(ctx, userID)
}
