package repo

import (
	"context"
	"time"

	"github.com/afumu/studydesk/internal/model"
)

// 统计查询统一使用 UTC 日历（'unixepoch' 不加 'localtime'）。
// “今天”的边界由上层的时间窗口解析器决定并以参数传入，
// 这里不做任何边界推算，避免同一响应里两个字段对“今天”意见不一。

// GetDailyTaskCompletions 按完成日期统计任务完成数（updated_at 记录完成时刻）
func (r *Repository) GetDailyTaskCompletions(ctx context.Context, userID string, start, end time.Time) ([]*model.DateCount, error) {
	db, err := r.conn()
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx,
		`SELECT strftime('%Y-%m-%d', updated_at, 'unixepoch') as date, COUNT(*) as count
		 FROM tasks
		 WHERE user_id = ? AND completed = 1 AND updated_at >= ? AND updated_at < ?
		 GROUP BY date`,
		userID, start.Unix(), end.Unix())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []*model.DateCount
	for rows.Next() {
		var s model.DateCount
		if err := rows.Scan(&s.Date, &s.Count); err != nil {
			return nil, err
		}
		stats = append(stats, &s)
	}
	return stats, rows.Err()
}

// GetDailyStudyMinutes 按日期统计学习分钟数和次数
func (r *Repository) GetDailyStudyMinutes(ctx context.Context, userID string, start, end time.Time) ([]*model.DailyStudy, error) {
	db, err := r.conn()
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx,
		`SELECT strftime('%Y-%m-%d', created_at, 'unixepoch') as date,
		        COALESCE(SUM(duration_min), 0), COUNT(*)
		 FROM study_sessions
		 WHERE user_id = ? AND created_at >= ? AND created_at < ?
		 GROUP BY date`,
		userID, start.Unix(), end.Unix())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []*model.DailyStudy
	for rows.Next() {
		var s model.DailyStudy
		if err := rows.Scan(&s.Date, &s.Minutes, &s.Sessions); err != nil {
			return nil, err
		}
		stats = append(stats, &s)
	}
	return stats, rows.Err()
}

// GetCategoryTallies 按原始类型标签统计当月任务总数与完成数。
// 标签大小写不统一，归一化在统计层做。
func (r *Repository) GetCategoryTallies(ctx context.Context, userID string, since time.Time) ([]*model.CategoryTally, error) {
	db, err := r.conn()
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx,
		`SELECT type, COUNT(*), SUM(CASE WHEN completed = 1 THEN 1 ELSE 0 END)
		 FROM tasks
		 WHERE user_id = ? AND created_at >= ?
		 GROUP BY type`,
		userID, since.Unix())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []*model.CategoryTally
	for rows.Next() {
		var s model.CategoryTally
		if err := rows.Scan(&s.Type, &s.Total, &s.Completed); err != nil {
			return nil, err
		}
		stats = append(stats, &s)
	}
	return stats, rows.Err()
}

// CountSessionsSince 统计某时间点之后的学习次数
func (r *Repository) CountSessionsSince(ctx context.Context, userID string, since time.Time) (int, error) {
	db, err := r.conn()
	if err != nil {
		return 0, err
	}
	var count int
	err = db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM study_sessions WHERE user_id = ? AND created_at >= ?`,
		userID, since.Unix()).Scan(&count)
	return count, err
}

// GetSessionTotals 统计全量学习次数和总分钟数
func (r *Repository) GetSessionTotals(ctx context.Context, userID string) (*model.SessionTotals, error) {
	db, err := r.conn()
	if err != nil {
		return nil, err
	}
	var t model.SessionTotals
	err = db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(duration_min), 0) FROM study_sessions WHERE user_id = ?`,
		userID).Scan(&t.Count, &t.Minutes)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetTaskTally 单行统计任务状态。
// pending/overdue/dueToday 全部以传入的同一对“今天”边界判定。
func (r *Repository) GetTaskTally(ctx context.Context, userID string, startOfToday, endOfToday time.Time) (*model.TaskTally, error) {
	db, err := r.conn()
	if err != nil {
		return nil, err
	}
	var t model.TaskTally
	err = db.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        SUM(CASE WHEN completed = 1 THEN 1 ELSE 0 END),
		        SUM(CASE WHEN completed = 0 AND due_date >= ? THEN 1 ELSE 0 END),
		        SUM(CASE WHEN completed = 0 AND due_date < ? THEN 1 ELSE 0 END),
		        SUM(CASE WHEN completed = 0 AND due_date >= ? AND due_date < ? THEN 1 ELSE 0 END)
		 FROM tasks WHERE user_id = ?`,
		startOfToday.Unix(), startOfToday.Unix(), startOfToday.Unix(), endOfToday.Unix(), userID).
		Scan(&t.Total, &t.Completed, &t.Pending, &t.Overdue, &t.DueToday)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetActivityDates 返回有活动的日期集合（完成过任务或学习过），去重后倒序
func (r *Repository) GetActivityDates(ctx context.Context, userID string) ([]string, error) {
	db, err := r.conn()
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx,
		`SELECT strftime('%Y-%m-%d', updated_at, 'unixepoch') as d
		   FROM tasks WHERE user_id = ? AND completed = 1
		 UNION
		 SELECT strftime('%Y-%m-%d', created_at, 'unixepoch') as d
		   FROM study_sessions WHERE user_id = ?
		 ORDER BY d DESC`,
		userID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

// GetHourlyStudyMinutes 按小时统计学习分钟数，时间窗口由调用方给定
func (r *Repository) GetHourlyStudyMinutes(ctx context.Context, userID string, start, end time.Time) ([]*model.HourStat, error) {
	db, err := r.conn()
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx,
		`SELECT CAST(strftime('%H', created_at, 'unixepoch') AS INTEGER) as hour,
		        COALESCE(SUM(duration_min), 0)
		 FROM study_sessions
		 WHERE user_id = ? AND created_at >= ? AND created_at < ?
		 GROUP BY hour`,
		userID, start.Unix(), end.Unix())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []*model.HourStat
	for rows.Next() {
		var s model.HourStat
		if err := rows.Scan(&s.Hour, &s.Minutes); err != nil {
			return nil, err
		}
		stats = append(stats, &s)
	}
	return stats, rows.Err()
}

// GetHourlyTaskCompletions 按小时统计任务完成数，时间窗口与学习统计共用
func (r *Repository) GetHourlyTaskCompletions(ctx context.Context, userID string, start, end time.Time) ([]*model.HourStat, error) {
	db, err := r.conn()
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx,
		`SELECT CAST(strftime('%H', updated_at, 'unixepoch') AS INTEGER) as hour, COUNT(*)
		 FROM tasks
		 WHERE user_id = ? AND completed = 1 AND updated_at >= ? AND updated_at < ?
		 GROUP BY hour`,
		userID, start.Unix(), end.Unix())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []*model.HourStat
	for rows.Next() {
		var s model.HourStat
		if err := rows.Scan(&s.Hour, &s.Tasks); err != nil {
			return nil, err
		}
		stats = append(stats, &s)
	}
	return stats, rows.Err()
}

// GetRecentCompletedTasks 查询最近完成的任务，按完成时刻倒序
func (r *Repository) GetRecentCompletedTasks(ctx context.Context, userID string, limit int) ([]*model.Task, error) {
	db, err := r.conn()
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.QueryContext(ctx,
		`SELECT id, user_id, title, type, due_date, completed, created_at, updated_at
		 FROM tasks WHERE user_id = ? AND completed = 1
		 ORDER BY updated_at DESC LIMIT ?`,
		userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTasks(rows)
}

// GetPendingTasks 查询全部未完成任务，按截止时间正序
func (r *Repository) GetPendingTasks(ctx context.Context, userID string) ([]*model.Task, error) {
	db, err := r.conn()
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx,
		`SELECT id, user_id, title, type, due_date, completed, created_at, updated_at
		 FROM tasks WHERE user_id = ? AND completed = 0
		 ORDER BY due_date ASC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTasks(rows)
}
