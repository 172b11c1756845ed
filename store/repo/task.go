package repo

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/afumu/studydesk/internal/model"
	"github.com/afumu/studydesk/store/types"
)

// CreateTask 写入一条任务
func (r *Repository) CreateTask(ctx context.Context, t *model.Task) error {
	db, err := r.conn()
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO tasks (id, user_id, title, type, due_date, completed, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.UserID, t.Title, t.Type, t.DueDate, t.Completed, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("写入任务失败: %w", err)
	}
	return nil
}

// GetTasks 查询某用户的任务列表
func (r *Repository) GetTasks(ctx context.Context, userID string, q types.TaskQuery) ([]*model.Task, error) {
	db, err := r.conn()
	if err != nil {
		return nil, err
	}

	query := `SELECT id, user_id, title, type, due_date, completed, created_at, updated_at
		 FROM tasks WHERE user_id = ?`
	args := []interface{}{userID}
	if q.Completed != nil {
		query += " AND completed = ?"
		args = append(args, *q.Completed)
	}
	if !q.DueAfter.IsZero() {
		query += " AND due_date >= ?"
		args = append(args, q.DueAfter.Unix())
	}
	if !q.DueBefore.IsZero() {
		query += " AND due_date < ?"
		args = append(args, q.DueBefore.Unix())
	}
	query += " ORDER BY due_date ASC"
	if q.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, q.Limit, q.Offset)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTasks(rows)
}

// GetTaskByID 按 ID 查询任务（校验归属）
func (r *Repository) GetTaskByID(ctx context.Context, userID, id string) (*model.Task, error) {
	db, err := r.conn()
	if err != nil {
		return nil, err
	}
	row := db.QueryRowContext(ctx,
		`SELECT id, user_id, title, type, due_date, completed, created_at, updated_at
		 FROM tasks WHERE id = ? AND user_id = ?`, id, userID)
	var t model.Task
	err = row.Scan(&t.ID, &t.UserID, &t.Title, &t.Type, &t.DueDate, &t.Completed, &t.CreatedAt, &t.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// UpdateTask 更新任务内容并刷新 updated_at
func (r *Repository) UpdateTask(ctx context.Context, t *model.Task) error {
	db, err := r.conn()
	if err != nil {
		return err
	}
	res, err := db.ExecContext(ctx,
		`UPDATE tasks SET title = ?, type = ?, due_date = ?, completed = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		t.Title, t.Type, t.DueDate, t.Completed, t.UpdatedAt, t.ID, t.UserID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// CompleteTask 标记任务完成。updated_at 记录完成时刻，
// 统计层用它把完成事件归入具体日期。
func (r *Repository) CompleteTask(ctx context.Context, userID, id string) error {
	db, err := r.conn()
	if err != nil {
		return err
	}
	res, err := db.ExecContext(ctx,
		`UPDATE tasks SET completed = 1, updated_at = ? WHERE id = ? AND user_id = ?`,
		now(), id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteTask 删除任务
func (r *Repository) DeleteTask(ctx context.Context, userID, id string) error {
	db, err := r.conn()
	if err != nil {
		return err
	}
	res, err := db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanTasks(rows *sql.Rows) ([]*model.Task, error) {
	tasks := []*model.Task{}
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Type, &t.DueDate, &t.Completed, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, &t)
	}
	return tasks, rows.Err()
}
