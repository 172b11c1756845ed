package repo

import (
	"context"
	"fmt"

	"github.com/afumu/studydesk/internal/model"
	"github.com/afumu/studydesk/store/types"
)

// CreateGoal 写入一条目标
func (r *Repository) CreateGoal(ctx context.Context, g *model.Goal) error {
	db, err := r.conn()
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO goals (id, user_id, title, type, completed, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		g.ID, g.UserID, g.Title, g.Type, g.Completed, g.CreatedAt)
	if err != nil {
		return fmt.Errorf("写入目标失败: %w", err)
	}
	return nil
}

// GetGoals 查询某用户的目标，按创建时间倒序
func (r *Repository) GetGoals(ctx context.Context, userID string, q types.GoalQuery) ([]*model.Goal, error) {
	db, err := r.conn()
	if err != nil {
		return nil, err
	}

	query := `SELECT id, user_id, title, type, completed, created_at FROM goals WHERE user_id = ?`
	args := []interface{}{userID}
	if q.Type != "" {
		query += " AND type = ?"
		args = append(args, q.Type)
	}
	query += " ORDER BY created_at DESC"
	if q.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, q.Limit)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	goals := []*model.Goal{}
	for rows.Next() {
		var g model.Goal
		if err := rows.Scan(&g.ID, &g.UserID, &g.Title, &g.Type, &g.Completed, &g.CreatedAt); err != nil {
			return nil, err
		}
		goals = append(goals, &g)
	}
	return goals, rows.Err()
}

// UpdateGoal 更新目标标题或完成状态
func (r *Repository) UpdateGoal(ctx context.Context, g *model.Goal) error {
	db, err := r.conn()
	if err != nil {
		return err
	}
	res, err := db.ExecContext(ctx,
		`UPDATE goals SET title = ?, completed = ? WHERE id = ? AND user_id = ?`,
		g.Title, g.Completed, g.ID, g.UserID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteGoal 删除目标
func (r *Repository) DeleteGoal(ctx context.Context, userID, id string) error {
	db, err := r.conn()
	if err != nil {
		return err
	}
	res, err := db.ExecContext(ctx, `DELETE FROM goals WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
