package repo

import (
	"context"
	"fmt"

	"github.com/afumu/studydesk/internal/model"
	"github.com/afumu/studydesk/store/types"
)

// CreateMood 写入一条心情记录，Mood 已在入口校验为 1-5
func (r *Repository) CreateMood(ctx context.Context, m *model.MoodLog) error {
	db, err := r.conn()
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO mood_logs (id, user_id, mood, note, created_at) VALUES (?, ?, ?, ?, ?)`,
		m.ID, m.UserID, m.Mood, m.Note, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("写入心情记录失败: %w", err)
	}
	return nil
}

// GetRecentMoods 查询最近 N 条心情记录，按时间倒序
func (r *Repository) GetRecentMoods(ctx context.Context, userID string, q types.MoodQuery) ([]*model.MoodLog, error) {
	db, err := r.conn()
	if err != nil {
		return nil, err
	}
	limit := q.Limit
	if limit <= 0 {
		limit = 7
	}
	rows, err := db.QueryContext(ctx,
		`SELECT id, user_id, mood, note, created_at FROM mood_logs
		 WHERE user_id = ? ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		userID, limit, q.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	moods := []*model.MoodLog{}
	for rows.Next() {
		var m model.MoodLog
		if err := rows.Scan(&m.ID, &m.UserID, &m.Mood, &m.Note, &m.CreatedAt); err != nil {
			return nil, err
		}
		moods = append(moods, &m)
	}
	return moods, rows.Err()
}
