package repo

import (
	"context"
	"fmt"

	"github.com/afumu/studydesk/internal/model"
	"github.com/afumu/studydesk/store/types"
)

// CreateSession 写入一条学习记录
func (r *Repository) CreateSession(ctx context.Context, s *model.StudySession) error {
	db, err := r.conn()
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO study_sessions (id, user_id, subject, duration_min, completed, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		s.ID, s.UserID, s.Subject, s.DurationMin, s.Completed, s.CreatedAt)
	if err != nil {
		return fmt.Errorf("写入学习记录失败: %w", err)
	}
	return nil
}

// GetSessions 查询某用户的学习记录，按时间倒序
func (r *Repository) GetSessions(ctx context.Context, userID string, q types.SessionQuery) ([]*model.StudySession, error) {
	db, err := r.conn()
	if err != nil {
		return nil, err
	}

	query := `SELECT id, user_id, subject, duration_min, completed, created_at
		 FROM study_sessions WHERE user_id = ?`
	args := []interface{}{userID}
	if !q.StartTime.IsZero() {
		query += " AND created_at >= ?"
		args = append(args, q.StartTime.Unix())
	}
	if !q.EndTime.IsZero() {
		query += " AND created_at < ?"
		args = append(args, q.EndTime.Unix())
	}
	query += " ORDER BY created_at DESC"
	if q.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, q.Limit, q.Offset)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := []*model.StudySession{}
	for rows.Next() {
		var s model.StudySession
		if err := rows.Scan(&s.ID, &s.UserID, &s.Subject, &s.DurationMin, &s.Completed, &s.CreatedAt); err != nil {
			return nil, err
		}
		sessions = append(sessions, &s)
	}
	return sessions, rows.Err()
}

// DeleteSession 删除一条学习记录
func (r *Repository) DeleteSession(ctx context.Context, userID, id string) error {
	db, err := r.conn()
	if err != nil {
		return err
	}
	res, err := db.ExecContext(ctx, `DELETE FROM study_sessions WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
