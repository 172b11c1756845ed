package repo

import (
	"context"
	"fmt"

	"github.com/afumu/studydesk/internal/model"
)

// dayOrder 用于课表按周一到周日排序
const dayOrder = `CASE day
	WHEN 'Mon' THEN 1 WHEN 'Tue' THEN 2 WHEN 'Wed' THEN 3 WHEN 'Thu' THEN 4
	WHEN 'Fri' THEN 5 WHEN 'Sat' THEN 6 WHEN 'Sun' THEN 7 ELSE 8 END`

// CreateTimetableEntry 写入一行课表
func (r *Repository) CreateTimetableEntry(ctx context.Context, e *model.TimetableEntry) error {
	db, err := r.conn()
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO timetable (id, user_id, day, slot, subject) VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.UserID, e.Day, e.Slot, e.Subject)
	if err != nil {
		return fmt.Errorf("写入课表失败: %w", err)
	}
	return nil
}

// GetTimetable 查询某用户的完整课表，按星期和时段排序
func (r *Repository) GetTimetable(ctx context.Context, userID string) ([]*model.TimetableEntry, error) {
	db, err := r.conn()
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx,
		`SELECT id, user_id, day, slot, subject FROM timetable
		 WHERE user_id = ? ORDER BY `+dayOrder+`, slot`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []*model.TimetableEntry{}
	for rows.Next() {
		var e model.TimetableEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Day, &e.Slot, &e.Subject); err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

// DeleteTimetableEntry 删除一行课表
func (r *Repository) DeleteTimetableEntry(ctx context.Context, userID, id string) error {
	db, err := r.conn()
	if err != nil {
		return err
	}
	res, err := db.ExecContext(ctx, `DELETE FROM timetable WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
