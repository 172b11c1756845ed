package repo

import (
	"context"
	"fmt"

	"github.com/afumu/studydesk/internal/model"
	"github.com/afumu/studydesk/store/types"
)

// CreateMessage 写入一条聊天消息
func (r *Repository) CreateMessage(ctx context.Context, m *model.Message) error {
	db, err := r.conn()
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO messages (id, user_id, sender, content, created_at) VALUES (?, ?, ?, ?, ?)`,
		m.ID, m.UserID, m.Sender, m.Content, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("写入消息失败: %w", err)
	}
	return nil
}

// GetMessages 查询某用户的聊天消息，按时间正序返回
func (r *Repository) GetMessages(ctx context.Context, userID string, q types.MessageQuery) ([]*model.Message, error) {
	db, err := r.conn()
	if err != nil {
		return nil, err
	}
	limit := q.Limit
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.QueryContext(ctx,
		`SELECT id, user_id, sender, content, created_at FROM messages
		 WHERE user_id = ? ORDER BY created_at ASC LIMIT ? OFFSET ?`,
		userID, limit, q.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	msgs := []*model.Message{}
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.ID, &m.UserID, &m.Sender, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, &m)
	}
	return msgs, rows.Err()
}
