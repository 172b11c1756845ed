package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/afumu/studydesk/internal/model"
)

// ErrNotFound 表示查询的记录不存在
var ErrNotFound = errors.New("record not found")

// CreateUser 写入一个新用户，email 冲突时返回错误
func (r *Repository) CreateUser(ctx context.Context, u *model.User) error {
	db, err := r.conn()
	if err != nil {
		return err
	}

	badges, _ := json.Marshal(u.Badges)
	if u.Badges == nil {
		badges = []byte("[]")
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO users (id, name, email, password_hash, xp, level, badges, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.XP, u.Level, string(badges), u.CreatedAt)
	if err != nil {
		return fmt.Errorf("写入用户失败: %w", err)
	}
	return nil
}

// GetUserByID 按 ID 查询用户
func (r *Repository) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	db, err := r.conn()
	if err != nil {
		return nil, err
	}
	row := db.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, xp, level, badges, created_at FROM users WHERE id = ?`, id)
	return scanUser(row)
}

// GetUserByEmail 按邮箱查询用户（登录路径）
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	db, err := r.conn()
	if err != nil {
		return nil, err
	}
	row := db.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, xp, level, badges, created_at FROM users WHERE email = ?`, email)
	return scanUser(row)
}

// AddUserXP 给用户加经验并重算等级（每 100 XP 升一级）
func (r *Repository) AddUserXP(ctx context.Context, id string, delta int) error {
	db, err := r.conn()
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx,
		`UPDATE users SET xp = xp + ?, level = (xp + ?) / 100 + 1 WHERE id = ?`,
		delta, delta, id)
	return err
}

// ListUsers 返回全部用户，供定时摘要任务遍历
func (r *Repository) ListUsers(ctx context.Context) ([]*model.User, error) {
	db, err := r.conn()
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx,
		`SELECT id, name, email, password_hash, xp, level, badges, created_at FROM users ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		var u model.User
		var badges string
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.XP, &u.Level, &badges, &u.CreatedAt); err != nil {
			return nil, err
		}
		if json.Unmarshal([]byte(badges), &u.Badges) != nil || u.Badges == nil {
			u.Badges = []string{}
		}
		users = append(users, &u)
	}
	return users, rows.Err()
}

func scanUser(row *sql.Row) (*model.User, error) {
	var u model.User
	var badges string
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.XP, &u.Level, &badges, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if json.Unmarshal([]byte(badges), &u.Badges) != nil || u.Badges == nil {
		u.Badges = []string{}
	}
	return &u, nil
}

// now 统一取当前 unix 秒，便于测试对齐
func now() int64 {
	return time.Now().Unix()
}
