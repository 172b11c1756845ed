package store

import (
	"context"
	"testing"

	"github.com/afumu/studydesk/internal/model"
)

func TestStoreLifecycle(t *testing.T) {
	tmpDir := t.TempDir()
	s, err := NewStore(tmpDir)
	if err != nil {
		t.Fatalf("NewStore 失败: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	u := &model.User{
		ID: "u1", Name: "小明", Email: "ming@example.com",
		PasswordHash: "hash", Level: 1, CreatedAt: 1000,
	}
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser 失败: %v", err)
	}

	// Reload 后数据仍然可读
	if err := s.Reload(); err != nil {
		t.Fatalf("Reload 失败: %v", err)
	}
	got, err := s.GetUserByID(ctx, "u1")
	if err != nil {
		t.Fatalf("Reload 后查询失败: %v", err)
	}
	if got.Name != "小明" {
		t.Errorf("用户字段错误: %+v", got)
	}

	users, err := s.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers 失败: %v", err)
	}
	if len(users) != 1 {
		t.Errorf("期望 1 个用户, 实际 %d", len(users))
	}
}
