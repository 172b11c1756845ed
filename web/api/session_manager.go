package api

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
)

// SessionManager 管理登录会话，token 只存在内存里，
// 服务重启后所有会话失效，客户端需要重新登录。
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]string // token -> userID
}

// NewSessionManager 创建会话管理器
func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: make(map[string]string),
	}
}

// generateToken 生成随机 token
func (sm *SessionManager) generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Create 为用户创建一个新会话并返回 token
func (sm *SessionManager) Create(userID string) (string, error) {
	token, err := sm.generateToken()
	if err != nil {
		return "", err
	}
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.sessions[token] = userID
	return token, nil
}

// Resolve 把 token 解析为 userID，无效 token 返回空串
func (sm *SessionManager) Resolve(token string) string {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.sessions[token]
}

// Remove 注销单个会话
func (sm *SessionManager) Remove(token string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	delete(sm.sessions, token)
}

// RemoveUser 注销某用户的全部会话
func (sm *SessionManager) RemoveUser(userID string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	for token, uid := range sm.sessions {
		if uid == userID {
			delete(sm.sessions, token)
		}
	}
}
