package service

import (
	"sync"

	"github.com/user/hanashi/internal/model"
)

// SessionStore 持有当前用户会话，进程内最多一个，不跨重启持久化
// 登出时会依次执行注册的清理回调，联动清空各协调器的状态
type SessionStore struct {
	mu      sync.RWMutex
	current *model.UserSession
	resets  []func()
}

// NewSessionStore 创建会话存储
func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

// Set 写入会话（登录/注册成功后调用）
func (s *SessionStore) Set(session *model.UserSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = session
}

// Current 当前会话，未登录返回 nil
func (s *SessionStore) Current() *model.UserSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// UserID 当前用户 ID，未登录返回 0
func (s *SessionStore) UserID() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return 0
	}
	return s.current.UserID
}

// IsLoggedIn 是否已登录
func (s *SessionStore) IsLoggedIn() bool {
	return s.Current() != nil
}

// IsAdmin 当前用户是否为管理员
func (s *SessionStore) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil && s.current.IsAdmin
}

// OnClear 注册登出清理回调
func (s *SessionStore) OnClear(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resets = append(s.resets, fn)
}

// Clear 清空会话并执行全部清理回调
func (s *SessionStore) Clear() {
	s.mu.Lock()
	s.current = nil
	resets := make([]func(), len(s.resets))
	copy(resets, s.resets)
	s.mu.Unlock()

	// 回调在锁外执行，避免回调里再访问会话时死锁
	for _, fn := range resets {
		fn()
	}
}
