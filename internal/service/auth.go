package service

import (
	"log"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/user/hanashi/internal/api"
	"github.com/user/hanashi/internal/model"
)

// loginInput 登录字段校验
type loginInput struct {
	Identifier string `validate:"required"`
	Password   string `validate:"required"`
}

// registerInput 注册字段校验
type registerInput struct {
	Username string `validate:"required,min=3,max=30"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

// AuthService 认证状态机
// 状态流转：Idle → Loading → {Authenticated | Error}；
// Error 确认后回 Idle，Authenticated 登出后回 Idle
type AuthService struct {
	client   *api.Client
	sessions *SessionStore
	validate *validator.Validate

	mu        sync.RWMutex
	state     model.AuthState
	listeners []func(model.AuthState)
}

// NewAuthService 创建认证服务
func NewAuthService(client *api.Client, sessions *SessionStore) *AuthService {
	return &AuthService{
		client:   client,
		sessions: sessions,
		validate: validator.New(),
		state:    model.StateIdle(),
	}
}

// State 当前状态
func (s *AuthService) State() model.AuthState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Subscribe 订阅状态变化，回调在状态切换时同步执行
func (s *AuthService) Subscribe(fn func(model.AuthState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *AuthService) setState(state model.AuthState) {
	s.mu.Lock()
	s.state = state
	listeners := make([]func(model.AuthState), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(state)
	}
}

// Login 登录，identifier 可为用户名或邮箱
// 失败时会话存储保持不变
func (s *AuthService) Login(identifier, password string) error {
	if err := s.validate.Struct(loginInput{Identifier: identifier, Password: password}); err != nil {
		s.setState(model.StateError("用户名和密码均为必填"))
		return errValidation("用户名和密码均为必填")
	}

	s.setState(model.StateLoading())

	session, err := s.client.Login(identifier, password)
	if err != nil {
		log.Printf("[Auth] 登录失败: %v", err)
		s.setState(model.StateError(err.Error()))
		return err
	}

	s.sessions.Set(session)
	s.setState(model.StateAuthenticated())
	log.Printf("[Auth] 登录成功 - 用户: %s", session.Username)
	return nil
}

// Register 注册新账号，成功后直接进入登录态
func (s *AuthService) Register(username, email, password string) error {
	if err := s.validate.Struct(registerInput{Username: username, Email: email, Password: password}); err != nil {
		s.setState(model.StateError("注册信息不完整或格式有误"))
		return errValidation("注册信息不完整或格式有误")
	}

	s.setState(model.StateLoading())

	session, err := s.client.Register(username, email, password)
	if err != nil {
		log.Printf("[Auth] 注册失败: %v", err)
		s.setState(model.StateError(err.Error()))
		return err
	}

	s.sessions.Set(session)
	s.setState(model.StateAuthenticated())
	log.Printf("[Auth] 注册成功 - 用户: %s", session.Username)
	return nil
}

// Logout 登出：清空会话（联动清空各协调器）并回到 Idle
func (s *AuthService) Logout() {
	s.sessions.Clear()
	s.setState(model.StateIdle())
	log.Printf("[Auth] 会话已关闭")
}

// ClearError 确认错误：Error → Idle，其他状态下不做任何事
func (s *AuthService) ClearError() {
	s.mu.RLock()
	isError := s.state.Phase == model.AuthError
	s.mu.RUnlock()

	if isError {
		s.setState(model.StateIdle())
	}
}
