package api

import (
	"errors"
	"log"

	"github.com/user/hanashi/internal/model"
)

// ErrInvalidUserID 服务端返回成功但用户 ID 为 0，不能以此建立会话
var ErrInvalidUserID = errors.New("服务端返回了无效的用户 ID")

// Login 登录，identifier 可为用户名或邮箱
func (c *Client) Login(identifier, password string) (*model.UserSession, error) {
	req := LoginRequest{UsernameOrEmail: identifier, Password: password}

	var resp AuthResponse
	if err := c.postJSON("/api/auth/login", nil, req, &resp); err != nil {
		log.Printf("[Auth] 登录请求失败: %v", err)
		return nil, err
	}
	if !resp.Success {
		return nil, errors.New(pick(resp.Message, "用户名或密码错误"))
	}

	// 默认值：用户名退回输入的标识，邮箱无从推断则留空
	return sessionFromAuth(&resp, identifier, "")
}

// Register 注册新账号
func (c *Client) Register(username, email, password string) (*model.UserSession, error) {
	req := RegisterRequest{Username: username, Email: email, Password: password}

	var resp AuthResponse
	if err := c.postJSON("/api/auth/register", nil, req, &resp); err != nil {
		log.Printf("[Auth] 注册请求失败: %v", err)
		return nil, err
	}
	if !resp.Success {
		return nil, errors.New(pick(resp.Message, "注册失败"))
	}

	return sessionFromAuth(&resp, username, email)
}

// sessionFromAuth 从认证响应构造会话
// 字段解析顺序固定为 data 内字段 → 顶层字段 → 默认值，不能改动，
// 这一家族的后端会把字段随机放在两个位置
func sessionFromAuth(resp *AuthResponse, defaultUsername, defaultEmail string) (*model.UserSession, error) {
	data := resp.Data
	if data == nil {
		data = &UserData{}
	}

	userID := pick(data.UserID, resp.UserID)
	if userID == 0 {
		// 看似成功的响应也可能缺失 ID，绝不能据此建立会话
		log.Printf("[Auth] 响应缺失用户 ID，按失败处理")
		return nil, ErrInvalidUserID
	}

	return &model.UserSession{
		UserID:   userID,
		Username: pick(data.Username, resp.Username, defaultUsername),
		Email:    pick(data.Email, resp.Email, defaultEmail),
		Token:    pick(data.Token, resp.Token),
		IsAdmin:  data.IsAdmin || resp.IsAdmin,
	}, nil
}
