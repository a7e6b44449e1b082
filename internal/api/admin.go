package api

import (
	"errors"
	"fmt"

	"github.com/user/hanashi/internal/model"
)

// ==================== 用户管理 ====================

// AdminListUsers 获取全部用户
func (c *Client) AdminListUsers(adminUserID int64) ([]model.User, error) {
	var resp UsersListResponse
	if err := c.getJSON("/api/admin/users", adminQuery(adminUserID), &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, errors.New(pick(resp.Message, "获取用户列表失败"))
	}

	users := make([]model.User, 0, len(resp.Data))
	for i := range resp.Data {
		users = append(users, resp.Data[i].toModel())
	}
	return users, nil
}

// AdminGetUser 按 ID 获取用户
func (c *Client) AdminGetUser(userID, adminUserID int64) (*model.User, error) {
	var resp UserResponse
	if err := c.getJSON(fmt.Sprintf("/api/admin/users/%d", userID), adminQuery(adminUserID), &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, errors.New(pick(resp.Message, "获取用户失败"))
	}
	if resp.Data == nil {
		return nil, errors.New("响应缺失用户数据")
	}
	user := resp.Data.toModel()
	return &user, nil
}

// AdminCreateUser 创建用户
func (c *Client) AdminCreateUser(req CreateUserRequest, adminUserID int64) (*model.User, error) {
	req.UserID = adminUserID

	var resp UserResponse
	if err := c.postJSON("/api/admin/users", adminQuery(adminUserID), req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, errors.New(pick(resp.Message, "创建用户失败"))
	}
	if resp.Data == nil {
		return nil, errors.New("响应缺失用户数据")
	}
	user := resp.Data.toModel()
	return &user, nil
}

// AdminUpdateUser 更新用户
func (c *Client) AdminUpdateUser(userID int64, req UpdateUserRequest, adminUserID int64) (*model.User, error) {
	req.UserID = adminUserID

	var resp UserResponse
	if err := c.putJSON(fmt.Sprintf("/api/admin/users/%d", userID), adminQuery(adminUserID), req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, errors.New(pick(resp.Message, "更新用户失败"))
	}
	if resp.Data == nil {
		return nil, errors.New("响应缺失用户数据")
	}
	user := resp.Data.toModel()
	return &user, nil
}

// AdminDeleteUser 删除用户
func (c *Client) AdminDeleteUser(userID, adminUserID int64) error {
	var resp DeleteResponse
	if err := c.deleteJSON(fmt.Sprintf("/api/admin/users/%d", userID), adminQuery(adminUserID), &resp); err != nil {
		return err
	}
	if !resp.Success {
		return errors.New(pick(resp.Message, "删除用户失败"))
	}
	return nil
}

// ==================== 图书管理 ====================

// AdminCreateBook 创建图书
func (c *Client) AdminCreateBook(req CreateBookRequest, adminUserID int64) (*model.Book, error) {
	req.UserID = adminUserID

	var resp BookResponse
	if err := c.postJSON("/api/admin/books", adminQuery(adminUserID), req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, errors.New(pick(resp.Message, "创建图书失败"))
	}
	if resp.Data == nil {
		return nil, errors.New("响应缺失图书数据")
	}

	c.invalidateBookCaches()
	return resp.Data.toModel(), nil
}

// AdminUpdateBook 更新图书
func (c *Client) AdminUpdateBook(bookID int64, req UpdateBookRequest, adminUserID int64) (*model.Book, error) {
	req.UserID = adminUserID

	var resp BookResponse
	if err := c.putJSON(fmt.Sprintf("/api/admin/books/%d", bookID), adminQuery(adminUserID), req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, errors.New(pick(resp.Message, "更新图书失败"))
	}
	if resp.Data == nil {
		return nil, errors.New("响应缺失图书数据")
	}

	c.invalidateBookCaches()
	return resp.Data.toModel(), nil
}

// AdminDeleteBook 删除图书
func (c *Client) AdminDeleteBook(bookID, adminUserID int64) error {
	var resp DeleteResponse
	if err := c.deleteJSON(fmt.Sprintf("/api/admin/books/%d", bookID), adminQuery(adminUserID), &resp); err != nil {
		return err
	}
	if !resp.Success {
		return errors.New(pick(resp.Message, "删除图书失败"))
	}

	c.invalidateBookCaches()
	return nil
}
