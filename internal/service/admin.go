package service

import (
	"log"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/user/hanashi/internal/api"
	"github.com/user/hanashi/internal/model"
)

// createUserInput 创建用户字段校验
type createUserInput struct {
	Username string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

// createBookInput 创建图书字段校验
type createBookInput struct {
	Title    string `validate:"required"`
	Author   string `validate:"required"`
	Category string `validate:"required"`
}

// AdminService 管理端协调器
// 与收藏协调器同构：改完必重载；管理两个互不相关的聚合（用户、图书）
type AdminService struct {
	client      *api.Client
	adminUserID int64
	validate    *validator.Validate

	mu         sync.RWMutex
	users      []model.User
	books      []model.Book
	loading    bool
	errMsg     string
	successMsg string
}

// NewAdminService 创建管理端协调器，adminUserID 在构造时固定
func NewAdminService(client *api.Client, adminUserID int64) *AdminService {
	return &AdminService{
		client:      client,
		adminUserID: adminUserID,
		validate:    validator.New(),
	}
}

// AdminUserID 本协调器绑定的管理员 ID
func (s *AdminService) AdminUserID() int64 {
	return s.adminUserID
}

// ==================== 用户管理 ====================

// LoadUsers 全量拉取用户列表并整体替换
func (s *AdminService) LoadUsers() error {
	s.setLoading(true)
	users, err := s.client.AdminListUsers(s.adminUserID)
	s.setLoading(false)

	if err != nil {
		s.setError(err.Error())
		return err
	}

	s.mu.Lock()
	s.users = users
	s.mu.Unlock()
	log.Printf("[Admin] 已加载 %d 个用户", len(users))
	return nil
}

// Users 当前用户列表的副本
func (s *AdminService) Users() []model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.User, len(s.users))
	copy(out, s.users)
	return out
}

// CreateUser 创建用户，成功后设置提示并重载列表
func (s *AdminService) CreateUser(username, email, password string, isAdmin bool) error {
	if err := s.validate.Struct(createUserInput{Username: username, Email: email, Password: password}); err != nil {
		s.setError("所有字段均为必填")
		return errValidation("所有字段均为必填")
	}

	req := api.CreateUserRequest{Username: username, Email: email, Password: password, IsAdmin: isAdmin}
	user, err := s.client.AdminCreateUser(req, s.adminUserID)
	if err != nil {
		s.setError(err.Error())
		return err
	}

	s.setSuccess("用户 " + user.Username + " 创建成功")
	return s.LoadUsers()
}

// UpdateUser 更新用户，成功后设置提示并重载列表
func (s *AdminService) UpdateUser(userID int64, req api.UpdateUserRequest) error {
	user, err := s.client.AdminUpdateUser(userID, req, s.adminUserID)
	if err != nil {
		s.setError(err.Error())
		return err
	}

	s.setSuccess("用户 " + user.Username + " 已更新")
	return s.LoadUsers()
}

// DeleteUser 删除用户
// 本地先拦截自删（目标 ID 等于自己的管理员 ID 时不发请求），
// 这只是便捷校验，服务端仍是权威并会再次拒绝
func (s *AdminService) DeleteUser(userID int64) error {
	if userID == s.adminUserID {
		s.setError("不能删除自己")
		return errValidation("不能删除自己")
	}

	if err := s.client.AdminDeleteUser(userID, s.adminUserID); err != nil {
		s.setError(err.Error())
		return err
	}

	s.setSuccess("用户已删除")
	return s.LoadUsers()
}

// ==================== 图书管理 ====================

// LoadBooks 全量拉取图书列表并整体替换
func (s *AdminService) LoadBooks() error {
	s.setLoading(true)
	books, err := s.client.GetAllBooks()
	s.setLoading(false)

	if err != nil {
		s.setError(err.Error())
		return err
	}

	s.mu.Lock()
	s.books = books
	s.mu.Unlock()
	log.Printf("[Admin] 已加载 %d 本图书", len(books))
	return nil
}

// Books 当前图书列表的副本
func (s *AdminService) Books() []model.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Book, len(s.books))
	copy(out, s.books)
	return out
}

// CreateBook 创建图书，成功后设置提示并重载列表
func (s *AdminService) CreateBook(book model.Book) error {
	if err := s.validate.Struct(createBookInput{Title: book.Title, Author: book.Author, Category: book.Category}); err != nil {
		s.setError("书名、作者、分类均为必填")
		return errValidation("书名、作者、分类均为必填")
	}

	req := api.CreateBookRequest{
		Title:       book.Title,
		Author:      book.Author,
		Category:    book.Category,
		Description: book.Description,
		CoverURL:    book.CoverURL,
		ISBN:        book.ISBN,
	}
	created, err := s.client.AdminCreateBook(req, s.adminUserID)
	if err != nil {
		s.setError(err.Error())
		return err
	}

	s.setSuccess("《" + created.Title + "》创建成功")
	return s.LoadBooks()
}

// UpdateBook 更新图书，成功后设置提示并重载列表
func (s *AdminService) UpdateBook(bookID int64, req api.UpdateBookRequest) error {
	updated, err := s.client.AdminUpdateBook(bookID, req, s.adminUserID)
	if err != nil {
		s.setError(err.Error())
		return err
	}

	s.setSuccess("《" + updated.Title + "》已更新")
	return s.LoadBooks()
}

// DeleteBook 删除图书，成功后设置提示并重载列表
func (s *AdminService) DeleteBook(bookID int64) error {
	if err := s.client.AdminDeleteBook(bookID, s.adminUserID); err != nil {
		s.setError(err.Error())
		return err
	}

	s.setSuccess("图书已删除")
	return s.LoadBooks()
}

// ==================== 消息与状态 ====================

// Loading 是否有加载进行中
func (s *AdminService) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// ErrorMessage 最近一次失败的提示
func (s *AdminService) ErrorMessage() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errMsg
}

// SuccessMessage 最近一次成功的提示
func (s *AdminService) SuccessMessage() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.successMsg
}

// ClearMessages 清空两个消息槽
func (s *AdminService) ClearMessages() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = ""
	s.successMsg = ""
}

// Reset 清空全部状态（登出联动）
func (s *AdminService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = nil
	s.books = nil
	s.loading = false
	s.errMsg = ""
	s.successMsg = ""
}

func (s *AdminService) setLoading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = v
}

func (s *AdminService) setError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = msg
}

func (s *AdminService) setSuccess(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.successMsg = msg
}
