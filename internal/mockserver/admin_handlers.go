package mockserver

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/user/hanashi/internal/repository"
	"github.com/user/hanashi/internal/utils"
)

type createUserRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	IsAdmin  bool   `json:"isAdmin"`
}

type updateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	IsAdmin  *bool   `json:"isAdmin"`
}

type updateBookRequest struct {
	Title       *string `json:"title"`
	Author      *string `json:"author"`
	Category    *string `json:"category"`
	Description *string `json:"description"`
	CoverURL    *string `json:"coverUrl"`
	ISBN        *string `json:"isbn"`
}

// RequireAdmin 管理端中间件：adminUserId 必须指向一个管理员
func (s *Server) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		adminID, err := strconv.ParseInt(c.Query("adminUserId"), 10, 64)
		if err != nil || adminID == 0 {
			utils.Unauthorized(c, "缺少 adminUserId 参数")
			c.Abort()
			return
		}

		admin, err := s.Repos.User.FindByID(adminID)
		if err != nil {
			utils.InternalServerError(c, "查询用户失败")
			c.Abort()
			return
		}
		if admin == nil || !admin.IsAdmin {
			utils.Forbidden(c, "需要管理员权限")
			c.Abort()
			return
		}

		c.Set("admin_id", adminID)
		c.Next()
	}
}

// ==================== 用户管理 ====================

// AdminListUsers 全部用户
func (s *Server) AdminListUsers(c *gin.Context) {
	users, err := s.Repos.User.ListAll()
	if err != nil {
		utils.InternalServerError(c, "查询用户失败")
		return
	}

	out := make([]gin.H, 0, len(users))
	for _, u := range users {
		out = append(out, adminUserPayload(u))
	}
	utils.Success(c, out)
}

// AdminGetUser 按 ID 获取用户
func (s *Server) AdminGetUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		utils.BadRequest(c, "无效的用户 ID")
		return
	}

	user, err := s.Repos.User.FindByID(id)
	if err != nil {
		utils.InternalServerError(c, "查询用户失败")
		return
	}
	if user == nil {
		utils.NotFound(c, "用户不存在")
		return
	}
	utils.Success(c, adminUserPayload(user))
}

// AdminCreateUser 创建用户
func (s *Server) AdminCreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "用户信息不完整或格式有误")
		return
	}

	if existing, _ := s.Repos.User.FindByUsernameOrEmail(req.Username); existing != nil {
		utils.BadRequest(c, "用户名已被占用")
		return
	}

	user, err := s.Repos.User.Create(req.Username, req.Email, req.Password, req.IsAdmin)
	if err != nil {
		utils.InternalServerError(c, "创建用户失败")
		return
	}
	utils.SuccessWithMessage(c, "创建成功", adminUserPayload(user))
}

// AdminUpdateUser 更新用户
func (s *Server) AdminUpdateUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		utils.BadRequest(c, "无效的用户 ID")
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请求体格式有误")
		return
	}

	user, err := s.Repos.User.Update(id, req.Username, req.Email, req.Password, req.IsAdmin)
	if err != nil {
		utils.InternalServerError(c, "更新用户失败")
		return
	}
	if user == nil {
		utils.NotFound(c, "用户不存在")
		return
	}
	utils.SuccessWithMessage(c, "已更新", adminUserPayload(user))
}

// AdminDeleteUser 删除用户
// 服务端同样拒绝自删，客户端的本地拦截只是便捷校验
func (s *Server) AdminDeleteUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		utils.BadRequest(c, "无效的用户 ID")
		return
	}

	if adminID := c.GetInt64("admin_id"); adminID == id {
		utils.BadRequest(c, "不能删除自己")
		return
	}

	user, err := s.Repos.User.FindByID(id)
	if err != nil {
		utils.InternalServerError(c, "查询用户失败")
		return
	}
	if user == nil {
		utils.NotFound(c, "用户不存在")
		return
	}

	if err := s.Repos.User.Delete(id); err != nil {
		utils.InternalServerError(c, "删除用户失败")
		return
	}
	utils.SuccessWithMessage(c, "已删除", nil)
}

// ==================== 图书管理 ====================

// AdminCreateBook 创建图书
func (s *Server) AdminCreateBook(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "书名、作者、分类均为必填")
		return
	}

	book := &repository.Book{
		Title:       req.Title,
		Author:      req.Author,
		Category:    req.Category,
		Description: req.Description,
		CoverURL:    req.CoverURL,
		ISBN:        req.ISBN,
	}
	if err := s.Repos.Book.Create(book); err != nil {
		utils.InternalServerError(c, "创建图书失败")
		return
	}
	utils.SuccessWithMessage(c, "创建成功", bookPayload(book))
}

// AdminUpdateBook 更新图书
func (s *Server) AdminUpdateBook(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("bookId"), 10, 64)
	if err != nil {
		utils.BadRequest(c, "无效的图书 ID")
		return
	}

	var req updateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请求体格式有误")
		return
	}

	book, err := s.Repos.Book.Update(id, req.Title, req.Author, req.Category, req.Description, req.CoverURL, req.ISBN)
	if err != nil {
		utils.InternalServerError(c, "更新图书失败")
		return
	}
	if book == nil {
		utils.NotFound(c, "图书不存在")
		return
	}
	utils.SuccessWithMessage(c, "已更新", bookPayload(book))
}

// AdminDeleteBook 删除图书
func (s *Server) AdminDeleteBook(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("bookId"), 10, 64)
	if err != nil {
		utils.BadRequest(c, "无效的图书 ID")
		return
	}

	book, err := s.Repos.Book.FindByID(id)
	if err != nil {
		utils.InternalServerError(c, "查询图书失败")
		return
	}
	if book == nil {
		utils.NotFound(c, "图书不存在")
		return
	}

	if err := s.Repos.Book.Delete(id); err != nil {
		utils.InternalServerError(c, "删除图书失败")
		return
	}
	utils.SuccessWithMessage(c, "已删除", nil)
}

func adminUserPayload(user *repository.User) gin.H {
	return gin.H{
		"userId":    user.ID,
		"username":  user.Username,
		"email":     user.Email,
		"isAdmin":   user.IsAdmin,
		"createdAt": user.CreatedAt.Format(time.RFC3339),
	}
}
