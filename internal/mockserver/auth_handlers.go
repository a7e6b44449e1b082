package mockserver

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/user/hanashi/internal/repository"
	"github.com/user/hanashi/internal/utils"
)

type registerRequest struct {
	Username string `json:"username" binding:"required,min=3,max=30"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail" binding:"required"`
	Password        string `json:"password" binding:"required"`
}

// Register 注册
func (s *Server) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "注册信息不完整或格式有误")
		return
	}

	if existing, _ := s.Repos.User.FindByUsernameOrEmail(req.Username); existing != nil {
		utils.BadRequest(c, "用户名已被占用")
		return
	}
	if existing, _ := s.Repos.User.FindByUsernameOrEmail(req.Email); existing != nil {
		utils.BadRequest(c, "邮箱已被注册")
		return
	}

	user, err := s.Repos.User.Create(req.Username, req.Email, req.Password, false)
	if err != nil {
		utils.InternalServerError(c, "创建用户失败")
		return
	}

	token, err := s.generateToken(user)
	if err != nil {
		utils.InternalServerError(c, "生成凭证失败")
		return
	}

	utils.SuccessWithMessage(c, "注册成功", userPayload(user, token))
}

// Login 登录，标识可为用户名或邮箱
func (s *Server) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "用户名和密码均为必填")
		return
	}

	user, err := s.Repos.User.FindByUsernameOrEmail(req.UsernameOrEmail)
	if err != nil {
		utils.InternalServerError(c, "查询用户失败")
		return
	}
	if user == nil || !s.Repos.User.CheckPassword(user, req.Password) {
		utils.Unauthorized(c, "用户名或密码错误")
		return
	}

	token, err := s.generateToken(user)
	if err != nil {
		utils.InternalServerError(c, "生成凭证失败")
		return
	}

	utils.SuccessWithMessage(c, "登录成功", userPayload(user, token))
}

// generateToken 签发 JWT，客户端把它当不透明凭证
func (s *Server) generateToken(user *repository.User) (string, error) {
	claims := jwt.MapClaims{
		"userId":  user.ID,
		"isAdmin": user.IsAdmin,
		"exp":     time.Now().Add(s.Cfg.JWTExpiry).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.Cfg.JWTSecret))
}

func userPayload(user *repository.User, token string) gin.H {
	return gin.H{
		"userId":   user.ID,
		"username": user.Username,
		"email":    user.Email,
		"token":    token,
		"isAdmin":  user.IsAdmin,
	}
}
