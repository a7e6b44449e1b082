// Package mockserver 实现 HanashiNoMori 后端契约的本地模拟服务，
// 供客户端开发调试与集成测试使用，不是生产后端
package mockserver

import (
	"log"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/user/hanashi/internal/config"
	"github.com/user/hanashi/internal/repository"
)

// Server 模拟后端
type Server struct {
	Repos *repository.Repositories
	Cfg   *config.Config

	// EmbedBookOnCreate 创建收藏的响应是否内嵌图书
	// 默认 false，复现真实后端的已知不一致，迫使客户端走补查路径
	EmbedBookOnCreate bool
}

// New 创建模拟后端
func New(repos *repository.Repositories, cfg *config.Config) *Server {
	return &Server{Repos: repos, Cfg: cfg}
}

// Router 构建路由
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger())
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", s.Register)
			auth.POST("/login", s.Login)
		}

		books := api.Group("/books")
		{
			books.GET("", s.ListBooks)
			books.GET("/:id", s.GetBook)
			books.GET("/category/:category", s.ListBooksByCategory)
			books.GET("/search", s.SearchBooks)
			books.POST("", s.CreateBook)
		}

		favorites := api.Group("/favorites")
		{
			favorites.GET("/user/:userId", s.ListFavorites)
			favorites.GET("/check/:userId/:bookId", s.CheckFavorite)
			favorites.POST("", s.AddFavorite)
			favorites.DELETE("/:id", s.RemoveFavorite)
			favorites.PUT("/:id/toggle-read", s.ToggleRead)
		}

		admin := api.Group("/admin")
		admin.Use(s.RequireAdmin())
		{
			admin.GET("/users", s.AdminListUsers)
			admin.GET("/users/:userId", s.AdminGetUser)
			admin.POST("/users", s.AdminCreateUser)
			admin.PUT("/users/:userId", s.AdminUpdateUser)
			admin.DELETE("/users/:userId", s.AdminDeleteUser)

			admin.POST("/books", s.AdminCreateBook)
			admin.PUT("/books/:bookId", s.AdminUpdateBook)
			admin.DELETE("/books/:bookId", s.AdminDeleteBook)
		}
	}

	return r
}

// requestLogger 请求日志中间件
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		log.Printf("[%s] %s %d %v",
			c.Request.Method,
			path,
			c.Writer.Status(),
			time.Since(start),
		)
	}
}
