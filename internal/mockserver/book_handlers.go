package mockserver

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/user/hanashi/internal/repository"
	"github.com/user/hanashi/internal/utils"
)

type bookRequest struct {
	Title       string `json:"title" binding:"required"`
	Author      string `json:"author" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Description string `json:"description"`
	CoverURL    string `json:"coverUrl"`
	ISBN        string `json:"isbn"`
}

// ListBooks 全部图书
func (s *Server) ListBooks(c *gin.Context) {
	books, err := s.Repos.Book.ListAll()
	if err != nil {
		utils.InternalServerError(c, "查询图书失败")
		return
	}
	utils.Success(c, bookPayloads(books))
}

// GetBook 按 ID 获取图书
func (s *Server) GetBook(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
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
	utils.Success(c, bookPayload(book))
}

// ListBooksByCategory 按分类获取
func (s *Server) ListBooksByCategory(c *gin.Context) {
	books, err := s.Repos.Book.ListByCategory(c.Param("category"))
	if err != nil {
		utils.InternalServerError(c, "查询图书失败")
		return
	}
	utils.Success(c, bookPayloads(books))
}

// SearchBooks 标题子串搜索
func (s *Server) SearchBooks(c *gin.Context) {
	books, err := s.Repos.Book.SearchByTitle(c.Query("title"))
	if err != nil {
		utils.InternalServerError(c, "搜索图书失败")
		return
	}
	utils.Success(c, bookPayloads(books))
}

// CreateBook 创建图书
func (s *Server) CreateBook(c *gin.Context) {
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

func bookPayload(book *repository.Book) gin.H {
	return gin.H{
		"id":          book.ID,
		"title":       book.Title,
		"author":      book.Author,
		"category":    book.Category,
		"description": book.Description,
		"coverUrl":    book.CoverURL,
		"isbn":        book.ISBN,
		"createdAt":   book.CreatedAt.Format(time.RFC3339),
		"updatedAt":   book.UpdatedAt.Format(time.RFC3339),
	}
}

func bookPayloads(books []*repository.Book) []gin.H {
	out := make([]gin.H, 0, len(books))
	for _, b := range books {
		out = append(out, bookPayload(b))
	}
	return out
}
