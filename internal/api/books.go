package api

import (
	"errors"
	"fmt"
	"log"
	"net/url"

	gocache "github.com/patrickmn/go-cache"
	"github.com/user/hanashi/internal/model"
)

// GetAllBooks 获取全部图书
func (c *Client) GetAllBooks() ([]model.Book, error) {
	var resp BooksListResponse
	if err := c.getJSON("/api/books", nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, errors.New(pick(resp.Message, "获取图书列表失败"))
	}
	return toBooks(resp.Data), nil
}

// GetBooksByCategory 按分类获取图书，结果短暂缓存
func (c *Client) GetBooksByCategory(category string) ([]model.Book, error) {
	cacheKey := "category:" + category
	if books, ok := c.searchCache.Get(cacheKey); ok {
		return books, nil
	}

	var resp BooksListResponse
	if err := c.getJSON("/api/books/category/"+url.PathEscape(category), nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, errors.New(pick(resp.Message, "获取图书列表失败"))
	}

	books := toBooks(resp.Data)
	c.searchCache.Set(cacheKey, books)
	return books, nil
}

// SearchBooks 按标题子串搜索，结果短暂缓存
func (c *Client) SearchBooks(title string) ([]model.Book, error) {
	cacheKey := "search:" + title
	if books, ok := c.searchCache.Get(cacheKey); ok {
		return books, nil
	}

	query := url.Values{"title": []string{title}}
	var resp BooksListResponse
	if err := c.getJSON("/api/books/search", query, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, errors.New(pick(resp.Message, "搜索图书失败"))
	}

	books := toBooks(resp.Data)
	c.searchCache.Set(cacheKey, books)
	log.Printf("[Books] 搜索 %q 命中 %d 条", title, len(books))
	return books, nil
}

// GetBookByID 按 ID 获取单本图书
// singleflight 合并并发的同 ID 请求（收藏补查场景下很常见）
func (c *Client) GetBookByID(id int64) (*model.Book, error) {
	key := fmt.Sprintf("book:%d", id)
	if cached, ok := c.bookCache.Get(key); ok {
		return cached.(*model.Book), nil
	}

	val, err, _ := c.group.Do(key, func() (interface{}, error) {
		var resp BookResponse
		if err := c.getJSON(fmt.Sprintf("/api/books/%d", id), nil, &resp); err != nil {
			return nil, err
		}
		if !resp.Success {
			return nil, errors.New(pick(resp.Message, "获取图书失败"))
		}
		if resp.Data == nil {
			return nil, errors.New("图书不存在")
		}

		book := resp.Data.toModel()
		c.bookCache.Set(key, book, gocache.DefaultExpiration)
		return book, nil
	})
	if err != nil {
		return nil, err
	}
	return val.(*model.Book), nil
}

// CreateBook 创建图书（目录所有者）
func (c *Client) CreateBook(book model.Book) (*model.Book, error) {
	dto := BookDto{
		Title:       book.Title,
		Author:      book.Author,
		Category:    book.Category,
		Description: book.Description,
		CoverURL:    book.CoverURL,
		ISBN:        book.ISBN,
	}

	var resp BookResponse
	if err := c.postJSON("/api/books", nil, dto, &resp); err != nil {
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

// invalidateBookCaches 图书数据变更后清空相关缓存
func (c *Client) invalidateBookCaches() {
	c.bookCache.Flush()
	c.searchCache.Clear()
}

func toBooks(dtos []BookDto) []model.Book {
	books := make([]model.Book, 0, len(dtos))
	for i := range dtos {
		books = append(books, *dtos[i].toModel())
	}
	return books
}
