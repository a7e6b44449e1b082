package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type BookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) *BookRepository {
	return &BookRepository{db: db}
}

// Create 创建图书
func (r *BookRepository) Create(book *Book) error {
	book.CreatedAt = time.Now()
	book.UpdatedAt = book.CreatedAt
	return r.db.Create(book).Error
}

// FindByID 按 ID 查找
func (r *BookRepository) FindByID(id int64) (*Book, error) {
	var book Book
	err := r.db.First(&book, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// ListAll 获取所有图书
func (r *BookRepository) ListAll() ([]*Book, error) {
	var books []*Book
	err := r.db.Order("id ASC").Find(&books).Error
	return books, err
}

// ListByCategory 按分类获取
func (r *BookRepository) ListByCategory(category string) ([]*Book, error) {
	var books []*Book
	err := r.db.Where("category = ?", category).Order("id ASC").Find(&books).Error
	return books, err
}

// SearchByTitle 标题子串搜索
func (r *BookRepository) SearchByTitle(title string) ([]*Book, error) {
	var books []*Book
	err := r.db.Where("title LIKE ?", "%"+title+"%").Order("id ASC").Find(&books).Error
	return books, err
}

// Update 按字段更新，空指针字段跳过
func (r *BookRepository) Update(bookID int64, title, author, category, description, coverURL, isbn *string) (*Book, error) {
	updates := map[string]interface{}{"updated_at": time.Now()}
	if title != nil {
		updates["title"] = *title
	}
	if author != nil {
		updates["author"] = *author
	}
	if category != nil {
		updates["category"] = *category
	}
	if description != nil {
		updates["description"] = *description
	}
	if coverURL != nil {
		updates["cover_url"] = *coverURL
	}
	if isbn != nil {
		updates["isbn"] = *isbn
	}

	if err := r.db.Model(&Book{}).Where("id = ?", bookID).Updates(updates).Error; err != nil {
		return nil, err
	}
	return r.FindByID(bookID)
}

// Delete 删除图书
func (r *BookRepository) Delete(bookID int64) error {
	return r.db.Delete(&Book{}, bookID).Error
}
