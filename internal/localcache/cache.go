package localcache

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/user/hanashi/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// MediaItem 本地快照条目
// 早期离线版本的遗产：把目录和收藏状态落到本地库，断网时还能浏览
type MediaItem struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	BookID    int64  `gorm:"uniqueIndex"`
	Title     string
	Author    string
	Category  string `gorm:"index"`
	CoverURL  string
	InLibrary bool `gorm:"index"`
	IsRead    bool
	UpdatedAt time.Time
}

// Store 本地目录快照存储
type Store struct {
	db *gorm.DB
}

// Open 打开（必要时创建）快照数据库
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("无法创建缓存目录: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("无法打开缓存数据库: %w", err)
	}
	if err := db.AutoMigrate(&MediaItem{}); err != nil {
		return nil, fmt.Errorf("缓存表迁移失败: %w", err)
	}
	return &Store{db: db}, nil
}

// SaveBooks 写入目录快照（按 BookID 覆盖，保留收藏标记）
func (s *Store) SaveBooks(books []model.Book) error {
	for i := range books {
		b := &books[i]
		item := MediaItem{
			BookID:    b.ID,
			Title:     b.Title,
			Author:    b.Author,
			Category:  b.Category,
			CoverURL:  b.CoverURL,
			UpdatedAt: time.Now(),
		}
		err := s.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "book_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "author", "category", "cover_url", "updated_at"}),
		}).Create(&item).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// SaveFavorites 同步收藏标记：列表里的置位，其余清除
func (s *Store) SaveFavorites(favorites []model.Favorite) error {
	if err := s.db.Model(&MediaItem{}).Where("in_library = ?", true).
		Updates(map[string]interface{}{"in_library": false, "is_read": false}).Error; err != nil {
		return err
	}

	for i := range favorites {
		f := &favorites[i]
		if f.Book != nil {
			if err := s.SaveBooks([]model.Book{*f.Book}); err != nil {
				return err
			}
		}
		err := s.db.Model(&MediaItem{}).Where("book_id = ?", f.BookID).
			Updates(map[string]interface{}{"in_library": true, "is_read": f.IsRead}).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// All 全部快照条目对应的图书
func (s *Store) All() ([]model.Book, error) {
	var items []MediaItem
	if err := s.db.Order("title ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return toBooks(items), nil
}

// ByCategory 按分类读取快照
func (s *Store) ByCategory(category string) ([]model.Book, error) {
	var items []MediaItem
	if err := s.db.Where("category = ?", category).Order("title ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return toBooks(items), nil
}

// Library 已收藏的快照条目（含已读标记）
func (s *Store) Library() ([]MediaItem, error) {
	var items []MediaItem
	err := s.db.Where("in_library = ?", true).Order("title ASC").Find(&items).Error
	return items, err
}

// Clear 清空快照
func (s *Store) Clear() error {
	return s.db.Where("1 = 1").Delete(&MediaItem{}).Error
}

// Close 关闭底层连接
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func toBooks(items []MediaItem) []model.Book {
	books := make([]model.Book, 0, len(items))
	for i := range items {
		it := &items[i]
		books = append(books, model.Book{
			ID:       it.BookID,
			Title:    it.Title,
			Author:   it.Author,
			Category: it.Category,
			CoverURL: it.CoverURL,
		})
	}
	return books
}
