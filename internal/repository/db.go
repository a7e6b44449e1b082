package repository

import (
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// User 用户表
type User struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Username     string `gorm:"uniqueIndex"`
	Email        string `gorm:"uniqueIndex"`
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
}

// Book 图书表
type Book struct {
	ID          int64 `gorm:"primaryKey;autoIncrement"`
	Title       string
	Author      string
	Category    string `gorm:"index"`
	Description string
	CoverURL    string
	ISBN        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Favorite 收藏表
type Favorite struct {
	ID      int64 `gorm:"primaryKey;autoIncrement"`
	UserID  int64 `gorm:"index:idx_user_book"`
	BookID  int64 `gorm:"index:idx_user_book"`
	IsRead  bool
	AddedAt time.Time
	Book    *Book `gorm:"foreignKey:BookID"`
}

// InitDB 初始化数据库连接并迁移表结构
func InitDB(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("无法连接数据库: %w", err)
	}

	if err := db.AutoMigrate(&User{}, &Book{}, &Favorite{}); err != nil {
		return nil, fmt.Errorf("表迁移失败: %w", err)
	}
	return db, nil
}

// Repositories 仓库集合
type Repositories struct {
	DB       *gorm.DB
	User     *UserRepository
	Book     *BookRepository
	Favorite *FavoriteRepository
}

// NewRepositories 创建仓库集合
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		DB:       db,
		User:     NewUserRepository(db),
		Book:     NewBookRepository(db),
		Favorite: NewFavoriteRepository(db),
	}
}
