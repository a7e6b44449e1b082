package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// ErrDuplicateFavorite 同一用户对同一本书重复收藏
var ErrDuplicateFavorite = errors.New("已收藏过这本书")

type FavoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Add 添加收藏，重复收藏返回 ErrDuplicateFavorite
func (r *FavoriteRepository) Add(userID, bookID int64) (*Favorite, error) {
	var count int64
	if err := r.db.Model(&Favorite{}).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateFavorite
	}

	favorite := &Favorite{
		UserID:  userID,
		BookID:  bookID,
		AddedAt: time.Now(),
	}
	if err := r.db.Create(favorite).Error; err != nil {
		return nil, err
	}
	return favorite, nil
}

// FindByID 按 ID 查找（带图书）
func (r *FavoriteRepository) FindByID(id int64) (*Favorite, error) {
	var favorite Favorite
	err := r.db.Preload("Book").First(&favorite, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &favorite, nil
}

// FindByUserAndBook 按用户和图书查找
func (r *FavoriteRepository) FindByUserAndBook(userID, bookID int64) (*Favorite, error) {
	var favorite Favorite
	err := r.db.Preload("Book").
		Where("user_id = ? AND book_id = ?", userID, bookID).
		First(&favorite).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &favorite, nil
}

// ListByUser 获取用户收藏列表（带图书）
func (r *FavoriteRepository) ListByUser(userID int64) ([]*Favorite, error) {
	var favorites []*Favorite
	err := r.db.Preload("Book").
		Where("user_id = ?", userID).
		Order("added_at DESC").
		Find(&favorites).Error
	return favorites, err
}

// SetRead 更新已读状态
func (r *FavoriteRepository) SetRead(favoriteID int64, isRead bool) error {
	return r.db.Model(&Favorite{}).Where("id = ?", favoriteID).Update("is_read", isRead).Error
}

// Delete 删除收藏
func (r *FavoriteRepository) Delete(favoriteID int64) error {
	return r.db.Delete(&Favorite{}, favoriteID).Error
}
