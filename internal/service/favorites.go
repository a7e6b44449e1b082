package service

import (
	"log"
	"sync"

	"github.com/user/hanashi/internal/api"
	"github.com/user/hanashi/internal/model"
)

// FavoritesService 收藏协调器
// 独占持有当前用户的收藏列表；一致性策略是「改完必重载」：
// 任何变更成功后整表重新拉取并整体替换，服务端数据永远是权威
type FavoritesService struct {
	client *api.Client

	mu        sync.RWMutex
	userID    int64
	favorites []model.Favorite
	loading   bool
	lastError string
}

// NewFavoritesService 创建收藏协调器并挂接登出清理
func NewFavoritesService(client *api.Client, sessions *SessionStore) *FavoritesService {
	s := &FavoritesService{client: client}
	sessions.OnClear(s.Reset)
	return s
}

// SetActiveUser 设置活跃用户并触发一次初始加载
func (s *FavoritesService) SetActiveUser(userID int64) error {
	s.mu.Lock()
	s.userID = userID
	s.mu.Unlock()

	log.Printf("[Favorites] 活跃用户: %d", userID)
	return s.LoadFavorites()
}

// ActiveUser 当前活跃用户 ID，未设置返回 0
func (s *FavoritesService) ActiveUser() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

// LoadFavorites 全量拉取收藏列表并整体替换（单次赋值，无增量合并）
func (s *FavoritesService) LoadFavorites() error {
	s.mu.Lock()
	userID := s.userID
	s.loading = true
	s.mu.Unlock()

	if userID == 0 {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
		return errValidation("当前没有登录用户")
	}

	favorites, err := s.client.GetUserFavorites(userID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastError = err.Error()
		return err
	}
	s.favorites = favorites
	s.lastError = ""
	log.Printf("[Favorites] 已加载 %d 条收藏", len(favorites))
	return nil
}

// Favorites 当前列表的副本
func (s *FavoritesService) Favorites() []model.Favorite {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Favorite, len(s.favorites))
	copy(out, s.favorites)
	return out
}

// Loading 是否有加载进行中
func (s *FavoritesService) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// LastError 最近一次失败的消息，成功加载后清空
func (s *FavoritesService) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastError
}

// AddFavorite 添加收藏
// 要求已设置活跃用户且图书已持久化（有服务端 ID）；
// 成功后不在本地追加，而是整表重载，让服务端分配的字段成为权威
func (s *FavoritesService) AddFavorite(book *model.Book) error {
	userID := s.ActiveUser()
	if userID == 0 {
		s.setError("当前没有登录用户")
		return errValidation("当前没有登录用户")
	}
	if book == nil || book.ID == 0 {
		s.setError("图书缺少 ID")
		return errValidation("图书缺少 ID")
	}

	if _, err := s.client.AddFavorite(userID, book.ID); err != nil {
		s.setError(err.Error())
		return err
	}

	log.Printf("[Favorites] 已收藏《%s》", book.Title)
	return s.LoadFavorites()
}

// RemoveFavorite 删除收藏，成功后整表重载
func (s *FavoritesService) RemoveFavorite(favoriteID int64) error {
	if err := s.client.RemoveFavorite(favoriteID); err != nil {
		s.setError(err.Error())
		return err
	}
	return s.LoadFavorites()
}

// ToggleReadStatus 切换已读状态，成功后整表重载
// 新值取内存中当前值的取反；并发切换时后写的覆盖先写的，
// 重载保证所有观察者最终收敛到服务端的值
func (s *FavoritesService) ToggleReadStatus(favorite model.Favorite) error {
	if favorite.ID == 0 {
		s.setError("收藏缺少 ID")
		return errValidation("收藏缺少 ID")
	}

	if err := s.client.ToggleReadStatus(favorite.ID, !favorite.IsRead); err != nil {
		s.setError(err.Error())
		return err
	}
	return s.LoadFavorites()
}

// IsFavorite 内存中的成员判断，不发网络请求
// 只反映最近一次成功加载的结果
func (s *FavoritesService) IsFavorite(bookID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.favorites {
		if s.favorites[i].BookID == bookID {
			return true
		}
	}
	return false
}

// CheckFavorite 服务端查询是否已收藏（界面提示用）
func (s *FavoritesService) CheckFavorite(bookID int64) bool {
	userID := s.ActiveUser()
	if userID == 0 {
		return false
	}
	return s.client.CheckFavorite(userID, bookID)
}

// ClearError 清空错误消息
func (s *FavoritesService) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = ""
}

// Reset 清空全部状态（登出联动）
func (s *FavoritesService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = 0
	s.favorites = nil
	s.loading = false
	s.lastError = ""
}

func (s *FavoritesService) setError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = msg
}
