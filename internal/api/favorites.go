package api

import (
	"errors"
	"fmt"
	"log"

	"github.com/user/hanashi/internal/model"
)

// ErrBookDataMissing 补查图书失败，不能返回缺少图书数据的收藏
var ErrBookDataMissing = errors.New("无法获取图书数据")

// GetUserFavorites 获取某用户全部收藏
// 后端偶尔会返回没有内嵌图书的条目，这类条目无法展示，直接丢弃
func (c *Client) GetUserFavorites(userID int64) ([]model.Favorite, error) {
	var resp FavoritesListResponse
	if err := c.getJSON(fmt.Sprintf("/api/favorites/user/%d", userID), nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, errors.New(pick(resp.Message, "获取收藏列表失败"))
	}

	favorites := make([]model.Favorite, 0, len(resp.Data))
	for i := range resp.Data {
		dto := &resp.Data[i]
		if dto.Book == nil {
			log.Printf("[Favorites] 收藏 %d 缺失图书数据，跳过", dto.ID)
			continue
		}
		favorites = append(favorites, dto.toModel(dto.Book.toModel()))
	}
	return favorites, nil
}

// AddFavorite 添加收藏
// 对账规则：创建响应如果内嵌了完整图书则直接使用；
// 后端有时会漏掉内嵌对象，此时按 ID 补查一次，补查失败整体算失败
func (c *Client) AddFavorite(userID, bookID int64) (*model.Favorite, error) {
	req := AddFavoriteRequest{UserID: userID, BookID: bookID}

	var resp FavoriteResponse
	if err := c.postJSON("/api/favorites", nil, req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, errors.New(pick(resp.Message, "添加收藏失败"))
	}
	if resp.Data == nil {
		return nil, errors.New("响应缺失收藏数据")
	}

	dto := resp.Data
	if dto.Book != nil {
		fav := dto.toModel(dto.Book.toModel())
		return &fav, nil
	}

	// 已知的后端不一致：创建响应不带图书，补查一次
	log.Printf("[Favorites] 创建响应未内嵌图书，补查 ID %d", bookID)
	book, err := c.GetBookByID(bookID)
	if err != nil {
		log.Printf("[Favorites] 补查图书失败: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrBookDataMissing, err)
	}

	fav := dto.toModel(book)
	return &fav, nil
}

// RemoveFavorite 删除收藏
func (c *Client) RemoveFavorite(favoriteID int64) error {
	var resp FavoriteResponse
	if err := c.deleteJSON(fmt.Sprintf("/api/favorites/%d", favoriteID), nil, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return errors.New(pick(resp.Message, "删除收藏失败"))
	}
	return nil
}

// ToggleReadStatus 更新收藏的已读状态
func (c *Client) ToggleReadStatus(favoriteID int64, isRead bool) error {
	req := ToggleReadRequest{FavoriteID: favoriteID, IsRead: isRead}

	var resp FavoriteResponse
	if err := c.putJSON(fmt.Sprintf("/api/favorites/%d/toggle-read", favoriteID), nil, req, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return errors.New(pick(resp.Message, "更新已读状态失败"))
	}
	return nil
}

// CheckFavorite 服务端查询某本书是否已被收藏
// 查询失败按未收藏处理，本接口只用于界面提示
func (c *Client) CheckFavorite(userID, bookID int64) bool {
	var resp FavoriteResponse
	if err := c.getJSON(fmt.Sprintf("/api/favorites/check/%d/%d", userID, bookID), nil, &resp); err != nil {
		return false
	}
	return resp.Success && resp.Data != nil
}
