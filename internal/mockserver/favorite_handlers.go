package mockserver

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/user/hanashi/internal/repository"
	"github.com/user/hanashi/internal/utils"
)

type addFavoriteRequest struct {
	UserID int64 `json:"userId" binding:"required"`
	BookID int64 `json:"bookId" binding:"required"`
}

type toggleReadRequest struct {
	FavoriteID int64 `json:"favoriteId"`
	IsRead     bool  `json:"isRead"`
}

// ListFavorites 用户收藏列表
func (s *Server) ListFavorites(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		utils.BadRequest(c, "无效的用户 ID")
		return
	}

	favorites, err := s.Repos.Favorite.ListByUser(userID)
	if err != nil {
		utils.InternalServerError(c, "查询收藏失败")
		return
	}

	out := make([]gin.H, 0, len(favorites))
	for _, f := range favorites {
		out = append(out, favoritePayload(f, true))
	}
	utils.Success(c, out)
}

// AddFavorite 添加收藏
func (s *Server) AddFavorite(c *gin.Context) {
	var req addFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "userId 和 bookId 均为必填")
		return
	}

	book, err := s.Repos.Book.FindByID(req.BookID)
	if err != nil {
		utils.InternalServerError(c, "查询图书失败")
		return
	}
	if book == nil {
		utils.NotFound(c, "图书不存在")
		return
	}

	favorite, err := s.Repos.Favorite.Add(req.UserID, req.BookID)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateFavorite) {
			utils.BadRequest(c, err.Error())
			return
		}
		utils.InternalServerError(c, "添加收藏失败")
		return
	}
	if s.EmbedBookOnCreate {
		favorite.Book = book
	}

	utils.SuccessWithMessage(c, "收藏成功", favoritePayload(favorite, s.EmbedBookOnCreate))
}

// RemoveFavorite 删除收藏
func (s *Server) RemoveFavorite(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.BadRequest(c, "无效的收藏 ID")
		return
	}

	favorite, err := s.Repos.Favorite.FindByID(id)
	if err != nil {
		utils.InternalServerError(c, "查询收藏失败")
		return
	}
	if favorite == nil {
		utils.NotFound(c, "收藏不存在")
		return
	}

	if err := s.Repos.Favorite.Delete(id); err != nil {
		utils.InternalServerError(c, "删除收藏失败")
		return
	}
	utils.SuccessWithMessage(c, "已取消收藏", nil)
}

// ToggleRead 更新已读状态
func (s *Server) ToggleRead(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.BadRequest(c, "无效的收藏 ID")
		return
	}

	var req toggleReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请求体格式有误")
		return
	}

	favorite, err := s.Repos.Favorite.FindByID(id)
	if err != nil {
		utils.InternalServerError(c, "查询收藏失败")
		return
	}
	if favorite == nil {
		utils.NotFound(c, "收藏不存在")
		return
	}

	if err := s.Repos.Favorite.SetRead(id, req.IsRead); err != nil {
		utils.InternalServerError(c, "更新已读状态失败")
		return
	}

	favorite.IsRead = req.IsRead
	utils.SuccessWithMessage(c, "已更新", favoritePayload(favorite, true))
}

// CheckFavorite 查询是否已收藏
func (s *Server) CheckFavorite(c *gin.Context) {
	userID, err1 := strconv.ParseInt(c.Param("userId"), 10, 64)
	bookID, err2 := strconv.ParseInt(c.Param("bookId"), 10, 64)
	if err1 != nil || err2 != nil {
		utils.BadRequest(c, "无效的 ID")
		return
	}

	favorite, err := s.Repos.Favorite.FindByUserAndBook(userID, bookID)
	if err != nil {
		utils.InternalServerError(c, "查询收藏失败")
		return
	}
	if favorite == nil {
		utils.Success(c, nil)
		return
	}
	utils.Success(c, favoritePayload(favorite, true))
}

func favoritePayload(f *repository.Favorite, embedBook bool) gin.H {
	payload := gin.H{
		"id":      f.ID,
		"userId":  f.UserID,
		"bookId":  f.BookID,
		"isRead":  f.IsRead,
		"addedAt": f.AddedAt.Format(time.RFC3339),
	}
	if embedBook && f.Book != nil {
		payload["book"] = bookPayload(f.Book)
	}
	return payload
}
