package service

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/user/hanashi/internal/api"
)

// 二维码约定格式：前缀标签 + ":" + 十进制图书 ID，如 BOOK:123
const qrPrefix = "BOOK"

var (
	// ErrInvalidFormat 载荷不符合 BOOK:ID 格式，不发起任何网络请求
	ErrInvalidFormat = errors.New("无效的二维码，格式应为 BOOK:ID")
	// ErrNoActiveUser 没有登录用户，无法收藏
	ErrNoActiveUser = errors.New("当前没有登录用户")
)

// QRResolver 二维码解析流水线
// 扫描载荷 → 解析图书 ID → 查图书 → 加收藏 → 重载收藏列表
// 每一步失败都是本次扫描的终态，不做重试
type QRResolver struct {
	client    *api.Client
	favorites *FavoritesService
}

// NewQRResolver 创建二维码解析器
func NewQRResolver(client *api.Client, favorites *FavoritesService) *QRResolver {
	return &QRResolver{client: client, favorites: favorites}
}

// Resolve 处理一条扫描载荷
// 成功返回包含书名的提示消息；失败返回可区分的错误：
// ErrInvalidFormat / ErrNoActiveUser / 包装后的查询或收藏错误
func (r *QRResolver) Resolve(payload string) (string, error) {
	bookID, ok := parsePayload(payload)
	if !ok {
		return "", ErrInvalidFormat
	}

	if r.favorites.ActiveUser() == 0 {
		return "", ErrNoActiveUser
	}

	log.Printf("[QR] 识别到图书 ID: %d", bookID)

	// 先查图书，查不到就不再尝试收藏
	book, err := r.client.GetBookByID(bookID)
	if err != nil {
		return "", fmt.Errorf("图书不存在: %w", err)
	}

	// AddFavorite 内部完成对账与整表重载
	if err := r.favorites.AddFavorite(book); err != nil {
		return "", fmt.Errorf("无法添加收藏: %w", err)
	}

	return fmt.Sprintf("《%s》已加入收藏", book.Title), nil
}

// parsePayload 解析载荷，前缀大小写不敏感
func parsePayload(payload string) (int64, bool) {
	parts := strings.SplitN(payload, ":", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], qrPrefix) {
		return 0, false
	}

	bookID, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil || bookID <= 0 {
		return 0, false
	}
	return bookID, true
}
