package api

import "github.com/user/hanashi/internal/model"

// pick 依次返回第一个非零值
// 后端家族的通病：同一字段有时放在 data 里，有时放在顶层，
// 统一按「data 字段 → 顶层字段 → 调用方默认值」的顺序解析
func pick[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// ==================== 认证 ====================

// LoginRequest 登录请求
type LoginRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail"`
	Password        string `json:"password"`
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserData data 内的用户字段
type UserData struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Token    string `json:"token"`
	IsAdmin  bool   `json:"isAdmin"`
}

// AuthResponse 登录/注册统一响应
// 顶层字段与 data 并存是为了兼容不同版本的后端
type AuthResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Data    *UserData `json:"data"`

	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Token    string `json:"token"`
	IsAdmin  bool   `json:"isAdmin"`
}

// ==================== 图书 ====================

// BookDto 图书传输结构
type BookDto struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Category    string `json:"category"`
	Description string `json:"description"`
	CoverURL    string `json:"coverUrl"`
	ISBN        string `json:"isbn"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// BookResponse 单本图书响应
type BookResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    *BookDto `json:"data"`
}

// BooksListResponse 图书列表响应
type BooksListResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Data    []BookDto `json:"data"`
}

func (d *BookDto) toModel() *model.Book {
	return &model.Book{
		ID:          d.ID,
		Title:       d.Title,
		Author:      d.Author,
		Category:    d.Category,
		Description: d.Description,
		CoverURL:    d.CoverURL,
		ISBN:        d.ISBN,
	}
}

// ==================== 收藏 ====================

// FavoriteDto 收藏传输结构
type FavoriteDto struct {
	ID      int64    `json:"id"`
	UserID  int64    `json:"userId"`
	BookID  int64    `json:"bookId"`
	Book    *BookDto `json:"book"` // 创建后可能缺失，需补查
	IsRead  bool     `json:"isRead"`
	AddedAt string   `json:"addedAt"`
}

// FavoriteResponse 单条收藏响应
type FavoriteResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Data    *FavoriteDto `json:"data"`
}

// FavoritesListResponse 收藏列表响应
type FavoritesListResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Data    []FavoriteDto `json:"data"`
}

// AddFavoriteRequest 添加收藏请求
type AddFavoriteRequest struct {
	UserID int64 `json:"userId"`
	BookID int64 `json:"bookId"`
}

// ToggleReadRequest 切换已读状态请求
type ToggleReadRequest struct {
	FavoriteID int64 `json:"favoriteId"`
	IsRead     bool  `json:"isRead"`
}

func (d *FavoriteDto) toModel(book *model.Book) model.Favorite {
	return model.Favorite{
		ID:      d.ID,
		UserID:  d.UserID,
		BookID:  d.BookID,
		Book:    book,
		IsRead:  d.IsRead,
		AddedAt: d.AddedAt,
	}
}

// ==================== 管理端 ====================

// UserDto 用户传输结构（管理端）
type UserDto struct {
	UserID    int64  `json:"userId"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"isAdmin"`
	CreatedAt string `json:"createdAt"`
}

// UserResponse 单个用户响应
type UserResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    *UserDto `json:"data"`
}

// UsersListResponse 用户列表响应
type UsersListResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Data    []UserDto `json:"data"`
}

// CreateUserRequest 创建用户请求
type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"isAdmin"`
	UserID   int64  `json:"userId,omitempty"` // 发起操作的管理员 ID
}

// UpdateUserRequest 更新用户请求，nil 字段表示不修改
type UpdateUserRequest struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
	IsAdmin  *bool   `json:"isAdmin,omitempty"`
	UserID   int64   `json:"userId,omitempty"` // 发起操作的管理员 ID
}

// CreateBookRequest 创建图书请求（管理端）
type CreateBookRequest struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
	CoverURL    string `json:"coverUrl,omitempty"`
	ISBN        string `json:"isbn,omitempty"`
	UserID      int64  `json:"userId,omitempty"` // 发起操作的管理员 ID
}

// UpdateBookRequest 更新图书请求，nil 字段表示不修改
type UpdateBookRequest struct {
	Title       *string `json:"title,omitempty"`
	Author      *string `json:"author,omitempty"`
	Category    *string `json:"category,omitempty"`
	Description *string `json:"description,omitempty"`
	CoverURL    *string `json:"coverUrl,omitempty"`
	ISBN        *string `json:"isbn,omitempty"`
	UserID      int64   `json:"userId,omitempty"` // 发起操作的管理员 ID
}

// DeleteResponse 删除响应，data 内容不做约定
type DeleteResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

func (d *UserDto) toModel() model.User {
	return model.User{
		UserID:    d.UserID,
		Username:  d.Username,
		Email:     d.Email,
		IsAdmin:   d.IsAdmin,
		CreatedAt: d.CreatedAt,
	}
}
