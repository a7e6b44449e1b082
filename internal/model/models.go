package model

// 目录分类，与后端保持一致
const (
	CategoryLibro   = "Libro"
	CategoryManga   = "Manga"
	CategoryManhwa  = "Manhwa"
	CategoryDonghua = "Donghua"
)

// Categories 所有可用分类
var Categories = []string{CategoryLibro, CategoryManga, CategoryManhwa, CategoryDonghua}

// Book 目录条目
type Book struct {
	ID          int64  `json:"id"` // 创建前为 0，由服务端分配后不可变
	Title       string `json:"title"`
	Author      string `json:"author"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
	CoverURL    string `json:"coverUrl,omitempty"`
	ISBN        string `json:"isbn,omitempty"`
}

// Favorite 收藏
type Favorite struct {
	ID      int64  `json:"id"`
	UserID  int64  `json:"userId"`
	BookID  int64  `json:"bookId"`
	Book    *Book  `json:"book,omitempty"` // 服务端可能不返回，需补查（见 api 包）
	IsRead  bool   `json:"isRead"`
	AddedAt string `json:"addedAt,omitempty"`
}

// UserSession 当前登录用户会话
// 不变式：会话一旦存在，UserID 必不为 0
type UserSession struct {
	UserID   int64
	Username string
	Email    string
	Token    string // 后端凭证，客户端不解析
	IsAdmin  bool
}

// User 用户信息（管理端视角）
type User struct {
	UserID    int64  `json:"userId"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"isAdmin"`
	CreatedAt string `json:"createdAt,omitempty"`
}
