package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/user/hanashi/internal/api"
	"github.com/user/hanashi/internal/config"
	"github.com/user/hanashi/internal/localcache"
	"github.com/user/hanashi/internal/model"
	"github.com/user/hanashi/internal/service"
	"golang.org/x/term"
)

// app 客户端运行时的全部组件
type app struct {
	cfg       *config.Config
	client    *api.Client
	sessions  *service.SessionStore
	auth      *service.AuthService
	favorites *service.FavoritesService
	qr        *service.QRResolver
	admin     *service.AdminService
	cache     *localcache.Store
}

func main() {
	if err := godotenv.Load(); err == nil {
		log.Println("已加载 .env 配置")
	}

	var serverURL string

	rootCmd := &cobra.Command{
		Use:   "hanashi",
		Short: "HanashiNoMori 目录客户端",
		Long:  "HanashiNoMori 媒体目录的终端客户端：登录、浏览、收藏、扫码、管理。",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if serverURL != "" {
				cfg.ServerURL = serverURL
			}
			return run(cfg)
		},
	}
	rootCmd.Flags().StringVar(&serverURL, "server", "", "后端地址（默认取 HANASHI_SERVER_URL）")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	client := api.NewClient(cfg.ServerURL, cfg.HTTPTimeout)
	sessions := service.NewSessionStore()

	a := &app{
		cfg:       cfg,
		client:    client,
		sessions:  sessions,
		auth:      service.NewAuthService(client, sessions),
		favorites: service.NewFavoritesService(client, sessions),
	}
	a.qr = service.NewQRResolver(client, a.favorites)

	// 本地快照打不开不影响在线功能
	if cache, err := localcache.Open(cfg.CachePath); err == nil {
		a.cache = cache
		defer cache.Close()
	} else {
		log.Printf("本地快照不可用: %v", err)
	}

	fmt.Printf("HanashiNoMori 客户端，后端: %s\n", cfg.ServerURL)
	fmt.Println("输入 help 查看命令，exit 退出。")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\n> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			fmt.Println("再见！")
			return nil
		}
		a.dispatch(scanner, line)
	}
	return nil
}

func (a *app) dispatch(sc *bufio.Scanner, line string) {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "help":
		printHelp()
	case "login":
		a.handleLogin(sc)
	case "register":
		a.handleRegister(sc)
	case "logout":
		a.auth.Logout()
		a.admin = nil
		fmt.Println("已退出登录")
	case "whoami":
		a.handleWhoami()
	case "books":
		a.handleBooks()
	case "category":
		a.handleCategory(args)
	case "search":
		a.handleSearch(args)
	case "favs":
		a.handleFavorites()
	case "fav":
		a.handleAddFavorite(args)
	case "unfav":
		a.handleRemoveFavorite(args)
	case "toggle":
		a.handleToggleRead(args)
	case "qr":
		a.handleQR(args)
	case "offline":
		a.handleOffline()
	case "users":
		a.handleAdminUsers()
	case "deluser":
		a.handleAdminDeleteUser(args)
	case "addbook":
		a.handleAdminAddBook(sc)
	case "delbook":
		a.handleAdminDeleteBook(args)
	default:
		fmt.Println("未知命令，输入 help 查看可用命令")
	}
}

func printHelp() {
	fmt.Println("账号:   login | register | logout | whoami")
	fmt.Println("目录:   books | category <分类> | search <关键词>")
	fmt.Println("收藏:   favs | fav <图书ID> | unfav <收藏ID> | toggle <收藏ID>")
	fmt.Println("扫码:   qr <载荷>（如 qr BOOK:3）")
	fmt.Println("离线:   offline（浏览本地快照）")
	fmt.Println("管理:   users | deluser <用户ID> | addbook | delbook <图书ID>")
}

// readPassword 读取密码（不回显）
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", err
	}
	fmt.Println()
	return strings.TrimSpace(string(raw)), nil
}

func readLine(sc *bufio.Scanner, prompt string) string {
	fmt.Print(prompt)
	if !sc.Scan() {
		return ""
	}
	return strings.TrimSpace(sc.Text())
}

func parseID(args []string) (int64, bool) {
	if len(args) == 0 {
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// ==================== 账号 ====================

func (a *app) handleLogin(sc *bufio.Scanner) {
	identifier := readLine(sc, "用户名或邮箱: ")
	password, err := readPassword("密码: ")
	if err != nil {
		fmt.Println("读取密码失败")
		return
	}

	if err := a.auth.Login(identifier, password); err != nil {
		fmt.Printf("登录失败: %v\n", err)
		a.auth.ClearError()
		return
	}

	session := a.sessions.Current()
	fmt.Printf("欢迎，%s！\n", session.Username)
	a.afterLogin(session)
}

func (a *app) handleRegister(sc *bufio.Scanner) {
	username := readLine(sc, "用户名: ")
	email := readLine(sc, "邮箱: ")
	password, err := readPassword("密码: ")
	if err != nil {
		fmt.Println("读取密码失败")
		return
	}

	if err := a.auth.Register(username, email, password); err != nil {
		fmt.Printf("注册失败: %v\n", err)
		a.auth.ClearError()
		return
	}

	session := a.sessions.Current()
	fmt.Printf("注册成功，欢迎 %s！\n", session.Username)
	a.afterLogin(session)
}

// afterLogin 登录后的联动：设置收藏的活跃用户，管理员再挂上管理协调器
func (a *app) afterLogin(session *model.UserSession) {
	if err := a.favorites.SetActiveUser(session.UserID); err != nil {
		fmt.Printf("加载收藏失败: %v\n", err)
	}
	a.snapshotFavorites()

	if session.IsAdmin {
		a.admin = service.NewAdminService(a.client, session.UserID)
		a.sessions.OnClear(a.admin.Reset)
		fmt.Println("（管理员模式已启用）")
	}
}

func (a *app) handleWhoami() {
	session := a.sessions.Current()
	if session == nil {
		fmt.Println("未登录")
		return
	}
	role := "普通用户"
	if session.IsAdmin {
		role = "管理员"
	}
	fmt.Printf("%s <%s> (%s)\n", session.Username, session.Email, role)
}

// ==================== 目录 ====================

func (a *app) handleBooks() {
	books, err := a.client.GetAllBooks()
	if err != nil {
		fmt.Printf("获取图书失败: %v\n", err)
		return
	}
	a.printBooks(books)
	a.snapshotBooks(books)
}

func (a *app) handleCategory(args []string) {
	if len(args) == 0 {
		fmt.Printf("可用分类: %s\n", strings.Join(model.Categories, " / "))
		return
	}
	books, err := a.client.GetBooksByCategory(args[0])
	if err != nil {
		fmt.Printf("获取图书失败: %v\n", err)
		return
	}
	a.printBooks(books)
	a.snapshotBooks(books)
}

func (a *app) handleSearch(args []string) {
	if len(args) == 0 {
		fmt.Println("用法: search <关键词>")
		return
	}
	books, err := a.client.SearchBooks(strings.Join(args, " "))
	if err != nil {
		fmt.Printf("搜索失败: %v\n", err)
		return
	}
	a.printBooks(books)
}

func (a *app) printBooks(books []model.Book) {
	if len(books) == 0 {
		fmt.Println("（空）")
		return
	}
	for i := range books {
		b := &books[i]
		marker := " "
		if a.favorites.IsFavorite(b.ID) {
			marker = "♥"
		}
		fmt.Printf("%s [%d] 《%s》 %s · %s\n", marker, b.ID, b.Title, b.Author, b.Category)
	}
}

// ==================== 收藏 ====================

func (a *app) handleFavorites() {
	if err := a.favorites.LoadFavorites(); err != nil {
		fmt.Printf("加载收藏失败: %v\n", err)
		return
	}
	favorites := a.favorites.Favorites()
	if len(favorites) == 0 {
		fmt.Println("还没有收藏")
		return
	}
	for i := range favorites {
		f := &favorites[i]
		read := "未读"
		if f.IsRead {
			read = "已读"
		}
		fmt.Printf("[%d] 《%s》 %s · %s\n", f.ID, f.Book.Title, f.Book.Author, read)
	}
	a.snapshotFavorites()
}

func (a *app) handleAddFavorite(args []string) {
	bookID, ok := parseID(args)
	if !ok {
		fmt.Println("用法: fav <图书ID>")
		return
	}

	book, err := a.client.GetBookByID(bookID)
	if err != nil {
		fmt.Printf("获取图书失败: %v\n", err)
		return
	}
	if err := a.favorites.AddFavorite(book); err != nil {
		fmt.Printf("收藏失败: %v\n", err)
		return
	}
	fmt.Printf("《%s》已加入收藏\n", book.Title)
	a.snapshotFavorites()
}

func (a *app) handleRemoveFavorite(args []string) {
	favoriteID, ok := parseID(args)
	if !ok {
		fmt.Println("用法: unfav <收藏ID>")
		return
	}
	if err := a.favorites.RemoveFavorite(favoriteID); err != nil {
		fmt.Printf("取消收藏失败: %v\n", err)
		return
	}
	fmt.Println("已取消收藏")
	a.snapshotFavorites()
}

func (a *app) handleToggleRead(args []string) {
	favoriteID, ok := parseID(args)
	if !ok {
		fmt.Println("用法: toggle <收藏ID>")
		return
	}

	for _, f := range a.favorites.Favorites() {
		if f.ID == favoriteID {
			if err := a.favorites.ToggleReadStatus(f); err != nil {
				fmt.Printf("更新失败: %v\n", err)
			} else {
				fmt.Println("已更新阅读状态")
				a.snapshotFavorites()
			}
			return
		}
	}
	fmt.Println("收藏不存在，请先执行 favs 刷新列表")
}

func (a *app) handleQR(args []string) {
	if len(args) == 0 {
		fmt.Println("用法: qr <载荷>，如 qr BOOK:3")
		return
	}

	message, err := a.qr.Resolve(args[0])
	if err != nil {
		fmt.Printf("扫码失败: %v\n", err)
		return
	}
	fmt.Println(message)
	a.snapshotFavorites()
}

// ==================== 离线快照 ====================

func (a *app) handleOffline() {
	if a.cache == nil {
		fmt.Println("本地快照不可用")
		return
	}

	items, err := a.cache.Library()
	if err != nil {
		fmt.Printf("读取快照失败: %v\n", err)
		return
	}
	if len(items) == 0 {
		fmt.Println("快照为空，先在线浏览一次")
		return
	}
	fmt.Println("本地收藏快照:")
	for i := range items {
		it := &items[i]
		read := "未读"
		if it.IsRead {
			read = "已读"
		}
		fmt.Printf("  《%s》 %s · %s\n", it.Title, it.Author, read)
	}
}

func (a *app) snapshotBooks(books []model.Book) {
	if a.cache == nil {
		return
	}
	if err := a.cache.SaveBooks(books); err != nil {
		log.Printf("写入快照失败: %v", err)
	}
}

func (a *app) snapshotFavorites() {
	if a.cache == nil {
		return
	}
	if err := a.cache.SaveFavorites(a.favorites.Favorites()); err != nil {
		log.Printf("写入快照失败: %v", err)
	}
}

// ==================== 管理 ====================

func (a *app) requireAdmin() bool {
	if a.admin == nil {
		fmt.Println("需要管理员账号")
		return false
	}
	return true
}

func (a *app) handleAdminUsers() {
	if !a.requireAdmin() {
		return
	}
	if err := a.admin.LoadUsers(); err != nil {
		fmt.Printf("加载用户失败: %v\n", err)
		return
	}
	for _, u := range a.admin.Users() {
		role := ""
		if u.IsAdmin {
			role = "（管理员）"
		}
		fmt.Printf("[%d] %s <%s> %s\n", u.UserID, u.Username, u.Email, role)
	}
}

func (a *app) handleAdminDeleteUser(args []string) {
	if !a.requireAdmin() {
		return
	}
	userID, ok := parseID(args)
	if !ok {
		fmt.Println("用法: deluser <用户ID>")
		return
	}
	if err := a.admin.DeleteUser(userID); err != nil {
		fmt.Printf("删除失败: %v\n", err)
		return
	}
	fmt.Println(a.admin.SuccessMessage())
	a.admin.ClearMessages()
}

func (a *app) handleAdminAddBook(sc *bufio.Scanner) {
	if !a.requireAdmin() {
		return
	}

	book := model.Book{
		Title:    readLine(sc, "书名: "),
		Author:   readLine(sc, "作者: "),
		Category: readLine(sc, fmt.Sprintf("分类（%s）: ", strings.Join(model.Categories, "/"))),
	}
	book.Description = readLine(sc, "简介（可空）: ")

	if err := a.admin.CreateBook(book); err != nil {
		fmt.Printf("创建失败: %v\n", err)
		return
	}
	fmt.Println(a.admin.SuccessMessage())
	a.admin.ClearMessages()
}

func (a *app) handleAdminDeleteBook(args []string) {
	if !a.requireAdmin() {
		return
	}
	bookID, ok := parseID(args)
	if !ok {
		fmt.Println("用法: delbook <图书ID>")
		return
	}
	if err := a.admin.DeleteBook(bookID); err != nil {
		fmt.Printf("删除失败: %v\n", err)
		return
	}
	fmt.Println(a.admin.SuccessMessage())
	a.admin.ClearMessages()
}
