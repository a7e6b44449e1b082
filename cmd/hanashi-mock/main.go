package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/user/hanashi/internal/config"
	"github.com/user/hanashi/internal/mockserver"
	"github.com/user/hanashi/internal/model"
	"github.com/user/hanashi/internal/repository"
)

func main() {
	// 加载环境变量
	if err := godotenv.Load(); err != nil {
		log.Println("未找到 .env 文件，使用系统环境变量")
	}

	cfg := config.Load()

	// 初始化数据库
	db, err := repository.InitDB(cfg.MockDBPath)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	repos := repository.NewRepositories(db)

	// 首次启动时写入演示数据
	if err := seed(repos); err != nil {
		log.Fatalf("初始化演示数据失败: %v", err)
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &http.Server{
		Addr:           ":" + cfg.MockPort,
		Handler:        mockserver.New(repos, cfg).Router(),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	// 在 goroutine 中启动服务器，主协程监听退出信号
	go func() {
		log.Printf("模拟后端启动于 http://localhost:%s", cfg.MockPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("服务器启动失败: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("正在关闭服务器...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("服务器强制关闭:", err)
	}

	log.Println("服务器已退出")
}

// seed 空库时创建管理员账号和几本演示图书
func seed(repos *repository.Repositories) error {
	count, err := repos.User.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	admin, err := repos.User.Create("admin", "admin@hanashi.local", "admin123", true)
	if err != nil {
		return err
	}
	log.Printf("已创建管理员账号 %s（密码 admin123）", admin.Username)

	books := []repository.Book{
		{Title: "火之鸟", Author: "手冢治虫", Category: model.CategoryManga, Description: "跨越时空的生命轮回史诗"},
		{Title: "神之塔", Author: "SIU", Category: model.CategoryManhwa, Description: "少年为寻找挚友踏上爬塔之旅"},
		{Title: "雾山五行", Author: "林魂", Category: model.CategoryDonghua, Description: "水墨画风的妖兽退治故事"},
		{Title: "百年孤独", Author: "加西亚·马尔克斯", Category: model.CategoryLibro, Description: "布恩迪亚家族七代人的兴衰"},
	}
	for i := range books {
		if err := repos.Book.Create(&books[i]); err != nil {
			return err
		}
	}
	log.Printf("已写入 %d 本演示图书", len(books))
	return nil
}
