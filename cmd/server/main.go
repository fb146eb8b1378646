package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Thejairex/Filmes-Mvp/internal/config"
	"github.com/Thejairex/Filmes-Mvp/internal/handler"
	"github.com/Thejairex/Filmes-Mvp/internal/middleware"
	"github.com/Thejairex/Filmes-Mvp/internal/repository"
	"github.com/Thejairex/Filmes-Mvp/internal/router"
	"github.com/Thejairex/Filmes-Mvp/internal/service"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// 加载环境变量
	if err := godotenv.Load(); err != nil {
		log.Println("未找到 .env 文件，使用系统环境变量")
	}

	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 初始化查询存储
	db, err := repository.InitDB(cfg.StoreDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	sqlDB, _ := db.DB()
	defer sqlDB.Close()

	repos := repository.NewRepositories(db)

	// 从清洗结果导入，清洗结果需先由 cmd/etl 生成
	_, err = repos.ImportCleaned(repository.CleanFiles{
		Movies: cfg.CleanPath(service.MoviesCleanFile),
		Cast:   cfg.CleanPath(service.CastCleanFile),
		Crew:   cfg.CleanPath(service.CrewCleanFile),
	})
	if err != nil {
		log.Fatalf("导入清洗结果失败（是否已运行 etl？）: %v", err)
	}

	// 构建推荐器，只取前 RecommenderSize 部
	movies, err := repos.Movie.ListOrdered(cfg.RecommenderSize)
	if err != nil {
		log.Fatalf("读取电影失败: %v", err)
	}
	engine := service.NewRecommender(movies, cfg.RecommenderSize)

	querySvc := service.NewQueryService(repos, cfg.CacheTTL)
	recommendSvc := service.NewRecommendationService(engine, cfg.RecommendLimit, cfg.RecommendCacheSize, cfg.CacheTTL)

	// 初始化 Gin
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	// 启用 gzip，默认压缩级别
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 中间件
	r.Use(middleware.Logger())
	r.Use(middleware.CORS())

	h := handler.NewHandler(cfg, querySvc, recommendSvc)
	router.RegisterRoutes(r, h)

	srv := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	// 在 goroutine 中启动服务器，这样我们就可以监听信号
	go func() {
		log.Printf("服务器启动于 http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("服务器启动失败: %v", err)
		}
	}()

	// 等待中断信号以优雅地关闭服务器
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("正在关闭服务器...")

	// 5 秒超时上下文用于关闭过程
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("服务器强制关闭:", err)
	}

	log.Println("服务器已退出")
}
