package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Thejairex/Filmes-Mvp/internal/config"
	"github.com/Thejairex/Filmes-Mvp/internal/etl"
	"github.com/Thejairex/Filmes-Mvp/internal/service"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("未找到 .env 文件，使用系统环境变量")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 命令行参数优先于环境变量
	moviesPath := flag.String("movies", cfg.RawMoviesPath, "原始电影 CSV")
	creditsPath := flag.String("credits", cfg.RawCreditsPath, "原始人员 CSV")
	outDir := flag.String("out", cfg.CleanDir, "输出目录")
	genreMode := flag.String("genres", cfg.GenreMode, "类型列模式: static 或 batch")
	flag.Parse()

	var vocabulary *etl.Vocabulary
	switch *genreMode {
	case config.GenreModeStatic:
		vocabulary, err = etl.LoadVocabulary(cfg.GenreVocabularyPath)
		if err != nil {
			log.Fatalf("加载类型词表失败: %v", err)
		}
		log.Printf("[ETL] 使用类型词表 %s（%d 个类型）", vocabulary.Version, len(vocabulary.Genres))
	case config.GenreModeBatch:
		log.Println("[ETL] 类型列按本批次数据生成")
	default:
		log.Fatalf("未知的类型列模式: %s", *genreMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc := service.NewETLService(service.ETLOptions{
		MoviesPath:  *moviesPath,
		CreditsPath: *creditsPath,
		OutputDir:   *outDir,
		Vocabulary:  vocabulary,
	})

	result, err := svc.Run(ctx)
	if err != nil {
		log.Printf("ETL 失败: %v", err)
		os.Exit(1)
	}

	for _, r := range result.Reports() {
		log.Printf("[ETL] %s: %d -> %d 行", r.Table, r.InputRows, r.OutputRows)
	}
}
