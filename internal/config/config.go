package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// 类型列模式
const (
	GenreModeStatic = "static"
	GenreModeBatch  = "batch"
)

// Config 应用配置
type Config struct {
	Env  string `validate:"required"`
	Port string `validate:"required,numeric"`

	// ETL 输入输出
	RawMoviesPath       string `validate:"required"`
	RawCreditsPath      string `validate:"required"`
	CleanDir            string `validate:"required"`
	GenreMode           string `validate:"oneof=static batch"`
	GenreVocabularyPath string // 为空时使用内置词表

	// 查询存储
	StoreDriver string `validate:"oneof=sqlite postgres"`
	DatabaseURL string `validate:"required"`

	// 推荐
	RecommenderSize    int           `validate:"gt=0"`
	RecommendLimit     int           `validate:"gt=0,lte=50"`
	RecommendCacheSize int           `validate:"gt=0"`
	CacheTTL           time.Duration `validate:"gte=0"`
}

// Load 加载配置
func Load() (*Config, error) {
	driver := getEnv("STORE_DRIVER", "sqlite")

	var dbURL string
	if driver == "postgres" {
		dbUser := getEnv("DB_USER", "postgres")
		dbPass := getEnv("DB_PASSWORD", "postgres")
		dbHost := getEnv("DB_HOST", "localhost")
		dbPort := getEnv("DB_PORT", "5432")
		dbName := getEnv("DB_NAME", "filmes")
		dbSSL := getEnv("DB_SSLMODE", "disable")

		dbURL = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
			dbUser, dbPass, dbHost, dbPort, dbName, dbSSL)
	} else {
		// 内存库，进程退出即丢弃
		dbURL = "file:filmes?mode=memory&cache=shared"
	}

	cfg := &Config{
		Env:                 getEnv("APP_ENV", "development"),
		Port:                getEnv("PORT", "5005"),
		RawMoviesPath:       getEnv("RAW_MOVIES_PATH", "Dataset/movies_dataset.csv"),
		RawCreditsPath:      getEnv("RAW_CREDITS_PATH", "Dataset/credits.csv"),
		CleanDir:            getEnv("CLEAN_DIR", "Dataset/Cleaned"),
		GenreMode:           getEnv("GENRE_MODE", GenreModeStatic),
		GenreVocabularyPath: getEnv("GENRE_VOCABULARY_PATH", ""),
		StoreDriver:         driver,
		DatabaseURL:         getEnv("DATABASE_URL", dbURL),
		RecommenderSize:     getEnvInt("RECOMMENDER_SIZE", 2000),
		RecommendLimit:      getEnvInt("RECOMMEND_LIMIT", 5),
		RecommendCacheSize:  getEnvInt("RECOMMEND_CACHE_SIZE", 1024),
		CacheTTL:            time.Duration(getEnvInt("CACHE_TTL_MINUTES", 10)) * time.Minute,
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("配置无效: %w", err)
	}
	return cfg, nil
}

// CleanPath 清洗结果目录下的文件路径
func (c *Config) CleanPath(name string) string {
	return filepath.Join(c.CleanDir, name)
}

// IsProduction 是否生产环境
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt 读取整数环境变量，无法解析时返回 -1 交给校验报错
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return -1
	}
	return n
}
