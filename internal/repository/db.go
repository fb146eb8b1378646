package repository

import (
	"errors"
	"fmt"

	"github.com/Thejairex/Filmes-Mvp/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrNotFound 查询的记录不存在
var ErrNotFound = errors.New("record not found")

// 查询存储驱动
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// InitDB 初始化查询存储
// 存储只是清洗结果的查询索引，每次启动都会从 CSV 重新导入
func InitDB(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverSQLite:
		dialector = sqlite.Open(dsn)
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("不支持的存储驱动: %s", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("无法连接数据库: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库 ping 失败: %w", err)
	}

	// 设置连接池；内存 sqlite 每个连接都是独立的库，只能用一个连接
	if driver == DriverSQLite {
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
	}

	if err := db.AutoMigrate(&model.Movie{}, &model.CastCredit{}, &model.CrewCredit{}); err != nil {
		return nil, fmt.Errorf("迁移表结构失败: %w", err)
	}

	return db, nil
}

// Repositories 仓库集合
type Repositories struct {
	DB    *gorm.DB
	Movie *MovieRepository
	Cast  *CastRepository
	Crew  *CrewRepository
}

// NewRepositories 创建仓库集合
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		DB:    db,
		Movie: NewMovieRepository(db),
		Cast:  NewCastRepository(db),
		Crew:  NewCrewRepository(db),
	}
}
