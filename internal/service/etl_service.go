package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/Thejairex/Filmes-Mvp/internal/etl"
	"golang.org/x/sync/errgroup"
)

// 输出文件名
const (
	MoviesCleanFile = "movies_clean.csv"
	CastCleanFile   = "cast_clean.csv"
	CrewCleanFile   = "crew_clean.csv"
	RejectionsFile  = "rejections.csv"
	ReportFile      = "report.txt"
)

// ETLOptions 一次 ETL 运行的输入输出
type ETLOptions struct {
	MoviesPath  string
	CreditsPath string
	OutputDir   string
	// Vocabulary 为 nil 时按批次生成类型列
	Vocabulary *etl.Vocabulary
}

// ETLResult 运行结果
type ETLResult struct {
	Movies  *etl.Report
	Cast    *etl.Report
	Crew    *etl.Report
	Elapsed time.Duration
}

// Reports 按输出顺序返回各表报告
func (r *ETLResult) Reports() []*etl.Report {
	return []*etl.Report{r.Movies, r.Cast, r.Crew}
}

// ETLService 执行清洗并写出结果
type ETLService struct {
	opts ETLOptions
}

func NewETLService(opts ETLOptions) *ETLService {
	return &ETLService{opts: opts}
}

// Run 电影管道和人员管道互不依赖，并行执行
// 任一输入文件无法读取或输出无法写入时返回错误，已写出的文件不做回滚
func (s *ETLService) Run(ctx context.Context) (*ETLResult, error) {
	start := time.Now()
	if err := os.MkdirAll(s.opts.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("创建输出目录失败: %w", err)
	}

	result := &ETLResult{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		report, err := s.runMovies(ctx)
		result.Movies = report
		return err
	})
	g.Go(func() error {
		cast, crew, err := s.runCredits(ctx)
		result.Cast, result.Crew = cast, crew
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result.Elapsed = time.Since(start)
	if err := etl.WriteRejectionsCSV(s.output(RejectionsFile), result.Reports()...); err != nil {
		return nil, err
	}
	if err := etl.WriteRunReport(s.output(ReportFile), result.Elapsed, result.Reports()...); err != nil {
		return nil, err
	}

	log.Printf("[ETL] 完成，耗时 %v，报告: %s", result.Elapsed.Round(time.Millisecond), s.output(ReportFile))
	return result, nil
}

func (s *ETLService) runMovies(ctx context.Context) (*etl.Report, error) {
	log.Printf("[ETL] 读取电影数据: %s", s.opts.MoviesPath)
	raw, err := etl.ReadCSV(s.opts.MoviesPath)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	clean, report := etl.TransformMovies(raw, etl.MovieOptions{Vocabulary: s.opts.Vocabulary})
	for _, w := range report.Warnings {
		log.Printf("[ETL] 警告: %s", w)
	}
	if err := etl.WriteCSV(s.output(MoviesCleanFile), clean); err != nil {
		return nil, err
	}
	log.Printf("[ETL] 电影: 输入 %d 行, 输出 %d 行, 过滤 %d 行", report.InputRows, report.OutputRows, len(report.Rejections))
	return report, nil
}

func (s *ETLService) runCredits(ctx context.Context) (*etl.Report, *etl.Report, error) {
	log.Printf("[ETL] 读取人员数据: %s", s.opts.CreditsPath)
	raw, err := etl.ReadCSV(s.opts.CreditsPath)
	if err != nil {
		return nil, nil, err
	}

	reports := make(map[etl.Role]*etl.Report, 2)
	files := map[etl.Role]string{etl.RoleCast: CastCleanFile, etl.RoleCrew: CrewCleanFile}
	for _, role := range []etl.Role{etl.RoleCast, etl.RoleCrew} {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		clean, report := etl.TransformCredits(raw, role)
		if err := etl.WriteCSV(s.output(files[role]), clean); err != nil {
			return nil, nil, err
		}
		log.Printf("[ETL] %s: 输入 %d 部电影, 输出 %d 行, 过滤 %d 条", role, report.InputRows, report.OutputRows, len(report.Rejections))
		reports[role] = report
	}
	return reports[etl.RoleCast], reports[etl.RoleCrew], nil
}

func (s *ETLService) output(name string) string {
	return filepath.Join(s.opts.OutputDir, name)
}
