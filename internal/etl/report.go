package etl

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"
)

// 拒绝原因
const (
	ReasonInvalidID          = "invalid_id"
	ReasonDuplicateID        = "duplicate_id"
	ReasonInvalidReleaseDate = "invalid_release_date"
	ReasonUnparseableList    = "unparseable_list"
	ReasonInvalidRecord      = "invalid_record"
)

// Rejection 一条被过滤的数据
type Rejection struct {
	Table  string `json:"table"`
	Key    string `json:"key"`
	Reason string `json:"reason"`
	Detail string `json:"detail,omitempty"`
}

// Report 单个表的处理结果统计
type Report struct {
	Table             string
	InputRows         int
	OutputRows        int
	Rejections        []Rejection
	Warnings          []string
	VocabularyVersion string
}

// NewReport 创建报告
func NewReport(table string) *Report {
	return &Report{Table: table}
}

// Reject 记录一条被过滤的数据
func (r *Report) Reject(key, reason, detail string) {
	r.Rejections = append(r.Rejections, Rejection{
		Table:  r.Table,
		Key:    key,
		Reason: reason,
		Detail: detail,
	})
}

// Warn 记录一条警告
func (r *Report) Warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// CountByReason 按原因统计拒绝数量
func (r *Report) CountByReason() map[string]int {
	counts := map[string]int{}
	for _, rej := range r.Rejections {
		counts[rej.Reason]++
	}
	return counts
}

// WriteRejectionsCSV 将所有报告中的拒绝记录写入同一个 CSV
func WriteRejectionsCSV(path string, reports ...*Report) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("创建拒绝日志失败: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write([]string{"table", "key", "reason", "detail"}); err != nil {
		return err
	}
	for _, r := range reports {
		for _, rej := range r.Rejections {
			if err := w.Write([]string{rej.Table, rej.Key, rej.Reason, rej.Detail}); err != nil {
				return err
			}
		}
	}
	w.Flush()
	return w.Error()
}

// WriteRunReport 生成 ETL 执行报告
func WriteRunReport(path string, elapsed time.Duration, reports ...*Report) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("创建报告失败: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)

	fmt.Fprintln(w, strings.Repeat("=", 80))
	fmt.Fprintln(w, "                         MOVIES ETL - RUN REPORT")
	fmt.Fprintln(w, strings.Repeat("=", 80))
	fmt.Fprintf(w, "Run at:   %s\n", time.Now().Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(w, "Elapsed:  %s\n", elapsed.Round(time.Millisecond))
	fmt.Fprintln(w)

	for _, r := range reports {
		fmt.Fprintf(w, "%s\n", strings.ToUpper(r.Table))
		fmt.Fprintln(w, strings.Repeat("-", 80))
		fmt.Fprintf(w, "  input rows:   %10d\n", r.InputRows)
		fmt.Fprintf(w, "  output rows:  %10d\n", r.OutputRows)
		fmt.Fprintf(w, "  rejected:     %10d\n", len(r.Rejections))
		if r.VocabularyVersion != "" {
			fmt.Fprintf(w, "  genre vocabulary: %s\n", r.VocabularyVersion)
		}

		counts := r.CountByReason()
		reasons := make([]string, 0, len(counts))
		for reason := range counts {
			reasons = append(reasons, reason)
		}
		sort.Strings(reasons)
		for _, reason := range reasons {
			fmt.Fprintf(w, "    - %-24s %8d\n", reason, counts[reason])
		}
		for _, warning := range r.Warnings {
			fmt.Fprintf(w, "  ! %s\n", warning)
		}
		fmt.Fprintln(w)
	}

	return w.Flush()
}
