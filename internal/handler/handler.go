package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/Thejairex/Filmes-Mvp/internal/config"
	"github.com/Thejairex/Filmes-Mvp/internal/repository"
	"github.com/Thejairex/Filmes-Mvp/internal/service"
	"github.com/Thejairex/Filmes-Mvp/internal/utils"
	"github.com/gin-gonic/gin"
)

// QueryService 处理器依赖的查询能力
type QueryService interface {
	CountByMonth(month int) (int64, error)
	CountByWeekday(weekday time.Weekday) (int64, error)
	TitleScore(title string) (*service.TitleScore, error)
	TitleVotes(title string) (*service.TitleVotes, error)
	ActorReturn(actor string) (*service.ActorReturn, error)
	DirectorFilms(director string) (*service.DirectorReport, error)
}

// Recommendations 处理器依赖的推荐能力
type Recommendations interface {
	Recommend(title string) ([]string, error)
}

// Handler HTTP 处理器
type Handler struct {
	Config          *config.Config
	Query           QueryService
	Recommendations Recommendations
}

// NewHandler 创建处理器
func NewHandler(cfg *config.Config, query QueryService, recommendations Recommendations) *Handler {
	return &Handler{
		Config:          cfg,
		Query:           query,
		Recommendations: recommendations,
	}
}

// titleCandidates 标题查找顺序：去空白的原文，然后是首字母大写形式
func titleCandidates(raw string) []string {
	title := strings.TrimSpace(raw)
	candidates := []string{title}
	if titled := utils.TitleCase(title); titled != title {
		candidates = append(candidates, titled)
	}
	return candidates
}

// normalizeName 人名统一为首字母大写，并按入库时的规则去掉引号
func normalizeName(raw string) string {
	return utils.TitleCase(utils.StripQuotes(strings.TrimSpace(raw)))
}

// Welcome 首页；非生产环境附带运行配置，便于确认数据来源
func (h *Handler) Welcome(c *gin.Context) {
	resp := gin.H{"message": "Bienvenido a la API de Peliculas"}
	if h.Config != nil && !h.Config.IsProduction() {
		resp["env"] = h.Config.Env
		resp["genre_mode"] = h.Config.GenreMode
		resp["store_driver"] = h.Config.StoreDriver
	}
	c.JSON(http.StatusOK, resp)
}

// FilmsByMonth 某月上映的电影数量
func (h *Handler) FilmsByMonth(c *gin.Context) {
	raw := c.Param("month")
	month, ok := parseMonth(raw)
	if !ok {
		utils.BadRequest(c, fmt.Sprintf("无法识别的月份: %s", raw))
		return
	}

	total, err := h.Query.CountByMonth(int(month))
	if err != nil {
		h.fail(c, err)
		return
	}
	utils.SuccessWithMessage(c,
		fmt.Sprintf("Cantidad de peliculas en %s: %d", raw, total),
		gin.H{"month": int(month), "count": total})
}

// FilmsByDay 某个星期几上映的电影数量
func (h *Handler) FilmsByDay(c *gin.Context) {
	raw := c.Param("day")
	weekday, ok := parseWeekday(raw)
	if !ok {
		utils.BadRequest(c, fmt.Sprintf("无法识别的星期: %s", raw))
		return
	}

	total, err := h.Query.CountByWeekday(weekday)
	if err != nil {
		h.fail(c, err)
		return
	}
	utils.SuccessWithMessage(c,
		fmt.Sprintf("La cantidad de peliculas en %s fue de %d.", raw, total),
		gin.H{"weekday": weekday.String(), "count": total})
}

// TitleScore 电影评分
func (h *Handler) TitleScore(c *gin.Context) {
	var (
		score *service.TitleScore
		err   error
	)
	for _, title := range titleCandidates(c.Param("title")) {
		score, err = h.Query.TitleScore(title)
		if !errors.Is(err, repository.ErrNotFound) {
			break
		}
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	utils.SuccessWithMessage(c,
		fmt.Sprintf("La película %s fue estrenada en el año %d con un score/popularidad de %v",
			score.Title, score.ReleaseYear, score.VoteAverage),
		score)
}

// TitleVotes 电影投票信息，投票不足时只返回提示
func (h *Handler) TitleVotes(c *gin.Context) {
	var (
		votes *service.TitleVotes
		err   error
	)
	for _, title := range titleCandidates(c.Param("title")) {
		votes, err = h.Query.TitleVotes(title)
		if !errors.Is(err, repository.ErrNotFound) {
			break
		}
	}
	if err != nil {
		h.fail(c, err)
		return
	}

	if !votes.Enough {
		utils.SuccessWithMessage(c,
			fmt.Sprintf("La película %s no cuenta con suficientes votos", votes.Title),
			gin.H{"title": votes.Title, "enough": false})
		return
	}
	utils.SuccessWithMessage(c,
		fmt.Sprintf("La película %s fue estrenada en el año %d. La misma cuenta con un total de %d valoraciones, con un promedio de %v",
			votes.Title, votes.ReleaseYear, votes.VoteCount, votes.VoteAverage),
		votes)
}

// Actor 演员回报统计
func (h *Handler) Actor(c *gin.Context) {
	actor := normalizeName(c.Param("actor"))
	if actor == "" {
		utils.BadRequest(c, "演员名不能为空")
		return
	}

	result, err := h.Query.ActorReturn(actor)
	if err != nil {
		h.fail(c, err)
		return
	}
	utils.SuccessWithMessage(c,
		fmt.Sprintf("El actor %s ha ganado un retorno de %v con un retorno promedio de %v en %d filmaciones",
			result.Actor, result.TotalReturn, result.AverageReturn, result.Films),
		result)
}

// Director 导演作品及回报
func (h *Handler) Director(c *gin.Context) {
	director := normalizeName(c.Param("director"))
	if director == "" {
		utils.BadRequest(c, "导演名不能为空")
		return
	}

	result, err := h.Query.DirectorFilms(director)
	if err != nil {
		h.fail(c, err)
		return
	}
	utils.Success(c, result)
}

// Recommend 相似标题推荐
func (h *Handler) Recommend(c *gin.Context) {
	var (
		titles []string
		err    error
	)
	for _, title := range titleCandidates(c.Param("title")) {
		titles, err = h.Recommendations.Recommend(title)
		if !errors.Is(err, service.ErrTitleNotFound) {
			break
		}
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	utils.Success(c, gin.H{"recommendations": titles})
}

// fail 将业务错误映射为响应
func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, service.ErrTitleNotFound):
		utils.NotFound(c, "Pelicula no encontrada")
	case errors.Is(err, service.ErrInvalidArgument):
		utils.BadRequest(c, err.Error())
	default:
		log.Printf("[Handler] %s %s 失败: %v", c.Request.Method, c.Request.URL.Path, err)
		utils.InternalServerError(c, "")
	}
}
