package router

import (
	"net/http"

	"github.com/Thejairex/Filmes-Mvp/internal/handler"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, h *handler.Handler) {
	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/", h.Welcome)

	// ==================== 上映统计 ====================
	films := r.Group("/films")
	{
		films.GET("/month/:month", h.FilmsByMonth)
		films.GET("/day/:day", h.FilmsByDay)
	}

	// ==================== 单片查询 ====================
	titles := r.Group("/titles")
	{
		titles.GET("/:title/score", h.TitleScore)
		titles.GET("/:title/votes", h.TitleVotes)
	}

	// ==================== 人员 ====================
	r.GET("/actors/:actor", h.Actor)
	r.GET("/directors/:director", h.Director)

	// ==================== 推荐 ====================
	r.GET("/recommendations/:title", h.Recommend)
}
