package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Thejairex/Filmes-Mvp/internal/handler"
	"github.com/Thejairex/Filmes-Mvp/internal/middleware"
	"github.com/Thejairex/Filmes-Mvp/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubQuery struct{}

func (stubQuery) CountByMonth(int) (int64, error) { return 1, nil }
func (stubQuery) CountByWeekday(time.Weekday) (int64, error) { return 1, nil }
func (stubQuery) TitleScore(string) (*service.TitleScore, error) { return &service.TitleScore{}, nil }
func (stubQuery) TitleVotes(string) (*service.TitleVotes, error) { return &service.TitleVotes{}, nil }
func (stubQuery) ActorReturn(a string) (*service.ActorReturn, error) {
	return &service.ActorReturn{Actor: a}, nil
}
func (stubQuery) DirectorFilms(d string) (*service.DirectorReport, error) {
	return &service.DirectorReport{Director: d}, nil
}

type stubRecommendations struct{}

func (stubRecommendations) Recommend(string) ([]string, error) { return []string{}, nil }

func TestRegisterRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.CORS())
	RegisterRoutes(r, handler.NewHandler(nil, stubQuery{}, stubRecommendations{}))

	paths := []string{
		"/health",
		"/",
		"/films/month/enero",
		"/films/day/lunes",
		"/titles/Heat/score",
		"/titles/Heat/votes",
		"/actors/Al%20Pacino",
		"/directors/Michael%20Mann",
		"/recommendations/Heat",
	}
	for _, p := range paths {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, p, nil))
		assert.Equal(t, http.StatusOK, w.Code, p)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"), p)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/health", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}
