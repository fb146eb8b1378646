package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Thejairex/Filmes-Mvp/internal/config"
	"github.com/Thejairex/Filmes-Mvp/internal/repository"
	"github.com/Thejairex/Filmes-Mvp/internal/service"
	"github.com/Thejairex/Filmes-Mvp/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQuery struct {
	months   map[int]int64
	weekdays map[time.Weekday]int64
	titles   map[string]*service.TitleVotes
	actors   map[string]*service.ActorReturn
	err      error
}

func (f *fakeQuery) CountByMonth(month int) (int64, error) {
	return f.months[month], f.err
}

func (f *fakeQuery) CountByWeekday(weekday time.Weekday) (int64, error) {
	return f.weekdays[weekday], f.err
}

func (f *fakeQuery) TitleScore(title string) (*service.TitleScore, error) {
	v, ok := f.titles[title]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &service.TitleScore{Title: v.Title, ReleaseYear: v.ReleaseYear, VoteAverage: v.VoteAverage}, nil
}

func (f *fakeQuery) TitleVotes(title string) (*service.TitleVotes, error) {
	v, ok := f.titles[title]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return v, nil
}

func (f *fakeQuery) ActorReturn(actor string) (*service.ActorReturn, error) {
	if v, ok := f.actors[actor]; ok {
		return v, nil
	}
	return &service.ActorReturn{Actor: actor}, nil
}

func (f *fakeQuery) DirectorFilms(director string) (*service.DirectorReport, error) {
	return &service.DirectorReport{Director: director, Films: []service.DirectorFilm{}}, nil
}

type fakeRecommendations map[string][]string

func (f fakeRecommendations) Recommend(title string) ([]string, error) {
	if v, ok := f[title]; ok {
		return v, nil
	}
	return nil, service.ErrTitleNotFound
}

func setupRouter(q QueryService, r Recommendations) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(nil, q, r)

	engine := gin.New()
	engine.GET("/films/month/:month", h.FilmsByMonth)
	engine.GET("/films/day/:day", h.FilmsByDay)
	engine.GET("/titles/:title/score", h.TitleScore)
	engine.GET("/titles/:title/votes", h.TitleVotes)
	engine.GET("/actors/:actor", h.Actor)
	engine.GET("/directors/:director", h.Director)
	engine.GET("/recommendations/:title", h.Recommend)
	return engine
}

func doGet(t *testing.T, engine *gin.Engine, path string) (int, utils.Response) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	engine.ServeHTTP(w, req)

	var resp utils.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp
}

func defaultFakes() (*fakeQuery, fakeRecommendations) {
	q := &fakeQuery{
		months:   map[int]int64{1: 5, 10: 42},
		weekdays: map[time.Weekday]int64{time.Monday: 7, time.Sunday: 3},
		titles: map[string]*service.TitleVotes{
			"Toy Story": {Title: "Toy Story", ReleaseYear: 1995, VoteCount: 5415, VoteAverage: 7.7, Enough: true},
			"Heat":      {Title: "Heat", ReleaseYear: 1995, VoteCount: 1886, VoteAverage: 7.7},
		},
		actors: map[string]*service.ActorReturn{
			"Tom Hanks":     {Actor: "Tom Hanks", Films: 2, TotalReturn: 17.46, AverageReturn: 8.73},
			"Peter O'Toole": {Actor: "Peter O'Toole", Films: 1, TotalReturn: 12.45, AverageReturn: 12.45},
		},
	}
	r := fakeRecommendations{"Toy Story": {"Toy Story 2", "Toy Story 3"}}
	return q, r
}

func TestFilmsByMonth(t *testing.T) {
	q, r := defaultFakes()
	engine := setupRouter(q, r)

	tests := []struct {
		path   string
		status int
		count  float64
	}{
		{"/films/month/octubre", http.StatusOK, 42},
		{"/films/month/October", http.StatusOK, 42},
		{"/films/month/%20Enero%20", http.StatusOK, 5},
		{"/films/month/10", http.StatusOK, 42},
		{"/films/month/brumario", http.StatusBadRequest, 0},
		{"/films/month/13", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			code, resp := doGet(t, engine, tt.path)
			assert.Equal(t, tt.status, code)
			if tt.status == http.StatusOK {
				data := resp.Data.(map[string]any)
				assert.Equal(t, tt.count, data["count"])
				assert.Contains(t, resp.Message, "Cantidad de peliculas")
			} else {
				assert.False(t, resp.Success)
			}
		})
	}
}

func TestFilmsByDay(t *testing.T) {
	q, r := defaultFakes()
	engine := setupRouter(q, r)

	code, resp := doGet(t, engine, "/films/day/lunes")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(7), resp.Data.(map[string]any)["count"])

	// 数字按周一为 0
	_, resp = doGet(t, engine, "/films/day/6")
	assert.Equal(t, float64(3), resp.Data.(map[string]any)["count"])

	code, _ = doGet(t, engine, "/films/day/funday")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestTitleEndpoints(t *testing.T) {
	q, r := defaultFakes()
	engine := setupRouter(q, r)

	code, resp := doGet(t, engine, "/titles/toy%20story/score")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, resp.Message, "1995")

	code, resp = doGet(t, engine, "/titles/Toy%20Story/votes")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, resp.Message, "5415")

	code, resp = doGet(t, engine, "/titles/Heat/votes")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, resp.Message, "no cuenta con suficientes votos")

	code, resp = doGet(t, engine, "/titles/Unknown%20Title/score")
	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, resp.Success)
}

func TestPeopleEndpoints(t *testing.T) {
	q, r := defaultFakes()
	engine := setupRouter(q, r)

	code, resp := doGet(t, engine, "/actors/tom%20hanks")
	assert.Equal(t, http.StatusOK, code)
	data := resp.Data.(map[string]any)
	assert.Equal(t, "Tom Hanks", data["actor"])
	assert.Equal(t, float64(2), data["films"])

	// 撇号保留，双引号去掉
	code, resp = doGet(t, engine, "/actors/%22peter%20o%27toole%22")
	assert.Equal(t, http.StatusOK, code)
	data = resp.Data.(map[string]any)
	assert.Equal(t, "Peter O'Toole", data["actor"])
	assert.Equal(t, float64(1), data["films"])

	code, resp = doGet(t, engine, "/directors/john%20lasseter")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "John Lasseter", resp.Data.(map[string]any)["director"])
}

func TestRecommend(t *testing.T) {
	q, r := defaultFakes()
	engine := setupRouter(q, r)

	code, resp := doGet(t, engine, "/recommendations/toy%20story")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, []any{"Toy Story 2", "Toy Story 3"}, resp.Data.(map[string]any)["recommendations"])

	code, resp = doGet(t, engine, "/recommendations/Unknown%20Title")
	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, resp.Success)
}

func TestInternalError(t *testing.T) {
	q, r := defaultFakes()
	q.err = errors.New("connection reset")
	engine := setupRouter(q, r)

	code, resp := doGet(t, engine, "/films/month/enero")
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.False(t, resp.Success)
}

func TestParseCalendar(t *testing.T) {
	m, ok := parseMonth("Septiembre")
	assert.True(t, ok)
	assert.Equal(t, time.September, m)

	d, ok := parseWeekday("miércoles")
	assert.True(t, ok)
	assert.Equal(t, time.Wednesday, d)

	d, ok = parseWeekday("0")
	assert.True(t, ok)
	assert.Equal(t, time.Monday, d)

	_, ok = parseWeekday("7")
	assert.False(t, ok)
}

func TestWelcome(t *testing.T) {
	gin.SetMode(gin.TestMode)
	q, r := defaultFakes()

	get := func(cfg *config.Config) map[string]any {
		engine := gin.New()
		engine.GET("/", NewHandler(cfg, q, r).Welcome)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		return body
	}

	dev := get(&config.Config{Env: "development", GenreMode: config.GenreModeStatic, StoreDriver: "sqlite"})
	assert.Equal(t, "Bienvenido a la API de Peliculas", dev["message"])
	assert.Equal(t, "static", dev["genre_mode"])
	assert.Equal(t, "sqlite", dev["store_driver"])

	prod := get(&config.Config{Env: "production", GenreMode: config.GenreModeStatic})
	assert.NotContains(t, prod, "genre_mode")
	assert.NotContains(t, prod, "env")

	bare := get(nil)
	assert.Equal(t, []string{"message"}, utils.SortedKeys(bare))
}
