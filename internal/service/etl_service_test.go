package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Thejairex/Filmes-Mvp/internal/etl"
	"github.com/Thejairex/Filmes-Mvp/internal/repository"
	"github.com/Thejairex/Filmes-Mvp/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMoviesCSV = `adult,belongs_to_collection,budget,genres,homepage,id,imdb_id,original_title,overview,poster_path,production_companies,production_countries,release_date,revenue,spoken_languages,title,video,vote_average,vote_count
False,"{'id': 10194, 'name': 'Toy Story Collection', 'poster_path': '/a.jpg', 'backdrop_path': '/b.jpg'}",30000000,"[{'id': 16, 'name': 'Animation'}, {'id': 35, 'name': 'Comedy'}]",http://toystory.disney.com/toy-story,862,tt0114709,Toy Story,Led by Woody,/p.jpg,"[{'name': 'Pixar Animation Studios', 'id': 3}]","[{'iso_3166_1': 'US', 'name': 'United States of America'}]",1995-10-30,373554033,"[{'iso_639_1': 'en', 'name': 'English'}]",Toy Story,False,7.7,5415
False,,60000000,"[{'id': 28, 'name': 'Action'}]",,949,tt0113277,Heat,Obsessive,/h.jpg,[],[],1995-12-15,187436818,[],Heat,False,7.7,1886
- Written by Ørnås,,,,,1997-08-20,,,,,,,,,,,,,
`

const testCreditsCSV = `cast,crew,id
"[{'cast_id': 14, 'character': 'Woody (voice)', 'credit_id': 'c1', 'gender': 2, 'id': 31, 'name': 'Tom Hanks', 'order': 0, 'profile_path': None}]","[{'credit_id': 'k1', 'department': 'Directing', 'gender': 2, 'id': 7879, 'job': 'Director', 'name': 'John Lasseter', 'profile_path': None}]",862
"[{'cast_id': 25, 'character': 'Lt. Vincent Hanna', 'credit_id': 'c2', 'gender': 2, 'id': 1158, 'name': 'Al Pacino', 'order': 0, 'profile_path': None}, {'cast_id': 'bad'}]",[],949
`

func writeRawInputs(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	movies := filepath.Join(dir, "movies_dataset.csv")
	credits := filepath.Join(dir, "credits.csv")
	require.NoError(t, os.WriteFile(movies, []byte(testMoviesCSV), 0o644))
	require.NoError(t, os.WriteFile(credits, []byte(testCreditsCSV), 0o644))
	return movies, credits
}

func TestETLService_Run(t *testing.T) {
	movies, credits := writeRawInputs(t)
	out := filepath.Join(t.TempDir(), "clean")

	svc := NewETLService(ETLOptions{
		MoviesPath:  movies,
		CreditsPath: credits,
		OutputDir:   out,
		Vocabulary:  etl.DefaultVocabulary(),
	})
	result, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, result.Movies.InputRows)
	assert.Equal(t, 2, result.Movies.OutputRows)
	assert.Equal(t, 2, result.Cast.OutputRows)
	assert.Equal(t, 1, result.Crew.OutputRows)
	assert.Equal(t, map[string]int{etl.ReasonInvalidRecord: 1}, result.Cast.CountByReason())

	for _, name := range []string{MoviesCleanFile, CastCleanFile, CrewCleanFile, RejectionsFile, ReportFile} {
		assert.FileExists(t, filepath.Join(out, name))
	}

	clean, err := etl.ReadCSV(filepath.Join(out, MoviesCleanFile))
	require.NoError(t, err)
	require.Equal(t, 2, clean.Len())
	assert.Equal(t, "862", clean.Rows[0][etl.ColID])
	assert.Equal(t, "true", clean.Rows[0]["Animation"])
	assert.Equal(t, `["US"]`, clean.Rows[0][etl.ColProductionCountries])
	assert.Equal(t, `[]`, clean.Rows[1][etl.ColProductionCountries])
	assert.NotContains(t, clean.Columns, "imdb_id")

	rejections, err := etl.ReadCSV(filepath.Join(out, RejectionsFile))
	require.NoError(t, err)
	assert.Equal(t, 2, rejections.Len())
}

func TestETLService_MissingInput(t *testing.T) {
	svc := NewETLService(ETLOptions{
		MoviesPath:  filepath.Join(t.TempDir(), "missing.csv"),
		CreditsPath: filepath.Join(t.TempDir(), "missing.csv"),
		OutputDir:   t.TempDir(),
	})
	_, err := svc.Run(context.Background())
	assert.Error(t, err)
}

// 人名中的撇号在清洗、导入和查询后保持一致
func TestETLService_ApostropheNames(t *testing.T) {
	movies, _ := writeRawInputs(t)
	credits := filepath.Join(t.TempDir(), "credits.csv")
	raw := "cast,crew,id\n" +
		`"[{'cast_id': 1, 'character': 'Narrator', 'credit_id': 'c9', 'gender': 2, 'id': 11390, 'name': ""Peter O'Toole"", 'order': 1, 'profile_path': None}]",` +
		`"[{'credit_id': 'k9', 'department': 'Directing', 'gender': 2, 'id': 11390, 'job': 'Director', 'name': ""Peter O'Toole"", 'profile_path': None}]",862` + "\n"
	require.NoError(t, os.WriteFile(credits, []byte(raw), 0o644))

	out := filepath.Join(t.TempDir(), "clean")
	_, err := NewETLService(ETLOptions{
		MoviesPath:  movies,
		CreditsPath: credits,
		OutputDir:   out,
		Vocabulary:  etl.DefaultVocabulary(),
	}).Run(context.Background())
	require.NoError(t, err)

	cast, err := etl.ReadCSV(filepath.Join(out, CastCleanFile))
	require.NoError(t, err)
	require.Equal(t, 1, cast.Len())
	assert.Equal(t, "Peter O'Toole", cast.Rows[0]["name"])

	repos := newTestRepos(t)
	_, err = repos.ImportCleaned(repository.CleanFiles{
		Movies: filepath.Join(out, MoviesCleanFile),
		Cast:   filepath.Join(out, CastCleanFile),
		Crew:   filepath.Join(out, CrewCleanFile),
	})
	require.NoError(t, err)

	svc := NewQueryService(repos, time.Minute)
	actor, err := svc.ActorReturn(utils.TitleCase("peter o'toole"))
	require.NoError(t, err)
	assert.Equal(t, 1, actor.Films)
	assert.Equal(t, 12.45, actor.TotalReturn)

	// 查询时多余的双引号与入库规则一样被去掉
	director, err := svc.DirectorFilms(`"Peter O'Toole"`)
	require.NoError(t, err)
	require.Len(t, director.Films, 1)
	assert.Equal(t, "Toy Story", director.Films[0].Title)
}
