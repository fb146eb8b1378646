package etl

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSVFrom(t *testing.T) {
	data := "\ufeffid,title,genres\n" +
		"862,Toy Story,\"[{'id': 16, 'name': 'Animation'}]\"\n" +
		"949,,\n"

	tbl, err := ReadCSVFrom(strings.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "title", "genres"}, tbl.Columns)
	require.Equal(t, 2, tbl.Len())
	assert.Equal(t, "862", tbl.Rows[0]["id"])
	assert.Equal(t, "[{'id': 16, 'name': 'Animation'}]", tbl.Rows[0]["genres"])
	assert.Nil(t, tbl.Rows[1]["title"])
	assert.Nil(t, tbl.Rows[1]["genres"])
}

func TestReadCSVFrom_Empty(t *testing.T) {
	_, err := ReadCSVFrom(strings.NewReader(""))
	assert.Error(t, err)
}

func TestWriteCSVTo(t *testing.T) {
	tbl := NewTable("id", "release_date", "return", "Action", "spoken_languages", "collection_id")
	tbl.Append(Row{
		"id":               int64(862),
		"release_date":     time.Date(1995, 10, 30, 0, 0, 0, 0, time.UTC),
		"return":           12.5,
		"Action":           false,
		"spoken_languages": []string{"en", "fr"},
		"collection_id":    nil,
	})

	var buf bytes.Buffer
	require.NoError(t, WriteCSVTo(&buf, tbl))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "id,release_date,return,Action,spoken_languages,collection_id", lines[0])
	assert.Equal(t, `862,1995-10-30,12.5,false,"[""en"",""fr""]",`, lines[1])
}

func TestCSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movies_clean.csv")
	tbl := NewTable("id", "title")
	tbl.Append(Row{"id": int64(1), "title": `Kid's "Story"`})

	require.NoError(t, WriteCSV(path, tbl))
	back, err := ReadCSV(path)
	require.NoError(t, err)

	assert.Equal(t, "1", back.Rows[0]["id"])
	assert.Equal(t, `Kid's "Story"`, back.Rows[0]["title"])
}
