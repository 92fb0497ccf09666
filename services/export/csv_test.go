package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"kinoexport/lib/scrapers/kinopoisk/votes"

	"github.com/stretchr/testify/require"
)

var sampleBatch = []votes.Vote{
	{
		Num:         1,
		TitleRu:     "Титаник",
		TitleEn:     "Titanic",
		Year:        1997,
		Rating:      8,
		Type:        "film",
		DurationMin: 194,
		RatedAt:     "2021-03-21",
	},
	{
		Num:     2,
		TitleEn: "Friends",
		Rating:  9,
		Type:    "series",
	},
}

func TestWriteCSVHeaderOnEmptyBatch(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, nil, false)
	require.NoError(t, err)
	require.Equal(t, "title,year,rating,date\n", buf.String())
}

func TestWriteCSVDefaultColumns(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, sampleBatch, false)
	require.NoError(t, err)

	expected := "title,year,rating,date\n" +
		"Титаник,1997,8,2021-03-21\n" +
		"Friends,,9,\n"
	require.Equal(t, expected, buf.String())
}

func TestWriteCSVFullColumns(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, sampleBatch, true)
	require.NoError(t, err)

	expected := "num,title,title_en,rating,year,type,duration,date\n" +
		"1,Титаник,Titanic,8,1997,film,194,2021-03-21\n" +
		"2,Friends,Friends,9,,series,,\n"
	require.Equal(t, expected, buf.String())
}

func TestWriteFileOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ratings.csv")
	err := os.WriteFile(path, []byte("stale contents"), 0644)
	require.NoError(t, err)

	err = WriteFile(path, sampleBatch, false)
	require.NoError(t, err)

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(contents), "title,year,rating,date\n")
	require.NotContains(t, string(contents), "stale")
}
