package votes

import (
	"context"
	"testing"

	"kinoexport/lib/telemetry"

	_ "embed"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

//go:embed testdata/votes_page.html
var votesPageFixture []byte

func TestParseVotes(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/kinopoisk/votes")
	defer cleanup()

	got, err := ParseVotes(context.Background(), votesPageFixture)
	require.NoError(t, err)

	// the fixture holds five items: two are malformed (one without any
	// rating, one without any title) and must be skipped
	expected := []Vote{
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
			TitleRu: "Мой сосед Тоторо",
			Year:    1988,
			Rating:  10,
			Type:    "film",
		},
		{
			Num:     3,
			TitleRu: "Друзья",
			TitleEn: "Friends",
			Rating:  9,
			Type:    "series",
			RatedAt: "вчера",
		},
	}

	if diff := cmp.Diff(expected, got); diff != "" {
		t.Fatalf("parsed votes mismatch (-want +got):\n%s", diff)
	}
}

func TestParseVotesEmptyPage(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/kinopoisk/votes")
	defer cleanup()

	got, err := ParseVotes(context.Background(), []byte(`<html><body><div class="profileFilmsList"></div></body></html>`))
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestTotalRatings(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/kinopoisk/votes")
	defer cleanup()

	total, err := TotalRatings(context.Background(), votesPageFixture)
	require.NoError(t, err)
	require.Equal(t, 458, total)
}

func TestTotalRatingsProfileFallback(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/kinopoisk/votes")
	defer cleanup()

	body := []byte(`<html><body><span class="profile_V2_votes_total">132</span></body></html>`)
	total, err := TotalRatings(context.Background(), body)
	require.NoError(t, err)
	require.Equal(t, 132, total)
}

func TestTotalRatingsUnavailable(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/kinopoisk/votes")
	defer cleanup()

	_, err := TotalRatings(context.Background(), []byte(`<html><body></body></html>`))
	require.ErrorIs(t, err, ErrTotalUnavailable)
}

func TestPageCount(t *testing.T) {
	require.Equal(t, 10, PageCount(458))
	require.Equal(t, 1, PageCount(50))
	require.Equal(t, 2, PageCount(51))
	require.Equal(t, 0, PageCount(0))
}
