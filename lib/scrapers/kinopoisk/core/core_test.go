package core

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"kinoexport/lib/telemetry"

	"github.com/stretchr/testify/require"
)

func TestNewClientValidation(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/kinopoisk/core")
	defer cleanup()

	ctx := context.Background()

	_, err := NewClient(ctx, ClientOptions{RawCookies: "session=abc"})
	require.Error(t, err)

	_, err = NewClient(ctx, ClientOptions{UserId: "12345"})
	require.Error(t, err)
}

func TestVotesPage(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/kinopoisk/core")
	defer cleanup()

	ctx := context.Background()

	var gotPath string
	var gotCookies []*http.Cookie
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotCookies = r.Cookies()
		w.Write([]byte("<html><body>listing</body></html>"))
	}))
	defer server.Close()

	client, err := NewClient(ctx, ClientOptions{
		BaseUrl:    server.URL,
		UserId:     "12345",
		RawCookies: "session=abc; uid=42",
	})
	require.NoError(t, err)

	body, err := client.VotesPage(ctx, 3)
	require.NoError(t, err)
	require.Contains(t, string(body), "listing")

	require.Equal(t, "/user/12345/votes/list/vs/vote/page/3/", gotPath)

	cookies := map[string]string{}
	for _, c := range gotCookies {
		cookies[c.Name] = c.Value
	}
	require.Equal(t, "abc", cookies["session"])
	require.Equal(t, "42", cookies["uid"])
}

func TestVotesPageBadStatus(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/kinopoisk/core")
	defer cleanup()

	ctx := context.Background()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client, err := NewClient(ctx, ClientOptions{
		BaseUrl:    server.URL,
		UserId:     "12345",
		RawCookies: "session=abc",
	})
	require.NoError(t, err)

	_, err = client.VotesPage(ctx, 1)
	require.ErrorIs(t, err, ErrUnexpectedStatus)
}

func TestVotesPageRejectsNonPositivePage(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/kinopoisk/core")
	defer cleanup()

	ctx := context.Background()

	client, err := NewClient(ctx, ClientOptions{
		BaseUrl:    "http://127.0.0.1:1",
		UserId:     "12345",
		RawCookies: "session=abc",
	})
	require.NoError(t, err)

	_, err = client.VotesPage(ctx, 0)
	require.Error(t, err)
}
