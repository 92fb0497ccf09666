package core

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"kinoexport/lib/restyutil"
	"kinoexport/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scrapers/kinopoisk/core")

const DefaultBaseUrl = "https://www.kinopoisk.ru"

var ErrUnexpectedStatus = fmt.Errorf("The ratings listing returned an unexpected status, your session cookie has likely expired.")

// Client holds the authenticated session against the ratings site. The
// session cookie and user id are injected here once and are read-only for
// the lifetime of the client.
type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client
	UserId  string

	snapshots restyutil.FilesystemOutput
}

type ClientOptions struct {
	// defaults to DefaultBaseUrl when empty
	BaseUrl string
	// the numeric profile id whose votes listing is fetched
	UserId string
	// the raw `Cookie:` header value copied from a logged-in browser session
	RawCookies string
}

// parseCookieString splits a browser cookie header ("a=1; b=2") into
// individual cookies using the stdlib request parser.
func parseCookieString(raw string) []*http.Cookie {
	header := http.Header{}
	header.Add("Cookie", raw)
	req := http.Request{Header: header}
	return req.Cookies()
}

func NewClient(ctx context.Context, opts ClientOptions) (*Client, error) {
	if opts.UserId == "" {
		return nil, fmt.Errorf("user id must not be empty")
	}
	if opts.RawCookies == "" {
		return nil, fmt.Errorf("session cookie string must not be empty")
	}
	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}

	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	client.SetCookies(parseCookieString(opts.RawCookies))
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetHeader("accept-language", "en-US,en;q=0.9,ru;q=0.8")
	client.SetHeader("referer", fmt.Sprintf("%s/user/%s/votes/", opts.BaseUrl, opts.UserId))
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))
	client.SetTimeout(time.Second * 30)

	telemetry.InstrumentResty(client, "scrapers/kinopoisk/http")

	c := &Client{
		BaseUrl: baseUrl,
		Http:    client,
		UserId:  opts.UserId,
	}
	return c, nil
}

// SetSnapshotOutput makes the client dump every fetched page body to the
// given output for selector debugging.
func (c *Client) SetSnapshotOutput(out restyutil.FilesystemOutput) {
	c.snapshots = out
}

// VotesPage fetches one page of the user's votes listing and returns the
// raw markup. Any transport failure or non-200 status fails the call, the
// caller is expected to stop paginating.
func (c *Client) VotesPage(ctx context.Context, page int) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "client:VotesPage")
	defer span.End()

	if page < 1 {
		span.SetStatus(codes.Error, "invalid page number")
		return nil, fmt.Errorf("page number must be positive, got %d", page)
	}

	res, err := c.Http.R().
		SetContext(ctx).
		Get(fmt.Sprintf("/user/%s/votes/list/vs/vote/page/%d/", c.UserId, page))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return nil, err
	}
	if res.StatusCode() != http.StatusOK {
		span.SetStatus(codes.Error, "unexpected status")
		return nil, fmt.Errorf("%w (status %d on page %d)", ErrUnexpectedStatus, res.StatusCode(), page)
	}

	c.snapshots.Write(fmt.Sprintf("votes_page_%d.html", page), res.Body())

	return res.Body(), nil
}
