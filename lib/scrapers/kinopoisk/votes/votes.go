package votes

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"kinoexport/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scrapers/kinopoisk/votes")

// the listing shows a fixed number of votes per page
const VotesPerPage = 50

var ErrTotalUnavailable = fmt.Errorf("Could not find the total ratings counter on the page.")

// Vote is one rated title as shown on the votes listing. Year, DurationMin
// and RatedAt are optional, zero/empty means the listing did not show them.
type Vote struct {
	Num         int
	TitleRu     string
	TitleEn     string
	Year        int
	Rating      int
	Type        string
	DurationMin int
	// normalized to 2006-01-02 when the listing's format parses,
	// otherwise kept as the raw text
	RatedAt string
}

// Title prefers the Russian title and falls back to the English one.
func (v Vote) Title() string {
	if v.TitleRu != "" {
		return v.TitleRu
	}
	return v.TitleEn
}

var titleYearRegex = regexp.MustCompile(`^(.*?)\s*\((\d{4})\)$`)
var scriptRatingRegex = regexp.MustCompile(`rating:\s*'(\d+)'`)
var durationRegex = regexp.MustCompile(`(\d+)\s*мин`)

const ratedAtLayout = "02.01.2006, 15:04"

func parseTitleYear(item *goquery.Selection, vote *Vote) {
	text := htmlutil.CleanText(item.Find("div.nameRus a").First().Text())
	groups := titleYearRegex.FindStringSubmatch(text)
	if len(groups) == 3 {
		vote.TitleRu = strings.TrimSpace(groups[1])
		vote.Year, _ = strconv.Atoi(groups[2])
		return
	}
	vote.TitleRu = text
}

// the rating is rendered in one of three shapes depending on how old the
// vote is, so each extraction falls through to the next
func parseRating(item *goquery.Selection) int {
	rating := 0
	item.Find("div.vote_widget div").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		class := s.AttrOr("class", "")
		if strings.Contains(class, "myVote") && strings.Contains(class, "show_vote_") {
			rating, _ = strconv.Atoi(htmlutil.CleanText(s.Text()))
			return false
		}
		return true
	})
	if rating > 0 {
		return rating
	}

	item.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		groups := scriptRatingRegex.FindStringSubmatch(s.Text())
		if len(groups) == 2 {
			rating, _ = strconv.Atoi(groups[1])
			return false
		}
		return true
	})
	if rating > 0 {
		return rating
	}

	vote, ok := item.Find("div.rateNow[vote]").First().Attr("vote")
	if ok {
		rating, _ = strconv.Atoi(vote)
	}
	return rating
}

func parseDuration(item *goquery.Selection) int {
	minutes := 0
	item.Find("div.rating span.text-grey").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		groups := durationRegex.FindStringSubmatch(s.Text())
		if len(groups) == 2 {
			minutes, _ = strconv.Atoi(groups[1])
			return false
		}
		return true
	})
	return minutes
}

func parseRatedAt(item *goquery.Selection) string {
	raw := htmlutil.CleanText(item.Find("div.date").First().Text())
	if raw == "" {
		return ""
	}
	parsed, err := time.Parse(ratedAtLayout, raw)
	if err != nil {
		return raw
	}
	return parsed.Format("2006-01-02")
}

func parseItem(item *goquery.Selection) Vote {
	vote := Vote{Type: "film"}

	// the ordinal renders as "1." on the listing
	if groups := digitsRegex.FindStringSubmatch(item.Find("div.num").First().Text()); len(groups) == 2 {
		vote.Num, _ = strconv.Atoi(groups[1])
	}
	parseTitleYear(item, &vote)
	vote.TitleEn = htmlutil.CleanText(item.Find("div.nameEng").First().Text())
	vote.Rating = parseRating(item)
	vote.DurationMin = parseDuration(item)
	vote.RatedAt = parseRatedAt(item)

	if t, ok := item.Find("div[class*='MyKP_Folder_Select_']").First().Attr("type"); ok && t != "" {
		vote.Type = t
	}

	return vote
}

// ParseVotes extracts every well-formed rating record from one page of the
// votes listing, preserving in-page order. Items missing a title or a
// rating value are skipped, they never abort the page.
func ParseVotes(ctx context.Context, body []byte) ([]Vote, error) {
	ctx, span := tracer.Start(ctx, "ParseVotes")
	defer span.End()

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse html")
		return nil, err
	}

	var out []Vote
	doc.Find("div.item").Each(func(i int, item *goquery.Selection) {
		vote := parseItem(item)
		if vote.Title() == "" || vote.Rating == 0 {
			slog.WarnContext(ctx, "skipping malformed listing item",
				"index", i, "title", vote.Title(), "rating", vote.Rating)
			return
		}
		out = append(out, vote)
	})

	span.SetAttributes(attribute.Int("votes", len(out)))
	return out, nil
}

var pagesFromToRegex = regexp.MustCompile(`из\s*(\d+)`)
var digitsRegex = regexp.MustCompile(`(\d+)`)

// TotalRatings probes the pagination header ("1–50 из 458") for the total
// number of votes, falling back to the profile votes counter. The result
// only drives progress reporting, pagination stops on the first empty page
// regardless.
func TotalRatings(ctx context.Context, body []byte) (int, error) {
	ctx, span := tracer.Start(ctx, "TotalRatings")
	defer span.End()

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse html")
		return 0, err
	}

	groups := pagesFromToRegex.FindStringSubmatch(doc.Find("div.pagesFromTo").First().Text())
	if len(groups) == 2 {
		return strconv.Atoi(groups[1])
	}

	groups = digitsRegex.FindStringSubmatch(doc.Find("span.profile_V2_votes_total").First().Text())
	if len(groups) == 2 {
		return strconv.Atoi(groups[1])
	}

	span.SetStatus(codes.Error, "no total counter found")
	return 0, ErrTotalUnavailable
}

// PageCount converts a total vote count into the number of listing pages.
func PageCount(total int) int {
	return (total + VotesPerPage - 1) / VotesPerPage
}
