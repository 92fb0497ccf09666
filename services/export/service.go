package export

import (
	"context"
	"log/slog"
	"time"

	"kinoexport/lib/scrapers/kinopoisk/votes"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/export")

// PageSource yields the raw markup of one votes listing page.
// *core.Client satisfies it, tests substitute a fake.
type PageSource interface {
	VotesPage(ctx context.Context, page int) ([]byte, error)
}

type Options struct {
	// pause between page fetches to stay under the site's rate limits.
	// zero means DefaultDelay, a negative value disables the pause.
	Delay time.Duration
}

const DefaultDelay = 1500 * time.Millisecond

// Exporter drives the fetch-and-parse loop over the paginated listing.
type Exporter struct {
	src   PageSource
	delay time.Duration
}

func New(src PageSource, opts Options) Exporter {
	delay := opts.Delay
	if delay == 0 {
		delay = DefaultDelay
	}
	if delay < 0 {
		delay = 0
	}
	return Exporter{src: src, delay: delay}
}

// Run walks pages 1, 2, 3, ... strictly sequentially until a page yields
// zero records, accumulating every parsed vote in fetch order. A fetch
// failure stops the run immediately, no retry: the records gathered so far
// are returned together with the error so the caller can decide what to do
// with the partial batch.
func (e Exporter) Run(ctx context.Context) ([]votes.Vote, error) {
	ctx, span := tracer.Start(ctx, "exporter:Run")
	defer span.End()

	var batch []votes.Vote
	for page := 1; ; page++ {
		body, err := e.src.VotesPage(ctx, page)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "page fetch failed")
			return batch, err
		}

		records, err := votes.ParseVotes(ctx, body)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "page parse failed")
			return batch, err
		}
		if len(records) == 0 {
			slog.InfoContext(ctx, "reached end of listing", "page", page)
			break
		}

		batch = append(batch, records...)
		slog.InfoContext(ctx, "scraped votes page",
			"page", page, "records", len(records), "total", len(batch))

		if e.delay > 0 {
			select {
			case <-time.After(e.delay):
			case <-ctx.Done():
				return batch, ctx.Err()
			}
		}
	}

	span.SetAttributes(attribute.Int("batch_size", len(batch)))
	return batch, nil
}
