package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"kinoexport/lib/scrapers/kinopoisk/votes"
)

// Columns is the default export header. The order is fixed, the header row
// is written even for an empty batch.
var Columns = []string{"title", "year", "rating", "date"}

// FullColumns mirrors every field the listing exposes.
var FullColumns = []string{"num", "title", "title_en", "rating", "year", "type", "duration", "date"}

// optional numeric fields serialize as an empty cell when unknown
func optInt(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func row(v votes.Vote, full bool) []string {
	if !full {
		return []string{v.Title(), optInt(v.Year), strconv.Itoa(v.Rating), v.RatedAt}
	}
	return []string{
		optInt(v.Num),
		v.Title(),
		v.TitleEn,
		strconv.Itoa(v.Rating),
		optInt(v.Year),
		v.Type,
		optInt(v.DurationMin),
		v.RatedAt,
	}
}

// WriteCSV serializes the batch, one row per vote in batch order.
func WriteCSV(w io.Writer, batch []votes.Vote, full bool) error {
	out := csv.NewWriter(w)

	header := Columns
	if full {
		header = FullColumns
	}
	err := out.Write(header)
	if err != nil {
		return err
	}

	for _, v := range batch {
		err = out.Write(row(v, full))
		if err != nil {
			return err
		}
	}

	out.Flush()
	return out.Error()
}

// WriteFile writes the batch to a CSV file, overwriting any existing file
// of the same name.
func WriteFile(path string, batch []votes.Vote, full bool) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	err = WriteCSV(f, batch, full)
	if err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return f.Close()
}
