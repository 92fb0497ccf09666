package export

import (
	"context"
	"database/sql"

	"kinoexport/lib/scrapers/kinopoisk/votes"
)

// WriteDB mirrors the batch into a sqlite database, replacing whatever a
// previous run left there. The whole batch goes in one transaction so a
// failed run never leaves a half-written table behind.
func WriteDB(ctx context.Context, db *sql.DB, batch []votes.Vote) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `DELETE FROM votes`)
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO votes (num, title_ru, title_en, year, rating, type, duration_min, rated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, v := range batch {
		_, err = stmt.ExecContext(ctx,
			v.Num, v.TitleRu, v.TitleEn, v.Year, v.Rating, v.Type, v.DurationMin, v.RatedAt)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}
