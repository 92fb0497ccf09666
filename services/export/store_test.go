package export

import (
	"context"
	"testing"

	"kinoexport/lib/sqliteutil"
	"kinoexport/services/export/db"

	"github.com/stretchr/testify/require"
)

func TestWriteDB(t *testing.T) {
	sqlite, err := sqliteutil.OpenDB(db.Schema, ":memory:")
	require.NoError(t, err)
	defer sqlite.Close()

	ctx := context.Background()
	err = WriteDB(ctx, sqlite, sampleBatch)
	require.NoError(t, err)

	var count int
	err = sqlite.QueryRowContext(ctx, `SELECT COUNT(*) FROM votes`).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, len(sampleBatch), count)

	var title string
	var rating int
	err = sqlite.QueryRowContext(ctx, `SELECT title_ru, rating FROM votes WHERE num = 1`).Scan(&title, &rating)
	require.NoError(t, err)
	require.Equal(t, "Титаник", title)
	require.Equal(t, 8, rating)

	// a rerun replaces the previous contents instead of appending
	err = WriteDB(ctx, sqlite, sampleBatch[:1])
	require.NoError(t, err)
	err = sqlite.QueryRowContext(ctx, `SELECT COUNT(*) FROM votes`).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}
