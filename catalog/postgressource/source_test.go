package postgressource_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-catalog-go/catalog"
	"github.com/AntonStoeckl/library-catalog-go/catalog/postgressource"
	"github.com/AntonStoeckl/library-catalog-go/catalog/postgressource/internal/adapters"
	"github.com/AntonStoeckl/library-catalog-go/testutil/fixtures"
	"github.com/AntonStoeckl/library-catalog-go/testutil/testdoubles"
)

func Test_BuildSelectQuery_DefaultTable(t *testing.T) {
	// arrange
	source, err := postgressource.NewSourceFromAdapter(&fakeDB{})
	require.NoError(t, err)

	// act
	query, err := source.BuildSelectQuery()

	// assert
	require.NoError(t, err)
	assert.Contains(t, query, `SELECT "record_type", `)
	assert.Contains(t, query, `FROM "catalog_records"`)
	assert.Contains(t, query, `ORDER BY "seq" ASC`)
	for _, col := range []string{"title", "author", "publication_year", "isbn", "first_name", "last_name", "card_number"} {
		assert.Contains(t, query, `AS "`+col+`"`)
	}
}

func Test_BuildSelectQuery_CustomTable(t *testing.T) {
	// arrange
	source, err := postgressource.NewSourceFromAdapter(&fakeDB{}, postgressource.WithTableName("branch_records"))
	require.NoError(t, err)

	// act
	query, err := source.BuildSelectQuery()

	// assert
	require.NoError(t, err)
	assert.Contains(t, query, `FROM "branch_records"`)
}

func Test_Constructors_Error(t *testing.T) {
	_, pgxErr := postgressource.NewSourceFromPGXPool(nil)
	_, sqlErr := postgressource.NewSourceFromSQLDB(nil)
	_, sqlxErr := postgressource.NewSourceFromSQLX(nil)
	_, tableErr := postgressource.NewSourceFromAdapter(&fakeDB{}, postgressource.WithTableName(""))

	assert.ErrorIs(t, pgxErr, postgressource.ErrNilDatabaseConnection)
	assert.ErrorIs(t, sqlErr, postgressource.ErrNilDatabaseConnection)
	assert.ErrorIs(t, sqlxErr, postgressource.ErrNilDatabaseConnection)
	assert.ErrorIs(t, tableErr, postgressource.ErrEmptyTableName)
}

func Test_Records_MapsRowsToRecords(t *testing.T) {
	// arrange
	db := &fakeDB{rows: [][]string{
		{"library", fixtures.LibraryName, "", "", "", "", "", ""},
		{"book", fixtures.DuneTitle, fixtures.DuneAuthor, "1965", fixtures.DuneISBN, "", "", ""},
		{"reader", "", "", "", "", "Jan", "Novak", ""},
		{"reader", "", "", "", "", "Eva", "Svobodova", "4711"},
		{"magazine", "Wired", "", "", "", "", "", ""},
	}}
	logs := testdoubles.NewLogHandlerSpy()
	source, err := postgressource.NewSourceFromAdapter(db, postgressource.WithLogger(slog.New(logs)))
	require.NoError(t, err)

	// act
	records, err := source.Records(context.Background())

	// assert
	require.NoError(t, err)
	assert.Equal(t, []catalog.Record{
		catalog.LibraryRecord(fixtures.LibraryName),
		catalog.BookRecord(fixtures.DuneTitle, fixtures.DuneAuthor, "1965", fixtures.DuneISBN),
		catalog.ReaderRecord("Jan", "Novak"),
		catalog.ReaderRecordWithCardNumber("Eva", "Svobodova", fixtures.ExplicitCardNumber),
		{Tag: "magazine"},
	}, records)
	assert.True(t, db.closed)
	assert.True(t, logs.HasLog(slog.LevelDebug, "executed sql for: query"))
	assert.Equal(t, "5", logs.AttrsOf("catalog records loaded")["record_count"])
}

func Test_Load_FromRows(t *testing.T) {
	// arrange
	db := &fakeDB{rows: [][]string{
		{"library", fixtures.LibraryName, "", "", "", "", "", ""},
		{"book", fixtures.DuneTitle, fixtures.DuneAuthor, "1965", fixtures.DuneISBN, "", "", ""},
		{"reader", "", "", "", "", "Jan", "Novak", ""},
	}}
	source, err := postgressource.NewSourceFromAdapter(db)
	require.NoError(t, err)

	// act
	c, err := catalog.Load(context.Background(), source, fixtures.Options()...)

	// assert
	require.NoError(t, err)
	assert.Equal(t, fixtures.LibraryName, c.Name())
	assert.Len(t, c.Books(), 1)
	assert.Len(t, c.Readers(), 1)
}

func Test_Records_Error_WhenQueryFails(t *testing.T) {
	// arrange
	dbErr := errors.New("connection refused")
	source, err := postgressource.NewSourceFromAdapter(&fakeDB{queryErr: dbErr})
	require.NoError(t, err)

	// act
	_, err = source.Records(context.Background())

	// assert
	assert.ErrorIs(t, err, postgressource.ErrQueryingRecordsFailed)
	assert.ErrorIs(t, err, dbErr)
}

func Test_Records_Error_WhenScanFails(t *testing.T) {
	// arrange
	db := &fakeDB{rows: [][]string{{"book"}}} // too few columns
	source, err := postgressource.NewSourceFromAdapter(db)
	require.NoError(t, err)

	// act
	_, err = source.Records(context.Background())

	// assert
	assert.ErrorIs(t, err, postgressource.ErrScanningDBRowFailed)
	assert.True(t, db.closed)
}

func Test_Records_Error_WhenIterationFails(t *testing.T) {
	// arrange
	iterErr := errors.New("connection reset")
	db := &fakeDB{iterErr: iterErr}
	source, err := postgressource.NewSourceFromAdapter(db)
	require.NoError(t, err)

	// act
	_, err = source.Records(context.Background())

	// assert
	assert.ErrorIs(t, err, postgressource.ErrScanningDBRowFailed)
	assert.ErrorIs(t, err, iterErr)
}

// fakeDB is an in-memory adapters.DBAdapter returning string rows.
type fakeDB struct {
	rows     [][]string
	queryErr error
	iterErr  error
	closed   bool
}

func (db *fakeDB) Query(_ context.Context, _ string) (adapters.DBRows, error) {
	if db.queryErr != nil {
		return nil, db.queryErr
	}

	return &fakeRows{db: db, pos: -1}, nil
}

type fakeRows struct {
	db  *fakeDB
	pos int
}

func (r *fakeRows) Next() bool {
	r.pos++
	return r.pos < len(r.db.rows)
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.db.rows[r.pos]
	if len(row) != len(dest) {
		return errors.New("column count mismatch")
	}

	for i, d := range dest {
		s, ok := d.(*string)
		if !ok {
			return errors.New("unsupported destination")
		}
		*s = row[i]
	}

	return nil
}

func (r *fakeRows) Err() error {
	return r.db.iterErr
}

func (r *fakeRows) Close() error {
	r.db.closed = true
	return nil
}
