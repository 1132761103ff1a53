package csvsource_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-catalog-go/catalog"
	"github.com/AntonStoeckl/library-catalog-go/catalog/csvsource"
	"github.com/AntonStoeckl/library-catalog-go/testutil/fixtures"
)

func Test_Records_ReadsCanonicalDocument(t *testing.T) {
	// arrange
	source, err := csvsource.New(strings.NewReader(fixtures.CSVDocument))
	require.NoError(t, err)

	// act
	records, err := source.Records(context.Background())

	// assert
	require.NoError(t, err)
	require.Len(t, records, 5)
	assert.Equal(t, catalog.LibraryRecord(fixtures.LibraryName), records[0])
	assert.Equal(t, catalog.BookTag, records[1].Tag)
	assert.Equal(t, []string{"Dune", "Herbert", "1965", "9780441013593", "", "", ""}, records[1].Fields)
	assert.Equal(t, catalog.ReaderTag, records[2].Tag)
	assert.Equal(t, catalog.BookTag, records[3].Tag, "kniha is an alias of book")
	assert.Equal(t, catalog.ReaderTag, records[4].Tag, "ctenar is an alias of reader")
}

func Test_Load_CanonicalDocument(t *testing.T) {
	// arrange
	source, err := csvsource.New(strings.NewReader(fixtures.CSVDocument))
	require.NoError(t, err)

	// act
	c, err := catalog.Load(context.Background(), source, fixtures.Options()...)

	// assert
	require.NoError(t, err)
	assert.Equal(t, fixtures.LibraryName, c.Name())
	assert.Len(t, c.Books(), 2)

	readers := c.Readers()
	require.Len(t, readers, 2)
	assert.Equal(t, fixtures.FirstCardNumber, readers[0].CardNumber())
	assert.Equal(t, fixtures.ExplicitCardNumber, readers[1].CardNumber())
}

func Test_Load_LegacyDocument(t *testing.T) {
	// arrange
	source, err := csvsource.New(strings.NewReader(fixtures.LegacyCSVDocument))
	require.NoError(t, err)

	// act
	c, err := catalog.Load(context.Background(), source, fixtures.Options()...)

	// assert
	require.NoError(t, err)
	assert.Equal(t, "Mestska knihovna", c.Name())
	require.Len(t, c.Books(), 1)
	assert.Equal(t, 0, c.Books()[0].PublicationYear())
	assert.Len(t, c.Readers(), 1)
}

func Test_Records_WithoutMetadataLine_TreatsFirstLineAsHeader(t *testing.T) {
	// arrange
	document := "type,title,author,year,isbn,first_name,last_name\n" +
		"book,Dune,Herbert,1965,9780441013593,,\n"
	source, err := csvsource.New(strings.NewReader(document))
	require.NoError(t, err)

	// act
	records, err := source.Records(context.Background())

	// assert
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, catalog.BookTag, records[0].Tag)
}

func Test_Records_WithCustomMetadataPrefixAndComma(t *testing.T) {
	// arrange
	document := "Bibliothek: Stadtbibliothek\n" +
		"type;title;author;year;isbn;first_name;last_name\n" +
		"book;Dune;Herbert;1965;9780441013593;;\n"
	source, err := csvsource.New(
		strings.NewReader(document),
		csvsource.WithMetadataPrefix("Bibliothek:"),
		csvsource.WithComma(';'),
	)
	require.NoError(t, err)

	// act
	records, err := source.Records(context.Background())

	// assert
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, catalog.LibraryRecord("Stadtbibliothek"), records[0])
	assert.Equal(t, "9780441013593", records[1].Fields[3])
}

func Test_Records_Error_WhenConsumedTwice(t *testing.T) {
	// arrange
	source, err := csvsource.New(strings.NewReader(fixtures.CSVDocument))
	require.NoError(t, err)
	_, err = source.Records(context.Background())
	require.NoError(t, err)

	// act
	_, err = source.Records(context.Background())

	// assert
	assert.ErrorIs(t, err, csvsource.ErrSourceConsumed)
}

func Test_Records_Error_WithMalformedCSV(t *testing.T) {
	// arrange
	document := "Library:X\nheader\nbook,\"Dune,Herbert\n"
	source, err := csvsource.New(strings.NewReader(document))
	require.NoError(t, err)

	// act
	_, err = source.Records(context.Background())

	// assert
	assert.ErrorIs(t, err, csvsource.ErrReadingCSVFailed)
}

func Test_Records_Error_WithCanceledContext(t *testing.T) {
	// arrange
	source, err := csvsource.New(strings.NewReader(fixtures.CSVDocument))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// act
	_, err = source.Records(ctx)

	// assert
	assert.ErrorIs(t, err, context.Canceled)
}

func Test_FileSource(t *testing.T) {
	// arrange
	path := filepath.Join(t.TempDir(), "catalog.csv")
	require.NoError(t, os.WriteFile(path, []byte(fixtures.CSVDocument), 0o600))
	source, err := csvsource.NewFileSource(path)
	require.NoError(t, err)

	// act
	first, err1 := source.Records(context.Background())
	second, err2 := source.Records(context.Background())

	// assert
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, first, second, "a file source can be read repeatedly")
}

func Test_FileSource_Error_WhenFileIsMissing(t *testing.T) {
	// arrange
	source, err := csvsource.NewFileSource(filepath.Join(t.TempDir(), "missing.csv"))
	require.NoError(t, err)

	// act
	_, err = source.Records(context.Background())

	// assert
	assert.ErrorIs(t, err, csvsource.ErrOpeningFileFailed)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func Test_Options_Error_WithInvalidArguments(t *testing.T) {
	_, prefixErr := csvsource.New(strings.NewReader(""), csvsource.WithMetadataPrefix(""))
	_, commaErr := csvsource.New(strings.NewReader(""), csvsource.WithComma('"'))

	assert.ErrorIs(t, prefixErr, csvsource.ErrInvalidOption)
	assert.ErrorIs(t, commaErr, csvsource.ErrInvalidOption)
}

func Test_New_Error_WithoutInput(t *testing.T) {
	fromReader, readerErr := csvsource.New(nil)
	fromFile, fileErr := csvsource.NewFileSource("")
	fromBlankPath, blankErr := csvsource.NewFileSource("  ")

	assert.ErrorIs(t, readerErr, csvsource.ErrMissingInput)
	assert.Nil(t, fromReader)
	assert.ErrorIs(t, fileErr, csvsource.ErrMissingInput)
	assert.Nil(t, fromFile)
	assert.ErrorIs(t, blankErr, csvsource.ErrMissingInput)
	assert.Nil(t, fromBlankPath)
}
