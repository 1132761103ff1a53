package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-catalog-go/catalog"
	"github.com/AntonStoeckl/library-catalog-go/testutil/fixtures"
)

func Test_Show_PrintsRenderedCatalog(t *testing.T) {
	// arrange
	file := givenFile(t, "catalog.csv", fixtures.CSVDocument)

	// act
	out, err := execute(t, "show", "--file", file)

	// assert
	require.NoError(t, err)
	assert.Equal(t, "Library: City Library\n"+
		"Books:\n"+
		"  - Dune (Herbert, 1965) [9780441013593]\n"+
		"  - The Hobbit (Tolkien, 1937) [9780547928227]\n"+
		"Readers:\n"+
		"  - Jan Novak, card: 1001\n"+
		"  - Eva Svobodova, card: 4711\n"+
		"No books are currently on loan.\n", out)
}

func Test_Books_FromJSONSource(t *testing.T) {
	// arrange
	file := givenFile(t, "catalog.json", fixtures.JSONDocument)

	// act
	out, err := execute(t, "books", "--source", "json", "--file", file, "--keyword", "tolkien")

	// assert
	require.NoError(t, err)
	assert.Equal(t, "The Hobbit (Tolkien, 1937) [9780547928227]\n", out)
}

func Test_Readers_ByCardNumber(t *testing.T) {
	// arrange
	file := givenFile(t, "catalog.csv", fixtures.CSVDocument)

	// act
	out, err := execute(t, "readers", "--file", file, "--card", "4711")

	// assert
	require.NoError(t, err)
	assert.Equal(t, "Eva Svobodova, card: 4711\n", out)
}

func Test_Loans_WhenNothingIsLent(t *testing.T) {
	// arrange
	file := givenFile(t, "catalog.csv", fixtures.CSVDocument)

	// act
	out, err := execute(t, "loans", "--file", file)

	// assert
	require.NoError(t, err)
	assert.Equal(t, "No books are currently on loan.\n", out)
}

func Test_Execute_Error(t *testing.T) {
	testCases := []struct {
		name string
		args []string
	}{
		{"missing file flag", []string{"show"}},
		{"unknown source", []string{"show", "--source", "ftp", "--file", "x"}},
		{"file does not exist", []string{"show", "--file", filepath.Join(os.TempDir(), "does-not-exist.csv")}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			_, err := execute(t, tc.args...)

			// assert
			assert.Error(t, err)
		})
	}
}

func Test_Show_Error_WithMalformedISBN(t *testing.T) {
	// arrange
	file := givenFile(t, "bad.csv", "type,title,author,year,isbn\nbook,Dune,Herbert,1965,123\n")

	// act
	out, err := execute(t, "show", "--file", file)

	// assert
	assert.ErrorIs(t, err, catalog.ErrValidation)
	assert.Empty(t, out)
}

func Test_SourceOrClose_ReleasesConnections_WhenSourceFails(t *testing.T) {
	// arrange
	closed := 0
	closeSource := func() { closed++ }
	failure := errors.New("table name rejected")

	// act
	source, release, err := sourceOrClose(nil, closeSource, failure)
	release()

	// assert
	assert.ErrorIs(t, err, failure)
	assert.Nil(t, source)
	assert.Equal(t, 1, closed, "connections must be closed exactly once")
}

func Test_SourceOrClose_KeepsConnections_WhenSourceIsBuilt(t *testing.T) {
	// arrange
	closed := 0
	closeSource := func() { closed++ }
	built := catalog.Records(fixtures.BootstrapRecords())

	// act
	source, release, err := sourceOrClose(built, closeSource, nil)

	// assert
	require.NoError(t, err)
	assert.Equal(t, built, source)
	assert.Zero(t, closed)
	release()
	assert.Equal(t, 1, closed)
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	t.Setenv("LIBRARY_LOG_LEVEL", "error")
	t.Chdir(t.TempDir())

	var out, errOut bytes.Buffer
	cmd := newRootCmd(fixtures.Options()...)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())

	return out.String(), err
}

func givenFile(t *testing.T, name string, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}
