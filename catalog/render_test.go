package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-catalog-go/catalog"
	"github.com/AntonStoeckl/library-catalog-go/testutil/fixtures"
)

func Test_Render_WithoutLoans(t *testing.T) {
	// arrange
	c, err := catalog.Bootstrap(fixtures.NamedBootstrapRecords(), fixtures.Options()...)
	require.NoError(t, err)

	// act
	rendered := c.Render()

	// assert
	expected := "Library: City Library\n" +
		"Books:\n" +
		"  - Dune (Herbert, 1965) [9780441013593]\n" +
		"  - The Hobbit (Tolkien, 1937) [9780547928227]\n" +
		"Readers:\n" +
		"  - Jan Novak, card: 1001\n" +
		"No books are currently on loan.\n"
	assert.Equal(t, expected, rendered)
}

func Test_Render_WithLoans(t *testing.T) {
	// arrange
	c, err := catalog.Bootstrap(fixtures.NamedBootstrapRecords(), fixtures.Options()...)
	require.NoError(t, err)
	jan := c.Readers()[0]
	require.NoError(t, c.Borrow(fixtures.HobbitISBN, jan))

	// act
	rendered := c.Render()

	// assert
	expected := "Library: City Library\n" +
		"Books:\n" +
		"  - Dune (Herbert, 1965) [9780441013593]\n" +
		"  - The Hobbit (Tolkien, 1937) [9780547928227]\n" +
		"Readers:\n" +
		"  - Jan Novak, card: 1001\n" +
		"Loans:\n" +
		"  - 9780547928227 -> Jan Novak, card: 1001, since 2024-05-01\n"
	assert.Equal(t, expected, rendered)
}

func Test_Render_IsDeterministic(t *testing.T) {
	// arrange
	c, err := catalog.Bootstrap(fixtures.NamedBootstrapRecords(), fixtures.Options()...)
	require.NoError(t, err)

	// act & assert
	assert.Equal(t, c.Render(), c.Render())
}

func Test_LoanState_String(t *testing.T) {
	assert.Equal(t, "available", catalog.Available.String())
	assert.Equal(t, "loaned", catalog.Loaned.String())
	assert.Equal(t, "unknown", catalog.LoanState(9).String())
}
