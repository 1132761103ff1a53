package fixtures

import (
	"time"

	"github.com/AntonStoeckl/library-catalog-go/catalog"
)

// Canonical catalog data used across packages.
const (
	LibraryName = "City Library"

	DuneTitle  = "Dune"
	DuneAuthor = "Herbert"
	DuneYear   = 1965
	DuneISBN   = "9780441013593"

	HobbitTitle  = "The Hobbit"
	HobbitAuthor = "Tolkien"
	HobbitYear   = 1937
	HobbitISBN   = "9780547928227"

	ReaderFirstName = "Jan"
	ReaderLastName  = "Novak"

	UnknownISBN = "0000000000000"

	// FirstCardNumber is the first card number handed out by SequentialCardNumbers.
	FirstCardNumber = 1001
)

// LoanDay is the fixed day FixedClock reports.
var LoanDay = time.Date(2024, time.May, 1, 14, 30, 0, 0, time.UTC)

// BootstrapRecords returns the minimal bootstrap input: one book and one reader without a card number.
func BootstrapRecords() []catalog.Record {
	return []catalog.Record{
		catalog.BookRecord(DuneTitle, DuneAuthor, "1965", DuneISBN),
		catalog.ReaderRecord(ReaderFirstName, ReaderLastName),
	}
}

// NamedBootstrapRecords returns BootstrapRecords preceded by the metadata row and followed by a second book.
func NamedBootstrapRecords() []catalog.Record {
	return []catalog.Record{
		catalog.LibraryRecord(LibraryName),
		catalog.BookRecord(DuneTitle, DuneAuthor, "1965", DuneISBN),
		catalog.ReaderRecord(ReaderFirstName, ReaderLastName),
		catalog.BookRecord(HobbitTitle, HobbitAuthor, "1937", HobbitISBN),
	}
}

// SequentialCardNumbers returns a card number source yielding FirstCardNumber, FirstCardNumber+1, ...
// The returned source is not safe for concurrent use.
func SequentialCardNumbers() catalog.CardNumberSource {
	next := FirstCardNumber

	return catalog.CardNumberSourceFunc(func() int {
		n := next
		next++

		return n
	})
}

// ConstantCardNumber returns a card number source that always yields n.
func ConstantCardNumber(n int) catalog.CardNumberSource {
	return catalog.CardNumberSourceFunc(func() int {
		return n
	})
}

// FixedClock returns a clock that always reports LoanDay.
func FixedClock() func() time.Time {
	return func() time.Time {
		return LoanDay
	}
}

// Options returns the deterministic catalog options used by most tests.
func Options() []catalog.Option {
	return []catalog.Option{
		catalog.WithCardNumberSource(SequentialCardNumbers()),
		catalog.WithClock(FixedClock()),
	}
}
