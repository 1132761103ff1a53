package catalog

import (
	"context"
	"strconv"
	"strings"
)

// Bootstrap builds a Catalog from records.
//
// A leading LibraryTag row supplies the name (DefaultName when absent or empty), later metadata rows are ignored.
// Book rows with a year that is not an integer get year 0. Empty rows and rows with unknown tags are skipped.
// Duplicate ISBNs or card numbers in the input are no-ops, exactly like AddBook and RegisterReader.
//
// Any malformed row aborts the whole bootstrap and no catalog is returned:
//
//	ERROR: ErrValidation for rows with too few fields, malformed ISBNs, empty titles or authors and malformed card numbers
func Bootstrap(records []Record, options ...Option) (*Catalog, error) {
	name := DefaultName
	if len(records) > 0 && records[0].Tag == LibraryTag && len(records[0].Fields) > 0 {
		if n := strings.TrimSpace(records[0].Fields[0]); n != "" {
			name = n
		}
	}

	c, err := New(name, options...)
	if err != nil {
		return nil, err
	}

	for i, record := range records {
		if record.IsEmpty() {
			continue
		}

		switch record.Tag {
		case BookTag:
			book, bookErr := bookFromRecord(i, record)
			if bookErr != nil {
				return nil, bookErr
			}

			c.AddBook(book)

		case ReaderTag:
			reader, readerErr := c.readerFromRecord(i, record)
			if readerErr != nil {
				return nil, readerErr
			}

			c.RegisterReader(reader)

		default:
			// metadata rows were handled above, unknown tags are skipped
		}
	}

	return c, nil
}

// Load reads all records from source and bootstraps a Catalog from them.
// Errors of the source are returned unchanged.
func Load(ctx context.Context, source RecordSource, options ...Option) (*Catalog, error) {
	records, err := source.Records(ctx)
	if err != nil {
		return nil, err
	}

	return Bootstrap(records, options...)
}

func bookFromRecord(row int, record Record) (Book, error) {
	if len(record.Fields) < bookFieldCount {
		return Book{}, fail(opBootstrap, ErrValidation, rowKey(row), failureReasonTooFewFields)
	}

	year, err := strconv.Atoi(strings.TrimSpace(record.Fields[2]))
	if err != nil {
		year = 0 // lenient - an unparsable year does not reject the book
	}

	return NewBook(record.Fields[0], record.Fields[1], year, strings.TrimSpace(record.Fields[3]))
}

func (c *Catalog) readerFromRecord(row int, record Record) (Reader, error) {
	if len(record.Fields) < readerFieldCount {
		return Reader{}, fail(opBootstrap, ErrValidation, rowKey(row), failureReasonTooFewFields)
	}

	firstName := record.Fields[readerFirstNameField]
	lastName := record.Fields[readerLastNameField]

	if len(record.Fields) > readerCardNumberField && strings.TrimSpace(record.Fields[readerCardNumberField]) != "" {
		cardNumber, err := ParseCardNumber(record.Fields[readerCardNumberField])
		if err != nil {
			return Reader{}, err
		}

		return NewReaderWithCardNumber(firstName, lastName, cardNumber)
	}

	return c.NewReader(firstName, lastName)
}

func rowKey(row int) string {
	return "row " + strconv.Itoa(row+1)
}
