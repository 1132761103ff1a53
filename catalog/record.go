package catalog

import (
	"context"
	"strconv"
)

// RecordTag identifies the kind of row in the bootstrap input.
type RecordTag string

const (
	// LibraryTag marks the metadata row, Fields[0] is the catalog name.
	LibraryTag RecordTag = "library"

	// BookTag marks a book row: title, author, year text, ISBN.
	BookTag RecordTag = "book"

	// ReaderTag marks a reader row: four empty columns, first name, last name and an optional card number.
	ReaderTag RecordTag = "reader"
)

const (
	bookFieldCount   = 4
	readerFieldCount = 6

	readerFirstNameField  = 4
	readerLastNameField   = 5
	readerCardNumberField = 6
)

// Record is one parsed input row, already split into fields by a RecordSource.
type Record struct {
	Tag    RecordTag
	Fields []string
}

// RecordSource supplies the rows a Catalog is bootstrapped from.
// Implementations may perform I/O, the catalog itself never does.
type RecordSource interface {
	Records(ctx context.Context) ([]Record, error)
}

// Records is an in-memory RecordSource.
type Records []Record

// Records returns a copy of rs.
func (rs Records) Records(_ context.Context) ([]Record, error) {
	return append([]Record(nil), rs...), nil
}

// LibraryRecord builds the metadata row naming the catalog.
func LibraryRecord(name string) Record {
	return Record{Tag: LibraryTag, Fields: []string{name}}
}

// BookRecord builds a book row. The year is kept as text, Bootstrap parses it leniently.
func BookRecord(title string, author string, yearText string, isbn string) Record {
	return Record{Tag: BookTag, Fields: []string{title, author, yearText, isbn}}
}

// ReaderRecord builds a reader row without a card number, Bootstrap draws one from the card number source.
func ReaderRecord(firstName string, lastName string) Record {
	return Record{Tag: ReaderTag, Fields: []string{"", "", "", "", firstName, lastName}}
}

// ReaderRecordWithCardNumber builds a reader row carrying an explicit card number.
func ReaderRecordWithCardNumber(firstName string, lastName string, cardNumber int) Record {
	return Record{Tag: ReaderTag, Fields: []string{"", "", "", "", firstName, lastName, strconv.Itoa(cardNumber)}}
}

// IsEmpty reports whether the record carries no tag and no non-empty field.
func (r Record) IsEmpty() bool {
	if r.Tag != "" {
		return false
	}

	for _, f := range r.Fields {
		if f != "" {
			return false
		}
	}

	return true
}
