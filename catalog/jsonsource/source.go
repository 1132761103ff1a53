// Package jsonsource reads catalog records from JSON documents of the form
//
//	{
//	  "library": "City Library",
//	  "records": [
//	    {"type": "book", "title": "Dune", "author": "Herbert", "year": "1965", "isbn": "9780441013593"},
//	    {"type": "reader", "firstName": "Jan", "lastName": "Novak", "cardNumber": "4711"}
//	  ]
//	}
//
// All values are strings, parsing and validation happen in catalog.Bootstrap.
package jsonsource

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-catalog-go/catalog"
)

var (
	// ErrOpeningFileFailed is returned when the JSON file cannot be opened.
	ErrOpeningFileFailed = errors.New("opening json file failed")

	// ErrDecodingFailed is returned when the input is not a valid catalog document.
	ErrDecodingFailed = errors.New("decoding json document failed")

	// ErrSourceConsumed is returned when Records is called a second time on a Source built from an io.Reader.
	ErrSourceConsumed = errors.New("json source was already consumed")
)

// Document is the JSON representation of a catalog input.
type Document struct {
	Library string           `json:"library,omitempty"`
	Records []DocumentRecord `json:"records"`
}

// DocumentRecord is a single entry of Document.Records.
type DocumentRecord struct {
	Type       string `json:"type"`
	Title      string `json:"title,omitempty"`
	Author     string `json:"author,omitempty"`
	Year       string `json:"year,omitempty"`
	ISBN       string `json:"isbn,omitempty"`
	FirstName  string `json:"firstName,omitempty"`
	LastName   string `json:"lastName,omitempty"`
	CardNumber string `json:"cardNumber,omitempty"`
}

// Source is a catalog.RecordSource reading a Document.
type Source struct {
	reader   io.Reader
	path     string
	consumed bool
}

// New creates a Source that decodes from r. Records can be called only once.
func New(r io.Reader) *Source {
	return &Source{reader: r}
}

// NewFileSource creates a Source that opens the file at path on every call to Records.
func NewFileSource(path string) *Source {
	return &Source{path: path}
}

// Records decodes the document and converts it into catalog records.
func (s *Source) Records(ctx context.Context) ([]catalog.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if s.path != "" {
		f, err := os.Open(s.path)
		if err != nil {
			return nil, errors.Join(ErrOpeningFileFailed, err)
		}
		defer func() { _ = f.Close() }()

		return decode(f)
	}

	if s.consumed {
		return nil, ErrSourceConsumed
	}
	s.consumed = true

	return decode(s.reader)
}

func decode(r io.Reader) ([]catalog.Record, error) {
	var doc Document

	if err := jsoniter.ConfigFastest.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Join(ErrDecodingFailed, err)
	}

	return doc.ToRecords(), nil
}

// ToRecords converts the document into catalog records, the library name becoming the leading metadata record.
func (d Document) ToRecords() []catalog.Record {
	records := make([]catalog.Record, 0, len(d.Records)+1)

	if d.Library != "" {
		records = append(records, catalog.LibraryRecord(d.Library))
	}

	for _, r := range d.Records {
		records = append(records, r.toRecord())
	}

	return records
}

func (r DocumentRecord) toRecord() catalog.Record {
	tag := catalog.RecordTag(strings.ToLower(strings.TrimSpace(r.Type)))

	switch tag {
	case catalog.BookTag:
		return catalog.BookRecord(r.Title, r.Author, r.Year, r.ISBN)

	case catalog.ReaderTag:
		record := catalog.ReaderRecord(r.FirstName, r.LastName)
		if r.CardNumber != "" {
			record.Fields = append(record.Fields, r.CardNumber)
		}

		return record

	default:
		return catalog.Record{Tag: tag}
	}
}
