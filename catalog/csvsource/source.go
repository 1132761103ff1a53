package csvsource

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/AntonStoeckl/library-catalog-go/catalog"
)

var (
	// ErrOpeningFileFailed is returned when the CSV file cannot be opened.
	ErrOpeningFileFailed = errors.New("opening csv file failed")

	// ErrReadingCSVFailed is returned when the input is not well-formed CSV.
	ErrReadingCSVFailed = errors.New("reading csv failed")

	// ErrSourceConsumed is returned when Records is called a second time on a Source built from an io.Reader.
	ErrSourceConsumed = errors.New("csv source was already consumed")

	// ErrInvalidOption is returned when an Option is supplied with an empty argument.
	ErrInvalidOption = errors.New("invalid csv source option")

	// ErrMissingInput is returned by New for a nil reader and by NewFileSource for an empty path.
	ErrMissingInput = errors.New("csv source needs a reader or a file path")
)

var defaultMetadataPrefixes = []string{"Library:", "Knihovna:"}

var tagAliases = map[string]catalog.RecordTag{
	"book":   catalog.BookTag,
	"kniha":  catalog.BookTag,
	"reader": catalog.ReaderTag,
	"ctenar": catalog.ReaderTag,
	"čtenář": catalog.ReaderTag,
}

// Source is a catalog.RecordSource reading the CSV layout described in the package documentation.
type Source struct {
	reader           io.Reader
	path             string
	consumed         bool
	metadataPrefixes []string
	comma            rune
}

// Option defines a functional option for configuring a Source.
type Option func(*Source) error

// WithMetadataPrefix adds a prefix that marks the first line as the metadata line.
func WithMetadataPrefix(prefix string) Option {
	return func(s *Source) error {
		if prefix == "" {
			return ErrInvalidOption
		}

		s.metadataPrefixes = append(s.metadataPrefixes, prefix)

		return nil
	}
}

// WithComma sets the field delimiter, the default is ','.
func WithComma(comma rune) Option {
	return func(s *Source) error {
		if comma == 0 || comma == '\n' || comma == '\r' || comma == '"' {
			return ErrInvalidOption
		}

		s.comma = comma

		return nil
	}
}

// New creates a Source that reads from r. Records can be called only once.
func New(r io.Reader, options ...Option) (*Source, error) {
	if r == nil {
		return nil, ErrMissingInput
	}

	return newSource(r, "", options)
}

// NewFileSource creates a Source that opens the file at path on every call to Records.
func NewFileSource(path string, options ...Option) (*Source, error) {
	if strings.TrimSpace(path) == "" {
		return nil, ErrMissingInput
	}

	return newSource(nil, path, options)
}

func newSource(r io.Reader, path string, options []Option) (*Source, error) {
	s := &Source{
		reader:           r,
		path:             path,
		metadataPrefixes: append([]string(nil), defaultMetadataPrefixes...),
		comma:            ',',
	}

	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Records reads all rows. A metadata line becomes a catalog.LibraryTag record, the header is skipped,
// and the first column of every other row is mapped to its tag.
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

		return s.read(f)
	}

	if s.consumed {
		return nil, ErrSourceConsumed
	}
	s.consumed = true

	return s.read(s.reader)
}

func (s *Source) read(r io.Reader) ([]catalog.Record, error) {
	br := bufio.NewReader(r)

	firstLine, err := br.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Join(ErrReadingCSVFailed, err)
	}

	records := make([]catalog.Record, 0)

	name, hasMetadata := s.metadataName(firstLine)
	if hasMetadata {
		records = append(records, catalog.LibraryRecord(name))
	}

	cr := csv.NewReader(br)
	cr.Comma = s.comma
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	headerSkipped := !hasMetadata // without metadata the first line was the header

	for {
		row, readErr := cr.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return nil, errors.Join(ErrReadingCSVFailed, readErr)
		}

		if !headerSkipped {
			headerSkipped = true
			continue
		}

		records = append(records, toRecord(row))
	}

	return records, nil
}

func (s *Source) metadataName(line string) (string, bool) {
	line = strings.TrimPrefix(strings.TrimSpace(line), "\ufeff")

	for _, prefix := range s.metadataPrefixes {
		if name, found := strings.CutPrefix(line, prefix); found {
			return strings.TrimSpace(name), true
		}
	}

	return "", false
}

func toRecord(row []string) catalog.Record {
	if len(row) == 0 {
		return catalog.Record{}
	}

	typ := strings.ToLower(strings.TrimSpace(row[0]))

	tag, known := tagAliases[typ]
	if !known {
		tag = catalog.RecordTag(typ)
	}

	return catalog.Record{
		Tag:    tag,
		Fields: append([]string(nil), row[1:]...),
	}
}
