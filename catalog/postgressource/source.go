// Package postgressource reads catalog records from a PostgreSQL table.
//
// The table is read once with a single SELECT ordered by seq. Rows of type
// "library" carry the catalog name in the title column, all other columns
// are passed on as text so that catalog.Bootstrap stays in charge of parsing
// and validation:
//
//	CREATE TABLE catalog_records (
//	    seq              BIGSERIAL PRIMARY KEY,
//	    record_type      TEXT NOT NULL,
//	    title            TEXT,
//	    author           TEXT,
//	    publication_year TEXT,
//	    isbn             TEXT,
//	    first_name       TEXT,
//	    last_name        TEXT,
//	    card_number      INTEGER
//	);
//
// pgxpool.Pool, sql.DB and sqlx.DB connections are supported.
package postgressource

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/AntonStoeckl/library-catalog-go/catalog"
	"github.com/AntonStoeckl/library-catalog-go/catalog/postgressource/internal/adapters"
)

const (
	defaultTableName             = "catalog_records"
	logMsgBuildSelectQueryFailed = "failed to build select query"
	logMsgDBQueryFailed          = "database query execution failed"
	logMsgCloseRowsFailed        = "failed to close database rows"
	logMsgScanRowFailed          = "failed to scan database row"
	logMsgRecordsLoaded          = "catalog records loaded"
	logMsgSQLExecuted            = "executed sql for: "
	logAttrError                 = "error"
	logAttrQuery                 = "query"
	logAttrRecordCount           = "record_count"
	logAttrDurationMS            = "duration_ms"
	logActionQuery               = "query"
	colSeq                       = "seq"
	colRecordType                = "record_type"
	colTitle                     = "title"
	colAuthor                    = "author"
	colPublicationYear           = "publication_year"
	colISBN                      = "isbn"
	colFirstName                 = "first_name"
	colLastName                  = "last_name"
	colCardNumber                = "card_number"
	dialectPostgres              = "postgres"
	castText                     = "TEXT"
)

var (
	// ErrNilDatabaseConnection is returned when a constructor receives a nil connection.
	ErrNilDatabaseConnection = errors.New("database connection must not be nil")

	// ErrEmptyTableName is returned when WithTableName receives an empty name.
	ErrEmptyTableName = errors.New("table name must not be empty")

	// ErrBuildingQueryFailed is returned when the SELECT statement cannot be built.
	ErrBuildingQueryFailed = errors.New("building query failed")

	// ErrQueryingRecordsFailed is returned when the query cannot be executed.
	ErrQueryingRecordsFailed = errors.New("querying catalog records failed")

	// ErrScanningDBRowFailed is returned when a result row cannot be scanned.
	ErrScanningDBRowFailed = errors.New("scanning db row failed")
)

// Logger interface for SQL query logging, operational information and error reporting.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Source is a catalog.RecordSource reading a PostgreSQL table.
type Source struct {
	db        adapters.DBAdapter
	tableName string
	logger    Logger
}

// Option defines a functional option for configuring Source.
type Option func(*Source) error

// WithTableName sets the table to read from, the default is "catalog_records".
func WithTableName(tableName string) Option {
	return func(s *Source) error {
		if tableName == "" {
			return ErrEmptyTableName
		}

		s.tableName = tableName

		return nil
	}
}

// WithLogger sets the logger for the Source.
//
// Debug level: the executed SQL with timing
// Info level: number of loaded records and duration
// Warn level: failures while closing result rows
// Error level: failures that abort Records.
func WithLogger(logger Logger) Option {
	return func(s *Source) error {
		s.logger = logger
		return nil
	}
}

// NewSourceFromPGXPool creates a new Source using a pgx Pool with optional configuration.
func NewSourceFromPGXPool(db *pgxpool.Pool, options ...Option) (Source, error) {
	if db == nil {
		return Source{}, ErrNilDatabaseConnection
	}

	return newSource(adapters.NewPGXAdapter(db), options)
}

// NewSourceFromSQLDB creates a new Source using a sql.DB with optional configuration.
func NewSourceFromSQLDB(db *sql.DB, options ...Option) (Source, error) {
	if db == nil {
		return Source{}, ErrNilDatabaseConnection
	}

	return newSource(adapters.NewSQLAdapter(db), options)
}

// NewSourceFromSQLX creates a new Source using a sqlx.DB with optional configuration.
func NewSourceFromSQLX(db *sqlx.DB, options ...Option) (Source, error) {
	if db == nil {
		return Source{}, ErrNilDatabaseConnection
	}

	return newSource(adapters.NewSQLXAdapter(db), options)
}

func newSource(db adapters.DBAdapter, options []Option) (Source, error) {
	s := Source{
		db:        db,
		tableName: defaultTableName,
	}

	for _, option := range options {
		if err := option(&s); err != nil {
			return Source{}, err
		}
	}

	return s, nil
}

type queryResultRow struct {
	recordType      string
	title           string
	author          string
	publicationYear string
	isbn            string
	firstName       string
	lastName        string
	cardNumber      string
}

// Records reads all rows of the table ordered by seq and converts them into catalog records.
func (s Source) Records(ctx context.Context) ([]catalog.Record, error) {
	sqlQuery, buildQueryErr := s.buildSelectQuery()
	if buildQueryErr != nil {
		if s.logger != nil {
			s.logger.Error(logMsgBuildSelectQueryFailed, logAttrError, buildQueryErr.Error())
		}

		return nil, buildQueryErr
	}

	start := time.Now()
	rows, queryErr := s.db.Query(ctx, sqlQuery)
	duration := time.Since(start)
	s.logQueryWithDuration(sqlQuery, duration)

	if queryErr != nil {
		if s.logger != nil {
			s.logger.Error(logMsgDBQueryFailed, logAttrError, queryErr.Error(), logAttrQuery, sqlQuery)
		}

		return nil, errors.Join(ErrQueryingRecordsFailed, queryErr)
	}
	defer s.closeRows(rows)

	records, scanErr := s.processQueryResults(rows)
	if scanErr != nil {
		return nil, scanErr
	}

	if s.logger != nil {
		s.logger.Info(logMsgRecordsLoaded, logAttrRecordCount, len(records), logAttrDurationMS, durationToMilliseconds(duration))
	}

	return records, nil
}

func (s Source) buildSelectQuery() (string, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(s.tableName).
		Select(
			goqu.C(colRecordType),
			textColumn(colTitle),
			textColumn(colAuthor),
			textColumn(colPublicationYear),
			textColumn(colISBN),
			textColumn(colFirstName),
			textColumn(colLastName),
			textColumn(colCardNumber),
		).
		Order(goqu.I(colSeq).Asc())

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

// textColumn selects col as non-null text, so every driver scans it into a plain string.
func textColumn(col string) any {
	return goqu.COALESCE(goqu.Cast(goqu.C(col), castText), "").As(col)
}

func (s Source) processQueryResults(rows adapters.DBRows) ([]catalog.Record, error) {
	records := make([]catalog.Record, 0)
	result := queryResultRow{}

	for rows.Next() {
		rowScanErr := rows.Scan(
			&result.recordType,
			&result.title,
			&result.author,
			&result.publicationYear,
			&result.isbn,
			&result.firstName,
			&result.lastName,
			&result.cardNumber,
		)
		if rowScanErr != nil {
			if s.logger != nil {
				s.logger.Error(logMsgScanRowFailed, logAttrError, rowScanErr.Error())
			}

			return nil, errors.Join(ErrScanningDBRowFailed, rowScanErr)
		}

		records = append(records, result.toRecord())
	}

	if err := rows.Err(); err != nil {
		if s.logger != nil {
			s.logger.Error(logMsgScanRowFailed, logAttrError, err.Error())
		}

		return nil, errors.Join(ErrScanningDBRowFailed, err)
	}

	return records, nil
}

func (r queryResultRow) toRecord() catalog.Record {
	switch catalog.RecordTag(r.recordType) {
	case catalog.LibraryTag:
		return catalog.LibraryRecord(r.title)

	case catalog.BookTag:
		return catalog.BookRecord(r.title, r.author, r.publicationYear, r.isbn)

	case catalog.ReaderTag:
		record := catalog.ReaderRecord(r.firstName, r.lastName)
		if r.cardNumber != "" {
			record.Fields = append(record.Fields, r.cardNumber)
		}

		return record

	default:
		return catalog.Record{Tag: catalog.RecordTag(r.recordType)}
	}
}

// closeRows safely closes database rows and logs any errors.
func (s Source) closeRows(rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		if s.logger != nil {
			s.logger.Warn(logMsgCloseRowsFailed, logAttrError, closeErr.Error())
		}
	}
}

func (s Source) logQueryWithDuration(sqlQuery string, duration time.Duration) {
	if s.logger != nil {
		s.logger.Debug(logMsgSQLExecuted+logActionQuery, logAttrQuery, sqlQuery, logAttrDurationMS, durationToMilliseconds(duration))
	}
}

func durationToMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
