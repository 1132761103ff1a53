package catalog

import (
	"time"
)

const loanDateLayout = "2006-01-02"

// LoanState is the lending state of a single ISBN.
type LoanState int

const (
	// Available means the book has no active loan.
	Available LoanState = iota

	// Loaned means the book is currently lent to a reader.
	Loaned
)

// String provides a string representation of LoanState for logging and debugging.
func (s LoanState) String() string {
	switch s {
	case Available:
		return "available"
	case Loaned:
		return "loaned"
	default:
		return "unknown"
	}
}

// Loan is an entry of the loan ledger: the book with ISBN is lent to Reader since LoanedOn.
type Loan struct {
	ISBN     string
	Reader   Reader
	LoanedOn time.Time
}

// String returns the display line of the loan, e.g. "9780441013593 -> Jan Novak, card: 4711, since 2024-05-01".
func (l Loan) String() string {
	return l.ISBN + " -> " + l.Reader.String() + ", since " + l.LoanedOn.Format(loanDateLayout)
}

// toLoanDate truncates t to its calendar date in t's location.
func toLoanDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
