// Package catalog provides an in-memory registry of books and readers
// together with a loan ledger for a small public library.
//
// A Catalog is populated once from a sequence of tagged rows (see Record and
// Bootstrap) and is then mutated through its operations:
//
//   - AddBook / RemoveBook / FindBooks
//   - RegisterReader / DeregisterReader / FindReaders
//   - Borrow / ReturnBook
//   - Render
//
// Every ISBN in the loan ledger moves between two states:
//
//	Available --Borrow--> Loaned --ReturnBook--> Available
//
// A book can only be removed while it is Available, and a reader can only be
// deregistered while holding no loan.
//
// The package performs no I/O and no logging. Failures are returned as *Error
// values that wrap one of the sentinel kinds (ErrValidation, ErrNotFound,
// ErrConflict, ErrNotLoaned, ErrWrongBorrower), so callers can classify them
// with errors.Is.
//
// A Catalog is not safe for concurrent use. Hosts that share one Catalog
// between goroutines must hold a single exclusive lock around every operation,
// as app/shell.Service does.
//
// Common usage pattern:
//
//	c, err := catalog.Bootstrap(records, catalog.WithCardNumberSource(source))
//	if err != nil {
//		// handle error, no partial catalog is returned
//	}
//
//	if err := c.Borrow("9780441013593", reader); errors.Is(err, catalog.ErrConflict) {
//		// the book is already on loan
//	}
package catalog
