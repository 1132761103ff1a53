package catalog

import (
	"slices"
	"strconv"
	"strings"
	"time"
)

// DefaultName is the display name of a catalog that was not given one.
const DefaultName = "Unknown Library"

// Catalog is the in-memory registry of books and readers plus the loan ledger.
//
// Books and readers are kept in insertion order. The ledger maps an ISBN to its single active loan;
// every ISBN in the ledger belongs to a book of the catalog.
type Catalog struct {
	name        string
	books       []Book
	readers     []Reader
	loans       map[string]Loan
	loanOrder   []string
	cardNumbers CardNumberSource
	now         func() time.Time
}

// BookQuery selects books in FindBooks.
// A non-empty ISBN selects by exact ISBN, otherwise Keyword is matched case-insensitively
// against title and author (an empty keyword matches every book).
type BookQuery struct {
	Keyword string
	ISBN    string
}

// ReaderQuery selects readers in FindReaders.
// A non-nil CardNumber selects by exact card number, otherwise Keyword is matched
// case-insensitively against first and last name (an empty keyword matches every reader).
type ReaderQuery struct {
	Keyword    string
	CardNumber *int
}

// ReadersWithCardNumber builds a ReaderQuery selecting by card number.
func ReadersWithCardNumber(cardNumber int) ReaderQuery {
	return ReaderQuery{CardNumber: &cardNumber}
}

// New creates an empty Catalog. An empty name falls back to DefaultName.
func New(name string, options ...Option) (*Catalog, error) {
	if name == "" {
		name = DefaultName
	}

	c := &Catalog{
		name:        name,
		loans:       make(map[string]Loan),
		cardNumbers: RandomCardNumbers{},
		now:         time.Now,
	}

	for _, option := range options {
		if err := option(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Name returns the display name.
func (c *Catalog) Name() string {
	return c.name
}

// Books returns a copy of all books in insertion order.
func (c *Catalog) Books() []Book {
	return slices.Clone(c.books)
}

// Readers returns a copy of all registered readers in insertion order.
func (c *Catalog) Readers() []Reader {
	return slices.Clone(c.readers)
}

// Loans returns the active loans in the order they were made.
func (c *Catalog) Loans() []Loan {
	loans := make([]Loan, 0, len(c.loanOrder))
	for _, isbn := range c.loanOrder {
		loans = append(loans, c.loans[isbn])
	}

	return loans
}

// LoanOf returns the active loan of isbn, if any.
func (c *Catalog) LoanOf(isbn string) (Loan, bool) {
	loan, ok := c.loans[isbn]
	return loan, ok
}

// LoanState reports whether isbn is currently lent. Unknown ISBNs are reported as Available.
func (c *Catalog) LoanState(isbn string) LoanState {
	if _, ok := c.loans[isbn]; ok {
		return Loaned
	}

	return Available
}

// NewReader creates a reader with a card number drawn from the catalog's card number source.
// The reader is not registered.
func (c *Catalog) NewReader(firstName string, lastName string) (Reader, error) {
	return NewReader(firstName, lastName, c.cardNumbers)
}

// AddBook inserts book unless a book with the same ISBN is already present.
// It reports whether the book was inserted; adding a duplicate is a no-op, not an error.
func (c *Catalog) AddBook(book Book) bool {
	if c.indexOfBook(book.ISBN()) >= 0 {
		return false // idempotency - a book with this ISBN is already in the catalog
	}

	c.books = append(c.books, book)

	return true
}

// RemoveBook removes the book with isbn.
//
//	ERROR: ErrNotFound if no book has that ISBN (also on repeated calls after success)
//	ERROR: ErrConflict if the book is currently lent
func (c *Catalog) RemoveBook(isbn string) error {
	idx, err := c.requireBook(opRemoveBook, isbn)
	if err != nil {
		return err
	}

	if c.LoanState(isbn) == Loaned {
		return fail(opRemoveBook, ErrConflict, isbn, failureReasonBookIsCurrentlyLent)
	}

	c.books = slices.Delete(c.books, idx, idx+1)

	return nil
}

// FindBooks returns the books selected by query in insertion order.
func (c *Catalog) FindBooks(query BookQuery) []Book {
	found := make([]Book, 0)

	if query.ISBN != "" {
		if idx := c.indexOfBook(query.ISBN); idx >= 0 {
			found = append(found, c.books[idx])
		}

		return found
	}

	keyword := strings.ToLower(query.Keyword)
	for _, b := range c.books {
		if containsFold(b.Title(), keyword) || containsFold(b.Author(), keyword) {
			found = append(found, b)
		}
	}

	return found
}

// RegisterReader inserts reader unless a reader with the same card number is already registered.
// It reports whether the reader was inserted; registering a duplicate is a no-op, not an error.
func (c *Catalog) RegisterReader(reader Reader) bool {
	if slices.ContainsFunc(c.readers, reader.SameAs) {
		return false // idempotency - a reader with this card number is already registered
	}

	c.readers = append(c.readers, reader)

	return true
}

// RegisterNewReader creates a reader with a card number drawn from the catalog's card number source and registers it.
// Unlike RegisterReader, a card number collision is an error and nothing is registered.
//
//	ERROR: ErrValidation if the reader cannot be constructed
//	ERROR: ErrConflict if the drawn card number is already registered
func (c *Catalog) RegisterNewReader(firstName string, lastName string) (Reader, error) {
	reader, err := c.NewReader(firstName, lastName)
	if err != nil {
		return Reader{}, err
	}

	if !c.RegisterReader(reader) {
		return Reader{}, fail(opRegisterNewReader, ErrConflict, strconv.Itoa(reader.CardNumber()), failureReasonCardNumberTaken)
	}

	return reader, nil
}

// DeregisterReader removes every registered reader sharing reader's card number.
// Deregistering a reader that is not registered is a no-op.
//
//	ERROR: ErrConflict if the reader currently holds any loan
func (c *Catalog) DeregisterReader(reader Reader) error {
	for _, isbn := range c.loanOrder {
		if c.loans[isbn].Reader.SameAs(reader) {
			return fail(opDeregisterReader, ErrConflict, strconv.Itoa(reader.CardNumber()), failureReasonReaderHasLoans)
		}
	}

	c.readers = slices.DeleteFunc(c.readers, reader.SameAs)

	return nil
}

// FindReaders returns the registered readers selected by query in insertion order.
func (c *Catalog) FindReaders(query ReaderQuery) []Reader {
	found := make([]Reader, 0)

	if query.CardNumber != nil {
		for _, r := range c.readers {
			if r.CardNumber() == *query.CardNumber {
				found = append(found, r)
			}
		}

		return found
	}

	keyword := strings.ToLower(query.Keyword)
	for _, r := range c.readers {
		if containsFold(r.FirstName(), keyword) || containsFold(r.LastName(), keyword) {
			found = append(found, r)
		}
	}

	return found
}

// Borrow lends the book with isbn to reader, dated today according to the catalog's clock.
// The reader does not need to be registered.
//
//	ERROR: ErrNotFound if no book has that ISBN
//	ERROR: ErrConflict if the book is already lent, regardless of the reader
func (c *Catalog) Borrow(isbn string, reader Reader) error {
	if _, err := c.requireBook(opBorrow, isbn); err != nil {
		return err
	}

	if c.LoanState(isbn) == Loaned {
		return fail(opBorrow, ErrConflict, isbn, failureReasonBookAlreadyLent)
	}

	c.loans[isbn] = Loan{
		ISBN:     isbn,
		Reader:   reader,
		LoanedOn: toLoanDate(c.now()),
	}
	c.loanOrder = append(c.loanOrder, isbn)

	return nil
}

// ReturnBook ends the loan of the book with isbn.
//
//	ERROR: ErrNotFound if no book has that ISBN
//	ERROR: ErrNotLoaned if the book has no active loan
//	ERROR: ErrWrongBorrower if the book is lent to a reader with another card number
func (c *Catalog) ReturnBook(isbn string, reader Reader) error {
	if _, err := c.requireBook(opReturnBook, isbn); err != nil {
		return err
	}

	loan, ok := c.loans[isbn]
	if !ok {
		return fail(opReturnBook, ErrNotLoaned, isbn, failureReasonBookIsNotLent)
	}

	if !loan.Reader.SameAs(reader) {
		return fail(opReturnBook, ErrWrongBorrower, isbn, failureReasonLentToAnotherReader)
	}

	delete(c.loans, isbn)
	c.loanOrder = slices.DeleteFunc(c.loanOrder, func(loaned string) bool {
		return loaned == isbn
	})

	return nil
}

// requireBook is the shared existence guard of all operations that reference a book by ISBN.
func (c *Catalog) requireBook(op string, isbn string) (int, error) {
	idx := c.indexOfBook(isbn)
	if idx < 0 {
		return -1, fail(op, ErrNotFound, isbn, failureReasonBookDoesNotExist)
	}

	return idx, nil
}

func (c *Catalog) indexOfBook(isbn string) int {
	return slices.IndexFunc(c.books, func(b Book) bool {
		return b.ISBN() == isbn
	})
}

// containsFold reports whether lowerKeyword is contained in s, ignoring case.
func containsFold(s string, lowerKeyword string) bool {
	return strings.Contains(strings.ToLower(s), lowerKeyword)
}
