package catalog

import (
	"errors"
)

var (
	// ErrValidation is the kind of all construction and assignment failures (malformed ISBN, card number, rows).
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is the kind of failures referencing an ISBN unknown to the catalog.
	ErrNotFound = errors.New("not found")

	// ErrConflict is the kind of failures blocked by an existing loan or an already registered card number.
	ErrConflict = errors.New("conflict")

	// ErrNotLoaned is the kind of return failures for books without an active loan.
	ErrNotLoaned = errors.New("not loaned")

	// ErrWrongBorrower is the kind of return failures where the book was lent to another reader.
	ErrWrongBorrower = errors.New("wrong borrower")

	// ErrInvalidOption is returned when an Option is supplied with a nil or empty argument.
	ErrInvalidOption = errors.New("invalid catalog option")
)

const (
	opNewBook           = "new_book"
	opSetISBN           = "set_isbn"
	opNewReader         = "new_reader"
	opRegisterNewReader = "register_new_reader"
	opSetCardNumber     = "set_card_number"
	opParseCardNumber   = "parse_card_number"
	opBootstrap         = "bootstrap"
	opRemoveBook        = "remove_book"
	opDeregisterReader  = "deregister_reader"
	opBorrow            = "borrow"
	opReturnBook        = "return_book"
)

const (
	failureReasonISBNFormat          = "ISBN must consist of exactly 13 digits"
	failureReasonEmptyTitle          = "title must not be empty"
	failureReasonEmptyAuthor         = "author must not be empty"
	failureReasonCardNumberPositive  = "card number must be a positive integer"
	failureReasonCardNumberInteger   = "card number must be an integer"
	failureReasonBookDoesNotExist    = "book does not exist"
	failureReasonBookIsCurrentlyLent = "book is currently lent and cannot be removed"
	failureReasonBookAlreadyLent     = "book is already lent"
	failureReasonReaderHasLoans      = "reader has outstanding book loans"
	failureReasonCardNumberTaken     = "card number is already registered"
	failureReasonBookIsNotLent       = "book is not lent"
	failureReasonLentToAnotherReader = "book was lent by another reader"
	failureReasonTooFewFields        = "row has too few fields"
)

// Error describes a failed catalog operation.
// Kind is always one of the sentinel errors of this package, so errors.Is(err, ErrConflict) etc. work.
type Error struct {
	Op     string
	Kind   error
	Key    string // ISBN, card number or row position the failure refers to
	Reason string
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	msg := e.Op + ": " + e.Kind.Error()
	if e.Key != "" {
		msg += " [" + e.Key + "]"
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}

	return msg
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.Kind
}

func fail(op string, kind error, key string, reason string) error {
	return &Error{Op: op, Kind: kind, Key: key, Reason: reason}
}

// KindOf returns a stable label for the kind of err, suitable for metric labels and API responses.
func KindOf(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrNotLoaned):
		return "not_loaned"
	case errors.Is(err, ErrWrongBorrower):
		return "wrong_borrower"
	default:
		return "unknown"
	}
}
