package catalog

import (
	"strconv"
	"strings"
)

// Reader is a library patron identified by a card number.
//
// Two readers are the same reader when their card numbers are equal, names are not compared.
type Reader struct {
	firstName  string
	lastName   string
	cardNumber int
}

// NewReader creates a Reader whose card number is drawn from source.
// A source that yields a non-positive number makes construction fail.
func NewReader(firstName string, lastName string, source CardNumberSource) (Reader, error) {
	if source == nil {
		source = RandomCardNumbers{}
	}

	r := Reader{
		firstName: firstName,
		lastName:  lastName,
	}

	if err := r.SetCardNumber(source.NextCardNumber()); err != nil {
		return Reader{}, err
	}

	return r, nil
}

// NewReaderWithCardNumber creates a Reader with an explicitly supplied card number.
func NewReaderWithCardNumber(firstName string, lastName string, cardNumber int) (Reader, error) {
	r := Reader{
		firstName: firstName,
		lastName:  lastName,
	}

	if err := r.SetCardNumber(cardNumber); err != nil {
		return Reader{}, err
	}

	return r, nil
}

// SetCardNumber reassigns the card number. It must be positive; the reader is unchanged on failure.
func (r *Reader) SetCardNumber(cardNumber int) error {
	if cardNumber <= 0 {
		return fail(opSetCardNumber, ErrValidation, strconv.Itoa(cardNumber), failureReasonCardNumberPositive)
	}

	r.cardNumber = cardNumber

	return nil
}

// ParseCardNumber converts text to a card number, rejecting non-integers and non-positive values.
// Surrounding whitespace is ignored.
func ParseCardNumber(text string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fail(opParseCardNumber, ErrValidation, text, failureReasonCardNumberInteger)
	}

	if n <= 0 {
		return 0, fail(opParseCardNumber, ErrValidation, text, failureReasonCardNumberPositive)
	}

	return n, nil
}

// FirstName returns the first name.
func (r Reader) FirstName() string {
	return r.firstName
}

// LastName returns the last name.
func (r Reader) LastName() string {
	return r.lastName
}

// CardNumber returns the card number.
func (r Reader) CardNumber() int {
	return r.cardNumber
}

// SameAs reports whether r and other carry the same card number.
func (r Reader) SameAs(other Reader) bool {
	return r.cardNumber == other.cardNumber
}

// String returns the display line of the reader, e.g. "Jan Novak, card: 4711".
func (r Reader) String() string {
	return r.firstName + " " + r.lastName + ", card: " + strconv.Itoa(r.cardNumber)
}
