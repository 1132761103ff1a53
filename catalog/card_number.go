package catalog

import (
	"math/rand/v2"
)

const (
	// MinGeneratedCardNumber is the smallest card number RandomCardNumbers produces.
	MinGeneratedCardNumber = 1

	// MaxGeneratedCardNumber is the largest card number RandomCardNumbers produces.
	MaxGeneratedCardNumber = 999999
)

// CardNumberSource supplies card numbers for readers that are created without one.
type CardNumberSource interface {
	NextCardNumber() int
}

// CardNumberSourceFunc adapts a plain function to CardNumberSource.
type CardNumberSourceFunc func() int

// NextCardNumber calls f.
func (f CardNumberSourceFunc) NextCardNumber() int {
	return f()
}

// RandomCardNumbers draws card numbers uniformly from [MinGeneratedCardNumber, MaxGeneratedCardNumber].
// Uniqueness is not guaranteed, duplicates are handled by RegisterReader being a no-op.
type RandomCardNumbers struct{}

// NextCardNumber returns a random card number.
func (RandomCardNumbers) NextCardNumber() int {
	return MinGeneratedCardNumber + rand.IntN(MaxGeneratedCardNumber-MinGeneratedCardNumber+1) //nolint:gosec // not security relevant
}
