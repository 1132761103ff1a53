package catalog

import (
	"time"
)

// Option defines a functional option for configuring a Catalog.
type Option func(*Catalog) error

// WithCardNumberSource sets the source used for readers created without a card number,
// both during Bootstrap and by Catalog.NewReader.
func WithCardNumberSource(source CardNumberSource) Option {
	return func(c *Catalog) error {
		if source == nil {
			return ErrInvalidOption
		}

		c.cardNumbers = source

		return nil
	}
}

// WithClock sets the clock used to date new loans.
func WithClock(now func() time.Time) Option {
	return func(c *Catalog) error {
		if now == nil {
			return ErrInvalidOption
		}

		c.now = now

		return nil
	}
}

// WithName sets the display name, overriding a name supplied by a metadata row during Bootstrap.
func WithName(name string) Option {
	return func(c *Catalog) error {
		if name == "" {
			return ErrInvalidOption
		}

		c.name = name

		return nil
	}
}
