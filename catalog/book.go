package catalog

import (
	"strconv"
)

const isbnLength = 13

// Book is a single physical book in the catalog, keyed by its ISBN.
//
// Book should only be constructed with NewBook, which validates all attributes.
type Book struct {
	title           string
	author          string
	publicationYear int
	isbn            string
}

// NewBook creates a validated Book.
// Title and author must not be empty and the ISBN must consist of exactly 13 ASCII digits.
// The publication year is not validated.
func NewBook(title string, author string, publicationYear int, isbn string) (Book, error) {
	if title == "" {
		return Book{}, fail(opNewBook, ErrValidation, isbn, failureReasonEmptyTitle)
	}

	if author == "" {
		return Book{}, fail(opNewBook, ErrValidation, isbn, failureReasonEmptyAuthor)
	}

	b := Book{
		title:           title,
		author:          author,
		publicationYear: publicationYear,
	}

	if err := b.SetISBN(isbn); err != nil {
		return Book{}, err
	}

	return b, nil
}

// SetISBN reassigns the ISBN after validating it. The book is unchanged on failure.
func (b *Book) SetISBN(isbn string) error {
	if err := ValidateISBN(isbn); err != nil {
		return err
	}

	b.isbn = isbn

	return nil
}

// ValidateISBN checks that isbn consists of exactly 13 ASCII digits.
func ValidateISBN(isbn string) error {
	if len(isbn) != isbnLength {
		return fail(opSetISBN, ErrValidation, isbn, failureReasonISBNFormat)
	}

	for i := 0; i < len(isbn); i++ {
		if isbn[i] < '0' || isbn[i] > '9' {
			return fail(opSetISBN, ErrValidation, isbn, failureReasonISBNFormat)
		}
	}

	return nil
}

// Title returns the title.
func (b Book) Title() string {
	return b.title
}

// Author returns the author.
func (b Book) Author() string {
	return b.author
}

// PublicationYear returns the publication year, 0 if unknown.
func (b Book) PublicationYear() int {
	return b.publicationYear
}

// ISBN returns the 13-digit ISBN.
func (b Book) ISBN() string {
	return b.isbn
}

// String returns the display line of the book, e.g. "Dune (Herbert, 1965) [9780441013593]".
func (b Book) String() string {
	return b.title + " (" + b.author + ", " + strconv.Itoa(b.publicationYear) + ") [" + b.isbn + "]"
}
