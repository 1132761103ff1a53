package httpapi

import (
	"github.com/AntonStoeckl/library-catalog-go/catalog"
)

const loanDateLayout = "2006-01-02"

type bookRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Year   int    `json:"year"`
	ISBN   string `json:"isbn"`
}

type bookResponse struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Year   int    `json:"year"`
	ISBN   string `json:"isbn"`
}

type readerRequest struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	CardNumber *int   `json:"cardNumber,omitempty"`
}

type readerResponse struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	CardNumber int    `json:"cardNumber"`
}

type loanRequest struct {
	ISBN   string        `json:"isbn"`
	Reader readerRequest `json:"reader"`
}

type loanResponse struct {
	ISBN     string         `json:"isbn"`
	Reader   readerResponse `json:"reader"`
	LoanedOn string         `json:"loanedOn"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func toBookResponse(b catalog.Book) bookResponse {
	return bookResponse{
		Title:  b.Title(),
		Author: b.Author(),
		Year:   b.PublicationYear(),
		ISBN:   b.ISBN(),
	}
}

func toBookResponses(books []catalog.Book) []bookResponse {
	out := make([]bookResponse, 0, len(books))
	for _, b := range books {
		out = append(out, toBookResponse(b))
	}

	return out
}

func toReaderResponse(r catalog.Reader) readerResponse {
	return readerResponse{
		FirstName:  r.FirstName(),
		LastName:   r.LastName(),
		CardNumber: r.CardNumber(),
	}
}

func toReaderResponses(readers []catalog.Reader) []readerResponse {
	out := make([]readerResponse, 0, len(readers))
	for _, r := range readers {
		out = append(out, toReaderResponse(r))
	}

	return out
}

func toLoanResponse(l catalog.Loan) loanResponse {
	return loanResponse{
		ISBN:     l.ISBN,
		Reader:   toReaderResponse(l.Reader),
		LoanedOn: l.LoanedOn.Format(loanDateLayout),
	}
}

func toLoanResponses(loans []catalog.Loan) []loanResponse {
	out := make([]loanResponse, 0, len(loans))
	for _, l := range loans {
		out = append(out, toLoanResponse(l))
	}

	return out
}

// toReader requires an explicit card number, since loans identify readers by it.
func (req readerRequest) toReader() (catalog.Reader, error) {
	if req.CardNumber == nil {
		return catalog.NewReaderWithCardNumber(req.FirstName, req.LastName, 0)
	}

	return catalog.NewReaderWithCardNumber(req.FirstName, req.LastName, *req.CardNumber)
}
