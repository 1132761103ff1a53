package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/AntonStoeckl/library-catalog-go/catalog"
)

const (
	paramISBN       = "isbn"
	paramKeyword    = "keyword"
	paramCardNumber = "cardNumber"
)

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	rendered, err := s.service.Render(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondText(w, r, rendered)
}

func (s *Server) handleFindBooks(w http.ResponseWriter, r *http.Request) {
	query := catalog.BookQuery{
		Keyword: r.URL.Query().Get(paramKeyword),
		ISBN:    r.URL.Query().Get(paramISBN),
	}

	books, err := s.service.FindBooks(r.Context(), query)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, r, http.StatusOK, toBookResponses(books))
}

// handleAddBook answers 201 for a new book and 200 when the ISBN was already present.
func (s *Server) handleAddBook(w http.ResponseWriter, r *http.Request) {
	var req bookRequest
	if err := s.decode(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	book, err := catalog.NewBook(req.Title, req.Author, req.Year, req.ISBN)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	added, err := s.service.AddBook(r.Context(), book)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, r, createdOrOK(added), toBookResponse(book))
}

func (s *Server) handleRemoveBook(w http.ResponseWriter, r *http.Request) {
	if err := s.service.RemoveBook(r.Context(), chi.URLParam(r, paramISBN)); err != nil {
		s.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleFindReaders(w http.ResponseWriter, r *http.Request) {
	query := catalog.ReaderQuery{Keyword: r.URL.Query().Get(paramKeyword)}

	// an exact-match filter: zero or negative numbers are valid queries that match nobody
	if text := r.URL.Query().Get(paramCardNumber); text != "" {
		cardNumber, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil {
			s.respondError(w, r, fmt.Errorf("%w: card number query %q is not an integer", catalog.ErrValidation, text))
			return
		}

		query.CardNumber = &cardNumber
	}

	readers, err := s.service.FindReaders(r.Context(), query)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, r, http.StatusOK, toReaderResponses(readers))
}

// handleRegisterReader issues a new card number when the request carries none.
// A generated card number that is already taken answers 409 and registers nothing.
func (s *Server) handleRegisterReader(w http.ResponseWriter, r *http.Request) {
	var req readerRequest
	if err := s.decode(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	if req.CardNumber == nil {
		reader, err := s.service.RegisterNewReader(r.Context(), req.FirstName, req.LastName)
		if err != nil {
			s.respondError(w, r, err)
			return
		}

		s.respondJSON(w, r, http.StatusCreated, toReaderResponse(reader))

		return
	}

	reader, err := req.toReader()
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	registered, err := s.service.RegisterReader(r.Context(), reader)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, r, createdOrOK(registered), toReaderResponse(reader))
}

func (s *Server) handleDeregisterReader(w http.ResponseWriter, r *http.Request) {
	reader, err := readerFromCardNumber(chi.URLParam(r, paramCardNumber))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	if err := s.service.DeregisterReader(r.Context(), reader); err != nil {
		s.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleLoans(w http.ResponseWriter, r *http.Request) {
	loans, err := s.service.Loans(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, r, http.StatusOK, toLoanResponses(loans))
}

func (s *Server) handleBorrow(w http.ResponseWriter, r *http.Request) {
	var req loanRequest
	if err := s.decode(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	reader, err := req.Reader.toReader()
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	loan, err := s.service.Borrow(r.Context(), req.ISBN, reader)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, r, http.StatusCreated, toLoanResponse(loan))
}

func (s *Server) handleReturnBook(w http.ResponseWriter, r *http.Request) {
	reader, err := readerFromCardNumber(r.URL.Query().Get(paramCardNumber))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	if err := s.service.ReturnBook(r.Context(), chi.URLParam(r, paramISBN), reader); err != nil {
		s.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// readerFromCardNumber builds a nameless reader, which is enough since readers are compared by card number.
func readerFromCardNumber(text string) (catalog.Reader, error) {
	cardNumber, err := catalog.ParseCardNumber(text)
	if err != nil {
		return catalog.Reader{}, err
	}

	return catalog.NewReaderWithCardNumber("", "", cardNumber)
}

func createdOrOK(created bool) int {
	if created {
		return http.StatusCreated
	}

	return http.StatusOK
}
