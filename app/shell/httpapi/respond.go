package httpapi

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-catalog-go/app/shell/logging"
	"github.com/AntonStoeckl/library-catalog-go/catalog"
)

const (
	contentTypeHeader = "Content-Type"
	contentTypeJSON   = "application/json"
	contentTypeText   = "text/plain; charset=utf-8"

	kindBadRequest = "bad_request"

	logMsgRequestFailed = "request failed"
	logMsgWriteFailed   = "writing response failed"
	logAttrMethod       = "method"
	logAttrPath         = "path"
	logAttrStatus       = "status"
	logAttrError        = "error"
	logAttrErrorKind    = "error_kind"
)

var errMalformedBody = errors.New("request body is not valid JSON")

// statusOf maps catalog failure kinds to HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, catalog.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, catalog.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, catalog.ErrConflict), errors.Is(err, catalog.ErrNotLoaned):
		return http.StatusConflict
	case errors.Is(err, catalog.ErrWrongBorrower):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) decode(r *http.Request, v any) error {
	if err := jsoniter.ConfigFastest.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Join(errMalformedBody, err)
	}

	return nil
}

func (s *Server) respondJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set(contentTypeHeader, contentTypeJSON)
	w.WriteHeader(status)

	if err := jsoniter.ConfigFastest.NewEncoder(w).Encode(v); err != nil {
		logging.FromContext(r.Context(), s.logger).Warn(logMsgWriteFailed, logAttrError, err.Error())
	}
}

func (s *Server) respondText(w http.ResponseWriter, r *http.Request, text string) {
	w.Header().Set(contentTypeHeader, contentTypeText)
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write([]byte(text)); err != nil {
		logging.FromContext(r.Context(), s.logger).Warn(logMsgWriteFailed, logAttrError, err.Error())
	}
}

// respondError writes the error body. Server-side failures are logged at error level, client errors at debug level.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	kind := catalog.KindOf(err)

	if errors.Is(err, errMalformedBody) {
		status = http.StatusBadRequest
		kind = kindBadRequest
	}

	logger := logging.FromContext(r.Context(), s.logger)
	args := []any{
		logAttrMethod, r.Method,
		logAttrPath, r.URL.Path,
		logAttrStatus, status,
		logAttrError, err.Error(),
		logAttrErrorKind, kind,
	}

	if status >= http.StatusInternalServerError {
		logger.Error(logMsgRequestFailed, args...)
	} else {
		logger.Debug(logMsgRequestFailed, args...)
	}

	s.respondJSON(w, r, status, errorResponse{Error: err.Error(), Kind: kind})
}
