package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/fulldump/box"

	"github.com/fulldump/dbjson/api/apiresource"
	"github.com/fulldump/dbjson/database"
)

var ErrUnavailable = errors.New("temporary unavailable")

type PrettyError struct {
	Message     string `json:"message"`
	Description string `json:"description"`
}

func (p PrettyError) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"error": struct {
			Message     string `json:"message"`
			Description string `json:"description"`
		}{
			p.Message,
			p.Description,
		},
	})
}

func (p PrettyError) MarshalTo(w io.Writer) error {
	return json.NewEncoder(w).Encode(p)
}

func writePrettyError(w http.ResponseWriter, status int, err error, description string) {
	w.WriteHeader(status)
	PrettyError{
		Message:     err.Error(),
		Description: description,
	}.MarshalTo(w)
}

func InterceptorUnavailable(db *database.Database) box.I {
	return func(next box.H) box.H {
		return func(ctx context.Context) {

			status := db.GetStatus()
			if status == database.StatusOpening {
				box.SetError(ctx, fmt.Errorf("%w: opening", ErrUnavailable))
				return
			}
			if status == database.StatusClosing {
				box.SetError(ctx, fmt.Errorf("%w: closing", ErrUnavailable))
				return
			}
			next(ctx)
		}
	}
}

// PrettyErrorInterceptor renders the error left by the handler. Not found
// errors keep the flat {"error": "..."} shape.
func PrettyErrorInterceptor(next box.H) box.H {
	return func(ctx context.Context) {

		next(ctx)

		err := box.GetError(ctx)
		if err == nil {
			return
		}
		w := box.GetResponse(ctx)

		notFound := &database.NotFoundError{}
		if errors.As(err, &notFound) {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"error": notFound.Error(),
			})
			return
		}

		if errors.Is(err, apiresource.ErrInvalidBody) {
			writePrettyError(w, http.StatusBadRequest, err, "Malformed JSON, body must be a JSON object")
			return
		}

		if errors.Is(err, apiresource.ErrInvalidQuery) {
			writePrettyError(w, http.StatusBadRequest, err, "Invalid query")
			return
		}

		if errors.Is(err, database.ErrIDOverflow) {
			writePrettyError(w, http.StatusConflict, err, "the collection already holds the highest possible id")
			return
		}

		if errors.Is(err, ErrUnavailable) {
			writePrettyError(w, http.StatusServiceUnavailable, err, "database is not operating, try again later")
			return
		}

		if errors.Is(err, database.ErrPersistence) {
			writePrettyError(w, http.StatusInternalServerError, err, "changes could not be saved and were discarded")
			return
		}

		if err == box.ErrResourceNotFound {
			writePrettyError(w, http.StatusNotFound, err, fmt.Sprintf("resource '%s' not found", box.GetRequest(ctx).URL.String()))
			return
		}

		if err == box.ErrMethodNotAllowed {
			writePrettyError(w, http.StatusMethodNotAllowed, err, fmt.Sprintf("method '%s' not allowed", box.GetRequest(ctx).Method))
			return
		}

		if _, ok := err.(*json.SyntaxError); ok {
			writePrettyError(w, http.StatusBadRequest, err, "Malformed JSON")
			return
		}

		writePrettyError(w, http.StatusInternalServerError, err, "Unexpected error")
	}
}
