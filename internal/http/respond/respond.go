// Package respond holds the JSON envelopes and the failure-to-status mapping
// shared by both HTTP engines.
package respond

import (
	"errors"
	"net/http"

	"stockroom/internal/domain"
)

// Envelope wraps every successful response.
type Envelope struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Detail is one entry of a failure body.
type Detail struct {
	domain.Issue
	Error string `json:"error,omitempty"`
}

// Problem is the failure body: {"detail": [...]}.
type Problem struct {
	Detail []Detail `json:"detail"`
}

func OK(message string, data any) Envelope {
	return Envelope{Message: message, Data: data}
}

// Status maps a failure to its HTTP status code.
func Status(err error) int {
	var verr *domain.ValidationError
	var nf *domain.NotFoundError
	var serr *domain.StorageError
	switch {
	case errors.As(err, &verr), errors.Is(err, domain.ErrNothingToUpdate):
		return http.StatusUnprocessableEntity
	case errors.As(err, &nf):
		return http.StatusNotFound
	case errors.As(err, &serr):
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// Failure builds the status and body for err. Storage details stay out of
// the body; callers log them.
func Failure(err error) (int, Problem) {
	status := Status(err)
	var verr *domain.ValidationError
	var nf *domain.NotFoundError
	switch {
	case errors.As(err, &verr):
		p := Problem{Detail: make([]Detail, 0, len(verr.Issues))}
		for _, is := range verr.Issues {
			p.Detail = append(p.Detail, Detail{Issue: is})
		}
		return status, p
	case errors.Is(err, domain.ErrNothingToUpdate):
		return status, Message("Nothing to update", "")
	case errors.As(err, &nf):
		return status, Message(nf.Msg, "")
	case status == http.StatusInternalServerError:
		return status, Message("Database error", "")
	default:
		return status, Message("Bad request", err.Error())
	}
}

// Message is a single-entry failure body.
func Message(msg, detail string) Problem {
	return Problem{Detail: []Detail{{Issue: domain.Issue{Msg: msg}, Error: detail}}}
}
