package net

import (
	"net/http"

	perr "devportal/internal/platform/errors"
)

// Wire is the envelope middleware writes when it answers a request
// itself, before any handler runs. It mirrors the transport envelope so
// clients see one shape regardless of where the response originated
type Wire struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
}

// Error maps err onto a status and wire envelope. A nil err yields a
// plain 200 so callers can write unconditionally
func Error(err error, reqID string) (int, Wire) {
	status := http.StatusOK
	w := Wire{RequestID: reqID}
	if err != nil {
		status = perr.HTTPStatus(err)
		we := perr.WireFrom(err)
		w.Code = we.Code
		w.Error = we.Message
	}
	w.StatusCode = status
	w.Status = http.StatusText(status)
	return status, w
}
