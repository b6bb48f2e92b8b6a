// Package http adapts the chi mux behind a small Router seam and writes
// every JSON response through one envelope shape
package http

import (
	"encoding/json"
	stdhttp "net/http"

	perr "devportal/internal/platform/errors"
	pnet "devportal/internal/platform/net"
)

// Envelope is the body every JSON endpoint answers with, success or not
type Envelope struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	Field      string         `json:"field,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

// JSON writes v as application/json with the given status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// RespondError writes err as an enveloped JSON response, deriving the
// status from the error classification
func RespondError(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	writeError(w, r, err)
}

// Response is what envelope handlers return instead of touching the
// ResponseWriter. A zero Status means 200, an error Body takes priority
// over everything else
type Response struct {
	Status int
	Body   any
}

// OK wraps data in a 200 response
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// Error wraps err so the writer derives status and envelope from it
func Error(err error) Response { return Response{Body: err} }

// From folds a handler return pair into a Response. A Response value
// passes through untouched so handlers can steer status and body
func From(out any, err error) Response {
	if err != nil {
		return Error(err)
	}
	if resp, ok := out.(Response); ok {
		return resp
	}
	return OK(out)
}

// Handle adapts a Response returning handler to net/http
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h(r).write(w, r)
	}
}

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	if err, ok := resp.Body.(error); ok && err != nil {
		writeError(w, r, err)
		return
	}

	status := resp.Status
	if status == 0 {
		status = stdhttp.StatusOK
	}
	if status == stdhttp.StatusNoContent {
		w.WriteHeader(stdhttp.StatusNoContent)
		return
	}
	JSON(w, status, Envelope{
		StatusCode: status,
		Status:     stdhttp.StatusText(status),
		RequestID:  pnet.RequestID(r.Context()),
		Data:       resp.Body,
	})
}

func writeError(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	status := perr.HTTPStatus(err)
	we := perr.WireFrom(err)
	JSON(w, status, Envelope{
		StatusCode: status,
		Status:     stdhttp.StatusText(status),
		Code:       we.Code,
		Error:      we.Message,
		Field:      we.Field,
		RequestID:  pnet.RequestID(r.Context()),
	})
}
