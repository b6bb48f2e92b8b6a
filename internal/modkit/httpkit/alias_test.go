package httpkit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	perr "devportal/internal/platform/errors"
	phttp "devportal/internal/platform/net/http"
)

func TestCallWrapsPlainData(t *testing.T) {
	h := Call(func(*http.Request) (any, error) { return "hello", nil })

	status, env := invoke(t, h, httptest.NewRequest(http.MethodGet, "/x", nil))
	if status != http.StatusOK || env.Data != "hello" {
		t.Fatalf("got %d %#v", status, env.Data)
	}
}

func TestCallPassesResponseThrough(t *testing.T) {
	h := Call(func(*http.Request) (any, error) {
		return phttp.Response{Status: http.StatusNoContent}, nil
	})

	rr := httptest.NewRecorder()
	h(rr, httptest.NewRequest(http.MethodGet, "/x", nil))
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d want 204", rr.Code)
	}
	if rr.Body.Len() != 0 {
		t.Fatalf("unexpected body %q", rr.Body.String())
	}
}

func TestCallMapsErrors(t *testing.T) {
	h := Call(func(*http.Request) (any, error) {
		return nil, perr.NotFoundf("no such api")
	})

	status, env := invoke(t, h, httptest.NewRequest(http.MethodGet, "/x", nil))
	if status != http.StatusNotFound {
		t.Fatalf("status = %d want 404", status)
	}
	if env.Code != perr.ErrorCodeNotFound {
		t.Fatalf("code = %d", env.Code)
	}
}
