package http_test

import (
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "devportal/internal/platform/errors"
	phttp "devportal/internal/platform/net/http"
)

type usageQuery struct {
	ServiceName string `json:"service_name" validate:"required,svcslug"`
}

func TestJSONHandlerBindsAndWraps(t *testing.T) {
	h := phttp.JSONHandler(func(r *stdhttp.Request, in usageQuery) (any, error) {
		return "got " + in.ServiceName, nil
	})

	req := httptest.NewRequest(stdhttp.MethodPost, "/usage/query",
		strings.NewReader(`{"service_name":"payments-api"}`))
	rr := httptest.NewRecorder()
	h(rr, req)

	if rr.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d body %s", rr.Code, rr.Body.String())
	}
	var env phttp.Envelope
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Data != "got payments-api" {
		t.Fatalf("data = %#v", env.Data)
	}
}

func TestJSONHandlerRejectsBadBody(t *testing.T) {
	called := false
	h := phttp.JSONHandler(func(r *stdhttp.Request, in usageQuery) (any, error) {
		called = true
		return nil, nil
	})

	req := httptest.NewRequest(stdhttp.MethodPost, "/usage/query",
		strings.NewReader(`{"service_name":"NOT A SLUG"}`))
	rr := httptest.NewRecorder()
	h(rr, req)

	if called {
		t.Fatal("handler must not run on a failed bind")
	}
	if rr.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d want 400", rr.Code)
	}
	var env phttp.Envelope
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Code != perr.ErrorCodeValidation || env.Field != "service_name" {
		t.Fatalf("envelope = %+v", env)
	}
}

func TestJSONHandlerMapsHandlerError(t *testing.T) {
	h := phttp.JSONHandler(func(r *stdhttp.Request, in usageQuery) (any, error) {
		return nil, perr.Unavailablef("clickhouse is down")
	})

	req := httptest.NewRequest(stdhttp.MethodPost, "/usage/query",
		strings.NewReader(`{"service_name":"billing"}`))
	rr := httptest.NewRecorder()
	h(rr, req)

	if rr.Code != stdhttp.StatusServiceUnavailable {
		t.Fatalf("status = %d want 503", rr.Code)
	}
}
