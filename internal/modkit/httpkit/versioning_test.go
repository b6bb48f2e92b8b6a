package httpkit

import (
	"net/http"
	"testing"
)

func TestMountAPIScopesPrefixAndMiddleware(t *testing.T) {
	r := &fakeRouter{}
	mwA := func(next http.Handler) http.Handler { return next }
	mwB := func(next http.Handler) http.Handler { return next }

	mounted := 0
	MountAPI(r, "v2", []func(http.Handler) http.Handler{mwA, mwB}, func(Router) { mounted++ })

	if len(r.prefixes) != 1 || r.prefixes[0] != "/api/v2" {
		t.Fatalf("prefixes = %v", r.prefixes)
	}
	if r.mwCount != 2 {
		t.Fatalf("middleware count = %d want 2", r.mwCount)
	}
	if mounted != 1 {
		t.Fatalf("mount ran %d times", mounted)
	}
}

func TestMountAPITrimsLeadingSlash(t *testing.T) {
	r := &fakeRouter{}
	MountAPI(r, "/v3", nil, func(Router) {})

	if r.prefixes[0] != "/api/v3" {
		t.Fatalf("prefix = %q", r.prefixes[0])
	}
	if r.mwCount != 0 {
		t.Fatalf("Use must not run without middleware, count = %d", r.mwCount)
	}
}

func TestMountAPIV1(t *testing.T) {
	r := &fakeRouter{}
	MountAPIV1(r, nil, func(Router) {})

	if r.prefixes[0] != "/api/v1" {
		t.Fatalf("prefix = %q", r.prefixes[0])
	}
}
