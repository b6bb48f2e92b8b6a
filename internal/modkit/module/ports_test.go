package module

import (
	"strings"
	"testing"

	phttp "devportal/internal/platform/net/http"
)

type fakeModule struct {
	name  string
	ports any
}

func (f fakeModule) MountRoutes(phttp.Router) {}
func (f fakeModule) Ports() any               { return f.ports }
func (f fakeModule) Name() string             { return f.name }

type greeter interface{ Greet() string }

type greeterImpl struct{ msg string }

func (g greeterImpl) Greet() string { return g.msg }

func TestPortsOfDirectImplementation(t *testing.T) {
	t.Parallel()

	m := fakeModule{name: "sessions", ports: greeterImpl{msg: "hi"}}
	g, ok := PortsOf[greeter](m)
	if !ok || g.Greet() != "hi" {
		t.Fatalf("ok=%v g=%v", ok, g)
	}
}

func TestPortsOfStructField(t *testing.T) {
	t.Parallel()

	type bundle struct {
		Extra   int
		Greeter greeter
	}
	m := fakeModule{name: "sessions", ports: bundle{Greeter: greeterImpl{msg: "from field"}}}

	g, ok := PortsOf[greeter](m)
	if !ok || g.Greet() != "from field" {
		t.Fatalf("ok=%v g=%v", ok, g)
	}
}

func TestPortsOfMisses(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		ports any
	}{
		{"nil bundle", nil},
		{"non struct", 42},
		{"struct without port", struct{ N int }{N: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, ok := PortsOf[greeter](fakeModule{name: "x", ports: tc.ports}); ok {
				t.Fatalf("PortsOf found a greeter in %#v", tc.ports)
			}
		})
	}
}

func TestPortsOfSkipsUnexportedFields(t *testing.T) {
	t.Parallel()

	type bundle struct {
		hidden greeter //nolint:unused // must stay invisible to PortsOf
	}
	m := fakeModule{ports: bundle{hidden: greeterImpl{msg: "secret"}}}
	if _, ok := PortsOf[greeter](m); ok {
		t.Fatal("unexported field leaked through PortsOf")
	}
}

func TestMustPortsOfPanicsWithModuleName(t *testing.T) {
	t.Parallel()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("MustPortsOf did not panic")
		}
		msg, ok := r.(string)
		if !ok || !strings.Contains(msg, "downloads") {
			t.Fatalf("panic = %v, want the module name in the message", r)
		}
	}()
	MustPortsOf[greeter](fakeModule{name: "downloads"})
}

func TestMustPortsOfReturnsPort(t *testing.T) {
	t.Parallel()

	g := MustPortsOf[greeter](fakeModule{name: "sessions", ports: greeterImpl{msg: "ok"}})
	if g.Greet() != "ok" {
		t.Fatalf("Greet = %q", g.Greet())
	}
}
