// Package swaggerkit mounts the swagger UI and the OpenAPI document.
// The document body differs by build tag: builds with -tags swag serve
// the generated spec, plain builds serve a skeleton so the UI loads
package swaggerkit

import (
	"net/http"

	phttp "devportal/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

const docsBase = "/api/docs"

// Mount wires the swagger UI under /api/docs when enabled
func Mount(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	r.Get(docsBase, func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, docsBase+"/", http.StatusPermanentRedirect)
	})
	r.Get(docsBase+"/doc.json", serveDocJSON())
	r.Handle(docsBase+"/*", httpSwagger.Handler(
		httpSwagger.InstanceName("portal"),
		httpSwagger.URL(docsBase+"/doc.json"),
	))
}
