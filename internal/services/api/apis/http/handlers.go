// Package http provides http transport for catalog browsing
package http

import (
	stdhttp "net/http"

	"devportal/internal/modkit/httpkit"
	svc "devportal/internal/services/catalog/service"

	"github.com/go-chi/chi/v5"
)

// Register mounts catalog browse endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/", h.list)
	httpkit.Get(r, "/{serviceName}", h.get)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /apis Catalog catalogList
// @Summary List api definitions
// @Tags Catalog
// @Produce json
// @Param q query string false "Folded substring filter"
// @Success 200 {array} domain.APIDefinition "ok"
// @Router /apis [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	return h.svc.List(r.Context(), httpkit.UserEmail(r), r.URL.Query().Get("q"))
}

// swagger:route GET /apis/{serviceName} Catalog catalogGet
// @Summary Fetch one api definition
// @Tags Catalog
// @Produce json
// @Param serviceName path string true "Service name"
// @Success 200 {object} domain.APIDefinition "ok"
// @Router /apis/{serviceName} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	return h.svc.Get(r.Context(), chi.URLParam(r, "serviceName"), httpkit.UserEmail(r))
}
