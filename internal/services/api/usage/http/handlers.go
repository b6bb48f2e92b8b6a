// Package http provides http transport for usage reads
package http

import (
	stdhttp "net/http"
	"strconv"

	"devportal/internal/modkit/httpkit"
	"devportal/internal/services/usage/domain"
	svc "devportal/internal/services/usage/service"
)

// Register mounts usage endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// per day rollup rows
	httpkit.Get(r, "/daily", h.daily)

	// aggregated totals over a window
	httpkit.PostJSON[domain.QueryInput](r, "/query", h.query)

	// latest audit rows
	httpkit.Get(r, "/recent", h.recent)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /usage/daily Usage usageDaily
// @Summary Per day download usage
// @Tags Usage
// @Produce json
// @Param service query string false "Service name filter"
// @Param days query int false "Trailing window in days, default 7, max 90"
// @Success 200 {array} domain.DayRow "ok"
// @Router /usage/daily [get]
func (h *handlers) daily(r *stdhttp.Request) (any, error) {
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))
	return h.svc.Daily(r.Context(), r.URL.Query().Get("service"), days)
}

// swagger:route POST /usage/query Usage usageQuery
// @Summary Aggregated download usage for one service
// @Tags Usage
// @Accept json
// @Produce json
// @Param payload body domain.QueryInput true "Query"
// @Success 200 {array} domain.TotalsRow "ok"
// @Router /usage/query [post]
func (h *handlers) query(r *stdhttp.Request, in domain.QueryInput) (any, error) {
	return h.svc.Totals(r.Context(), in)
}

// swagger:route GET /usage/recent Usage usageRecent
// @Summary Latest download audit rows
// @Tags Usage
// @Produce json
// @Param service query string false "Service name filter"
// @Param limit query int false "Row cap, default 50, max 200"
// @Success 200 {array} domain.RecentEvent "ok"
// @Router /usage/recent [get]
func (h *handlers) recent(r *stdhttp.Request) (any, error) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return h.svc.Recent(r.Context(), r.URL.Query().Get("service"), limit)
}
