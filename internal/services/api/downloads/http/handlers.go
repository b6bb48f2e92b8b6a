// Package http provides http transport for gated resource downloads
//
// Unlike the JSON modules this handler writes raw bytes, redirects and
// conditional responses, so it maps the gate decision onto the wire
// itself instead of going through the envelope adapters
package http

import (
	stdhttp "net/http"
	"net/url"
	"strconv"
	"strings"

	"devportal/internal/core/safekey"
	"devportal/internal/modkit/httpkit"
	perr "devportal/internal/platform/errors"
	phttp "devportal/internal/platform/net/http"
	"devportal/internal/services/downloads/domain"

	"github.com/go-chi/chi/v5"
)

// Options configures the download endpoint
type Options struct {
	// SessionCookie names the cookie carrying the portal session id
	SessionCookie string
}

// Register mounts the download endpoint on the given router.
// The route is relative to /apis/{serviceName}/versions/{version}/resources
func Register(r httpkit.Router, gate domain.GatePort, opt Options) {
	h := &handlers{gate: gate, cookie: opt.SessionCookie}
	r.Get("/*", h.download)
}

type handlers struct {
	gate   domain.GatePort
	cookie string
}

// swagger:route GET /apis/{serviceName}/versions/{version}/resources/{resourceKey} Downloads downloadResource
// @Summary Download a per version resource file
// @Tags Downloads
// @Produce octet-stream
// @Param serviceName path string true "Service name"
// @Param version path string true "Version"
// @Param resourceKey path string true "Resource key, may contain slashes"
// @Success 200 {string} binary "resource bytes"
// @Router /apis/{serviceName}/versions/{version}/resources/{resourceKey} [get]
func (h *handlers) download(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	svc := chi.URLParam(r, "serviceName")
	ver := chi.URLParam(r, "version")

	// the store re-checks both segments before its path join; rejecting
	// here keeps malformed segments out of the upstream catalog URL too
	for _, seg := range []string{svc, ver} {
		if err := safekey.ValidateSegment(seg); err != nil {
			phttp.RespondError(w, r, err)
			return
		}
	}

	req := domain.Request{
		ServiceName: svc,
		Version:     ver,
		ResourceKey: resourceKey(r),
		SessionID:   httpkit.SessionID(r, h.cookie),
		RequestURL:  r.URL.RequestURI(),
		RequestID:   httpkit.RequestID(r),
	}

	d, err := h.gate.Decide(r.Context(), req)
	if err != nil {
		if r.Context().Err() != nil {
			// client is gone or the request timed out, nothing to write
			return
		}
		phttp.RespondError(w, r, err)
		return
	}

	switch d.Outcome {
	case domain.OutcomeRedirect:
		stdhttp.Redirect(w, r, d.RedirectURL, stdhttp.StatusFound)
	case domain.OutcomeReject:
		phttp.RespondError(w, r, rejectErr(d.Reason))
	default:
		serve(w, r, d.Payload)
	}
}

// resourceKey extracts the wildcard tail and decodes it exactly once.
// chi hands the tail back percent-encoded when the raw path carried
// encodings; an undecodable tail stays raw for the gate to judge
func resourceKey(r *stdhttp.Request) string {
	key := chi.URLParam(r, "*")
	if dec, err := url.PathUnescape(key); err == nil {
		key = dec
	}
	return key
}

// rejectErr maps a gate reason onto the error envelope taxonomy
func rejectErr(reason domain.Reason) error {
	switch reason {
	case domain.ReasonPathTraversal:
		return perr.PathTraversalf("resource key escapes the resource root")
	case domain.ReasonForbidden:
		return perr.Forbiddenf("version not available to this account")
	default:
		return perr.NotFoundf("no such resource")
	}
}

// serve writes the payload with its blake3 digest as a strong ETag,
// answering 304 when the client already holds the same bytes
func serve(w stdhttp.ResponseWriter, r *stdhttp.Request, p *domain.Payload) {
	etag := `"` + p.Digest + `"`
	w.Header().Set("ETag", etag)

	if etagMatch(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(stdhttp.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", p.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(p.Bytes)))
	w.WriteHeader(stdhttp.StatusOK)
	_, _ = w.Write(p.Bytes)
}

// etagMatch implements the subset of If-None-Match the portal needs:
// a bare *, or a comma separated list of (possibly weak) quoted tags
func etagMatch(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(part)
		if tag == "*" {
			return true
		}
		tag = strings.TrimPrefix(tag, "W/")
		if tag == etag {
			return true
		}
	}
	return false
}
