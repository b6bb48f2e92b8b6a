//go:build swag

package swaggerkit

import (
	"encoding/json"
	"net/http"
	"strings"

	"devportal/internal/platform/config"

	docs "devportal/internal/services/api/docs"
)

// docReader reads the swag generated document. Both build flavors
// declare the same symbol so serveDocJSON is the only divergence
var docReader = func() string { return docs.SwaggerInfo.ReadDoc() }

// serveDocJSON parses the generated spec and stitches in the pieces the
// generator cannot know: the OAS3 base url, the envelope error schema
// and the default error responses every endpoint shares
func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var spec map[string]any
		if err := json.Unmarshal([]byte(docReader()), &spec); err != nil {
			http.Error(w, "spec parse error", http.StatusInternalServerError)
			return
		}

		ensureOAS3(spec, "/api/v1")
		ensureErrorSchema(spec)
		stampDefaultErrors(spec)

		if v := config.New().Prefix("CORE_API_").MayString("DOCS_TITLE_SUFFIX", ""); v != "" {
			if info, ok := spec["info"].(map[string]any); ok {
				if title, ok := info["title"].(string); ok {
					info["title"] = title + " " + v
				}
			}
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec)
	}
}

// ensureOAS3 lifts swagger 2 output to OAS 3.0.3, downsamples 3.1 which
// the bundled UI cannot render, and pins the servers array to the
// versioned api base
func ensureOAS3(spec map[string]any, baseURL string) {
	if _, hasV2 := spec["swagger"]; hasV2 {
		delete(spec, "swagger")
		spec["openapi"] = "3.0.3"
	}
	if v, ok := spec["openapi"].(string); !ok || strings.HasPrefix(v, "3.1") {
		spec["openapi"] = "3.0.3"
	}
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{map[string]any{"url": baseURL}}
	}
}

// ensureMap returns parent[key] as an object node, creating it when the
// generator left it absent or typed differently
func ensureMap(parent map[string]any, key string) map[string]any {
	if m, ok := parent[key].(map[string]any); ok {
		return m
	}
	m := map[string]any{}
	parent[key] = m
	return m
}

// ensureErrorSchema registers the envelope error model unless the
// generator already produced one
func ensureErrorSchema(spec map[string]any) {
	schemas := ensureMap(ensureMap(spec, "components"), "schemas")
	if _, ok := schemas["ErrorResponse"]; ok {
		return
	}
	schemas["ErrorResponse"] = map[string]any{
		"type":        "object",
		"description": "Standard error envelope",
		"properties": map[string]any{
			"status_code": map[string]any{"type": "integer", "format": "int32"},
			"status":      map[string]any{"type": "string"},
			"code":        map[string]any{"type": "integer", "format": "int32"},
			"error":       map[string]any{"type": "string"},
			"field":       map[string]any{"type": "string"},
			"request_id":  map[string]any{"type": "string"},
		},
		"required": []any{"status_code", "status"},
	}
}

// stampDefaultErrors injects the responses every portal endpoint can
// produce: bind failures, a dead session and the recovered panic
func stampDefaultErrors(spec map[string]any) {
	examples := map[string]map[string]any{
		"400": {
			"status_code": 400, "status": "Bad Request", "code": 8,
			"error": "service_name must be a lowercase service slug", "field": "service_name",
			"request_id": "9f31c0d2ab/portal-000042",
		},
		"401": {
			"status_code": 401, "status": "Unauthorized", "code": 14,
			"error":      "session expired",
			"request_id": "9f31c0d2ab/portal-000042",
		},
		"500": {
			"status_code": 500, "status": "Internal Server Error", "code": 1,
			"error":      "panic recovered",
			"request_id": "9f31c0d2ab/portal-000042",
		},
	}

	eachOperation(spec, func(op map[string]any) {
		resps := ensureMap(op, "responses")
		for status, example := range examples {
			if _, exists := resps[status]; exists {
				continue
			}
			resps[status] = map[string]any{
				"description": example["status"],
				"content": map[string]any{
					"application/json": map[string]any{
						"schema":  map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
						"example": example,
					},
				},
			}
		}
	})
}

// eachOperation visits every operation object under paths. Non object
// nodes (extensions, parameter lists) are skipped
func eachOperation(spec map[string]any, visit func(op map[string]any)) {
	paths, _ := spec["paths"].(map[string]any)
	for _, pathAny := range paths {
		path, ok := pathAny.(map[string]any)
		if !ok {
			continue
		}
		for _, opAny := range path {
			if op, ok := opAny.(map[string]any); ok {
				visit(op)
			}
		}
	}
}
