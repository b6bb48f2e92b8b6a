// Package bind decodes and validates JSON request bodies
package bind

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"regexp"
	"strings"
	"sync"

	perr "devportal/internal/platform/errors"
	"devportal/internal/platform/logger"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entrans "github.com/go-playground/validator/v10/translations/en"
)

// checker pairs the process wide validator with its message translator
type checker struct {
	validate *validator.Validate
	trans    ut.Translator
}

// active builds the checker on first use: english messages, json tag
// field names and the portal's custom tags
var active = sync.OnceValue(func() *checker {
	loc := en.New()
	trans, _ := ut.New(loc, loc).GetTranslator("en")

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	_ = entrans.RegisterDefaultTranslations(v, trans)

	registerShortMinMax(v, trans)
	registerServiceSlug(v, trans)

	return &checker{validate: v, trans: trans}
})

// jsonFieldName makes validation messages name fields by their json tag
func jsonFieldName(fld reflect.StructField) string {
	tag := fld.Tag.Get("json")
	if tag == "" || tag == "-" {
		return fld.Name
	}
	if idx := strings.Index(tag, ","); idx >= 0 {
		tag = tag[:idx]
	}
	return tag
}

// JSONOptions tunes ParseJSON. Passing none applies the house limits:
// bodies cap at 1MB, unknown fields are rejected and an empty body
// only parses on safe methods
type JSONOptions struct {
	MaxBytes        int64
	DisallowUnknown bool
	AllowEmptyBody  bool
}

func jsonOptions(opts []JSONOptions) JSONOptions {
	if len(opts) > 0 {
		return opts[0]
	}
	return JSONOptions{MaxBytes: 1 << 20, DisallowUnknown: true}
}

// ParseJSON decodes the request body into T, runs struct validation and
// maps every failure onto the error taxonomy. An empty body on a safe
// method parses to the zero value so GET handlers can share the path
func ParseJSON[T any](r *http.Request, opts ...JSONOptions) (T, error) {
	var zero T
	o := jsonOptions(opts)
	defer func() {
		if err := r.Body.Close(); err != nil {
			logger.Get().Error().Err(err).Msg("close request body")
		}
	}()

	body := io.Reader(r.Body)
	if !o.AllowEmptyBody {
		// probe one byte so an absent body is told apart from bad JSON
		probe := make([]byte, 1)
		n, _ := r.Body.Read(probe)
		if n == 0 {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodDelete, http.MethodOptions:
				return zero, nil
			}
			return zero, perr.JSONErrf("empty body")
		}
		body = io.MultiReader(bytes.NewReader(probe[:n]), r.Body)
	}
	if o.MaxBytes > 0 {
		body = io.LimitReader(body, o.MaxBytes)
	}

	dec := json.NewDecoder(body)
	if o.DisallowUnknown {
		dec.DisallowUnknownFields()
	}

	var dst T
	if err := dec.Decode(&dst); err != nil {
		if o.AllowEmptyBody && errors.Is(err, io.EOF) {
			return dst, nil
		}
		return zero, perr.JSONErrf("invalid JSON: %v", err)
	}
	if dec.More() {
		return zero, perr.JSONErrf("unexpected trailing data")
	}

	if err := active().validate.Struct(dst); err != nil {
		var inv *validator.InvalidValidationError
		if errors.As(err, &inv) {
			logger.Get().Error().Err(inv).Msg("validator rejected the target type")
			return zero, perr.JSONErrf("validation error")
		}
		field, msg := firstFailure(err)
		return zero, perr.ValidationField(field, msg)
	}
	return dst, nil
}

// firstFailure names the first failing field with its translated message
func firstFailure(err error) (field, message string) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			return fe.Field(), fe.Translate(active().trans)
		}
	}
	return "", err.Error()
}

// serviceSlugRe matches catalog service names: lowercase alphanumerics
// with interior hyphens, the shape the catalog upstream publishes
var serviceSlugRe = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)

func registerServiceSlug(v *validator.Validate, trans ut.Translator) {
	_ = v.RegisterValidation("svcslug", func(fl validator.FieldLevel) bool {
		return serviceSlugRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterTranslation("svcslug", trans,
		func(t ut.Translator) error {
			return t.Add("svcslug", "{0} must be a lowercase service slug", true)
		},
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T("svcslug", fe.Field())
			return msg
		},
	)
}

// registerShortMinMax swaps the stock min and max messages for short ones
func registerShortMinMax(v *validator.Validate, trans ut.Translator) {
	for tag, tmpl := range map[string]string{
		"min": "{0} must be at least {1}",
		"max": "{0} must be at most {1}",
	} {
		_ = v.RegisterTranslation(tag, trans,
			func(t ut.Translator) error { return t.Add(tag, tmpl, true) },
			func(t ut.Translator, fe validator.FieldError) string {
				msg, _ := t.T(tag, fe.Field(), fe.Param())
				return msg
			},
		)
	}
}
