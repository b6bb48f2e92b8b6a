// Package safekey certifies raw resource keys as safe relative paths.
//
// Validation is deny-by-default: a key is accepted only when every rule
// passes, and anything ambiguous is treated as a traversal attempt. The
// transport layer has already percent-decoded the key once, so residual
// encodings are themselves grounds for rejection rather than something
// to decode again
package safekey

import (
	"strings"

	perr "devportal/internal/platform/errors"
)

// MaxLen is the byte cap on a raw key. Real resource keys are short;
// anything past this is abuse or a mistake
const MaxLen = 1024

// Key is a resource key that passed Validate.
// Code that holds a Key may join it under the resource root without
// re-checking
type Key string

func (k Key) String() string { return string(k) }

// encodedForms are percent sequences that must not survive transport
// decoding. Includes the overlong UTF-8 slash some decoders accept
var encodedForms = []string{"%2e", "%2f", "%5c", "%00", "%c0%af"}

// Validate certifies raw as a safe relative resource key
func Validate(raw string) (Key, error) {
	if raw == "" {
		return "", perr.PathTraversalf("empty resource key")
	}
	if len(raw) > MaxLen {
		return "", perr.PathTraversalf("resource key exceeds %d bytes", MaxLen)
	}
	if strings.HasPrefix(raw, "/") {
		return "", perr.PathTraversalf("absolute resource key")
	}
	if strings.ContainsRune(raw, '\\') {
		return "", perr.PathTraversalf("backslash in resource key")
	}
	for i := 0; i < len(raw); i++ {
		if b := raw[i]; b < 0x20 || b == 0x7f {
			return "", perr.PathTraversalf("control byte 0x%02x in resource key", b)
		}
	}

	low := strings.ToLower(raw)
	for _, enc := range encodedForms {
		if strings.Contains(low, enc) {
			return "", perr.PathTraversalf("encoded sequence %q in resource key", enc)
		}
	}

	for _, seg := range strings.Split(raw, "/") {
		switch seg {
		case "":
			return "", perr.PathTraversalf("empty segment in resource key")
		case ".":
			return "", perr.PathTraversalf("current-directory segment in resource key")
		case "..":
			return "", perr.PathTraversalf("parent-directory segment in resource key")
		}
	}

	return Key(raw), nil
}

// ValidateSegment certifies raw as a single safe path segment, for
// callers that splice user input into one level of a path (service
// names, versions). Rejects everything Validate rejects plus any
// separator at all
func ValidateSegment(raw string) error {
	if _, err := Validate(raw); err != nil {
		return err
	}
	if strings.ContainsRune(raw, '/') {
		return perr.PathTraversalf("separator in path segment")
	}
	return nil
}
