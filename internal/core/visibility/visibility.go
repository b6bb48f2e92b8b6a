// Package visibility resolves catalog availability metadata into the
// visibility triple the download gate branches on.
//
// Resolution is a pure field copy. The triple only answers "who may see
// this version"; whether the version is enabled for serving at all is a
// separate check owned by the caller
package visibility

import "strings"

// AccessType classifies who may use an API version
type AccessType string

const (
	AccessPublic  AccessType = "PUBLIC"
	AccessPrivate AccessType = "PRIVATE"
)

// ParseAccessType maps a raw catalog value onto an AccessType.
// Unrecognized values fall back to private so a malformed payload can
// never widen access
func ParseAccessType(raw string) AccessType {
	if strings.EqualFold(strings.TrimSpace(raw), string(AccessPublic)) {
		return AccessPublic
	}
	return AccessPrivate
}

// Public reports whether the access type grants anonymous visibility
func (a AccessType) Public() bool { return a == AccessPublic }

// Availability is the per-version access metadata a catalog payload carries
type Availability struct {
	Type       AccessType
	LoggedIn   bool
	Authorised bool
}

// Visibility is the resolved triple for one version of one API.
// It is a snapshot of the availability that produced it and carries no
// identity of its own
type Visibility struct {
	Privacy    AccessType
	LoggedIn   bool
	Authorised bool
}

// Public reports whether the version is visible without a session
func (v Visibility) Public() bool { return v.Privacy.Public() }

// Resolve maps availability metadata to its visibility triple.
// Deterministic and side-effect free; calling it twice on the same
// input yields the same value
func Resolve(meta Availability) Visibility {
	return Visibility{
		Privacy:    meta.Type,
		LoggedIn:   meta.LoggedIn,
		Authorised: meta.Authorised,
	}
}
