package catalog

import "devportal/internal/core/visibility"

// Access is the wire access block carried per version
type Access struct {
	Type       string `json:"type"`
	LoggedIn   bool   `json:"loggedIn"`
	Authorised bool   `json:"authorised"`
}

// Version is one published version of an API definition
type Version struct {
	Version          string `json:"version"`
	Status           string `json:"status"`
	EndpointsEnabled bool   `json:"endpointsEnabled"`
	Access           Access `json:"access"`
}

// Availability maps the wire access block onto the core availability type
// unknown access types come back private
func (v Version) Availability() visibility.Availability {
	return visibility.Availability{
		Type:       visibility.ParseAccessType(v.Access.Type),
		LoggedIn:   v.Access.LoggedIn,
		Authorised: v.Access.Authorised,
	}
}

// Extended is a full API definition with its ordered versions
type Extended struct {
	ServiceName string    `json:"serviceName"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Context     string    `json:"context"`
	Versions    []Version `json:"versions"`
}

// FindVersion returns the entry whose version matches exactly, or nil
func (e *Extended) FindVersion(version string) *Version {
	for i := range e.Versions {
		if e.Versions[i].Version == version {
			return &e.Versions[i]
		}
	}
	return nil
}
