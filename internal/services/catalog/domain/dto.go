// Package domain holds DTOs for catalog http and service contracts
package domain

// VersionSummary is the per version slice of a catalog entry
type VersionSummary struct {
	Version          string `json:"version"`
	Status           string `json:"status"`
	Access           string `json:"access"`
	EndpointsEnabled bool   `json:"endpoints_enabled"`
}

// APIDefinition is one catalog entry as the portal presents it
type APIDefinition struct {
	ServiceName string           `json:"service_name"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Context     string           `json:"context"`
	Versions    []VersionSummary `json:"versions"`
}
