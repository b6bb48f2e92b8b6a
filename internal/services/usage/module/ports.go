package module

import dom "devportal/internal/services/usage/domain"

// Ports holds the ports exposed by the usage module
type Ports struct {
	Rollup dom.RollupPort
	Query  dom.QueryPort
}
