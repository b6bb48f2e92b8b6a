// Package domain holds DTOs for usage http and service contracts
package domain

// QueryInput is the input for the aggregate usage query
type QueryInput struct {
	ServiceName string   `json:"service_name" validate:"required,svcslug,max=200" example:"payments-api"`
	Versions    []string `json:"versions,omitempty" validate:"omitempty,dive,min=1,max=100"`
	From        string   `json:"from" validate:"required,datetime=2006-01-02" example:"2026-08-01"`
	To          string   `json:"to" validate:"required,datetime=2006-01-02" example:"2026-08-25"`
	Outcomes    []string `json:"outcomes,omitempty" validate:"omitempty,dive,oneof=serve redirect reject"`
}

// DayRow is one per day rollup row
type DayRow struct {
	Day         string `json:"day"`
	ServiceName string `json:"service_name"`
	Version     string `json:"version"`
	Outcome     string `json:"outcome"`
	Requests    uint64 `json:"requests"`
	Bytes       uint64 `json:"bytes"`
}

// TotalsRow is one aggregated row from the usage query
type TotalsRow struct {
	ServiceName string `json:"service_name"`
	Version     string `json:"version"`
	Outcome     string `json:"outcome"`
	Requests    uint64 `json:"requests"`
	Bytes       uint64 `json:"bytes"`
}

// RecentEvent is one audit row from the recent downloads listing
type RecentEvent struct {
	ID          string `json:"id"`
	OccurredAt  string `json:"occurred_at"`
	ServiceName string `json:"service_name"`
	Version     string `json:"version"`
	ResourceKey string `json:"resource_key"`
	Outcome     string `json:"outcome"`
	Reason      string `json:"reason,omitempty"`
	UserEmail   string `json:"user_email,omitempty"`
	RequestID   string `json:"request_id"`
	Bytes       int64  `json:"bytes"`
}
