package domain

import "context"

// GatePort decides download requests and records the audit trail
type GatePort interface {
	Decide(ctx context.Context, req Request) (Decision, error)
}
