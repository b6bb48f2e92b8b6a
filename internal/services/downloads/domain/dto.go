// Package domain holds the download gate contracts and decision shapes
package domain

// Outcome identifies how the gate resolved a download request
type Outcome string

// Outcome values, persisted verbatim in the audit trail
const (
	OutcomeServe    Outcome = "serve"
	OutcomeRedirect Outcome = "redirect"
	OutcomeReject   Outcome = "reject"
)

// Reason identifies why the gate rejected a request
type Reason string

// Reject reasons
const (
	ReasonPathTraversal Reason = "path_traversal"
	ReasonNotFound      Reason = "not_found"
	ReasonForbidden     Reason = "forbidden"
)

// Request carries one download attempt into the gate.
// ResourceKey and SessionID arrive raw; the gate validates both
type Request struct {
	ServiceName string
	Version     string
	ResourceKey string
	SessionID   string
	RequestURL  string
	RequestID   string
}

// Payload is the resolved content of a served resource
type Payload struct {
	Bytes       []byte
	ContentType string
	// Digest is the blake3 hex of Bytes and doubles as the strong ETag value
	Digest string
}

// Decision is the gate verdict, exactly one per run.
// Transport failures and cancellation are returned as errors instead
type Decision struct {
	Outcome     Outcome
	Payload     *Payload // set when Outcome is OutcomeServe
	RedirectURL string   // set when Outcome is OutcomeRedirect
	Reason      Reason   // set when Outcome is OutcomeReject
	UserEmail   string   // resolved identity when a valid session was presented
}
