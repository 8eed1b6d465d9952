package logview

import (
	"time"
)

// Record is one audit log line broken into typed fields. Raw always holds
// the original line verbatim; every other field is zero when the line did
// not match the log grammar. Timestamp alone may be zero even when the
// rest of the fields matched, since offset normalization can still fail.
type Record struct {
	Timestamp time.Time `json:"timestamp,omitzero"`
	PID       string    `json:"pid,omitempty"`
	ClientIP  string    `json:"client_ip,omitempty"`
	Module    string    `json:"module,omitempty"`
	Function  string    `json:"function,omitempty"`
	ClientID  string    `json:"client_id,omitempty"`
	Args      string    `json:"args,omitempty"`
	Raw       string    `json:"raw_log"`
}

// Complete reports whether the line parsed far enough to carry a client
// address. Trailing lines of a live log are often truncated mid-write, so
// a matched client IP is the acceptance criterion for a usable record.
func (r Record) Complete() bool {
	return r.ClientIP != ""
}
