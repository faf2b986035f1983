package tui

import "time"

// MsgPlan seeds the package list once the resolution plan is known.
// Packages arrive in manifest order.
type MsgPlan struct {
	Packages []string
}

// MsgFetchStart marks a package's release list as loading.
type MsgFetchStart struct {
	SpanID    string
	Name      string
	StartTime time.Time
}

// MsgFetchLog carries a progress note emitted during a fetch.
type MsgFetchLog struct {
	SpanID string
	Data   []byte
}

// MsgFetchDone marks a package as pinned or failed.
type MsgFetchDone struct {
	SpanID  string
	EndTime time.Time
	Version string
	Err     error
}
