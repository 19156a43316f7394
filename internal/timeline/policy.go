package timeline

import "time"

// DefaultMinAutoInterval is the minimum spacing between two AUTO snapshots
// of the same tab.
const DefaultMinAutoInterval = 3 * time.Minute

// CaptureRequest is a raw "content observed" event. The caller picks Type
// based on why it is calling: a debounced edit asks for TypeAuto, a
// completed save for TypeSave, and so on.
type CaptureRequest struct {
	TabID       string
	Content     string
	FileName    string
	FilePath    string
	Description string
	Type        SnapshotType
	Tags        []string

	Cursor     *CursorPosition
	Scroll     *ScrollPosition
	Selections []SelectionRange
}

// Policy decides whether a capture request is admitted.
//
// The policy is deliberately asymmetric: AUTO captures fire constantly
// during editing and must not flood storage, so they are gated on content
// change and a per-tab cool-down. MANUAL, SAVE, OPEN and RESTORE captures
// record an intentional event, so they are always admitted even when the
// content is unchanged.
type Policy struct {
	MinAutoInterval time.Duration
}

// NewPolicy creates a Policy. A non-positive interval selects the default.
func NewPolicy(minAutoInterval time.Duration) *Policy {
	if minAutoInterval <= 0 {
		minAutoInterval = DefaultMinAutoInterval
	}
	return &Policy{MinAutoInterval: minAutoInterval}
}

// Admit reports whether the request produces a snapshot. prev is the most
// recent snapshot of the same tab, lastAuto the most recent AUTO snapshot
// of the same tab; either may be nil. reason is set on rejection.
func (p *Policy) Admit(req CaptureRequest, prev, lastAuto *Snapshot, now time.Time) (ok bool, reason string) {
	if req.Type != TypeAuto {
		return true, ""
	}
	if prev != nil && prev.Content == req.Content {
		return false, "content unchanged"
	}
	if lastAuto != nil && now.Sub(lastAuto.Timestamp) < p.MinAutoInterval {
		return false, "cool-down active"
	}
	return true, ""
}
