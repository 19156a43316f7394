package timeline

import "time"

// SnapshotType classifies why a snapshot was captured. The wire values match
// the persisted snapshots.json format, so they must not change.
type SnapshotType string

const (
	// TypeAuto is captured opportunistically from editing activity and is
	// subject to dedup and rate-limit gating.
	TypeAuto SnapshotType = "auto"
	// TypeManual is captured on explicit user request.
	TypeManual SnapshotType = "manual"
	// TypeSave is captured when a file save completes.
	TypeSave SnapshotType = "save"
	// TypeRestore marks that a historical state was restored.
	TypeRestore SnapshotType = "restore"
	// TypeOpen is captured when a file is opened into a tab.
	TypeOpen SnapshotType = "open"
)

// Valid reports whether t is one of the known snapshot types.
func (t SnapshotType) Valid() bool {
	switch t {
	case TypeAuto, TypeManual, TypeSave, TypeRestore, TypeOpen:
		return true
	}
	return false
}

// CursorPosition is the editor caret location at capture time.
type CursorPosition struct {
	LineNumber int `json:"lineNumber"`
	Column     int `json:"column"`
}

// ScrollPosition is the editor viewport offset at capture time.
type ScrollPosition struct {
	ScrollTop  int `json:"scrollTop"`
	ScrollLeft int `json:"scrollLeft"`
}

// SelectionRange is one editor selection at capture time.
type SelectionRange struct {
	StartLineNumber int `json:"startLineNumber"`
	StartColumn     int `json:"startColumn"`
	EndLineNumber   int `json:"endLineNumber"`
	EndColumn       int `json:"endColumn"`
}

// Snapshot is one captured state of one document at one instant.
// Snapshots are append-only records: once created they are never mutated,
// only deleted (explicitly or by retention cleanup).
type Snapshot struct {
	// ID is unique and strictly increasing across the whole store.
	// It is derived from the capture time in unix milliseconds.
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`

	// TabID identifies the owning document. It is an opaque value supplied
	// by the shell and stays stable for the tab's whole lifetime, including
	// across save-as.
	TabID string `json:"tabId"`

	Description string `json:"description"`

	// Content is the complete document text, never a partial patch.
	// Restore is a pure overwrite.
	Content string `json:"content"`

	// PreviousContent is the content of the chronologically preceding
	// snapshot for the same tab at capture time. Display aid only; restore
	// never depends on it.
	PreviousContent string `json:"previousContent,omitempty"`

	// FileName and FilePath are denormalized at capture time and may differ
	// from the document's current name if it was renamed later.
	FileName string `json:"fileName"`
	FilePath string `json:"filePath"`

	CursorPosition *CursorPosition  `json:"cursorPosition,omitempty"`
	ScrollPosition *ScrollPosition  `json:"scrollPosition,omitempty"`
	Selections     []SelectionRange `json:"selections,omitempty"`

	Type SnapshotType `json:"type"`
	Tags []string     `json:"tags,omitempty"`
}

// SizeDelta returns the content size change relative to the preceding
// snapshot, in bytes. Used for the history panel's size badge.
func (s *Snapshot) SizeDelta() int {
	return len(s.Content) - len(s.PreviousContent)
}

// HasTag reports whether the snapshot carries the given tag.
func (s *Snapshot) HasTag(tag string) bool {
	for _, t := range s.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
