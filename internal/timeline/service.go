package timeline

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Service is the orchestration layer the editor shell calls. It routes
// capture requests through the admission policy, owns the active-snapshot
// pointer for UI highlighting, and performs the lifecycle operations
// (restore, delete, export, import, compare, cleanup) on top of the Store.
type Service struct {
	store  *Store
	policy *Policy
	editor Editor
	files  FileAccess
	enc    Encryptor // nil when encryption is not configured
	logger Logger
	clock  Clock
	idgen  IDGenerator
	events *Events

	mu       sync.Mutex
	activeID int64 // 0 means no active snapshot
}

// NewService creates a Service with the provided dependencies.
func NewService(store *Store, policy *Policy, editor Editor, files FileAccess, enc Encryptor, logger Logger, clock Clock, idgen IDGenerator, events *Events) *Service {
	if logger == nil {
		logger = NewNopLogger()
	}
	return &Service{
		store:  store,
		policy: policy,
		editor: editor,
		files:  files,
		enc:    enc,
		logger: logger,
		clock:  clock,
		idgen:  idgen,
		events: events,
	}
}

// Hydrate loads the persisted collection into the store, points the active
// snapshot at the newest loaded entry, and notifies observers.
func (s *Service) Hydrate() (int, error) {
	count, err := s.store.Hydrate()
	if err != nil {
		return 0, err
	}

	all := s.store.All()
	s.mu.Lock()
	if len(all) > 0 {
		s.activeID = all[len(all)-1].ID
	} else {
		s.activeID = 0
	}
	s.mu.Unlock()

	s.events.snapshotsLoaded(count)
	s.logger.Info("snapshots loaded", "count", count)
	return count, nil
}

// Capture runs the admission policy for the request and, if admitted,
// constructs and appends the snapshot. A rejection returns (nil, nil):
// it is an expected outcome, not an error.
func (s *Service) Capture(req CaptureRequest) (*Snapshot, error) {
	if !req.Type.Valid() {
		return nil, fmt.Errorf("invalid snapshot type: %q", req.Type)
	}
	if req.TabID == "" {
		return nil, fmt.Errorf("capture request has no tab id")
	}

	now := s.clock.Now()

	var prev, lastAuto *Snapshot
	if p, ok := s.store.MostRecentForTab(req.TabID); ok {
		prev = &p
	}
	if a, ok := s.store.LastAutoForTab(req.TabID); ok {
		lastAuto = &a
	}

	if ok, reason := s.policy.Admit(req, prev, lastAuto, now); !ok {
		s.logger.Debug("snapshot rejected", "tab", req.TabID, "reason", reason)
		return nil, nil
	}

	snap := Snapshot{
		ID:             s.idgen.Next(now),
		Timestamp:      now,
		TabID:          req.TabID,
		Description:    req.Description,
		Content:        req.Content,
		FileName:       req.FileName,
		FilePath:       req.FilePath,
		CursorPosition: req.Cursor,
		ScrollPosition: req.Scroll,
		Selections:     req.Selections,
		Type:           req.Type,
		Tags:           req.Tags,
	}
	if snap.FileName == "" {
		snap.FileName = "untitled"
	}
	if prev != nil {
		snap.PreviousContent = prev.Content
	}

	s.store.Append(snap)

	s.mu.Lock()
	s.activeID = snap.ID
	s.mu.Unlock()

	s.events.snapshotCreated(snap)
	s.logger.Info("snapshot created", "tab", snap.TabID, "type", snap.Type, "id", snap.ID)
	return &snap, nil
}

// Restore pushes a snapshot's content and view state back into the editor
// and marks it active. It does not create a snapshot itself, so repeated
// restores do not pollute history; callers that want the event recorded
// follow up with a TypeRestore capture. An unknown id is a no-op.
func (s *Service) Restore(id int64) (*Snapshot, error) {
	snap, ok := s.store.ByID(id)
	if !ok {
		s.logger.Debug("restore skipped, snapshot gone", "id", id)
		return nil, nil
	}

	old := s.editor.GetContent()
	s.editor.SetContent(snap.Content)
	if snap.CursorPosition != nil {
		s.editor.SetCursorPosition(*snap.CursorPosition)
	}
	if snap.ScrollPosition != nil {
		s.editor.SetScrollPosition(*snap.ScrollPosition)
	}
	if len(snap.Selections) > 0 {
		s.editor.SetSelections(snap.Selections)
	}
	s.editor.HighlightDelta(old, snap.Content)

	s.mu.Lock()
	s.activeID = snap.ID
	s.mu.Unlock()

	s.logger.Info("snapshot restored", "id", id, "tab", snap.TabID)
	return &snap, nil
}

// Delete removes a snapshot. If it was the active one, the pointer moves to
// the nearest earlier snapshot in storage order, or to the new first one,
// or is cleared when nothing remains.
func (s *Service) Delete(id int64) {
	all := s.store.All()
	idx := -1
	for i, snap := range all {
		if snap.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	s.store.DeleteAt(id)

	s.mu.Lock()
	if s.activeID == id {
		switch {
		case idx > 0:
			s.activeID = all[idx-1].ID
		case len(all) > 1:
			s.activeID = all[1].ID
		default:
			s.activeID = 0
		}
	}
	s.mu.Unlock()
}

// Export writes a snapshot's content to destPath via the file-access
// collaborator. An empty destPath opens the save dialog; cancellation and
// unknown ids return an empty path with no error. With encrypt set the
// content is age-encrypted for the configured recipient.
func (s *Service) Export(id int64, destPath string, encrypt bool) (string, error) {
	snap, ok := s.store.ByID(id)
	if !ok {
		return "", nil
	}

	if destPath == "" {
		var err error
		destPath, err = s.files.ShowSaveDialog(snap.FileName)
		if err != nil {
			return "", fmt.Errorf("showing save dialog: %w", err)
		}
		if destPath == "" {
			return "", nil // cancelled
		}
	}

	content := snap.Content
	if encrypt {
		if s.enc == nil || !s.enc.IsConfigured() {
			return "", fmt.Errorf("encryption is not configured")
		}
		var buf strings.Builder
		if err := s.enc.Encrypt(strings.NewReader(content), &buf); err != nil {
			return "", fmt.Errorf("encrypting snapshot: %w", err)
		}
		content = buf.String()
	}

	if err := s.files.WriteFile(destPath, content); err != nil {
		return "", fmt.Errorf("exporting snapshot: %w", err)
	}

	s.logger.Info("snapshot exported", "id", id, "path", destPath)
	return destPath, nil
}

// Import reads a file and records it as a MANUAL snapshot tagged
// "imported". An imported file is not bound to an open tab, so it gets a
// fresh synthetic tab id. An empty path opens the file dialog; cancellation
// returns (nil, nil).
func (s *Service) Import(path string) (*Snapshot, error) {
	path, err := s.resolveImportPath(path)
	if err != nil || path == "" {
		return nil, err
	}

	content, err := s.files.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("importing snapshot: %w", err)
	}
	return s.importContent(path, content)
}

// ImportEncrypted imports an age-encrypted export, decrypting it with the
// unlocked session context.
func (s *Service) ImportEncrypted(path string, dctx DecryptionContext) (*Snapshot, error) {
	path, err := s.resolveImportPath(path)
	if err != nil || path == "" {
		return nil, err
	}

	ciphertext, err := s.files.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("importing snapshot: %w", err)
	}

	var buf strings.Builder
	if err := dctx.Decrypt(strings.NewReader(ciphertext), &buf); err != nil {
		return nil, fmt.Errorf("decrypting import: %w", err)
	}
	return s.importContent(path, buf.String())
}

func (s *Service) resolveImportPath(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	path, err := s.files.ShowOpenDialog()
	if err != nil {
		return "", fmt.Errorf("showing open dialog: %w", err)
	}
	return path, nil
}

func (s *Service) importContent(path, content string) (*Snapshot, error) {
	fileName := filepath.Base(path)
	tabID := "import-" + uuid.NewString()

	return s.Capture(CaptureRequest{
		TabID:       tabID,
		Content:     content,
		FileName:    fileName,
		FilePath:    path,
		Description: "imported file: " + fileName,
		Type:        TypeManual,
		Tags:        []string{"imported"},
	})
}

// Compare returns the line diff between two snapshots, oldest as the base.
// If either id is gone the result is empty.
func (s *Service) Compare(idA, idB int64) string {
	a, okA := s.store.ByID(idA)
	b, okB := s.store.ByID(idB)
	if !okA || !okB {
		return ""
	}
	return CompareContents(a.Content, b.Content)
}

// Cleanup enforces the retention cap on AUTO snapshots across all tabs:
// when more than maxAuto exist, the oldest excess ones are evicted.
// Snapshots of other types are never touched. Returns the eviction count.
func (s *Service) Cleanup(maxAuto int) int {
	if maxAuto < 0 {
		maxAuto = 0
	}

	var autos []Snapshot
	for _, snap := range s.store.All() {
		if snap.Type == TypeAuto {
			autos = append(autos, snap)
		}
	}
	if len(autos) <= maxAuto {
		return 0
	}

	// Storage order is id order, which is chronological.
	excess := autos[:len(autos)-maxAuto]
	for _, snap := range excess {
		s.Delete(snap.ID)
	}

	s.events.cleanupPerformed(len(excess))
	s.logger.Info("cleanup performed", "evicted", len(excess))
	return len(excess)
}

// ClearForTab removes all snapshots of one tab and clears the active
// pointer. Cannot be undone; confirmation UX is the caller's job.
func (s *Service) ClearForTab(tabID string) {
	s.store.ClearForTab(tabID)
	s.mu.Lock()
	s.activeID = 0
	s.mu.Unlock()
}

// ClearAll empties the whole collection. Cannot be undone.
func (s *Service) ClearAll() {
	s.store.ClearAll()
	s.mu.Lock()
	s.activeID = 0
	s.mu.Unlock()
}

// ActiveSnapshotID returns the id of the snapshot the UI should highlight,
// or 0 when none is active.
func (s *Service) ActiveSnapshotID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeID
}

// Store exposes the underlying store for read-level access and shutdown.
func (s *Service) Store() *Store {
	return s.store
}
