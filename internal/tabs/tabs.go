// Package tabs manages the set of open files. Each tab keeps a stable
// synthetic id for its whole lifetime; saving under a new path updates the
// tab's name and path but never re-keys it, so snapshot history stays
// attached across save-as.
package tabs

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jominki354/maulwurf/internal/timeline"
)

// Tab is one open file (or unsaved scratch buffer).
type Tab struct {
	ID       string
	Name     string
	Path     string // empty until saved
	Content  string
	Modified bool
}

// Manager owns the open tabs and the active-tab pointer. Content edits on
// the active tab are debounced into AUTO snapshot captures; open and save
// record OPEN and SAVE snapshots immediately.
type Manager struct {
	service  *timeline.Service
	files    timeline.FileAccess
	editor   timeline.Editor
	logger   timeline.Logger
	debounce *timeline.Debouncer

	mu       sync.Mutex
	tabs     []*Tab
	activeID string
}

// NewManager creates a tab manager. debounceInterval controls how long after
// the last edit an AUTO capture is attempted.
func NewManager(service *timeline.Service, files timeline.FileAccess, ed timeline.Editor, logger timeline.Logger, debounceInterval time.Duration) *Manager {
	if logger == nil {
		logger = timeline.NewNopLogger()
	}
	return &Manager{
		service:  service,
		files:    files,
		editor:   ed,
		logger:   logger,
		debounce: timeline.NewDebouncer(debounceInterval),
	}
}

// Open reads the file at path into a new tab, activates it, and records an
// OPEN snapshot. An empty path prompts with the open dialog; cancellation
// returns (nil, nil).
func (m *Manager) Open(path string) (*Tab, error) {
	if path == "" {
		var err error
		path, err = m.files.ShowOpenDialog()
		if err != nil {
			return nil, fmt.Errorf("showing open dialog: %w", err)
		}
		if path == "" {
			return nil, nil // cancelled
		}
	}

	content, err := m.files.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}

	tab := &Tab{
		ID:      uuid.NewString(),
		Name:    filepath.Base(path),
		Path:    path,
		Content: content,
	}

	m.mu.Lock()
	m.tabs = append(m.tabs, tab)
	m.activeID = tab.ID
	m.mu.Unlock()

	m.editor.SetContent(content)

	if _, err := m.service.Capture(timeline.CaptureRequest{
		TabID:       tab.ID,
		Content:     content,
		FileName:    tab.Name,
		FilePath:    tab.Path,
		Description: "opened file: " + tab.Name,
		Type:        timeline.TypeOpen,
	}); err != nil {
		return nil, fmt.Errorf("recording open snapshot: %w", err)
	}

	m.logger.Info("tab opened", "tab", tab.ID, "path", path)
	return tab, nil
}

// NewTab creates an empty unsaved tab and activates it.
func (m *Manager) NewTab() *Tab {
	tab := &Tab{
		ID:   uuid.NewString(),
		Name: "untitled",
	}

	m.mu.Lock()
	m.tabs = append(m.tabs, tab)
	m.activeID = tab.ID
	m.mu.Unlock()

	m.editor.SetContent("")
	m.logger.Debug("tab created", "tab", tab.ID)
	return tab
}

// Activate switches the active tab. The outgoing tab's content is synced
// from the editor first so nothing typed since the last debounce is lost.
// Unknown ids are no-ops.
func (m *Manager) Activate(tabID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if tabID == m.activeID {
		return
	}

	target := m.find(tabID)
	if target == nil {
		return
	}

	if current := m.find(m.activeID); current != nil {
		current.Content = m.editor.GetContent()
	}

	m.activeID = tabID
	m.editor.SetContent(target.Content)
}

// Close removes a tab. When the active tab is closed, selection moves to
// the next tab, then the previous one, then to no tab at all. Snapshot
// history for the closed tab is kept.
func (m *Manager) Close(tabID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := -1
	for i, tab := range m.tabs {
		if tab.ID == tabID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	if tabID == m.activeID {
		switch {
		case idx < len(m.tabs)-1:
			m.activeID = m.tabs[idx+1].ID
			m.editor.SetContent(m.tabs[idx+1].Content)
		case idx > 0:
			m.activeID = m.tabs[idx-1].ID
			m.editor.SetContent(m.tabs[idx-1].Content)
		default:
			m.activeID = ""
			m.editor.SetContent("")
		}
	}

	m.tabs = append(m.tabs[:idx], m.tabs[idx+1:]...)
	m.logger.Debug("tab closed", "tab", tabID)
}

// UpdateContent records an edit on a tab. The tab is marked modified, and
// when it is the active tab an AUTO capture is scheduled after the debounce
// interval; rapid successive edits collapse into a single attempt.
func (m *Manager) UpdateContent(tabID string, content string) {
	m.mu.Lock()
	tab := m.find(tabID)
	if tab == nil {
		m.mu.Unlock()
		return
	}
	tab.Content = content
	tab.Modified = true
	active := tabID == m.activeID
	name, path := tab.Name, tab.Path
	m.mu.Unlock()

	if !active {
		return
	}

	m.editor.SetContent(content)
	m.debounce.Trigger(func() {
		m.captureAuto(tabID, content, name, path)
	})
}

func (m *Manager) captureAuto(tabID, content, name, path string) {
	_, err := m.service.Capture(timeline.CaptureRequest{
		TabID:       tabID,
		Content:     content,
		FileName:    name,
		FilePath:    path,
		Description: "auto-saved changes",
		Type:        timeline.TypeAuto,
		Cursor:      m.editor.GetCursorPosition(),
		Scroll:      m.editor.GetScrollPosition(),
		Selections:  m.editor.GetSelections(),
	})
	if err != nil {
		m.logger.Error("auto capture failed", "tab", tabID, "error", err)
	}
}

// Save writes a tab's content back to its path and records a SAVE snapshot.
// An unsaved tab falls through to SaveAs with an empty destination.
func (m *Manager) Save(tabID string) error {
	m.mu.Lock()
	tab := m.find(tabID)
	if tab == nil {
		m.mu.Unlock()
		return fmt.Errorf("unknown tab: %s", tabID)
	}
	path := tab.Path
	m.mu.Unlock()

	if path == "" {
		return m.SaveAs(tabID, "")
	}
	return m.saveTo(tabID, path)
}

// SaveAs writes a tab's content to a new destination. The tab's name and
// path are updated but its id is unchanged, so existing snapshots stay
// associated. An empty destPath prompts with the save dialog; cancellation
// is a silent no-op.
func (m *Manager) SaveAs(tabID string, destPath string) error {
	m.mu.Lock()
	tab := m.find(tabID)
	if tab == nil {
		m.mu.Unlock()
		return fmt.Errorf("unknown tab: %s", tabID)
	}
	name := tab.Name
	m.mu.Unlock()

	if destPath == "" {
		var err error
		destPath, err = m.files.ShowSaveDialog(name)
		if err != nil {
			return fmt.Errorf("showing save dialog: %w", err)
		}
		if destPath == "" {
			return nil // cancelled
		}
	}

	m.mu.Lock()
	tab.Path = destPath
	tab.Name = filepath.Base(destPath)
	m.mu.Unlock()

	return m.saveTo(tabID, destPath)
}

func (m *Manager) saveTo(tabID, path string) error {
	m.mu.Lock()
	tab := m.find(tabID)
	if tab == nil {
		m.mu.Unlock()
		return fmt.Errorf("unknown tab: %s", tabID)
	}
	if tabID == m.activeID {
		tab.Content = m.editor.GetContent()
	}
	content, name := tab.Content, tab.Name
	m.mu.Unlock()

	if err := m.files.WriteFile(path, content); err != nil {
		return fmt.Errorf("saving file: %w", err)
	}

	if _, err := m.service.Capture(timeline.CaptureRequest{
		TabID:       tabID,
		Content:     content,
		FileName:    name,
		FilePath:    path,
		Description: "saved file: " + name,
		Type:        timeline.TypeSave,
	}); err != nil {
		return fmt.Errorf("recording save snapshot: %w", err)
	}

	m.MarkSaved(tabID)
	m.logger.Info("tab saved", "tab", tabID, "path", path)
	return nil
}

// MarkSaved clears a tab's modified flag.
func (m *Manager) MarkSaved(tabID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if tab := m.find(tabID); tab != nil {
		tab.Modified = false
	}
}

// Get returns a copy of the tab with the given id.
func (m *Manager) Get(tabID string) (Tab, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if tab := m.find(tabID); tab != nil {
		return *tab, true
	}
	return Tab{}, false
}

// List returns copies of all open tabs in opening order.
func (m *Manager) List() []Tab {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Tab, len(m.tabs))
	for i, tab := range m.tabs {
		out[i] = *tab
	}
	return out
}

// ActiveTab returns a copy of the active tab, if any.
func (m *Manager) ActiveTab() (Tab, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if tab := m.find(m.activeID); tab != nil {
		return *tab, true
	}
	return Tab{}, false
}

// Flush runs any pending debounced capture immediately. Used on shutdown so
// the last edits are not lost to the timer.
func (m *Manager) Flush() {
	m.debounce.Flush()
}

// Stop cancels the debounce timer without running pending work.
func (m *Manager) Stop() {
	m.debounce.Stop()
}

// find returns the tab with the given id. Caller holds m.mu.
func (m *Manager) find(tabID string) *Tab {
	for _, tab := range m.tabs {
		if tab.ID == tabID {
			return tab
		}
	}
	return nil
}
