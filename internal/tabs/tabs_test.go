package tabs_test

import (
	"testing"
	"time"

	"github.com/jominki354/maulwurf/internal/persist"
	"github.com/jominki354/maulwurf/internal/tabs"
	"github.com/jominki354/maulwurf/internal/testutil"
	"github.com/jominki354/maulwurf/internal/timeline"
)

type tabsFixture struct {
	manager *tabs.Manager
	service *timeline.Service
	store   *timeline.Store
	editor  *testutil.StubEditor
	files   *testutil.StubFileAccess
	clock   *testutil.StubClock
}

func newTabsFixture(t *testing.T) *tabsFixture {
	t.Helper()

	f := &tabsFixture{
		editor: testutil.NewStubEditor(),
		files:  testutil.NewStubFileAccess(),
		clock:  testutil.FixedClock(),
	}

	f.store = timeline.NewStore(persist.NewMemoryPersister(), nil)
	t.Cleanup(func() {
		f.store.Close()
	})

	f.service = timeline.NewService(
		f.store,
		timeline.NewPolicy(3*time.Minute),
		f.editor,
		f.files,
		nil,
		nil,
		f.clock,
		testutil.NewStubIDGenerator(),
		nil,
	)

	f.manager = tabs.NewManager(f.service, f.files, f.editor, nil, 5*time.Millisecond)
	t.Cleanup(func() {
		f.manager.Stop()
	})
	return f
}

func (f *tabsFixture) open(t *testing.T, path string) *tabs.Tab {
	t.Helper()
	tab, err := f.manager.Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if tab == nil {
		t.Fatal("Open() = nil, want tab")
	}
	return tab
}

func TestManager_Open(t *testing.T) {
	t.Run("reads the file and records an open snapshot", func(t *testing.T) {
		f := newTabsFixture(t)
		f.files.AddFile("/programs/part.nc", "G0 X0\nM30")

		tab := f.open(t, "/programs/part.nc")

		if tab.Name != "part.nc" || tab.Path != "/programs/part.nc" {
			t.Errorf("tab = %+v", tab)
		}
		if tab.ID == "" {
			t.Error("tab id is empty")
		}
		if f.editor.Content != "G0 X0\nM30" {
			t.Errorf("editor content = %q", f.editor.Content)
		}

		snaps := f.store.ListForTab(tab.ID)
		if len(snaps) != 1 {
			t.Fatalf("snapshots = %d, want 1", len(snaps))
		}
		if snaps[0].Type != timeline.TypeOpen {
			t.Errorf("snapshot type = %s, want open", snaps[0].Type)
		}
	})

	t.Run("empty path prompts, cancellation returns nil", func(t *testing.T) {
		f := newTabsFixture(t)

		tab, err := f.manager.Open("")
		if err != nil {
			t.Fatalf("Open() error = %v", err)
		}
		if tab != nil {
			t.Error("Open() = tab, want nil on cancel")
		}
	})

	t.Run("missing file is an error", func(t *testing.T) {
		f := newTabsFixture(t)

		_, err := f.manager.Open("/missing.nc")
		if err == nil {
			t.Error("Open() error = nil, want read error")
		}
	})
}

func TestManager_ActivateAndClose(t *testing.T) {
	openThree := func(t *testing.T, f *tabsFixture) []*tabs.Tab {
		t.Helper()
		var out []*tabs.Tab
		for _, name := range []string{"a.nc", "b.nc", "c.nc"} {
			f.files.AddFile("/"+name, "content of "+name)
			out = append(out, f.open(t, "/"+name))
		}
		return out
	}

	t.Run("activate swaps editor content and syncs the outgoing tab", func(t *testing.T) {
		f := newTabsFixture(t)
		opened := openThree(t, f)

		// The user typed into the active tab (c.nc) since the last sync.
		f.editor.Content = "edited c"

		f.manager.Activate(opened[0].ID)
		if f.editor.Content != "content of a.nc" {
			t.Errorf("editor content = %q, want a.nc's content", f.editor.Content)
		}

		synced, _ := f.manager.Get(opened[2].ID)
		if synced.Content != "edited c" {
			t.Errorf("outgoing tab content = %q, want %q", synced.Content, "edited c")
		}
	})

	t.Run("closing the active tab selects the next, then previous", func(t *testing.T) {
		f := newTabsFixture(t)
		opened := openThree(t, f)

		f.manager.Activate(opened[1].ID)
		f.manager.Close(opened[1].ID)

		active, ok := f.manager.ActiveTab()
		if !ok || active.ID != opened[2].ID {
			t.Errorf("active after close = %v, want next tab", active.ID)
		}

		f.manager.Close(opened[2].ID)
		active, ok = f.manager.ActiveTab()
		if !ok || active.ID != opened[0].ID {
			t.Errorf("active after close = %v, want previous tab", active.ID)
		}

		f.manager.Close(opened[0].ID)
		if _, ok := f.manager.ActiveTab(); ok {
			t.Error("active tab remains after closing all")
		}
		if f.editor.Content != "" {
			t.Errorf("editor content = %q, want empty", f.editor.Content)
		}
	})

	t.Run("closing keeps the tab's snapshot history", func(t *testing.T) {
		f := newTabsFixture(t)
		f.files.AddFile("/a.nc", "content")
		tab := f.open(t, "/a.nc")

		f.manager.Close(tab.ID)

		if snaps := f.store.ListForTab(tab.ID); len(snaps) != 1 {
			t.Errorf("snapshots after close = %d, want 1", len(snaps))
		}
	})
}

func TestManager_UpdateContent(t *testing.T) {
	t.Run("debounced edits collapse into one auto snapshot", func(t *testing.T) {
		f := newTabsFixture(t)
		f.files.AddFile("/a.nc", "G0 X0")
		tab := f.open(t, "/a.nc")

		f.manager.UpdateContent(tab.ID, "G0 X1")
		f.manager.UpdateContent(tab.ID, "G0 X2")
		f.manager.UpdateContent(tab.ID, "G0 X3")
		f.manager.Flush()

		snaps := f.store.ListForTab(tab.ID)
		if len(snaps) != 2 {
			t.Fatalf("snapshots = %d, want open + one auto", len(snaps))
		}
		last := snaps[len(snaps)-1]
		if last.Type != timeline.TypeAuto {
			t.Errorf("snapshot type = %s, want auto", last.Type)
		}
		if last.Content != "G0 X3" {
			t.Errorf("snapshot content = %q, want latest edit", last.Content)
		}

		got, _ := f.manager.Get(tab.ID)
		if !got.Modified {
			t.Error("tab not marked modified")
		}
	})

	t.Run("inactive tab edits do not schedule captures", func(t *testing.T) {
		f := newTabsFixture(t)
		f.files.AddFile("/a.nc", "a")
		f.files.AddFile("/b.nc", "b")
		first := f.open(t, "/a.nc")
		f.open(t, "/b.nc")

		f.manager.UpdateContent(first.ID, "a edited")
		f.manager.Flush()

		if snaps := f.store.ListForTab(first.ID); len(snaps) != 1 {
			t.Errorf("snapshots = %d, want only the open snapshot", len(snaps))
		}
	})
}

func TestManager_Save(t *testing.T) {
	t.Run("writes the file and records a save snapshot", func(t *testing.T) {
		f := newTabsFixture(t)
		f.files.AddFile("/a.nc", "G0 X0")
		tab := f.open(t, "/a.nc")

		f.editor.Content = "G0 X5"
		if err := f.manager.Save(tab.ID); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		if content, _ := f.files.File("/a.nc"); content != "G0 X5" {
			t.Errorf("saved file = %q, want %q", content, "G0 X5")
		}

		snaps := f.store.ListForTab(tab.ID)
		last := snaps[len(snaps)-1]
		if last.Type != timeline.TypeSave {
			t.Errorf("snapshot type = %s, want save", last.Type)
		}

		got, _ := f.manager.Get(tab.ID)
		if got.Modified {
			t.Error("tab still marked modified after save")
		}
	})

	t.Run("save-as keeps the tab id", func(t *testing.T) {
		f := newTabsFixture(t)
		f.files.AddFile("/a.nc", "G0 X0")
		tab := f.open(t, "/a.nc")

		if err := f.manager.SaveAs(tab.ID, "/renamed.nc"); err != nil {
			t.Fatalf("SaveAs() error = %v", err)
		}

		got, ok := f.manager.Get(tab.ID)
		if !ok {
			t.Fatal("tab gone after save-as")
		}
		if got.Name != "renamed.nc" || got.Path != "/renamed.nc" {
			t.Errorf("tab after save-as = %+v", got)
		}

		// All snapshots, before and after the rename, share the tab id.
		snaps := f.store.ListForTab(tab.ID)
		if len(snaps) != 2 {
			t.Errorf("snapshots = %d, want 2 under the same tab id", len(snaps))
		}
	})

	t.Run("unsaved tab prompts with the save dialog", func(t *testing.T) {
		f := newTabsFixture(t)
		tab := f.manager.NewTab()
		f.manager.UpdateContent(tab.ID, "fresh content")
		f.manager.Stop() // drop the pending auto capture

		f.files.SaveDialogAnswers = []string{"/picked.nc"}
		if err := f.manager.Save(tab.ID); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		if content, _ := f.files.File("/picked.nc"); content != "fresh content" {
			t.Errorf("saved file = %q", content)
		}
		got, _ := f.manager.Get(tab.ID)
		if got.Name != "picked.nc" {
			t.Errorf("tab name = %q, want picked.nc", got.Name)
		}
	})

	t.Run("cancelled save dialog is a no-op", func(t *testing.T) {
		f := newTabsFixture(t)
		tab := f.manager.NewTab()

		if err := f.manager.SaveAs(tab.ID, ""); err != nil {
			t.Fatalf("SaveAs() error = %v", err)
		}
		if snaps := f.store.ListForTab(tab.ID); len(snaps) != 0 {
			t.Errorf("snapshots = %d, want 0 after cancel", len(snaps))
		}
	})

	t.Run("unknown tab is an error", func(t *testing.T) {
		f := newTabsFixture(t)
		if err := f.manager.Save("missing"); err == nil {
			t.Error("Save() error = nil, want unknown tab error")
		}
	})
}
