package testutil

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/jominki354/maulwurf/internal/timeline"
)

// StubFileAccess is an in-memory FileAccess with scripted dialog answers.
// Dialog answers are consumed in order; an exhausted queue reports
// cancellation (empty path).
type StubFileAccess struct {
	mu    sync.Mutex
	files map[string]string

	SaveDialogAnswers []string
	OpenDialogAnswers []string

	ReadErr  error
	WriteErr error
}

var _ timeline.FileAccess = (*StubFileAccess)(nil)

func NewStubFileAccess() *StubFileAccess {
	return &StubFileAccess{files: make(map[string]string)}
}

// AddFile seeds a file into the fake filesystem.
func (f *StubFileAccess) AddFile(path, content string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files[path] = content
}

// File returns the stored content for path.
func (f *StubFileAccess) File(path string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	content, ok := f.files[path]
	return content, ok
}

func (f *StubFileAccess) ReadFile(path string) (string, error) {
	if f.ReadErr != nil {
		return "", f.ReadErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	content, ok := f.files[path]
	if !ok {
		return "", fmt.Errorf("file not found: %s", path)
	}
	return content, nil
}

func (f *StubFileAccess) WriteFile(path string, content string) error {
	if f.WriteErr != nil {
		return f.WriteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files[path] = content
	return nil
}

func (f *StubFileAccess) ListDir(path string) ([]timeline.DirEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	prefix := strings.TrimSuffix(path, "/") + "/"
	var entries []timeline.DirEntry
	for p := range f.files {
		if !strings.HasPrefix(p, prefix) {
			continue
		}
		rest := strings.TrimPrefix(p, prefix)
		if strings.Contains(rest, "/") {
			continue
		}
		entries = append(entries, timeline.DirEntry{Name: rest, Path: p})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

func (f *StubFileAccess) ShowSaveDialog(defaultName string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.SaveDialogAnswers) == 0 {
		return "", nil
	}
	answer := f.SaveDialogAnswers[0]
	f.SaveDialogAnswers = f.SaveDialogAnswers[1:]
	return answer, nil
}

func (f *StubFileAccess) ShowOpenDialog() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.OpenDialogAnswers) == 0 {
		return "", nil
	}
	answer := f.OpenDialogAnswers[0]
	f.OpenDialogAnswers = f.OpenDialogAnswers[1:]
	return answer, nil
}

func (f *StubFileAccess) ShowOpenFolderDialog() (string, error) {
	return f.ShowOpenDialog()
}
