package fileaccess

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/term"

	"github.com/jominki354/maulwurf/internal/timeline"
)

// OSFileAccess is the real filesystem implementation of FileAccess.
// Dialog prompts are answered interactively on the terminal; when stdin is
// not a terminal the dialogs report cancellation instead of blocking.
type OSFileAccess struct {
	in  io.Reader
	out io.Writer
}

// NewOSFileAccess creates a file access layer backed by the real filesystem
// with dialog prompts on stdin/stdout.
func NewOSFileAccess() *OSFileAccess {
	return &OSFileAccess{in: os.Stdin, out: os.Stdout}
}

// ReadFile reads the contents of the file at path.
func (f *OSFileAccess) ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading file: %w", err)
	}
	return string(data), nil
}

// WriteFile writes content to path atomically: the content is written to a
// temporary file in the same directory, then renamed into place.
func (f *OSFileAccess) WriteFile(path string, content string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	success := false
	defer func() {
		if !success {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err := io.WriteString(tmp, content); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}

	success = true
	return nil
}

// ListDir returns the entries of the directory at path, directories first,
// each group sorted by name.
func (f *OSFileAccess) ListDir(path string) ([]timeline.DirEntry, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("reading directory: %w", err)
	}

	var out []timeline.DirEntry
	for _, entry := range entries {
		out = append(out, timeline.DirEntry{
			Name:  entry.Name(),
			Path:  filepath.Join(path, entry.Name()),
			IsDir: entry.IsDir(),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsDir != out[j].IsDir {
			return out[i].IsDir
		}
		return out[i].Name < out[j].Name
	})

	return out, nil
}

// ShowSaveDialog prompts for a destination path, suggesting defaultName.
// Returns an empty path (and nil error) when the prompt is cancelled or
// stdin is not interactive.
func (f *OSFileAccess) ShowSaveDialog(defaultName string) (string, error) {
	line, err := f.prompt(fmt.Sprintf("Save as [%s]: ", defaultName))
	if err != nil {
		return "", err
	}
	if line == "" && defaultName != "" {
		return defaultName, nil
	}
	return line, nil
}

// ShowOpenDialog prompts for a file path to open, listing the recognized
// G-code extensions. Returns an empty path when cancelled.
func (f *OSFileAccess) ShowOpenDialog() (string, error) {
	return f.prompt(fmt.Sprintf("Open file (%s): ", filterHint(GCodeFilters())))
}

// ShowOpenFolderDialog prompts for a directory path to open. Returns an
// empty path when cancelled.
func (f *OSFileAccess) ShowOpenFolderDialog() (string, error) {
	return f.prompt("Open folder: ")
}

// prompt writes the given message and reads one line of input. A non-terminal
// stdin or an immediate EOF is treated as cancellation, not an error.
func (f *OSFileAccess) prompt(message string) (string, error) {
	if stdin, ok := f.in.(*os.File); ok && !term.IsTerminal(int(stdin.Fd())) {
		return "", nil
	}

	if _, err := fmt.Fprint(f.out, message); err != nil {
		return "", fmt.Errorf("writing prompt: %w", err)
	}

	reader := bufio.NewReader(f.in)
	line, err := reader.ReadString('\n')
	if err != nil {
		if err == io.EOF {
			return strings.TrimSpace(line), nil
		}
		return "", fmt.Errorf("reading input: %w", err)
	}

	return strings.TrimSpace(line), nil
}

// Compile-time check that OSFileAccess implements timeline.FileAccess
var _ timeline.FileAccess = (*OSFileAccess)(nil)
