package timeline

// DirEntry is one entry of a directory listing, for the file explorer panel.
type DirEntry struct {
	Name  string
	Path  string
	IsDir bool
}

// FileAccess is the seam to the host filesystem and its pick-a-file dialogs.
// Dialog methods return an empty path when the user cancels; cancellation is
// not an error.
type FileAccess interface {
	ReadFile(path string) (string, error)
	WriteFile(path string, content string) error

	// ListDir returns the entries of a directory, directories first, each
	// group sorted by name.
	ListDir(path string) ([]DirEntry, error)

	ShowSaveDialog(defaultName string) (string, error)
	ShowOpenDialog() (string, error)
	ShowOpenFolderDialog() (string, error)
}
