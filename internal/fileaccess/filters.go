package fileaccess

import (
	"path/filepath"
	"strings"
)

// FileFilter describes a named group of file extensions used when prompting
// for open and save targets.
type FileFilter struct {
	Name       string
	Extensions []string
}

// GCodeFilters lists the file type filters for CNC program files, most
// specific first. The final filter accepts any file.
func GCodeFilters() []FileFilter {
	return []FileFilter{
		{Name: "CNC Files", Extensions: []string{"nc", "ncl", "iso", "ncf"}},
		{Name: "G-code Files", Extensions: []string{"gcode", "ngc", "tap"}},
		{Name: "All Files", Extensions: []string{"*"}},
	}
}

// MatchesFilter reports whether the file name's extension matches the filter.
// A filter containing "*" matches everything.
func MatchesFilter(name string, filter FileFilter) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	for _, e := range filter.Extensions {
		if e == "*" || e == ext {
			return true
		}
	}
	return false
}

// IsGCodeFile reports whether the file name carries a recognized CNC or
// G-code extension.
func IsGCodeFile(name string) bool {
	filters := GCodeFilters()
	for _, f := range filters[:len(filters)-1] {
		if MatchesFilter(name, f) {
			return true
		}
	}
	return false
}

// filterHint renders the filters' extensions as a glob list for dialog
// prompts, e.g. "*.nc *.gcode". The catch-all entry is left out.
func filterHint(filters []FileFilter) string {
	var globs []string
	for _, f := range filters {
		for _, e := range f.Extensions {
			if e != "*" {
				globs = append(globs, "*."+e)
			}
		}
	}
	return strings.Join(globs, " ")
}
