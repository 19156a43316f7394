package fileaccess

import "testing"

func TestIsGCodeFile(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{name: "part.nc", want: true},
		{name: "part.NCL", want: true},
		{name: "part.iso", want: true},
		{name: "part.ncf", want: true},
		{name: "part.gcode", want: true},
		{name: "part.ngc", want: true},
		{name: "part.tap", want: true},
		{name: "notes.txt", want: false},
		{name: "noextension", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsGCodeFile(tt.name); got != tt.want {
				t.Errorf("IsGCodeFile(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestMatchesFilter(t *testing.T) {
	filters := GCodeFilters()
	all := filters[len(filters)-1]

	if !MatchesFilter("anything.xyz", all) {
		t.Error("all-files filter rejected a file")
	}
	if MatchesFilter("notes.txt", filters[0]) {
		t.Error("CNC filter accepted a .txt file")
	}
}

func TestFilterHint(t *testing.T) {
	got := filterHint(GCodeFilters())
	want := "*.nc *.ncl *.iso *.ncf *.gcode *.ngc *.tap"
	if got != want {
		t.Errorf("filterHint() = %q, want %q", got, want)
	}
}
