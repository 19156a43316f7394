package timeline

import "strings"

// CompareContents renders a line-level diff between two texts: removed
// lines are prefixed with "- ", added lines with "+ ", and a changed line
// appears as a remove/add pair. This is a display aid only; restore always
// uses the stored full content.
func CompareContents(a, b string) string {
	linesA := strings.Split(a, "\n")
	linesB := strings.Split(b, "\n")

	max := len(linesA)
	if len(linesB) > max {
		max = len(linesB)
	}

	var out []string
	for i := 0; i < max; i++ {
		switch {
		case i >= len(linesA):
			out = append(out, "+ "+linesB[i])
		case i >= len(linesB):
			out = append(out, "- "+linesA[i])
		case linesA[i] != linesB[i]:
			out = append(out, "- "+linesA[i], "+ "+linesB[i])
		}
	}
	return strings.Join(out, "\n")
}
