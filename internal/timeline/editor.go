package timeline

// Editor is the seam to the text-editing widget. The core only reads the
// current view state for captures and pushes a restored state back in;
// everything else about the widget (highlighting, search, rendering) stays
// on the other side of this interface.
type Editor interface {
	GetContent() string
	GetCursorPosition() *CursorPosition
	GetScrollPosition() *ScrollPosition
	GetSelections() []SelectionRange

	SetContent(text string)
	SetCursorPosition(pos CursorPosition)
	SetScrollPosition(pos ScrollPosition)
	SetSelections(ranges []SelectionRange)

	// HighlightDelta lets the widget flash the changed region after a
	// restore. Cosmetic only; implementations may ignore it.
	HighlightDelta(oldText, newText string)
}
