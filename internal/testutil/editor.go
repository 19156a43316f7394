package testutil

import (
	"github.com/jominki354/maulwurf/internal/timeline"
)

// StubEditor records every state pushed into it so tests can assert what a
// restore applied. Highlight calls are counted.
type StubEditor struct {
	Content    string
	Cursor     *timeline.CursorPosition
	Scroll     *timeline.ScrollPosition
	Selections []timeline.SelectionRange

	SetContentCalls int
	HighlightCalls  int
}

var _ timeline.Editor = (*StubEditor)(nil)

func NewStubEditor() *StubEditor {
	return &StubEditor{}
}

func (e *StubEditor) GetContent() string { return e.Content }

func (e *StubEditor) GetCursorPosition() *timeline.CursorPosition { return e.Cursor }

func (e *StubEditor) GetScrollPosition() *timeline.ScrollPosition { return e.Scroll }

func (e *StubEditor) GetSelections() []timeline.SelectionRange { return e.Selections }

func (e *StubEditor) SetContent(text string) {
	e.Content = text
	e.SetContentCalls++
}

func (e *StubEditor) SetCursorPosition(pos timeline.CursorPosition) {
	e.Cursor = &pos
}

func (e *StubEditor) SetScrollPosition(pos timeline.ScrollPosition) {
	e.Scroll = &pos
}

func (e *StubEditor) SetSelections(ranges []timeline.SelectionRange) {
	e.Selections = ranges
}

func (e *StubEditor) HighlightDelta(oldText, newText string) {
	e.HighlightCalls++
}
