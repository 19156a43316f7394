package editor

import (
	"sync"

	"github.com/jominki354/maulwurf/internal/timeline"
)

// Buffer is an in-memory Editor implementation. It holds the text and view
// state for the active tab and is swapped wholesale when the user switches
// tabs. Highlighting has no effect here; a graphical frontend would replace
// this with a widget adapter.
type Buffer struct {
	mu         sync.Mutex
	content    string
	cursor     *timeline.CursorPosition
	scroll     *timeline.ScrollPosition
	selections []timeline.SelectionRange
}

// NewBuffer creates an empty Buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

func (b *Buffer) GetContent() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.content
}

func (b *Buffer) GetCursorPosition() *timeline.CursorPosition {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cursor == nil {
		return nil
	}
	c := *b.cursor
	return &c
}

func (b *Buffer) GetScrollPosition() *timeline.ScrollPosition {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.scroll == nil {
		return nil
	}
	s := *b.scroll
	return &s
}

func (b *Buffer) GetSelections() []timeline.SelectionRange {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.selections) == 0 {
		return nil
	}
	out := make([]timeline.SelectionRange, len(b.selections))
	copy(out, b.selections)
	return out
}

func (b *Buffer) SetContent(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.content = text
}

func (b *Buffer) SetCursorPosition(pos timeline.CursorPosition) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursor = &pos
}

func (b *Buffer) SetScrollPosition(pos timeline.ScrollPosition) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.scroll = &pos
}

func (b *Buffer) SetSelections(ranges []timeline.SelectionRange) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.selections = make([]timeline.SelectionRange, len(ranges))
	copy(b.selections, ranges)
}

// HighlightDelta is a no-op for the in-memory buffer.
func (b *Buffer) HighlightDelta(oldText, newText string) {}

// Reset clears the buffer back to its initial empty state.
func (b *Buffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.content = ""
	b.cursor = nil
	b.scroll = nil
	b.selections = nil
}

// Compile-time check that Buffer implements timeline.Editor
var _ timeline.Editor = (*Buffer)(nil)
