package galleryclient

// Lightbox tracks the open/closed state and cursor of a fullscreen
// media viewer over one folder's items. Navigation wraps at both ends.
type Lightbox struct {
	items []Media
	index int
	open  bool
}

// NewLightbox builds a closed lightbox over the given items.
func NewLightbox(items []Media) *Lightbox {
	return &Lightbox{items: items}
}

// Open shows the viewer at index i. Out-of-range indexes are clamped.
func (l *Lightbox) Open(i int) {
	if len(l.items) == 0 {
		return
	}
	if i < 0 {
		i = 0
	}
	if i >= len(l.items) {
		i = len(l.items) - 1
	}
	l.index = i
	l.open = true
}

// Close hides the viewer. The cursor position is kept.
func (l *Lightbox) Close() {
	l.open = false
}

// IsOpen reports whether the viewer is showing.
func (l *Lightbox) IsOpen() bool {
	return l.open
}

// Current returns the item under the cursor. ok is false when the
// viewer is closed or empty.
func (l *Lightbox) Current() (Media, bool) {
	if !l.open || len(l.items) == 0 {
		return Media{}, false
	}
	return l.items[l.index], true
}

// Next advances the cursor, wrapping past the last item.
func (l *Lightbox) Next() {
	if !l.open || len(l.items) == 0 {
		return
	}
	l.index = (l.index + 1) % len(l.items)
}

// Prev moves the cursor back, wrapping before the first item.
func (l *Lightbox) Prev() {
	if !l.open || len(l.items) == 0 {
		return
	}
	l.index = (l.index - 1 + len(l.items)) % len(l.items)
}

// HandleKey maps keyboard events to navigation. Unrecognized keys are
// ignored. Returns true when the event was consumed.
func (l *Lightbox) HandleKey(key string) bool {
	if !l.open {
		return false
	}
	switch key {
	case "ArrowRight":
		l.Next()
	case "ArrowLeft":
		l.Prev()
	case "Escape":
		l.Close()
	default:
		return false
	}
	return true
}
