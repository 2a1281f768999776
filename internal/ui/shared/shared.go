package shared

// Viewport holds scrolling state for list-like views.
type Viewport struct {
	Offset int
	Height int
}

// Follow adjusts the offset so the selected index stays visible.
func (vp *Viewport) Follow(selectedIndex, listLength int) {
	if listLength == 0 || vp.Height <= 0 {
		return
	}
	if selectedIndex < vp.Offset {
		vp.Offset = selectedIndex
	} else if selectedIndex >= vp.Offset+vp.Height {
		vp.Offset = selectedIndex - vp.Height + 1
	}
	vp.Offset = min(vp.Offset, max(listLength-vp.Height, 0))
	vp.Offset = max(vp.Offset, 0)
}

// Range returns the start and end indices of the visible window.
func (vp Viewport) Range(listLength int) (int, int) {
	if listLength == 0 {
		return 0, 0
	}
	if vp.Height <= 0 {
		return 0, listLength
	}
	return vp.Offset, min(vp.Offset+vp.Height, listLength)
}

// Truncate shortens a string to max runes with an ellipsis.
func Truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
