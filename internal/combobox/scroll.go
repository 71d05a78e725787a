package combobox

// window tracks which slice of the filtered list is visible in the panel.
type window struct {
	offset int
	size   int
}

func (w window) canScrollUp() bool {
	return w.offset > 0
}

func (w window) canScrollDown(total int) bool {
	return w.offset+w.size < total
}

// reveal moves the window the least distance needed to show idx.
func (w *window) reveal(idx int) {
	if idx < 0 || w.size <= 0 {
		return
	}
	if idx < w.offset {
		w.offset = idx
		return
	}
	if idx >= w.offset+w.size {
		w.offset = idx - w.size + 1
	}
}

// clamp keeps the offset within a list of total rows.
func (w *window) clamp(total int) {
	maxOffset := total - w.size
	if maxOffset < 0 {
		maxOffset = 0
	}
	if w.offset > maxOffset {
		w.offset = maxOffset
	}
	if w.offset < 0 {
		w.offset = 0
	}
}

// bounds returns the visible [start, end) range.
func (w window) bounds(total int) (int, int) {
	start := w.offset
	if start > total {
		start = total
	}
	end := start + w.size
	if end > total {
		end = total
	}
	return start, end
}
