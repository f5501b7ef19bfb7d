package picker

// VisibleWindow returns the half-open range [start, end) of rows to
// draw: a window of at most height rows centered on the caret, clamped
// so it never starts before 0 or runs past the end.
func VisibleWindow(caret, total, height int) (int, int) {
	if total <= 0 || height <= 0 {
		return 0, 0
	}
	if total <= height {
		return 0, total
	}
	start := caret - height/2
	if start < 0 {
		start = 0
	}
	if start > total-height {
		start = total - height
	}
	return start, start + height
}
