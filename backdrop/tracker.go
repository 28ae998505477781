package backdrop

// Tracker records the container size and the latest pointer position.
// Values always reflect the last observation; there is no smoothing.
type Tracker struct {
	width, height int
	pointer       Vec
}

// Resize records a new container size and reports whether it changed.
// Negative sizes are treated as zero (not laid out).
func (t *Tracker) Resize(width, height int) bool {
	width, height = max(width, 0), max(height, 0)
	if width == t.width && height == t.height {
		return false
	}
	t.width, t.height = width, height
	return true
}

// PointerMove records the pointer relative to the surface origin.
func (t *Tracker) PointerMove(x, y float64) {
	t.pointer = Vec{x, y}
}

func (t *Tracker) Size() (int, int) { return t.width, t.height }

func (t *Tracker) Pointer() Vec { return t.pointer }

// Ready is false until the container has a non-zero area.
func (t *Tracker) Ready() bool {
	return t.width > 0 && t.height > 0
}
