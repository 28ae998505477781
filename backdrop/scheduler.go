package backdrop

// FrameHandle identifies a pending frame callback. Zero is never issued.
type FrameHandle uint64

type FrameFunc func()

// Scheduler requests a callback on the next display frame.
type Scheduler interface {
	RequestFrame(fn FrameFunc) FrameHandle
	CancelFrame(h FrameHandle)
}

// FrameQueue is a Scheduler driven by its owner calling Flush once per
// display frame. It is not safe for concurrent use; every front-end calls
// it from its render goroutine.
type FrameQueue struct {
	next    FrameHandle
	pending map[FrameHandle]FrameFunc
	order   []FrameHandle
}

func NewFrameQueue() *FrameQueue {
	return &FrameQueue{pending: make(map[FrameHandle]FrameFunc)}
}

func (q *FrameQueue) RequestFrame(fn FrameFunc) FrameHandle {
	q.next++
	q.pending[q.next] = fn
	q.order = append(q.order, q.next)
	return q.next
}

// CancelFrame drops a pending callback. Unknown or already-run handles are ignored.
func (q *FrameQueue) CancelFrame(h FrameHandle) {
	delete(q.pending, h)
}

// Pending returns the number of callbacks waiting for the next frame
func (q *FrameQueue) Pending() int {
	return len(q.pending)
}

// Flush runs the callbacks pending when it was called, in request order.
// Callbacks requested while flushing wait for the next Flush.
func (q *FrameQueue) Flush() int {
	batch := q.order
	q.order = nil
	ran := 0
	for _, h := range batch {
		fn, ok := q.pending[h]
		if !ok {
			continue
		}
		delete(q.pending, h)
		fn()
		ran++
	}
	return ran
}
