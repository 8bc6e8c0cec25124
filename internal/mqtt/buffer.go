package mqtt

// bufferedMsg is a serialized message waiting for the broker.
type bufferedMsg struct {
	topic    string
	payload  []byte
	qos      byte
	retained bool
}

// ringBuffer keeps the newest messages published while disconnected.
// Not safe for concurrent use; the caller synchronizes.
type ringBuffer struct {
	buf     []bufferedMsg
	head    int // next write position
	count   int
	dropped int // overwritten since last drain
}

func newRingBuffer(capacity int) *ringBuffer {
	return &ringBuffer{buf: make([]bufferedMsg, capacity)}
}

// push stores msg, overwriting the oldest message when full.
func (r *ringBuffer) push(msg bufferedMsg) {
	if len(r.buf) == 0 {
		r.dropped++
		return
	}
	r.buf[r.head] = msg
	r.head = (r.head + 1) % len(r.buf)
	if r.count == len(r.buf) {
		r.dropped++
		return
	}
	r.count++
}

// drainAll returns buffered messages oldest first and empties the buffer.
func (r *ringBuffer) drainAll() (msgs []bufferedMsg, dropped int) {
	dropped = r.dropped
	if r.count > 0 {
		msgs = make([]bufferedMsg, r.count)
		start := (r.head - r.count + len(r.buf)) % len(r.buf)
		for i := range msgs {
			msgs[i] = r.buf[(start+i)%len(r.buf)]
		}
	}
	r.head, r.count, r.dropped = 0, 0, 0
	return msgs, dropped
}

func (r *ringBuffer) len() int {
	return r.count
}
