package stats

import "strings"

// Unframe strips the transport envelope in front of the JSON array.
// It returns the text from the first '[' to the end. ok is false when the
// payload has no bracket at all; that is a no-op, not an error.
func Unframe(payload string) (text string, ok bool) {
	i := strings.IndexByte(payload, '[')
	if i < 0 {
		return "", false
	}
	return payload[i:], true
}
