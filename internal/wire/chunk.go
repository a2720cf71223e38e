// Package wire implements the startup-notification message format.
package wire

import "bytes"

// ChunkSize is the payload width of one client-message event.
const ChunkSize = 20

// Kind tags a chunk's position in its message.
type Kind int

const (
	// KindBegin marks the first chunk of a message.
	KindBegin Kind = iota

	// KindContinuation marks every chunk after the first.
	KindContinuation
)

// Chunk is one fixed-size window into a serialized message. The last
// chunk of a message is zero-padded on the right.
type Chunk struct {
	Kind Kind
	Data [ChunkSize]byte
}

// Split cuts a message into ordered ChunkSize windows. The first chunk is
// KindBegin, the rest KindContinuation; an empty message yields no chunks.
func Split(msg []byte) []Chunk {
	if len(msg) == 0 {
		return nil
	}

	n := (len(msg) + ChunkSize - 1) / ChunkSize
	chunks := make([]Chunk, 0, n)

	kind := KindBegin
	for off := 0; off < len(msg); off += ChunkSize {
		var c Chunk
		c.Kind = kind
		copy(c.Data[:], msg[off:])
		chunks = append(chunks, c)
		kind = KindContinuation
	}

	return chunks
}

// Join concatenates chunk payloads and cuts the result at the message's
// null terminator. The second return is false while no terminator has
// been seen, meaning more chunks are expected.
func Join(payloads [][ChunkSize]byte) ([]byte, bool) {
	buf := make([]byte, 0, len(payloads)*ChunkSize)
	for i := range payloads {
		buf = append(buf, payloads[i][:]...)
	}

	i := bytes.IndexByte(buf, 0)
	if i < 0 {
		return nil, false
	}
	return buf[:i+1], true
}
