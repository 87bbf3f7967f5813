// Copyright 2026 The yamlcore Project Contributors
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"fmt"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	assumedLineLength = 512
	// ringBufferSize is how many most-recent bytes are retained for
	// diagnostics/snippet rendering: large enough that read-ahead doesn't
	// evict all of it.
	ringBufferSize = 6 * assumedLineLength
	// maxReadAhead bounds how far GetRecent is allowed to read beyond what
	// the consumer has already consumed.
	maxReadAhead = 2 * assumedLineLength
)

// byteRing is a fixed-capacity circular byte buffer.
type byteRing struct {
	data  []byte
	head  int
	count int
}

func newByteRing(capacity int) *byteRing {
	return &byteRing{data: make([]byte, capacity)}
}

func (r *byteRing) len() int { return r.count }

func (r *byteRing) pushBack(b byte) (evicted byte, didEvict bool) {
	n := len(r.data)
	tail := (r.head + r.count) % n
	r.data[tail] = b
	if r.count == n {
		evicted = r.data[r.head]
		r.head = (r.head + 1) % n
		return evicted, true
	}
	r.count++
	return 0, false
}

func (r *byteRing) popFront() (byte, bool) {
	if r.count == 0 {
		return 0, false
	}
	b := r.data[r.head]
	r.head = (r.head + 1) % len(r.data)
	r.count--
	return b, true
}

func (r *byteRing) toSlice() []byte {
	out := make([]byte, r.count)
	for i := 0; i < r.count; i++ {
		out[i] = r.data[(r.head+i)%len(r.data)]
	}
	return out
}

// RecentSnapshot is a point-in-time view of the most recently retained
// input bytes, used to render error snippets without keeping the whole
// document in memory.
type RecentSnapshot struct {
	StartOffset uint64
	EndOffset   uint64
	StartLine   int
	Bytes       []byte
}

// RingReader wraps an io.Reader, retaining the last ringBufferSize bytes
// for diagnostics and allowing bounded read-ahead (only via GetRecent) so
// error snippets can see slightly past what the consumer has read so far
// without losing the ability to resume the exact same byte stream (§4.13).
type RingReader struct {
	inner io.Reader

	ring          *byteRing
	ringStartOff  uint64
	ringStartLine int

	stash *byteRing

	returnedTotal uint64
}

func NewRingReader(inner io.Reader) *RingReader {
	return &RingReader{
		inner:         inner,
		ring:          newByteRing(ringBufferSize),
		ringStartLine: 1,
		stash:         newByteRing(maxReadAhead),
	}
}

func (r *RingReader) Offset() uint64    { return r.returnedTotal }
func (r *RingReader) ReadAheadLen() int { return r.stash.len() }

func (r *RingReader) nextInnerOffset() uint64 {
	return r.returnedTotal + uint64(r.stash.len())
}

func (r *RingReader) pushRingBytes(b []byte, absStart uint64) {
	off := absStart
	for _, c := range b {
		if r.ring.len() == 0 {
			r.ringStartOff = off
		}
		evicted, didEvict := r.ring.pushBack(c)
		if didEvict {
			r.ringStartOff++
			if evicted == '\n' {
				r.ringStartLine++
			}
		}
		off++
	}
}

// Read implements io.Reader, serving any stashed read-ahead bytes first so
// the stream the consumer sees is unaffected by prior GetRecent calls.
func (r *RingReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if r.stash.len() > 0 {
		n := 0
		for n < len(p) {
			b, ok := r.stash.popFront()
			if !ok {
				break
			}
			p[n] = b
			n++
		}
		r.returnedTotal += uint64(n)
		return n, nil
	}
	n, err := r.inner.Read(p)
	if n > 0 {
		r.pushRingBytes(p[:n], r.returnedTotal)
		r.returnedTotal += uint64(n)
	}
	return n, err
}

func (r *RingReader) readAheadAtMost(max int) (int, error) {
	if max <= 0 {
		return 0, nil
	}
	scratch := make([]byte, 8192)
	total := 0
	remaining := max
	for remaining > 0 {
		want := remaining
		if want > len(scratch) {
			want = len(scratch)
		}
		n, err := r.inner.Read(scratch[:want])
		if n > 0 {
			absStart := r.nextInnerOffset()
			chunk := scratch[:n]
			for _, b := range chunk {
				r.stash.pushBack(b)
			}
			r.pushRingBytes(chunk, absStart)
			total += n
			remaining -= n
		}
		if err != nil {
			if err == io.EOF {
				return total, nil
			}
			return total, err
		}
		if n == 0 {
			break
		}
	}
	return total, nil
}

// GetRecent reads ahead (bounded by maxReadAhead total outstanding) and
// returns a snapshot of the retained ring, trimmed to UTF-8 boundaries.
// This is the only method that reads ahead of the consumer.
func (r *RingReader) GetRecent() (RecentSnapshot, error) {
	alreadyAhead := r.stash.len()
	canReadMore := maxReadAhead - alreadyAhead
	if canReadMore > 0 {
		if _, err := r.readAheadAtMost(canReadMore); err != nil {
			return RecentSnapshot{}, err
		}
	}

	startOff, startLine, data := r.ringSnapshot()
	if len(data) > 0 {
		startOff, startLine, data = trimToUTF8BoundariesWithLine(data, startOff, startLine)
	}
	return RecentSnapshot{
		StartOffset: startOff,
		EndOffset:   startOff + uint64(len(data)),
		StartLine:   startLine,
		Bytes:       data,
	}, nil
}

func (r *RingReader) ringSnapshot() (uint64, int, []byte) {
	if r.ring.len() == 0 {
		return r.returnedTotal, r.ringStartLine, nil
	}
	return r.ringStartOff, r.ringStartLine, r.ring.toSlice()
}

func isUTF8Continuation(b byte) bool { return b&0b1100_0000 == 0b1000_0000 }

func utf8ExpectedLen(lead byte) (int, bool) {
	switch {
	case lead <= 0x7F:
		return 1, true
	case lead >= 0xC2 && lead <= 0xDF:
		return 2, true
	case lead >= 0xE0 && lead <= 0xEF:
		return 3, true
	case lead >= 0xF0 && lead <= 0xF4:
		return 4, true
	default:
		return 0, false
	}
}

func trimToUTF8BoundariesWithLine(data []byte, startOff uint64, startLine int) (uint64, int, []byte) {
	if len(data) == 0 {
		return startOff, startLine, data
	}
	cut := 0
	for cut < len(data) && isUTF8Continuation(data[cut]) {
		if data[cut] == '\n' {
			startLine++
		}
		cut++
	}
	if cut > 0 {
		data = data[cut:]
		startOff += uint64(cut)
	}
	data = trimIncompleteUTF8Tail(data)
	return startOff, startLine, data
}

func trimIncompleteUTF8Tail(data []byte) []byte {
	for {
		if len(data) == 0 {
			return data
		}
		cont := 0
		i := len(data)
		for i > 0 && cont < 3 {
			if isUTF8Continuation(data[i-1]) {
				cont++
				i--
			} else {
				break
			}
		}
		if i == 0 {
			return nil
		}
		leadIdx := i - 1
		expected, ok := utf8ExpectedLen(data[leadIdx])
		if !ok {
			return data
		}
		actual := len(data) - leadIdx
		if actual < expected {
			data = data[:leadIdx]
			continue
		}
		return data
	}
}

// InputAdapter sniffs a BOM (or falls back to UTF-8) and exposes a
// decoded UTF-8 byte stream capped at a configured byte budget, backed by
// a RingReader so diagnostics can render a snippet around any error
// (§4.13).
type InputAdapter struct {
	ring     *RingReader
	decoded  io.Reader
	maxBytes int
	total    int
	capped   bool
}

// NewInputAdapter wraps raw with BOM-aware Unicode decoding. maxBytes <= 0
// means unbounded (still capped by the Budget Monitor's own reader-byte
// cap at a higher layer).
func NewInputAdapter(raw io.Reader, maxBytes int) *InputAdapter {
	ring := NewRingReader(raw)
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	return &InputAdapter{
		ring:     ring,
		decoded:  transform.NewReader(ring, decoder),
		maxBytes: maxBytes,
	}
}

// Read implements io.Reader over the decoded, byte-capped stream.
func (a *InputAdapter) Read(p []byte) (int, error) {
	if a.capped {
		return 0, errIO(Unknown, errReaderLimitExceeded(a.maxBytes))
	}
	n, err := a.decoded.Read(p)
	if n > 0 {
		a.total += n
		if a.maxBytes > 0 && a.total > a.maxBytes {
			a.capped = true
			return n, errIO(Unknown, errReaderLimitExceeded(a.maxBytes))
		}
	}
	return n, err
}

// GetRecent delegates to the underlying RingReader for snippet rendering.
// Offsets/lines describe the raw (pre-decode) byte stream.
func (a *InputAdapter) GetRecent() (RecentSnapshot, error) {
	return a.ring.GetRecent()
}

type readerLimitError struct {
	limit int
}

func (e *readerLimitError) Error() string {
	return fmt.Sprintf("input size limit of %d bytes exceeded", e.limit)
}

func errReaderLimitExceeded(limit int) error {
	return &readerLimitError{limit: limit}
}
