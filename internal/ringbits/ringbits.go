package ringbits

import (
	"errors"
	"fmt"
	"math/bits"
)

// ErrInvalidSize is returned when the requested byte size is not a positive
// power of two.
var ErrInvalidSize = errors.New("ring size must be a positive power of two")

// Ring is a cyclic bit array of composite flags for odd integers.
type Ring struct {
	buf  []byte
	mask uint64 // len(buf) - 1
}

// New allocates a cleared ring of the given size in bytes.
func New(size int) (*Ring, error) {
	if size <= 0 || size&(size-1) != 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	return &Ring{
		buf:  make([]byte, size),
		mask: uint64(size - 1),
	}, nil
}

// Init clears all flags.
func (r *Ring) Init() {
	clear(r.buf)
}

// Get reports whether odd position i is flagged composite.
func (r *Ring) Get(i uint64) bool {
	return r.buf[(i>>4)&r.mask]&(1<<((i>>1)&7)) != 0
}

// Set flags odd position i as composite.
func (r *Ring) Set(i uint64) {
	r.buf[(i>>4)&r.mask] |= 1 << ((i >> 1) & 7)
}

// Clear removes the flag of odd position i.
func (r *Ring) Clear(i uint64) {
	r.buf[(i>>4)&r.mask] &^= 1 << ((i >> 1) & 7)
}

// Bytes returns the size of the ring in bytes.
func (r *Ring) Bytes() int {
	return len(r.buf)
}

// Width returns the number of consecutive integers the ring covers.
func (r *Ring) Width() uint64 {
	return uint64(len(r.buf)) << 4
}

// Count returns the number of flags currently set.
func (r *Ring) Count() int {
	n := 0
	for _, b := range r.buf {
		n += bits.OnesCount8(b)
	}
	return n
}
