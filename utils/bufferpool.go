package utils

import (
	"math/bits"
	"sync"
)

const (
	minClassShift = 6  // 64 bytes
	maxClassShift = 14 // 16 KiB, the largest packed field plus headers
)

// BufferSizeClass lists the capacities the pool hands out.
var BufferSizeClass = func() (c [maxClassShift - minClassShift + 1]int) {
	for i := range c {
		c[i] = 1 << (minClassShift + i)
	}
	return c
}()

// SizeIndex returns the class that fits n bytes, or -1 when n is not pooled.
func SizeIndex(n int) int {
	if n <= 0 || n > BufferSizeClass[len(BufferSizeClass)-1] {
		return -1
	}
	if n <= 1<<minClassShift {
		return 0
	}
	return bits.Len(uint(n-1)) - minClassShift
}

// BufferPool is a set of sync.Pools keyed by power-of-two capacity. Scratch
// buffers for one-shot packing come from here.
type BufferPool struct {
	pools [len(BufferSizeClass)]sync.Pool
}

func NewBufferPool() *BufferPool {
	var bp BufferPool
	for i, sz := range BufferSizeClass {
		size := sz
		bp.pools[i].New = func() any {
			b := make([]byte, size)
			return &b
		}
	}
	return &bp
}

// Acquire returns a buffer of length n. Sizes beyond the largest class are
// allocated directly and ignored by Release.
func (bp *BufferPool) Acquire(n int) []byte {
	idx := SizeIndex(n)
	if idx < 0 {
		return make([]byte, n)
	}
	return (*bp.pools[idx].Get().(*[]byte))[:n]
}

func (bp *BufferPool) AcquireZeroed(n int) []byte {
	buf := bp.Acquire(n)
	clear(buf)
	return buf
}

// Release returns buf to its pool if its capacity is exactly a class size.
func (bp *BufferPool) Release(buf []byte) {
	c := cap(buf)
	idx := SizeIndex(c)
	if idx < 0 || BufferSizeClass[idx] != c {
		return
	}
	buf = buf[:c]
	bp.pools[idx].Put(&buf)
}
