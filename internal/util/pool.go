package util

import "sync"

// BufferPool hands out fixed-size byte buffers. Buffers are cleared before
// they go back, since they may have held payload bytes.
type BufferPool struct {
	pool sync.Pool
	size int
}

// NewBufferPool creates a new buffer pool with the specified buffer size.
func NewBufferPool(size int) *BufferPool {
	return &BufferPool{
		size: size,
		pool: sync.Pool{
			New: func() any {
				b := make([]byte, size)
				return &b
			},
		},
	}
}

// Get retrieves a buffer from the pool.
func (p *BufferPool) Get() []byte {
	return *p.pool.Get().(*[]byte)
}

// Put clears b and returns it to the pool. Buffers of the wrong size are
// dropped.
func (p *BufferPool) Put(b []byte) {
	if len(b) != p.size {
		return
	}
	clear(b)
	p.pool.Put(&b)
}

// MiBPool provides the 1 MiB read buffers used when fingerprinting outputs.
var MiBPool = NewBufferPool(MiB)

// GetMiBBuffer gets a 1 MiB buffer from the default pool.
func GetMiBBuffer() []byte {
	return MiBPool.Get()
}

// PutMiBBuffer returns a 1 MiB buffer to the default pool.
func PutMiBBuffer(b []byte) {
	MiBPool.Put(b)
}
