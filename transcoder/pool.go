package transcoder

import (
	"bytes"
	"sync"
)

const (
	// Pool limits to prevent memory bloat
	poolMaxCap  = 64 << 10
	poolInitCap = 256
)

var bufPool = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, poolInitCap))
	},
}

func getBuf() *bytes.Buffer {
	return bufPool.Get().(*bytes.Buffer)
}

func putBuf(buf *bytes.Buffer) {
	if buf == nil || buf.Cap() > poolMaxCap {
		return // reject oversized
	}
	buf.Reset()
	bufPool.Put(buf)
}

// detach copies the buffer contents so the buffer can go back to the pool.
func detach(buf *bytes.Buffer) []byte {
	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out
}
