package executor

import (
	"bytes"
	"sync"

	"github.com/RishabhK9/cloudist/internal/model"
)

// captureWriter buffers one output stream up to a byte cap. On reaching the
// cap the truncation marker is appended exactly once and every later chunk
// is dropped silently. Writes are serialized per stream; the subprocess's
// two streams each get their own writer.
type captureWriter struct {
	mu        sync.Mutex
	buf       bytes.Buffer
	limit     int64
	truncated bool
	onChunk   func(string)
}

func newCaptureWriter(limit int64, onChunk func(string)) *captureWriter {
	return &captureWriter{limit: limit, onChunk: onChunk}
}

func (w *captureWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	// Callbacks see all data as it arrives, including what the cap drops.
	if w.onChunk != nil && len(p) > 0 {
		w.onChunk(string(p))
	}

	if w.truncated {
		return len(p), nil
	}

	remaining := w.limit - int64(w.buf.Len())
	if int64(len(p)) <= remaining {
		w.buf.Write(p)
		return len(p), nil
	}

	if remaining > 0 {
		w.buf.Write(p[:remaining])
	}
	w.buf.WriteString(model.TruncationMarker)
	w.truncated = true
	return len(p), nil
}

func (w *captureWriter) String() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.String()
}

func (w *captureWriter) Truncated() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.truncated
}
