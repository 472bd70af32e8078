package sync

import "sync/atomic"

// Coordinator holds the two single-flight direction guards. A guard is a
// try-acquire: a pass that cannot take it does not queue, it walks away.
type Coordinator struct {
	upload   atomic.Bool
	download atomic.Bool
}

// BeginUpload tries to take the upload guard. When ok, release must be called
// exactly once at the end of the pass.
func (c *Coordinator) BeginUpload() (release func(), ok bool) {
	return begin(&c.upload)
}

// BeginDownload tries to take the download guard.
func (c *Coordinator) BeginDownload() (release func(), ok bool) {
	return begin(&c.download)
}

// Busy reports whether any pass currently holds a guard. The change tracker
// uses it to tell apart user edits from the engine's own writes.
func (c *Coordinator) Busy() bool {
	return c.upload.Load() || c.download.Load()
}

func begin(guard *atomic.Bool) (func(), bool) {
	if !guard.CompareAndSwap(false, true) {
		return nil, false
	}
	return func() { guard.Store(false) }, true
}
