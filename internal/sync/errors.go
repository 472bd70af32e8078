package sync

import "errors"

var (
	// ErrBusy is returned by explicitly requested passes when the matching
	// direction guard is already held by another pass.
	ErrBusy = errors.New("sync pass already in flight")

	// ErrNoStore is returned by engine operations invoked before the engine
	// has been started and bound to its stores.
	ErrNoStore = errors.New("sync engine not bound to a store")
)
