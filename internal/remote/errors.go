package remote

import "errors"

var (
	// ErrTransport indicates a remote call failed at the network or protocol
	// level. Transport errors are retryable on a later pass.
	ErrTransport = errors.New("remote transport error")

	// ErrDecode indicates a fetched or pushed payload could not be mapped to
	// the entity's remote shape.
	ErrDecode = errors.New("remote payload decode error")

	// ErrNotFound is returned by the conflict probe when the remote store
	// holds no record with the requested id.
	ErrNotFound = errors.New("remote record not found")

	// ErrConstraint indicates the remote store rejected a write because of an
	// integrity constraint (e.g. a book upserted before its author).
	ErrConstraint = errors.New("remote constraint violation")
)
