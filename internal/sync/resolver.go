package sync

import "time"

// RemoteWins decides a write conflict by last-write-wins: the remote version
// prevails only when its timestamp is strictly newer than the local one.
// Equal timestamps keep the local edit, so a freshly uploaded record does not
// bounce back on the next pass.
func RemoteWins(local, remote time.Time) bool {
	return remote.After(local)
}
