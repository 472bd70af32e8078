package sync

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRemoteWins(t *testing.T) {
	base := time.Date(2026, time.April, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		local  time.Time
		remote time.Time
		want   bool
	}{
		{name: "remote newer", local: base, remote: base.Add(time.Second), want: true},
		{name: "local newer", local: base.Add(time.Second), remote: base, want: false},
		{name: "equal timestamps keep local", local: base, remote: base, want: false},
		{name: "zero remote", local: base, remote: time.Time{}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RemoteWins(tt.local, tt.remote))
		})
	}
}
