//go:build !tinygo

package pitchfork

import (
	sync "github.com/sasha-s/go-deadlock"
)

// Locks wrap go-deadlock on the big irons to catch lock ordering
// mistakes in development.  TinyGo builds fall back to plain sync.

type mutex struct {
	sync.Mutex
}

type rwMutex struct {
	sync.RWMutex
}
