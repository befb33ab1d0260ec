package service

import (
	"errors"
	"time"
)

// ErrNotReady is returned when no data has been loaded yet
var ErrNotReady = errors.New("no data loaded yet")

// syntheticSeed picks a generator seed, falling back to the clock
func syntheticSeed(seed uint64, now func() time.Time) uint64 {
	if seed != 0 {
		return seed
	}
	return uint64(now().UnixNano())
}
