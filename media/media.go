// Package media adapts callback-based media APIs to rxkit streams.
//
// The interfaces mirror the platform calls that report through completion
// callbacks: loading the properties of an asset and seeking a player item.
// Each adapter returns a cold stream that issues the call once per
// observation and sends the callback's result as a single value.
package media

import (
	"context"
	"fmt"
	"time"

	"github.com/a2y-d5l/rxkit"
	"github.com/a2y-d5l/rxkit/outcome"
)

// KeyStatus is the load state of one asset property.
type KeyStatus uint8

// Key load states.
const (
	StatusUnknown KeyStatus = iota
	StatusLoading
	StatusLoaded
	StatusFailed
	StatusCancelled
)

// String implements fmt.Stringer.
func (s KeyStatus) String() string {
	switch s {
	case StatusUnknown:
		return "unknown"
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	case StatusCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("KeyStatus(%d)", uint8(s))
	}
}

// Asset loads named properties asynchronously.
type Asset interface {
	// LoadValuesAsynchronously starts loading keys that are not loaded yet and
	// calls done, from any goroutine, once every key has settled.
	LoadValuesAsynchronously(keys []string, done func())

	// StatusOfValue reports the load state of key. A StatusFailed result
	// usually comes with the error that caused it.
	StatusOfValue(key string) (KeyStatus, error)
}

// PlayerItem moves a playback cursor.
type PlayerItem interface {
	// Seek moves the cursor to the given offset and calls done with whether
	// the seek finished, or false if it was interrupted by another seek.
	Seek(to time.Duration, done func(finished bool))
}

// KeyStatuses maps each requested key to its status or load error.
type KeyStatuses map[string]outcome.Outcome[KeyStatus, error]

// LoadValues returns a Stream that loads keys on asset and then sends one
// KeyStatuses value before completing. A key whose status is StatusFailed with
// a non-nil error maps to outcome.Err; every other key maps to outcome.Ok.
//
// The stream cannot fail: load errors are reported per key.
func LoadValues(asset Asset, keys ...string) *rxkit.Stream[KeyStatuses, rxkit.Never] {
	cp := append([]string(nil), keys...)
	return rxkit.New(func(ctx context.Context, sink *rxkit.Sink[KeyStatuses, rxkit.Never]) {
		asset.LoadValuesAsynchronously(cp, func() {
			if ctx.Err() != nil {
				return
			}
			statuses := make(KeyStatuses, len(cp))
			for _, key := range cp {
				status, err := asset.StatusOfValue(key)
				if status == StatusFailed && err != nil {
					statuses[key] = outcome.Err[KeyStatus](err)
					continue
				}
				statuses[key] = outcome.Ok[KeyStatus, error](status)
			}
			sink.SendValue(statuses)
			sink.SendCompleted()
		})
	})
}

// Seek returns a Stream that seeks item to the given offset and then sends
// the finished flag before completing.
func Seek(item PlayerItem, to time.Duration) *rxkit.Stream[bool, rxkit.Never] {
	return rxkit.New(func(_ context.Context, sink *rxkit.Sink[bool, rxkit.Never]) {
		item.Seek(to, func(finished bool) {
			sink.SendValue(finished)
			sink.SendCompleted()
		})
	})
}
