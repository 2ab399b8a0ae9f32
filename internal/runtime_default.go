//go:build !wasm

package internal

import "github.com/petermattis/goid"

func currentGoroutineID() int64 {
	return goid.Get()
}
