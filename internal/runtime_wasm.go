//go:build wasm

package internal

// wasm builds are single-threaded by construction, so every goroutine
// shares the same identity and therefore the same Context — there is no
// petermattis/goid support under js/wasm.
func currentGoroutineID() int64 {
	return 0
}
