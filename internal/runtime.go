package internal

import "sync"

// registry holds one *Context per goroutine that has touched the package
// factories directly (NewSource, NewComputed, ...), keyed by goroutine id.
// This mirrors the teacher's own runtime registry: two goroutines that
// never explicitly share a *Context get independent graphs automatically
// (spec §5 — "single-threaded" is a per-graph guarantee, not a global one).
var registry sync.Map

// GetContext returns (creating if necessary) the Context bound to the
// calling goroutine.
func GetContext() *Context {
	gid := currentGoroutineID()

	if c, ok := registry.Load(gid); ok {
		return c.(*Context)
	}

	c := NewContext()
	registry.Store(gid, c)
	return c
}
