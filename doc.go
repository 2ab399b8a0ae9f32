// Package reactive is a fine-grained reactive computation engine: mutable
// Sources, derived Computeds, and side-effecting Effects wired into a
// dependency graph, kept consistent with push-pull scheduling so each
// write recomputes only what actually changed and every read sees a
// glitch-free, internally consistent snapshot.
package reactive
