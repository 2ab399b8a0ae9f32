package reactive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputed(t *testing.T) {
	t.Run("never read never runs", func(t *testing.T) {
		runs := 0
		count := NewSource(1)
		_ = NewComputed(func() int {
			runs++
			return count.Read() * 2
		})
		assert.Equal(t, 0, runs)
	})

	t.Run("computes on first read, caches after", func(t *testing.T) {
		runs := 0
		count := NewSource(1)
		double := NewComputed(func() int {
			runs++
			return count.Read() * 2
		})

		assert.Equal(t, 2, double.Read())
		assert.Equal(t, 1, runs)
		assert.Equal(t, 2, double.Read())
		assert.Equal(t, 1, runs)
	})

	t.Run("recomputes only when an input actually changes", func(t *testing.T) {
		a := NewSource(1)
		b := NewSource(100)
		runs := 0
		sum := NewComputed(func() int {
			runs++
			return a.Read() + b.Read()
		})

		assert.Equal(t, 101, sum.Read())
		assert.Equal(t, 1, runs)

		a.Write(1) // unchanged value, no recompute
		assert.Equal(t, 101, sum.Read())
		assert.Equal(t, 1, runs)

		a.Write(2)
		assert.Equal(t, 102, sum.Read())
		assert.Equal(t, 2, runs)
	})

	t.Run("skips downstream recompute when upstream value is unchanged", func(t *testing.T) {
		source := NewSource(10)
		parityRuns := 0
		isEven := NewComputed(func() bool {
			parityRuns++
			return source.Read()%2 == 0
		})

		labelRuns := 0
		label := NewComputed(func() string {
			labelRuns++
			if isEven.Read() {
				return "even"
			}
			return "odd"
		})

		assert.Equal(t, "even", label.Read())
		assert.Equal(t, 1, parityRuns)
		assert.Equal(t, 1, labelRuns)

		source.Write(12) // still even: isEven recomputes (and is unchanged), label does not
		assert.Equal(t, "even", label.Read())
		assert.Equal(t, 2, parityRuns)
		assert.Equal(t, 1, labelRuns)

		source.Write(13) // now odd: both recompute
		assert.Equal(t, "odd", label.Read())
		assert.Equal(t, 3, parityRuns)
		assert.Equal(t, 2, labelRuns)
	})

	t.Run("dynamic dependencies are re-tracked every run", func(t *testing.T) {
		useA := NewSource(true)
		a := NewSource("a")
		b := NewSource("b")

		picked := NewComputed(func() string {
			if useA.Read() {
				return a.Read()
			}
			return b.Read()
		})
		assert.Equal(t, "a", picked.Read())

		// b isn't tracked yet; writing it must not affect picked.
		b.Write("b2")
		assert.Equal(t, "a", picked.Read())

		useA.Write(false)
		assert.Equal(t, "b2", picked.Read())

		// a is no longer tracked; writing it must not affect picked.
		a.Write("a2")
		assert.Equal(t, "b2", picked.Read())
	})

	t.Run("a panicking compute is recovered by the nearest error handler", func(t *testing.T) {
		var caught error
		boom := NewComputed(func() int {
			panic("boom")
		}, WithOnError(func(err error) { caught = err }))

		assert.NotPanics(t, func() { boom.Read() })
		assert.ErrorContains(t, caught, "boom")
	})

	t.Run("a failed compute stays dirty and retries on the next read", func(t *testing.T) {
		attempts := 0
		boom := NewComputed(func() int {
			attempts++
			if attempts == 1 {
				panic("boom")
			}
			return 42
		}, WithOnError(func(error) {}))

		assert.NotPanics(t, func() { boom.Read() })
		assert.Equal(t, 1, attempts)
		assert.Equal(t, 42, boom.Read())
		assert.Equal(t, 2, attempts) // second read retried the compute once and succeeded
	})

	t.Run("a dependency cycle is reported as a CycleError", func(t *testing.T) {
		var b *Computed[int]
		a := NewComputed(func() int { return b.Read() + 1 })
		b = NewComputed(func() int { return a.Read() + 1 })

		defer func() {
			r := recover()
			if assert.NotNil(t, r) {
				err, ok := r.(error)
				assert.True(t, ok)
				var cycleErr *CycleError
				assert.ErrorAs(t, err, &cycleErr)
			}
		}()
		a.Read()
	})

	t.Run("dispose detaches a computed from the graph", func(t *testing.T) {
		count := NewSource(1)
		double := NewComputed(func() int { return count.Read() * 2 })
		assert.Equal(t, 2, double.Read())

		double.Dispose()
		assert.Panics(t, func() { double.Read() })
	})
}
