package reactive

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffect(t *testing.T) {
	t.Run("runs once immediately at creation", func(t *testing.T) {
		count := NewSource(0)
		var seen []int
		NewEffect(func() func() {
			seen = append(seen, count.Read())
			return nil
		})
		assert.Equal(t, []int{0}, seen)
	})

	t.Run("reruns when a tracked dependency changes", func(t *testing.T) {
		count := NewSource(0)
		var seen []int
		NewEffect(func() func() {
			seen = append(seen, count.Read())
			return nil
		})

		count.Write(1)
		count.Write(2)

		assert.Equal(t, []int{0, 1, 2}, seen)
	})

	t.Run("cleanup runs before the next run and on dispose", func(t *testing.T) {
		count := NewSource(0)
		var log []string
		dispose := NewEffect(func() func() {
			log = append(log, fmt.Sprintf("run %d", count.Read()))
			return func() { log = append(log, "cleanup") }
		})

		count.Write(1)
		dispose()

		assert.Equal(t, []string{
			"run 0",
			"cleanup",
			"run 1",
			"cleanup",
		}, log)
	})

	t.Run("a disposed effect never runs again", func(t *testing.T) {
		count := NewSource(0)
		runs := 0
		dispose := NewEffect(func() func() {
			runs++
			count.Read()
			return nil
		})
		dispose()

		count.Write(1)
		assert.Equal(t, 1, runs)
	})

	t.Run("a panicking effect is recovered by the nearest error handler", func(t *testing.T) {
		var caught error
		assert.NotPanics(t, func() {
			NewEffect(func() func() {
				panic("boom")
			}, WithOnError(func(err error) { caught = err }))
		})
		assert.ErrorContains(t, caught, "boom")
	})

	t.Run("Subscribe fires synchronously on attach, then on change", func(t *testing.T) {
		count := NewSource(0)
		var seen []int
		unsub := Subscribe[int](count, func(v int) { seen = append(seen, v) })

		assert.Equal(t, []int{0}, seen)

		count.Write(1)
		count.Write(1) // unchanged, should not refire
		count.Write(2)

		assert.Equal(t, []int{0, 1, 2}, seen)

		unsub()
		count.Write(3)
		assert.Equal(t, []int{0, 1, 2}, seen)
	})

	t.Run("a self-dirtying effect is bounded by MaxReenqueue", func(t *testing.T) {
		SetMaxReenqueue(5)
		defer SetMaxReenqueue(1000)

		count := NewSource(0)

		defer func() {
			r := recover()
			if assert.NotNil(t, r) {
				err, ok := r.(error)
				assert.True(t, ok)
				assert.ErrorIs(t, err, ErrReenqueueLimit)
			}
		}()

		NewEffect(func() func() {
			count.Write(count.Read() + 1)
			return nil
		})
	})

	t.Run("Subscribe works over a Computed", func(t *testing.T) {
		count := NewSource(1)
		double := NewComputed(func() int { return count.Read() * 2 })

		var seen []int
		Subscribe[int](double, func(v int) { seen = append(seen, v) })

		count.Write(5)
		assert.Equal(t, []int{2, 10}, seen)
	})
}
