package reactive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOwner(t *testing.T) {
	t.Run("disposing an owner disposes effects created inside it", func(t *testing.T) {
		count := NewSource(0)
		runs := 0

		owner := NewOwner()
		owner.Run(func() {
			NewEffect(func() func() {
				runs++
				count.Read()
				return nil
			})
		})

		count.Write(1)
		assert.Equal(t, 2, runs)

		owner.Dispose()
		count.Write(2)
		assert.Equal(t, 2, runs)
	})

	t.Run("children are disposed most-recently-created first", func(t *testing.T) {
		var log []string
		owner := NewOwner()
		owner.Run(func() {
			NewEffect(func() func() {
				return func() { log = append(log, "first") }
			})
			NewEffect(func() func() {
				return func() { log = append(log, "second") }
			})
			NewEffect(func() func() {
				return func() { log = append(log, "third") }
			})
		})

		owner.Dispose()
		assert.Equal(t, []string{"third", "second", "first"}, log)
	})

	t.Run("a recomputing Computed disposes nested effects from its previous run", func(t *testing.T) {
		trigger := NewSource(0)
		var log []string

		outer := NewComputed(func() int {
			v := trigger.Read()
			NewEffect(func() func() {
				return func() { log = append(log, "nested cleanup") }
			})
			return v
		})
		outer.Read()

		trigger.Write(1)
		outer.Read()

		assert.Equal(t, []string{"nested cleanup"}, log)
	})

	t.Run("OnError catches a panic from a descendant compute", func(t *testing.T) {
		owner := NewOwner()
		var caught error
		owner.OnError(func(err error) { caught = err })

		owner.Run(func() {
			NewEffect(func() func() {
				panic("nested boom")
			})
		})

		assert.ErrorContains(t, caught, "nested boom")
	})
}
