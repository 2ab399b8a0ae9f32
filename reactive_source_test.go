package reactive

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSource(t *testing.T) {
	t.Run("read and write", func(t *testing.T) {
		count := NewSource(0)
		assert.Equal(t, 0, count.Read())

		count.Write(10)
		assert.Equal(t, 10, count.Read())
	})

	t.Run("write with unchanged value is a no-op", func(t *testing.T) {
		count := NewSource(5)
		runs := 0
		NewEffect(func() func() {
			runs++
			count.Read()
			return nil
		})
		assert.Equal(t, 1, runs)

		count.Write(5)
		assert.Equal(t, 1, runs)
	})

	t.Run("zero values", func(t *testing.T) {
		errSrc := NewSource[error](nil)
		assert.Nil(t, errSrc.Read())

		errSrc.Write(errors.New("oops"))
		assert.EqualError(t, errSrc.Read(), "oops")

		errSrc.Write(nil)
		assert.Nil(t, errSrc.Read())
	})

	t.Run("peek does not track", func(t *testing.T) {
		count := NewSource(0)
		runs := 0
		NewEffect(func() func() {
			runs++
			count.Peek()
			return nil
		})
		assert.Equal(t, 1, runs)

		count.Write(1)
		assert.Equal(t, 1, runs)
	})

	t.Run("dispose rejects further use", func(t *testing.T) {
		count := NewSource(0)
		count.Dispose()

		assert.Panics(t, func() { count.Read() })
		assert.Panics(t, func() { count.Write(1) })
	})

	t.Run("custom equals suppresses writes it considers unchanged", func(t *testing.T) {
		type point struct{ x, y int }
		p := NewSource(point{1, 1}, WithEquals(func(a, b point) bool { return a.x == b.x }))

		runs := 0
		NewEffect(func() func() {
			runs++
			p.Read()
			return nil
		})
		assert.Equal(t, 1, runs)

		p.Write(point{1, 99})
		assert.Equal(t, 1, runs)

		p.Write(point{2, 99})
		assert.Equal(t, 2, runs)
	})
}
