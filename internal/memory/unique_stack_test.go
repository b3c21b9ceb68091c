package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUniqueStackPushReprioritizes(t *testing.T) {
	us := newUniqueStack[int]()
	assert.Equal(t, 0, us.Length())

	us.Push(10)
	assert.Equal(t, 1, us.Length())
	assert.Equal(t, 10, us.Top())
	assert.Equal(t, 10, us.Bottom())

	us.Push(20)
	assert.Equal(t, 2, us.Length())
	assert.Equal(t, 20, us.Top())
	assert.Equal(t, 10, us.Bottom())

	// Re-pushing an existing element moves it to the top instead of
	// duplicating it.
	us.Push(10)
	assert.Equal(t, 2, us.Length())
	assert.Equal(t, 10, us.Top())
	assert.Equal(t, 20, us.Bottom())
}

func TestUniqueStackPop(t *testing.T) {
	us := newUniqueStack[int]()
	us.Push(10)
	us.Push(20)
	us.Push(30)

	assert.Equal(t, 30, us.Pop())
	assert.Equal(t, 20, us.Pop())
	assert.Equal(t, 10, us.Pop())
	assert.Equal(t, 0, us.Length())
}

func TestUniqueStackDeleteFromMiddle(t *testing.T) {
	us := newUniqueStack[int]()
	us.Push(1)
	us.Push(2)
	us.Push(3)

	us.Delete(2)
	assert.Equal(t, 2, us.Length())
	assert.Equal(t, []int{1, 3}, us.Order)
}

func TestUniqueStackDeleteMissingIsNoop(t *testing.T) {
	us := newUniqueStack[int]()
	us.Push(1)
	us.Delete(99)
	assert.Equal(t, 1, us.Length())
}
