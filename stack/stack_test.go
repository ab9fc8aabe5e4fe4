package stack

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmpty(t *testing.T) {
	s := New[int]()
	assert.True(t, s.Empty())

	s.Push(33)
	assert.False(t, s.Empty())
}

func TestEmptyPop(t *testing.T) {
	s := New[int]()

	_, err := s.Pop()
	assert.Error(t, err)
}

func TestPushPop(t *testing.T) {
	s := New[string]()

	s.Push("33")

	out, err := s.Pop()
	assert.NoError(t, err)
	assert.Equal(t, "33", out)
}

func TestPeekDoesNotRemove(t *testing.T) {
	s := New[int]()
	s.Push(1)
	s.Push(2)

	top, err := s.Peek()
	assert.NoError(t, err)
	assert.Equal(t, 2, top)
	assert.Equal(t, 2, s.Len())
}

func TestLenTracksPushesAndPops(t *testing.T) {
	s := New[int]()
	assert.Equal(t, 0, s.Len())

	s.Push(1)
	s.Push(2)
	assert.Equal(t, 2, s.Len())

	_, err := s.Pop()
	assert.NoError(t, err)
	assert.Equal(t, 1, s.Len())
}

func TestStructValueType(t *testing.T) {
	type frame struct {
		kind string
		idx  int
	}

	s := New[frame]()
	s.Push(frame{kind: "if", idx: 3})

	top, err := s.Pop()
	assert.NoError(t, err)
	assert.Equal(t, frame{kind: "if", idx: 3}, top)
}
