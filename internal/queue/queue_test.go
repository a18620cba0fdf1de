package queue

import (
	"testing"

	. "github.com/ava12/shapegen/internal/test"
)

func TestEmpty(t *testing.T) {
	var q Queue[int]
	Assert(t, q.IsEmpty(), "zero queue must be empty")
	_, ok := q.First()
	ExpectBool(t, false, ok)
	_, ok = q.Last()
	ExpectBool(t, false, ok)
}

func TestFifo(t *testing.T) {
	q := New(1, 2)
	q.Append(3, 4)
	for i := 1; i <= 4; i++ {
		v, ok := q.First()
		ExpectBool(t, true, ok)
		ExpectInt(t, i, v)
	}
	Assert(t, q.IsEmpty(), "queue must be empty")
}

func TestLifo(t *testing.T) {
	q := New[string]()
	q.Append("a").Append("b").Append("c")

	v, _ := q.Last()
	Expect(t, v == "c", "c", v)
	v, _ = q.First()
	Expect(t, v == "a", "a", v)
	v, _ = q.Last()
	Expect(t, v == "b", "b", v)
	Assert(t, q.IsEmpty(), "queue must be empty")
}

func TestCompaction(t *testing.T) {
	q := New[int]()
	for i := 0; i < 100; i++ {
		q.Append(i)
	}
	for i := 0; i < 60; i++ {
		v, _ := q.First()
		ExpectInt(t, i, v)
	}
	q.Append(100)

	v, _ := q.Last()
	ExpectInt(t, 100, v)
	for i := 60; i < 100; i++ {
		v, ok := q.First()
		ExpectBool(t, true, ok)
		ExpectInt(t, i, v)
	}
	Assert(t, q.IsEmpty(), "queue must be empty")
}
