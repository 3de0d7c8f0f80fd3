package container_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsinghua-fib-lab/aim-sim-oss/utils/container"
)

func TestPriorityQueueOrder(t *testing.T) {
	q := container.NewPriorityQueue[string]()
	q.Push("c", 3)
	q.Push("a1", 1)
	q.Push("b", 2)
	q.Push("a2", 1)
	q.Push("a3", 1)
	q.Push("z", 0)
	q.Heapify()

	value, priority := q.First()
	assert.Equal(t, "z", value)
	assert.Equal(t, 0.0, priority)

	got := make([]string, 0)
	for q.Len() > 0 {
		v, _ := q.HeapPop()
		got = append(got, v)
	}
	// 优先级相同时保持加入顺序
	assert.Equal(t, []string{"z", "a1", "a2", "a3", "b", "c"}, got)
}
