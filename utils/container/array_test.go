package container_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsinghua-fib-lab/aim-sim-oss/utils/container"
)

type testItem struct {
	container.IncrementalItemBase
	id int
}

func ids(a *container.IncrementalArray[*testItem]) []int {
	res := make([]int, 0, a.Len())
	for i, x := range a.Data() {
		if x.Index() != i {
			return nil
		}
		res = append(res, x.id)
	}
	slices.Sort(res)
	return res
}

func TestIncrementalArrayAddRemove(t *testing.T) {
	a := container.NewIncrementalArray[*testItem]()
	items := make([]*testItem, 6)
	for i := range items {
		items[i] = &testItem{id: i}
		a.Add(items[i])
	}
	assert.Zero(t, a.Len())
	a.Prepare()
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, ids(a))

	// 删除包括末尾元素在内的多个元素
	a.Remove(items[1])
	a.Remove(items[5])
	a.Remove(items[4])
	a.Prepare()
	assert.Equal(t, []int{0, 2, 3}, ids(a))

	// 同时增删，删除多于增加
	a.Remove(items[0])
	a.Remove(items[3])
	a.Add(&testItem{id: 6})
	a.Prepare()
	assert.Equal(t, []int{2, 6}, ids(a))

	// 增加多于删除
	a.Remove(items[2])
	a.Add(&testItem{id: 7})
	a.Add(&testItem{id: 8})
	a.Prepare()
	assert.Equal(t, []int{6, 7, 8}, ids(a))
}

func TestIncrementalArrayRemoveAll(t *testing.T) {
	a := container.NewIncrementalArray[*testItem]()
	items := []*testItem{{id: 0}, {id: 1}, {id: 2}}
	for _, x := range items {
		a.Add(x)
	}
	a.Prepare()
	for _, x := range items {
		a.Remove(x)
	}
	// 重复删除
	a.Remove(items[1])
	a.Prepare()
	assert.Zero(t, a.Len())
}
