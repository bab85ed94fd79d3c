package tripstats

import "container/heap"

// topK retains the k best items offered to it under a total order. It holds
// at most k items at any time, so selecting from n offers costs O(n log k)
// instead of sorting everything.
type topK[T any] struct {
	k      int
	better func(a, b T) bool
	items  []T
}

func newTopK[T any](k int, better func(a, b T) bool) *topK[T] {
	return &topK[T]{k: k, better: better}
}

// offer considers one item for the running top k.
func (t *topK[T]) offer(item T) {
	if t.k <= 0 {
		return
	}
	if len(t.items) < t.k {
		heap.Push(t, item)
		return
	}
	if t.better(item, t.items[0]) {
		t.items[0] = item
		heap.Fix(t, 0)
	}
}

// take returns the retained items, best first, draining the selector.
func (t *topK[T]) take() []T {
	out := make([]T, len(t.items))
	for i := len(t.items) - 1; i >= 0; i-- {
		out[i] = heap.Pop(t).(T)
	}
	return out
}

// heap.Interface. The root is the worst retained item, so the total order is
// inverted here.
func (t *topK[T]) Len() int {
	return len(t.items)
}

func (t *topK[T]) Less(i, j int) bool {
	return t.better(t.items[j], t.items[i])
}

func (t *topK[T]) Swap(i, j int) {
	t.items[i], t.items[j] = t.items[j], t.items[i]
}

func (t *topK[T]) Push(x any) {
	t.items = append(t.items, x.(T))
}

func (t *topK[T]) Pop() any {
	last := len(t.items) - 1
	item := t.items[last]
	t.items = t.items[:last]
	return item
}
