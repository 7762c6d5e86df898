package state

import (
	"container/heap"
)

// Timer is one pending (window, tag, timestamp) triple.
type Timer struct {
	WindowKey string
	Tag       string
	Timestamp int64
}

// timerQueue is a priority queue sorted from smallest to largest Timestamp,
// with a dedupe map so the same Timer is never pending twice.
type timerQueue struct {
	items     []Timer
	dedupeMap map[Timer]struct{}
}

func newTimerQueue() *timerQueue {
	return &timerQueue{dedupeMap: map[Timer]struct{}{}}
}

//---------------------------------------------------------------------------------
// heap.Interface, exposed only for the heap package to use
//---------------------------------------------------------------------------------

func (q *timerQueue) Less(i, j int) bool {
	return q.items[i].Timestamp < q.items[j].Timestamp
}

func (q *timerQueue) Swap(i, j int) {
	q.items[i], q.items[j] = q.items[j], q.items[i]
}

func (q *timerQueue) Push(x any) {
	q.items = append(q.items, x.(Timer))
}

func (q *timerQueue) Pop() any {
	old := q.items
	n := len(old)
	x := old[n-1]
	q.items = old[0 : n-1]
	return x
}

//---------------------------------------------------------------------------------

func (q *timerQueue) Len() int {
	return len(q.items)
}

func (q *timerQueue) PushTimer(item Timer) {
	if _, ok := q.dedupeMap[item]; !ok {
		q.dedupeMap[item] = struct{}{}
		heap.Push(q, item)
	}
}

func (q *timerQueue) PeekTimer() Timer {
	return q.items[0]
}

func (q *timerQueue) PopTimer() Timer {
	item := heap.Pop(q).(Timer)
	delete(q.dedupeMap, item)
	return item
}

func (q *timerQueue) Remove(timer Timer) bool {
	if _, ok := q.dedupeMap[timer]; !ok {
		return false
	}
	for index, item := range q.items {
		if item == timer {
			delete(q.dedupeMap, timer)
			heap.Remove(q, index)
			return true
		}
	}
	return false
}
