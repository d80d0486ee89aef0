package localytics

import (
	"container/list"
	"sync"
)

// Queue represents a thread-safe FIFO queue for Record items.
type Queue struct {
	mu   sync.Mutex
	list *list.List
}

// NewQueue creates and returns a new empty Queue.
func NewQueue() *Queue {
	return &Queue{list: list.New()}
}

// Enqueue adds a Record to the end of the queue.
func (q *Queue) Enqueue(record Record) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.list.PushBack(record)
}

// Requeue puts records back at the front of the queue, keeping their order.
func (q *Queue) Requeue(records []Record) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i := len(records) - 1; i >= 0; i-- {
		q.list.PushFront(records[i])
	}
}

// IsEmpty reports whether the queue has no elements.
func (q *Queue) IsEmpty() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.list.Len() == 0
}

// Len returns the number of Records currently in the queue.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.list.Len()
}

// Drain removes and returns every Record in the queue, preserving order.
func (q *Queue) Drain() []Record {
	q.mu.Lock()
	defer q.mu.Unlock()
	records := q.slice()
	q.list.Init()
	return records
}

// ToSlice returns all Records in the queue as a slice, preserving order.
func (q *Queue) ToSlice() []Record {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.slice()
}

func (q *Queue) slice() []Record {
	records := make([]Record, 0, q.list.Len())
	for e := q.list.Front(); e != nil; e = e.Next() {
		records = append(records, e.Value.(Record))
	}
	return records
}

// LoadFromSlice replaces the queue contents with Records from the provided slice.
func (q *Queue) LoadFromSlice(records []Record) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.list.Init()
	for _, record := range records {
		q.list.PushBack(record)
	}
}
