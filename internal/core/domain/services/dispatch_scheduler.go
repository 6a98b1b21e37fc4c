package services

import (
	"container/heap"

	"parceltrack/internal/pkg/errs"
)

type scheduledParcel struct {
	id    string
	score int
	seq   uint64
	index int
}

// schedulerHeap implements heap.Interface as a max-heap on score; equal scores
// pop in insertion order.
type schedulerHeap []*scheduledParcel

func (h schedulerHeap) Len() int { return len(h) }

func (h schedulerHeap) Less(i, j int) bool {
	if h[i].score != h[j].score {
		return h[i].score > h[j].score
	}
	return h[i].seq < h[j].seq
}

func (h schedulerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *schedulerHeap) Push(x any) {
	item := x.(*scheduledParcel) //nolint:errcheck // only *scheduledParcel is pushed
	item.index = len(*h)
	*h = append(*h, item)
}

func (h *schedulerHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*h = old[:n-1]
	return item
}

// DispatchScheduler orders warehouse parcels by priority score. It holds
// tracking IDs only; the parcel store owns the parcels.
type DispatchScheduler struct {
	heap    schedulerHeap
	byID    map[string]*scheduledParcel
	nextSeq uint64
}

// NewDispatchScheduler creates an empty scheduler.
func NewDispatchScheduler() *DispatchScheduler {
	return &DispatchScheduler{byID: make(map[string]*scheduledParcel)}
}

// Insert enqueues id with the given score. An ID can be queued only once.
func (s *DispatchScheduler) Insert(id string, score int) error {
	if _, ok := s.byID[id]; ok {
		return errs.NewObjectAlreadyExistsError("scheduled parcel", id)
	}
	item := &scheduledParcel{id: id, score: score, seq: s.nextSeq}
	s.nextSeq++
	heap.Push(&s.heap, item)
	s.byID[id] = item
	return nil
}

// Peek returns the ID that ExtractMax would return, without removing it.
func (s *DispatchScheduler) Peek() (string, bool) {
	if len(s.heap) == 0 {
		return "", false
	}
	return s.heap[0].id, true
}

// ExtractMax removes and returns the highest-scoring ID.
func (s *DispatchScheduler) ExtractMax() (string, bool) {
	if len(s.heap) == 0 {
		return "", false
	}
	item := heap.Pop(&s.heap).(*scheduledParcel) //nolint:errcheck // see Push
	delete(s.byID, item.id)
	return item.id, true
}

// Remove drops id from the queue and reports whether it was queued.
func (s *DispatchScheduler) Remove(id string) bool {
	item, ok := s.byID[id]
	if !ok {
		return false
	}
	heap.Remove(&s.heap, item.index)
	delete(s.byID, id)
	return true
}

// Contains reports whether id is queued.
func (s *DispatchScheduler) Contains(id string) bool {
	_, ok := s.byID[id]
	return ok
}

// Len returns the number of queued parcels.
func (s *DispatchScheduler) Len() int {
	return len(s.heap)
}
