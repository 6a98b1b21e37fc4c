package services

import (
	"errors"
	"fmt"

	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/errs"

	"github.com/cespare/xxhash/v2"
)

// DefaultStoreCapacity is the initial slot count of a ParcelStore.
const DefaultStoreCapacity = 1009

var (
	// ErrDuplicateTrackingID is returned when a tracking ID is already stored.
	ErrDuplicateTrackingID = errors.New("duplicate tracking id")

	// ErrStoreCapacityExceeded is returned when the store holds its configured maximum.
	ErrStoreCapacityExceeded = errors.New("parcel store is full")
)

type storeSlot struct {
	key    string
	parcel *parcel.Parcel
}

// ParcelStore is the single owner of every parcel, keyed by tracking ID.
//
// It is an open-addressing hash table: keys hash with xxhash and collide into
// quadratic probe sequences slot = (h + i²) mod capacity over a prime capacity.
// The table grows before the load factor reaches one half, which keeps every
// probe sequence short and guarantees an empty slot is found. An optional
// maximum turns growth into a hard CapacityExceeded error instead.
type ParcelStore struct {
	slots      []*storeSlot
	order      []*parcel.Parcel
	maxEntries int
}

// NewParcelStore creates a store with at least initialCapacity slots. A positive
// maxEntries limits how many parcels it accepts; zero means unbounded.
func NewParcelStore(initialCapacity, maxEntries int) *ParcelStore {
	if initialCapacity <= 0 {
		initialCapacity = DefaultStoreCapacity
	}
	return &ParcelStore{
		slots:      make([]*storeSlot, nextPrime(initialCapacity)),
		maxEntries: maxEntries,
	}
}

// Insert stores p under its tracking ID.
//
// Returns:
//   - ErrDuplicateTrackingID (also errs.ErrObjectAlreadyExists) when the ID exists
//   - ErrStoreCapacityExceeded (also errs.ErrCapacityExceeded) when the maximum is reached
func (s *ParcelStore) Insert(p *parcel.Parcel) error {
	if err := p.Validate(); err != nil {
		return err
	}

	id := p.ID()
	if _, ok := s.Lookup(id); ok {
		return fmt.Errorf("%w: %w", ErrDuplicateTrackingID, errs.NewObjectAlreadyExistsError("tracking id", id))
	}
	if s.maxEntries > 0 && len(s.order) >= s.maxEntries {
		return fmt.Errorf("%w: %w", ErrStoreCapacityExceeded, errs.NewCapacityExceededError("parcel store", s.maxEntries))
	}

	if 2*(len(s.order)+1) > len(s.slots) {
		s.grow()
	}
	if !s.place(&storeSlot{key: id, parcel: p}) {
		return errs.NewInvariantViolationErrorWithCause("insert parcel", fmt.Errorf("no free slot for %q", id))
	}
	s.order = append(s.order, p)
	return nil
}

// Lookup returns the parcel stored under id.
func (s *ParcelStore) Lookup(id string) (*parcel.Parcel, bool) {
	capacity := uint64(len(s.slots))
	h := xxhash.Sum64String(id)
	for i := uint64(0); i < capacity; i++ {
		slot := s.slots[(h+i*i)%capacity]
		if slot == nil {
			return nil, false
		}
		if slot.key == id {
			return slot.parcel, true
		}
	}
	return nil, false
}

// ForEach visits every parcel in insertion order.
func (s *ParcelStore) ForEach(visit func(p *parcel.Parcel)) {
	for _, p := range s.order {
		visit(p)
	}
}

// Len returns the number of stored parcels.
func (s *ParcelStore) Len() int {
	return len(s.order)
}

// Capacity returns the current number of slots.
func (s *ParcelStore) Capacity() int {
	return len(s.slots)
}

// place reports false only if the probe sequence is exhausted, which cannot
// happen while the load factor stays at or below one half of a prime capacity.
func (s *ParcelStore) place(entry *storeSlot) bool {
	capacity := uint64(len(s.slots))
	h := xxhash.Sum64String(entry.key)
	for i := uint64(0); i < capacity; i++ {
		idx := (h + i*i) % capacity
		if s.slots[idx] == nil {
			s.slots[idx] = entry
			return true
		}
	}
	return false
}

func (s *ParcelStore) grow() {
	old := s.slots
	s.slots = make([]*storeSlot, nextPrime(2*len(old)))
	for _, entry := range old {
		if entry != nil {
			s.place(entry)
		}
	}
}

func nextPrime(n int) int {
	if n <= 2 {
		return 2
	}
	if n%2 == 0 {
		n++
	}
	for !isPrime(n) {
		n += 2
	}
	return n
}

func isPrime(n int) bool {
	if n < 2 {
		return false
	}
	if n%2 == 0 {
		return n == 2
	}
	for d := 3; d*d <= n; d += 2 {
		if n%d == 0 {
			return false
		}
	}
	return true
}
