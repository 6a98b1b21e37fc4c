package services_test

import (
	"fmt"
	"testing"

	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParcelStore_InsertLookup(t *testing.T) {
	t.Run("should find every inserted parcel", func(t *testing.T) {
		store := services.NewParcelStore(0, 0)
		for i := range 50 {
			require.NoError(t, store.Insert(newParcel(t, fmt.Sprintf("TRK-%03d", i), 1+float64(i), 1)))
		}

		for i := range 50 {
			p, ok := store.Lookup(fmt.Sprintf("TRK-%03d", i))
			require.True(t, ok)
			assert.InDelta(t, 1+float64(i), p.Weight(), 1e-9)
		}
		_, ok := store.Lookup("TRK-999")
		assert.False(t, ok)
		assert.Equal(t, 50, store.Len())
	})

	t.Run("should reject duplicates", func(t *testing.T) {
		store := services.NewParcelStore(0, 0)
		require.NoError(t, store.Insert(newParcel(t, "TRK-1", 1, 1)))

		err := store.Insert(newParcel(t, "TRK-1", 2, 2))

		assert.ErrorIs(t, err, services.ErrDuplicateTrackingID)
		assert.ErrorIs(t, err, errs.ErrObjectAlreadyExists)
		p, _ := store.Lookup("TRK-1")
		assert.InDelta(t, 1.0, p.Weight(), 1e-9)
	})

	t.Run("should reject zero-value parcels", func(t *testing.T) {
		store := services.NewParcelStore(0, 0)

		assert.ErrorIs(t, store.Insert(&parcel.Parcel{}), parcel.ErrParcelIsNotConstructed)
	})
}

func TestParcelStore_Growth(t *testing.T) {
	t.Run("should grow past its initial capacity", func(t *testing.T) {
		// Given a tiny table
		store := services.NewParcelStore(3, 0)
		initial := store.Capacity()

		// When far more parcels than slots are inserted
		for i := range 200 {
			require.NoError(t, store.Insert(newParcel(t, fmt.Sprintf("P%d", i), 1, 1)))
		}

		// Then the table grew and keeps the load factor at or below one half
		assert.Greater(t, store.Capacity(), initial)
		assert.LessOrEqual(t, 2*store.Len(), store.Capacity())
		for i := range 200 {
			_, ok := store.Lookup(fmt.Sprintf("P%d", i))
			assert.True(t, ok)
		}
	})

	t.Run("should fail loudly at the configured maximum", func(t *testing.T) {
		store := services.NewParcelStore(0, 2)
		require.NoError(t, store.Insert(newParcel(t, "P1", 1, 1)))
		require.NoError(t, store.Insert(newParcel(t, "P2", 1, 1)))

		err := store.Insert(newParcel(t, "P3", 1, 1))

		assert.ErrorIs(t, err, services.ErrStoreCapacityExceeded)
		assert.ErrorIs(t, err, errs.ErrCapacityExceeded)
		assert.Equal(t, 2, store.Len())
		_, ok := store.Lookup("P3")
		assert.False(t, ok)
	})
}

func TestParcelStore_ForEach(t *testing.T) {
	store := services.NewParcelStore(0, 0)
	ids := []string{"zeta", "alpha", "mike", "bravo"}
	for _, id := range ids {
		require.NoError(t, store.Insert(newParcel(t, id, 1, 1)))
	}

	var seen []string
	store.ForEach(func(p *parcel.Parcel) { seen = append(seen, p.ID()) })

	assert.Equal(t, ids, seen)
}
