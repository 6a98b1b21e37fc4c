package network_test

import (
	"testing"

	"parceltrack/internal/core/domain/model/network"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedRandom replays fixed rolls, modulo the requested bound.
type scriptedRandom struct {
	rolls []int
	next  int
}

func (s *scriptedRandom) IntN(n int) int {
	v := s.rolls[s.next%len(s.rolls)]
	s.next++
	return v % n
}

func triangle(t *testing.T) (*network.Graph, int, int, int) {
	t.Helper()
	g := network.NewGraph(0, 0)
	a, err := g.AddCity("A", "Z1")
	require.NoError(t, err)
	b, err := g.AddCity("B", "Z1")
	require.NoError(t, err)
	c, err := g.AddCity("C", "Z2")
	require.NoError(t, err)
	require.NoError(t, g.AddRoad(a, b, 10))
	require.NoError(t, g.AddRoad(a, c, 6))
	require.NoError(t, g.AddRoad(c, b, 6))
	return g, a, b, c
}

func TestGraph_AddCity(t *testing.T) {
	t.Run("should assign positional indices", func(t *testing.T) {
		g := network.NewGraph(3, 0)

		first, err := g.AddCity("Lahore", "A")
		require.NoError(t, err)
		second, err := g.AddCity("Multan", "A")
		require.NoError(t, err)

		assert.Equal(t, 0, first)
		assert.Equal(t, 1, second)
		assert.Equal(t, 2, g.Len())
	})

	t.Run("should fail when capacity is exceeded", func(t *testing.T) {
		g := network.NewGraph(1, 0)
		_, err := g.AddCity("Lahore", "A")
		require.NoError(t, err)

		idx, err := g.AddCity("Multan", "A")

		assert.Equal(t, -1, idx)
		assert.ErrorIs(t, err, network.ErrCityCapacityExceeded)
		assert.ErrorIs(t, err, errs.ErrCapacityExceeded)
		assert.Equal(t, 1, g.Len())
	})

	t.Run("should reject duplicate and empty names", func(t *testing.T) {
		g := network.NewGraph(0, 0)
		_, err := g.AddCity("Lahore", "A")
		require.NoError(t, err)

		_, err = g.AddCity("Lahore", "B")
		assert.ErrorIs(t, err, errs.ErrObjectAlreadyExists)

		_, err = g.AddCity("  ", "B")
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestGraph_AddRoad(t *testing.T) {
	t.Run("should store both directions", func(t *testing.T) {
		g, a, b, _ := triangle(t)

		cityA, ok := g.City(a)
		require.True(t, ok)
		cityB, ok := g.City(b)
		require.True(t, ok)

		assert.Contains(t, cityA.Roads, network.Road{To: b, Distance: 10})
		assert.Contains(t, cityB.Roads, network.Road{To: a, Distance: 10})
	})

	t.Run("should leave the graph unchanged on invalid input", func(t *testing.T) {
		g, a, _, _ := triangle(t)
		before := g.Cities()

		assert.ErrorIs(t, g.AddRoad(a, 99, 5), network.ErrCityNotFound)
		assert.ErrorIs(t, g.AddRoad(-1, a, 5), errs.ErrObjectNotFound)
		assert.ErrorIs(t, g.AddRoad(a, a, 5), errs.ErrValueIsInvalid)
		assert.ErrorIs(t, g.AddRoad(a, 1, 0), errs.ErrValueIsInvalid)

		assert.Equal(t, before, g.Cities())
	})
}

func TestGraph_FindPaths(t *testing.T) {
	t.Run("should find the direct and the detour path", func(t *testing.T) {
		g, a, b, c := triangle(t)

		paths := g.FindPaths(a, b)

		require.Len(t, paths, 2)
		assert.Equal(t, network.Path{Cities: []int{a, b}, Distance: 10}, paths[0])
		assert.Equal(t, network.Path{Cities: []int{a, c, b}, Distance: 12}, paths[1])
		assert.Equal(t, 0, network.PickShortest(paths))
	})

	t.Run("should skip blocked roads", func(t *testing.T) {
		g, a, b, c := triangle(t)
		// Rolls: city A (first candidate), its first road (A-B).
		blocked, ok := g.BlockRandomRoad(&scriptedRandom{rolls: []int{0, 0}})
		require.True(t, ok)
		require.Equal(t, network.Blockage{From: a, To: b, Distance: 10}, blocked)

		paths := g.FindPaths(a, b)

		require.Len(t, paths, 1)
		assert.Equal(t, []int{a, c, b}, paths[0].Cities)
		assert.Equal(t, 12, paths[0].Distance)
		assert.Len(t, g.FindPaths(b, a), 1)
	})

	t.Run("should record at most the path limit", func(t *testing.T) {
		// Given a complete graph on six cities: far more than five simple paths 0 -> 5.
		g := network.NewGraph(0, 5)
		for _, name := range []string{"0", "1", "2", "3", "4", "5"} {
			_, err := g.AddCity(name, "Z")
			require.NoError(t, err)
		}
		for u := 0; u < 6; u++ {
			for v := u + 1; v < 6; v++ {
				require.NoError(t, g.AddRoad(u, v, 1+u+v))
			}
		}

		// When
		paths := g.FindPaths(0, 5)

		// Then
		require.Len(t, paths, 5)
		for _, p := range paths {
			assertSimplePath(t, g, p, 0, 5)
		}
	})

	t.Run("should return a single-city path when start equals end", func(t *testing.T) {
		g, a, _, _ := triangle(t)

		paths := g.FindPaths(a, a)

		require.Len(t, paths, 1)
		assert.Equal(t, network.Path{Cities: []int{a}, Distance: 0}, paths[0])
	})

	t.Run("should return nothing for unknown or disconnected cities", func(t *testing.T) {
		g, a, _, _ := triangle(t)
		island, err := g.AddCity("Island", "Z")
		require.NoError(t, err)

		assert.Empty(t, g.FindPaths(a, island))
		assert.Empty(t, g.FindPaths(a, 42))
		assert.Empty(t, g.FindPaths(-1, a))
	})

	t.Run("should return independent copies", func(t *testing.T) {
		g, a, b, _ := triangle(t)

		first := g.FindPaths(a, b)
		first[0].Cities[0] = 99

		assert.Equal(t, a, g.FindPaths(a, b)[0].Cities[0])
	})
}

func TestPickShortest(t *testing.T) {
	t.Run("should return -1 for an empty set", func(t *testing.T) {
		assert.Equal(t, -1, network.PickShortest(nil))
	})

	t.Run("should prefer the first of equal paths", func(t *testing.T) {
		paths := []network.Path{{Distance: 30}, {Distance: 12}, {Distance: 12}, {Distance: 40}}

		assert.Equal(t, 1, network.PickShortest(paths))
	})
}

func TestGraph_BlockRandomRoad(t *testing.T) {
	t.Run("should block both directions", func(t *testing.T) {
		g, a, _, c := triangle(t)
		// City index 0 (A), road index 1 (A-C).
		blocked, ok := g.BlockRandomRoad(&scriptedRandom{rolls: []int{0, 1}})
		require.True(t, ok)
		assert.Equal(t, network.Blockage{From: a, To: c, Distance: 6}, blocked)

		cityA, _ := g.City(a)
		cityC, _ := g.City(c)
		assert.True(t, cityA.Roads[1].Blocked)
		for _, r := range cityC.Roads {
			if r.To == a {
				assert.True(t, r.Blocked)
			}
		}
	})

	t.Run("should only pick cities that have roads", func(t *testing.T) {
		g := network.NewGraph(0, 0)
		_, _ = g.AddCity("Lonely", "Z")
		u, _ := g.AddCity("U", "Z")
		v, _ := g.AddCity("V", "Z")
		require.NoError(t, g.AddRoad(u, v, 7))

		for roll := range 4 {
			blocked, ok := g.BlockRandomRoad(&scriptedRandom{rolls: []int{roll, 0}})

			require.True(t, ok)
			assert.NotEqual(t, 0, blocked.From)
		}
	})

	t.Run("should report false without roads", func(t *testing.T) {
		g := network.NewGraph(0, 0)
		_, _ = g.AddCity("Lonely", "Z")

		_, ok := g.BlockRandomRoad(&scriptedRandom{rolls: []int{0}})

		assert.False(t, ok)
	})
}

func TestGraph_ReopenRoads(t *testing.T) {
	t.Run("should reopen both directions and report each road once", func(t *testing.T) {
		g, a, b, _ := triangle(t)
		blocked, ok := g.BlockRandomRoad(&scriptedRandom{rolls: []int{0, 0}})
		require.True(t, ok)
		require.Len(t, g.FindPaths(a, b), 1)

		reopened := g.ReopenRoads()

		assert.Equal(t, []network.Blockage{blocked}, reopened)
		assert.Len(t, g.FindPaths(a, b), 2)
		for _, c := range g.Snapshot().Cities {
			for _, r := range c.Roads {
				assert.False(t, r.Blocked, "%s-%s", c.Name, r.To)
			}
		}
	})

	t.Run("should report nothing on an open network", func(t *testing.T) {
		g, _, _, _ := triangle(t)
		assert.Empty(t, g.ReopenRoads())
	})
}

func TestGraph_Lookups(t *testing.T) {
	g, a, b, c := triangle(t)

	idx, ok := g.CityIndex("C")
	assert.True(t, ok)
	assert.Equal(t, c, idx)

	_, ok = g.CityIndex("Nowhere")
	assert.False(t, ok)

	assert.Equal(t, "Z2", g.Zone("C"))
	assert.Equal(t, network.UnknownZone, g.Zone("Nowhere"))
	assert.Equal(t, []string{"A", "C", "B"}, g.Describe(network.Path{Cities: []int{a, c, b}}))
	assert.Equal(t, []string{"A", "?"}, g.Describe(network.Path{Cities: []int{a, 17}}))

	_, ok = g.City(5)
	assert.False(t, ok)
}

func assertSimplePath(t *testing.T, g *network.Graph, p network.Path, start, end int) {
	t.Helper()

	require.NotEmpty(t, p.Cities)
	assert.Equal(t, start, p.Cities[0])
	assert.Equal(t, end, p.Cities[len(p.Cities)-1])

	seen := make(map[int]bool, len(p.Cities))
	total := 0
	for i, idx := range p.Cities {
		assert.False(t, seen[idx], "city %d repeated", idx)
		seen[idx] = true
		if i == 0 {
			continue
		}
		from, _ := g.City(p.Cities[i-1])
		found := false
		for _, r := range from.Roads {
			if r.To == idx && !r.Blocked {
				found = true
				total += r.Distance
				break
			}
		}
		assert.True(t, found, "no open road %d -> %d", p.Cities[i-1], idx)
	}
	assert.Equal(t, p.Distance, total)
}
