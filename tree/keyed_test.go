package tree

import (
	"cmp"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func TestRankOfKeyAfterRemove(t *testing.T) {
	for _, d := range disciplines {
		tree, err := New[int, float64](Config{Discipline: d, Augmentation: Rank}, cmp.Compare[int])
		require.NoError(t, err)
		require.NoError(t, tree.Insert(10, 1.0))
		require.NoError(t, tree.Insert(20, 2.0))
		e, err := tree.RankOf(20)
		require.NoError(t, err)
		require.Equal(t, int64(1), e.Rank)
		require.Equal(t, 2.0, e.Value)
		require.NoError(t, tree.Remove(10))
		e, err = tree.RankOf(20)
		require.NoError(t, err)
		require.Equal(t, int64(0), e.Rank)
	}
}

func TestAtRankMatchesSortedOrder(t *testing.T) {
	for _, d := range disciplines {
		tree := newIntTree(t, Config{Discipline: d, Augmentation: Rank})
		rnd := rand.New(rand.NewPCG(3, 4))
		for _, k := range rnd.Perm(100) {
			require.NoError(t, tree.Insert(2*k, ""))
		}
		for r := range int64(100) {
			e, err := tree.AtRank(r)
			require.NoError(t, err)
			require.Equal(t, int(2*r), e.Key, "%s rank %d", d, r)
			require.Equal(t, r, e.Rank)
			require.Equal(t, int64(1), e.Count)
			e, err = tree.RankOf(int(2 * r))
			require.NoError(t, err)
			require.Equal(t, r, e.Rank)
		}
		_, err := tree.AtRank(100)
		require.True(t, errors.Is(err, ErrInvalidArgument))
		_, err = tree.AtRank(-1)
		require.True(t, errors.Is(err, ErrInvalidArgument))
		_, err = tree.RankOf(1)
		require.True(t, errors.Is(err, ErrNotFound))
		require.NoError(t, tree.Check())
	}
}

func TestMultiRankIntervals(t *testing.T) {
	for _, d := range disciplines {
		tree, err := New[int, string](Config{Discipline: d, Augmentation: MultiRank}, cmp.Compare[int])
		require.NoError(t, err)
		require.NoError(t, tree.InsertCount(5, "x", 3))
		require.NoError(t, tree.InsertCount(9, "y", 2))
		require.Equal(t, int64(5), tree.RankCount())
		e, err := tree.RankOf(5)
		require.NoError(t, err)
		require.Equal(t, int64(0), e.Rank)
		require.Equal(t, int64(3), e.Count)
		e, err = tree.RankOf(9)
		require.NoError(t, err)
		require.Equal(t, int64(3), e.Rank)
		require.Equal(t, int64(2), e.Count)
		for r, want := range []int{5, 5, 5, 9, 9} {
			e, err := tree.AtRank(int64(r))
			require.NoError(t, err)
			require.Equal(t, want, e.Key, "%s rank %d", d, r)
		}
		_, err = tree.AtRank(5)
		require.True(t, errors.Is(err, ErrInvalidArgument))
		require.True(t, errors.Is(tree.InsertCount(7, "z", 0), ErrInvalidArgument))
		require.NoError(t, tree.Check())
	}
}

func TestMultiRankAdjustCount(t *testing.T) {
	tree, err := New[string, int](Config{Discipline: RedBlack, Augmentation: MultiRank}, cmp.Compare[string])
	require.NoError(t, err)
	require.NoError(t, tree.InsertCount("a", 1, 2))
	require.NoError(t, tree.InsertCount("b", 2, 4))
	require.NoError(t, tree.InsertCount("c", 3, 1))
	//
	n, err := tree.AdjustCount("b", 3)
	require.NoError(t, err)
	require.Equal(t, int64(7), n)
	require.Equal(t, int64(10), tree.RankCount())
	e, err := tree.AtRank(9)
	require.NoError(t, err)
	require.Equal(t, "c", e.Key)
	require.Equal(t, int64(9), e.Rank)
	//
	v := tree.Version()
	_, err = tree.AdjustCount("a", -3)
	require.True(t, errors.Is(err, ErrInvalidArgument))
	require.Equal(t, v, tree.Version())
	n, err = tree.AdjustCount("a", -2)
	require.NoError(t, err)
	require.Zero(t, n)
	require.False(t, tree.Contains("a"))
	c, err := tree.CountOf("b")
	require.NoError(t, err)
	require.Equal(t, int64(7), c)
	_, err = tree.AdjustCount("zz", 1)
	require.True(t, errors.Is(err, ErrNotFound))
	require.NoError(t, tree.Check())
}

func TestMultiRankIndexOverflow(t *testing.T) {
	tree, err := New[int, string](Config{Augmentation: MultiRank, IndexWidth: Index32}, cmp.Compare[int])
	require.NoError(t, err)
	require.NoError(t, tree.InsertCount(1, "", math.MaxInt32-10))
	err = tree.InsertCount(2, "", 11)
	require.True(t, errors.Is(err, ErrIndexOverflow), "got %v", err)
	require.Equal(t, 1, tree.Count())
	_, err = tree.AdjustCount(1, 11)
	require.True(t, errors.Is(err, ErrIndexOverflow))
	require.NoError(t, tree.InsertCount(2, "", 10))
	require.Equal(t, int64(math.MaxInt32), tree.RankCount())
	//
	wide, err := New[int, string](Config{Augmentation: MultiRank, IndexWidth: Index64}, cmp.Compare[int])
	require.NoError(t, err)
	require.NoError(t, wide.InsertCount(1, "", math.MaxInt32))
	require.NoError(t, wide.InsertCount(2, "", math.MaxInt32))
	require.NoError(t, wide.Check())
}

func TestSetValueOnValuelessTree(t *testing.T) {
	tree := newIntTree(t, Config{Valueless: true})
	require.NoError(t, tree.Insert(1, ""))
	require.True(t, errors.Is(tree.SetValue(1, "x"), ErrValueless))
}
